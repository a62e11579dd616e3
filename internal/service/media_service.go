package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/wafflestudio/team2-server/pkg/log"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

// mediaService implements MediaService on top of blob storage. Keys are
// namespaced per uploader so one user cannot guess another's keys.
type mediaService struct {
	store storage.Storage
}

// NewMediaService creates the media service.
func NewMediaService(store storage.Storage) MediaService {
	return &mediaService{store: store}
}

func (s *mediaService) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader, size int64) (string, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := userID + "/" + uuid.New().String() + ext

	if err := s.store.Write(ctx, key, r, size, contentType); err != nil {
		return "", "", err
	}

	url, err := s.store.GetURL(ctx, key, mediaURLTTL)
	if err != nil {
		return "", "", err
	}

	logger := log.Ctx(ctx)
	logger.Info().
		Str(log.FieldUserID, userID).
		Str(log.FieldMediaKey, key).
		Msg("media uploaded")
	return key, url, nil
}

func (s *mediaService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Read(ctx, key)
}

var _ MediaService = (*mediaService)(nil)
