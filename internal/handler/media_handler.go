package handler

import (
	"io"
	"mime"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/pkg/log"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// maxUploadSize caps a single media upload at 10 MiB.
const maxUploadSize = 10 << 20

// UploadMedia stores one multipart file and returns its key and URL. The
// key goes into subsequent tweet creation payloads.
func (h *Handler) UploadMedia(c *gin.Context) {
	ctx := c.Request.Context()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field required")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		response.BadRequest(c, "file too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(header.Filename))
	}

	key, url, err := h.media.Upload(ctx, middleware.GetUserID(c), header.Filename, contentType, file, header.Size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, gin.H{"key": key, "url": url})
}

// ServeMedia streams a locally stored blob. S3-backed deployments hand out
// presigned URLs instead, so this path only serves local storage.
func (h *Handler) ServeMedia(c *gin.Context) {
	ctx := c.Request.Context()

	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || strings.Contains(key, "..") {
		response.BadRequest(c, "invalid media key")
		return
	}

	rc, err := h.media.Open(ctx, key)
	if err != nil {
		response.NotFound(c, "media not found")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(200)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger := log.Ctx(ctx)
		logger.Warn().Err(err).Str(log.FieldMediaKey, key).Msg("media stream interrupted")
	}
}
