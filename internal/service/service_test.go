package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wafflestudio/team2-server/internal/cache"
	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/notifier"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/jwt"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

// testEnv wires the whole service stack over an in-memory database and a
// temp-dir media store.
type testEnv struct {
	db            *gorm.DB
	tokens        *jwt.Manager
	users         UserService
	tweets        TweetService
	timeline      TimelineService
	engagement    EngagementService
	follows       FollowService
	search        SearchService
	notifications NotificationService
	media         MediaService
	userRepo      repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.UserModel{},
		&domain.TweetModel{},
		&domain.TweetMediaModel{},
		&domain.ReplyModel{},
		&domain.RetweetModel{},
		&domain.QuoteModel{},
		&domain.UserLikeModel{},
		&domain.FollowModel{},
		&domain.NotificationModel{},
	))

	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	tokens, err := jwt.NewManager(time.Minute, time.Hour, "test")
	require.NoError(t, err)

	userRepo := repository.NewGormUserRepository(db)
	tweetRepo := repository.NewGormTweetRepository(db)
	timelineRepo := repository.NewGormTimelineRepository(db)
	engagementRepo := repository.NewGormEngagementRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	notify := notifier.NewRedisNotifier(notificationRepo, nil)

	return &testEnv{
		db:            db,
		tokens:        tokens,
		users:         NewUserService(userRepo, tokens),
		tweets:        NewTweetService(tweetRepo, timelineRepo, engagementRepo, userRepo, store, notify),
		timeline:      NewTimelineService(tweetRepo, timelineRepo, followRepo, engagementRepo, userRepo, store),
		engagement:    NewEngagementService(tweetRepo, engagementRepo, notify),
		follows:       NewFollowService(followRepo, userRepo, cache.NoopFollowCache{}, notify),
		search:        NewSearchService(tweetRepo, timelineRepo, engagementRepo, userRepo, store),
		notifications: NewNotificationService(notificationRepo, tweetRepo, engagementRepo, userRepo, store),
		media:         NewMediaService(store),
		userRepo:      userRepo,
	}
}

func (e *testEnv) register(t *testing.T, username string) string {
	t.Helper()

	resp, err := e.users.Register(context.Background(), &domain.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return resp.User.ID
}
