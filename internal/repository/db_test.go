package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wafflestudio/team2-server/internal/domain"
)

// testDB opens an in-memory sqlite database with the production schema.
// The pool is capped at one connection so every query sees the same
// in-memory database.
func testDB(t *testing.T) *gorm.DB {
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

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()

	user := domain.User{
		Email:        username + "@example.com",
		Username:     username,
		DisplayName:  username,
		PasswordHash: "hash",
	}
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), &user))
	return &user
}

func seedTweet(t *testing.T, db *gorm.DB, authorID, content string, mediaKeys ...string) *domain.Tweet {
	t.Helper()

	tweet := domain.Tweet{
		Kind:      domain.KindGeneral,
		AuthorID:  authorID,
		Content:   content,
		MediaKeys: mediaKeys,
		WrittenAt: time.Now(),
	}
	require.NoError(t, NewGormTweetRepository(db).CreateTweet(context.Background(), &tweet))
	return &tweet
}

func seedReply(t *testing.T, db *gorm.DB, authorID string, targetID uint64, content string) *domain.Tweet {
	t.Helper()

	tweet := domain.Tweet{
		Kind:      domain.KindReply,
		AuthorID:  authorID,
		Content:   content,
		WrittenAt: time.Now(),
	}
	require.NoError(t, NewGormTweetRepository(db).CreateReply(context.Background(), targetID, &tweet))
	return &tweet
}
