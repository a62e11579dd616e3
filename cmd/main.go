package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/wafflestudio/team2-server/internal/cache"
	"github.com/wafflestudio/team2-server/internal/config"
	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/handler"
	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/internal/notifier"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/internal/service"
	"github.com/wafflestudio/team2-server/pkg/database"
	"github.com/wafflestudio/team2-server/pkg/jwt"
	"github.com/wafflestudio/team2-server/pkg/log"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log.Init(cfg.Log)
	logger := log.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.TweetModel{},
		&domain.TweetMediaModel{},
		&domain.ReplyModel{},
		&domain.RetweetModel{},
		&domain.QuoteModel{},
		&domain.UserLikeModel{},
		&domain.FollowModel{},
		&domain.NotificationModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database migration completed")

	// Redis (optional): follow-count cache and live notification channel.
	var (
		redisClient *redis.Client
		followCache cache.FollowCache = cache.NoopFollowCache{}
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		followCache = cache.NewRedisFollowCacheFromClient(redisClient)
		defer redisClient.Close()
	}

	// Tokens
	tokens, err := jwt.NewManager(cfg.JWT.AccessDuration, cfg.JWT.RefreshDuration, cfg.JWT.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token manager")
	}

	// Sweep revocation entries for tokens that have expired on their own.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tokens.CleanupExpiredRevocations()
			}
		}
	}()

	// Media storage
	var store storage.Storage
	switch cfg.Storage.Backend {
	case "s3":
		store, err = storage.NewS3Storage(ctx, cfg.Storage.S3)
	default:
		store, err = storage.NewLocalStorage(cfg.Storage.Local)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize media storage")
	}

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	tweetRepo := repository.NewGormTweetRepository(db)
	timelineRepo := repository.NewGormTimelineRepository(db)
	engagementRepo := repository.NewGormEngagementRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	notify := notifier.NewRedisNotifier(notificationRepo, redisClient)

	// Services
	userService := service.NewUserService(userRepo, tokens)
	tweetService := service.NewTweetService(tweetRepo, timelineRepo, engagementRepo, userRepo, store, notify)
	timelineService := service.NewTimelineService(tweetRepo, timelineRepo, followRepo, engagementRepo, userRepo, store)
	engagementService := service.NewEngagementService(tweetRepo, engagementRepo, notify)
	followService := service.NewFollowService(followRepo, userRepo, followCache, notify)
	searchService := service.NewSearchService(tweetRepo, timelineRepo, engagementRepo, userRepo, store)
	notificationService := service.NewNotificationService(notificationRepo, tweetRepo, engagementRepo, userRepo, store)
	mediaService := service.NewMediaService(store)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	httpHandler := handler.NewHandler(
		userService,
		tweetService,
		timelineService,
		engagementService,
		followService,
		searchService,
		notificationService,
		mediaService,
		authMiddleware,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(log.GinMiddleware(logger))
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
