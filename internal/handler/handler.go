package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/internal/pagination"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/internal/service"
	"github.com/wafflestudio/team2-server/pkg/jwt"
	"github.com/wafflestudio/team2-server/pkg/log"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// Handler handles all HTTP requests.
type Handler struct {
	users          service.UserService
	tweets         service.TweetService
	timeline       service.TimelineService
	engagement     service.EngagementService
	follows        service.FollowService
	search         service.SearchService
	notifications  service.NotificationService
	media          service.MediaService
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler creates the HTTP handler.
func NewHandler(
	users service.UserService,
	tweets service.TweetService,
	timeline service.TimelineService,
	engagement service.EngagementService,
	follows service.FollowService,
	search service.SearchService,
	notifications service.NotificationService,
	media service.MediaService,
	authMiddleware *middleware.AuthMiddleware,
) *Handler {
	return &Handler{
		users:          users,
		tweets:         tweets,
		timeline:       timeline,
		engagement:     engagement,
		follows:        follows,
		search:         search,
		notifications:  notifications,
		media:          media,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.POST("/refresh", h.RefreshToken)
			auth.POST("/logout", h.authMiddleware.RequireAuth(), h.Logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware.RequireAuth())
		{
			users.GET("/me", h.GetMe)
		}

		tweets := api.Group("/tweets")
		{
			tweets.GET("/:id", h.authMiddleware.OptionalAuth(), h.GetThread)

			authed := tweets.Group("")
			authed.Use(h.authMiddleware.RequireAuth())
			{
				authed.POST("", h.PostTweet)
				authed.DELETE("/:id", h.DeleteTweet)
				authed.POST("/:id/replies", h.PostReply)
				authed.POST("/:id/quotes", h.PostQuote)
				authed.POST("/:id/retweet", h.Retweet)
				authed.DELETE("/:id/retweet", h.CancelRetweet)
				authed.POST("/:id/like", h.Like)
				authed.DELETE("/:id/like", h.Unlike)
			}
		}

		api.GET("/timeline", h.authMiddleware.RequireAuth(), h.HomeTimeline)

		profiles := api.Group("/profiles")
		profiles.Use(h.authMiddleware.OptionalAuth())
		{
			profiles.GET("/:id", h.GetProfile)
			profiles.GET("/:id/tweets", h.ProfileTimeline)
			profiles.GET("/:id/followers", h.Followers)
			profiles.GET("/:id/following", h.Following)
			profiles.POST("/:id/follow", h.authMiddleware.RequireAuth(), h.Follow)
			profiles.DELETE("/:id/follow", h.authMiddleware.RequireAuth(), h.Unfollow)
		}

		searches := api.Group("/search")
		searches.Use(h.authMiddleware.OptionalAuth())
		{
			searches.GET("/tweets", h.SearchTweets)
			searches.GET("/users", h.SearchUsers)
		}

		notifications := api.Group("/notifications")
		notifications.Use(h.authMiddleware.RequireAuth())
		{
			notifications.GET("", h.ListNotifications)
			notifications.POST("/read", h.MarkNotificationsRead)
		}

		api.POST("/media", h.authMiddleware.RequireAuth(), h.UploadMedia)
	}

	r.GET("/media/*key", h.ServeMedia)
}

// pageList is the envelope for paginated collections.
type pageList struct {
	Items interface{}     `json:"items"`
	Page  pagination.Page `json:"page"`
}

// pageParams reads the page and size query parameters. Garbage falls back
// to the defaults; out-of-range pages are clamped downstream.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(pagination.DefaultSize)))
	if err != nil || size < 1 || size > 100 {
		size = pagination.DefaultSize
	}
	return page, size
}

// tweetIDParam parses the :id path parameter. Returns false after writing
// the error response.
func tweetIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid tweet id")
		return 0, false
	}
	return id, true
}

// handleError maps domain errors to HTTP statuses. Anything unmapped is a
// logged 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrTweetNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, repository.ErrAlreadyRetweeted),
		errors.Is(err, repository.ErrAlreadyLiked),
		errors.Is(err, repository.ErrAlreadyFollowing),
		errors.Is(err, repository.ErrNoRetweet),
		errors.Is(err, repository.ErrNoLike),
		errors.Is(err, repository.ErrFollowNotFound),
		errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrUsernameExists):
		response.Conflict(c, err.Error())

	case errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrContentTooLong),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrQueryRequired):
		response.BadRequest(c, err.Error())

	case errors.Is(err, service.ErrNotTweetOwner):
		response.Forbidden(c, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrExpiredToken),
		errors.Is(err, jwt.ErrRevokedToken):
		response.Unauthorized(c, err.Error())

	default:
		logger := log.Ctx(c.Request.Context())
		logger.Error().Err(err).Msg("request failed")
		response.InternalError(c, "internal server error")
	}
}
