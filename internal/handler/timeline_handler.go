package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// HomeTimeline returns one page of the caller's home timeline.
func (h *Handler) HomeTimeline(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pageParams(c)

	views, p, err := h.timeline.Home(ctx, middleware.GetUserID(c), page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, pageList{Items: views, Page: p})
}

// ProfileTimeline returns one page of a user's own tweets and retweets.
func (h *Handler) ProfileTimeline(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pageParams(c)

	views, p, err := h.timeline.Profile(ctx, middleware.GetUserID(c), c.Param("id"), page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, pageList{Items: views, Page: p})
}
