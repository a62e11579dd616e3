package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// SearchTweets returns one page of tweets matching the q parameter.
func (h *Handler) SearchTweets(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pageParams(c)

	views, p, err := h.search.SearchTweets(ctx, middleware.GetUserID(c), c.Query("q"), page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, pageList{Items: views, Page: p})
}

// SearchUsers returns one page of users matching the q parameter.
func (h *Handler) SearchUsers(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pageParams(c)

	users, p, err := h.search.SearchUsers(ctx, c.Query("q"), page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, pageList{Items: users, Page: p})
}
