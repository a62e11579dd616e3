package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// GetProfile returns a user's profile header.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.follows.ProfileOf(ctx, middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, view)
}

// Follow makes the caller follow the user.
func (h *Handler) Follow(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.follows.Follow(ctx, middleware.GetUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// Unfollow makes the caller unfollow the user.
func (h *Handler) Unfollow(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.follows.Unfollow(ctx, middleware.GetUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// Followers returns one page of the user's followers.
func (h *Handler) Followers(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pageParams(c)

	users, p, err := h.follows.Followers(ctx, c.Param("id"), page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, pageList{Items: users, Page: p})
}

// Following returns one page of the users the user follows.
func (h *Handler) Following(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pageParams(c)

	users, p, err := h.follows.Following(ctx, c.Param("id"), page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, pageList{Items: users, Page: p})
}
