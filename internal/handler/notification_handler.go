package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// ListNotifications returns one page of the caller's notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	page, size := pageParams(c)

	views, p, err := h.notifications.List(ctx, middleware.GetUserID(c), page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, pageList{Items: views, Page: p})
}

// MarkNotificationsRead marks all of the caller's notifications read.
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.notifications.MarkAllRead(ctx, middleware.GetUserID(c)); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
