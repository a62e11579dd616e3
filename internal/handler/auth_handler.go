package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/pkg/log"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// Register handles account creation.
func (h *Handler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.Register(ctx, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, result)
}

// Login handles authentication.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.Login(ctx, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, result)
}

// RefreshToken exchanges a refresh token for a new pair.
func (h *Handler) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.Refresh(ctx, req.RefreshToken)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, result)
}

// Logout revokes the session's tokens for the rest of their lifetime.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	if err := h.users.Logout(ctx, middleware.GetToken(c), req.RefreshToken); err != nil {
		handleError(c, err)
		return
	}

	logger := log.Ctx(ctx)
	logger.Info().
		Str(log.FieldUserID, middleware.GetUserID(c)).
		Msg("user logged out")
	response.NoContent(c)
}

// GetMe returns the authenticated user's own record.
func (h *Handler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.users.GetByID(ctx, middleware.GetUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, user.ToResponse())
}
