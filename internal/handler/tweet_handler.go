package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/pkg/response"
)

// tweetRequest is the payload for tweet, reply, and quote creation. Media
// holds keys previously returned by the media upload endpoint; content may
// be empty when media is present.
type tweetRequest struct {
	Content string   `json:"content"`
	Media   []string `json:"media"`
}

// PostTweet publishes a new tweet.
func (h *Handler) PostTweet(c *gin.Context) {
	ctx := c.Request.Context()

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.tweets.Post(ctx, middleware.GetUserID(c), req.Content, req.Media)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, view)
}

// GetThread returns a tweet's detail page with ancestors and replies.
func (h *Handler) GetThread(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}
	page, size := pageParams(c)

	thread, err := h.timeline.Thread(ctx, middleware.GetUserID(c), id, page, size)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, thread)
}

// DeleteTweet removes the caller's tweet.
func (h *Handler) DeleteTweet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}

	if err := h.tweets.Delete(ctx, middleware.GetUserID(c), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// PostReply publishes a reply to the tweet.
func (h *Handler) PostReply(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.tweets.Reply(ctx, middleware.GetUserID(c), id, req.Content, req.Media)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, view)
}

// PostQuote publishes a quote of the tweet.
func (h *Handler) PostQuote(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.tweets.Quote(ctx, middleware.GetUserID(c), id, req.Content, req.Media)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, view)
}

// Retweet retweets the tweet.
func (h *Handler) Retweet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}

	view, err := h.tweets.Retweet(ctx, middleware.GetUserID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, view)
}

// CancelRetweet removes the caller's retweet of the tweet.
func (h *Handler) CancelRetweet(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}

	if err := h.tweets.CancelRetweet(ctx, middleware.GetUserID(c), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// Like likes the tweet.
func (h *Handler) Like(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.Like(ctx, middleware.GetUserID(c), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// Unlike removes the caller's like of the tweet.
func (h *Handler) Unlike(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := tweetIDParam(c)
	if !ok {
		return
	}

	if err := h.engagement.Unlike(ctx, middleware.GetUserID(c), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}
