// Package webapi exposes the advisor over HTTP. It owns the chat endpoint,
// per-client rate limiting, and the translation of core errors into
// status codes and polite messages.
package webapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursecompass/advisor-go/internal/advisor"
	domerrors "github.com/coursecompass/advisor-go/internal/errors"
	"github.com/coursecompass/advisor-go/internal/logger"
	"github.com/coursecompass/advisor-go/internal/ratelimit"
	"github.com/coursecompass/advisor-go/internal/sentry"
)

// requestTimeout bounds one chat request end to end: planning, graph
// queries, and response generation.
const requestTimeout = 60 * time.Second

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the POST /api/chat reply.
type ChatResponse struct {
	SessionID string                `json:"session_id"`
	Type      advisor.ResponseType  `json:"type"`
	Text      string                `json:"text,omitempty"`
	Graph     *advisor.GraphPayload `json:"graph,omitempty"`
}

// Handler serves the chat API.
type Handler struct {
	advisor       *advisor.Advisor
	sessions      *advisor.SessionStore
	clientLimiter *ratelimit.KeyedLimiter
	log           *logger.Logger
}

// NewHandler builds the chat handler. clientLimiter may be nil to disable
// per-client throttling.
func NewHandler(adv *advisor.Advisor, sessions *advisor.SessionStore, clientLimiter *ratelimit.KeyedLimiter, log *logger.Logger) *Handler {
	return &Handler{
		advisor:       adv,
		sessions:      sessions,
		clientLimiter: clientLimiter,
		log:           log.WithComponent("webapi"),
	}
}

// Chat handles one question: resolve the session, throttle the client,
// and run the advisor.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	if h.clientLimiter != nil && !h.clientLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "You're sending questions a little too quickly. Please wait a moment and try again.",
		})
		return
	}

	session := h.sessions.GetOrCreate(req.SessionID)
	c.Set("session_id", session.ID())

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.advisor.Ask(ctx, session, req.Message)
	if err != nil {
		h.writeError(c, session.ID(), err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		SessionID: session.ID(),
		Type:      resp.Type,
		Text:      resp.Text,
		Graph:     resp.Graph,
	})
}

// writeError maps core errors to status codes. The advisor wraps its
// failures with a user-safe message; raw error text never reaches the
// client.
func (h *Handler) writeError(c *gin.Context, sessionID string, err error) {
	log := h.log.WithSessionID(sessionID).WithError(err)

	switch {
	case errors.Is(err, domerrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": userMessage(err, "Please include a question in your message.")})
	case errors.Is(err, domerrors.ErrRateLimitExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": userMessage(err, "You've asked quite a few questions in a row. Give me a few seconds to catch up."),
		})
	case errors.Is(err, domerrors.ErrContextCanceled):
		// Client went away; nothing useful to write.
		log.Debug("Chat request canceled by client")
		c.AbortWithStatus(http.StatusRequestTimeout)
	case errors.Is(err, domerrors.ErrTimeout):
		log.Warn("Chat request timed out")
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": userMessage(err, "That took longer than expected. Please try asking again in a moment."),
		})
	case errors.Is(err, domerrors.ErrGenerationUnavailable):
		log.Warn("Generation engine unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": userMessage(err, "I'm having trouble thinking right now. Please try again shortly."),
		})
	default:
		log.Error("Chat request failed")
		sentry.CaptureError(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Something went wrong on my end. Please try again.",
		})
	}
}

// userMessage extracts the user-safe message the advisor attached to the
// error, falling back when none is carried.
func userMessage(err error, fallback string) string {
	var wrapped *domerrors.WrappedError
	if errors.As(err, &wrapped) {
		return domerrors.GetUserMessage(wrapped)
	}
	return fallback
}
