// Package handler provides HTTP handlers for join request endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/middleware"
	"github.com/festy23/ideawaves/internal/request/model"
	"github.com/festy23/ideawaves/internal/request/service"
	"github.com/festy23/ideawaves/internal/response"
)

// Response messages of the decision endpoints.
const (
	ApprovedMessage = "Request approved, notification sent, and chat access granted"
	RejectedMessage = "Request rejected"
)

// DecisionResponse is returned by approve and reject.
type DecisionResponse struct {
	Message string             `json:"message"`
	Request *model.JoinRequest `json:"request"`
}

// Handler handles HTTP requests for join request endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new join request handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Send handles POST /api/requests/send.
func (h *Handler) Send(c *gin.Context) {
	var req model.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	created, err := h.service.Send(c.Request.Context(), req.IdeaID, middleware.UserID(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Received handles GET /api/requests/received.
func (h *Handler) Received(c *gin.Context) {
	views, err := h.service.GetReceived(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Sent handles GET /api/requests/sent.
func (h *Handler) Sent(c *gin.Context) {
	views, err := h.service.GetSent(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Approve handles POST /api/requests/approve.
func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve, ApprovedMessage)
}

// Reject handles POST /api/requests/reject.
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject, RejectedMessage)
}

type decision func(ctx context.Context, requestID, actingUserID string) (*model.JoinRequest, error)

func (h *Handler) decide(c *gin.Context, fn decision, message string) {
	var req model.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	decided, err := fn(c.Request.Context(), req.RequestID, middleware.UserID(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, DecisionResponse{Message: message, Request: decided})
}
