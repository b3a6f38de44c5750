// Package handler provides HTTP handlers for chat endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/chat/model"
	"github.com/festy23/ideawaves/internal/chat/service"
	"github.com/festy23/ideawaves/internal/middleware"
	"github.com/festy23/ideawaves/internal/response"
)

// Handler handles HTTP requests for chat endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new chat handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Get handles GET /api/chat/:ideaId.
func (h *Handler) Get(c *gin.Context) {
	view, err := h.service.GetChat(c.Request.Context(), c.Param("ideaId"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Send handles POST /api/chat/send.
func (h *Handler) Send(c *gin.Context) {
	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), req.IdeaID, middleware.UserID(c), req.Text)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
