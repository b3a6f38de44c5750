// Package handler provides HTTP handlers for idea endpoints.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/idea/model"
	"github.com/festy23/ideawaves/internal/idea/service"
	"github.com/festy23/ideawaves/internal/middleware"
	"github.com/festy23/ideawaves/internal/response"
	"github.com/festy23/ideawaves/pkg/tags"
)

// CompletedMessage is returned when an idea is marked as completed.
const CompletedMessage = "Idea marked as completed"

// Handler handles HTTP requests for idea endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new idea handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /api/ideas. Accepts JSON or multipart/form-data with an image file.
func (h *Handler) Create(c *gin.Context) {
	var (
		req    model.CreateIdeaRequest
		upload *model.Upload
	)

	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.ShouldBind(&req); err != nil {
			response.BindError(c, err)
			return
		}
		req.RequiredSkills = tags.FromForm(c.PostFormArray("requiredSkills"))

		file, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
			req.Image = strings.TrimSpace(c.PostForm("image"))
		case err != nil:
			response.Error(c, "INVALID_REQUEST", "invalid image upload", http.StatusBadRequest)
			return
		default:
			body, err := file.Open()
			if err != nil {
				response.FromError(c, h.logger, err)
				return
			}
			defer body.Close()

			upload = &model.Upload{
				Filename:    file.Filename,
				ContentType: file.Header.Get("Content-Type"),
				Size:        file.Size,
				Body:        body,
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.UserID(c), &req, upload)
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// List handles GET /api/ideas.
func (h *Handler) List(c *gin.Context) {
	ideas, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ideas)
}

// Get handles GET /api/ideas/:id.
func (h *Handler) Get(c *gin.Context) {
	idea, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, idea)
}

// Complete handles PUT /api/ideas/:id/complete.
func (h *Handler) Complete(c *gin.Context) {
	idea, err := h.service.MarkAsCompleted(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.CompleteResponse{Message: CompletedMessage, Idea: *idea})
}

// Delete handles DELETE /api/ideas/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		response.FromError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.MessageResponse{Message: "Idea deleted"})
}
