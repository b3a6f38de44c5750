package model

import (
	"io"

	usermodel "github.com/festy23/ideawaves/internal/user/model"
	"github.com/festy23/ideawaves/pkg/tags"
)

// CreateIdeaRequest represents the JSON payload for creating an idea.
// Multipart requests are decoded into the same structure by the handler.
type CreateIdeaRequest struct {
	Title          string    `json:"title"          form:"title"        binding:"required,notblank,max=255"`
	Description    string    `json:"description"    form:"description"  binding:"required,notblank"`
	Category       string    `json:"category"       form:"category"     binding:"required,notblank,max=100"`
	RequiredSkills tags.List `json:"requiredSkills" form:"-"`
	ContactEmail   string    `json:"contactEmail"   form:"contactEmail" binding:"omitempty,email"`
	Image          string    `json:"image"          form:"-"`
}

// Upload is an image attached to a create request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// IdeaResponse is an idea with its owner and team resolved.
type IdeaResponse struct {
	Idea
	Owner           *usermodel.Summary  `json:"owner,omitempty"`
	Contributors    []usermodel.Summary `json:"contributors"`
	MyRequestStatus string              `json:"myRequestStatus,omitempty"`
}

// CompleteResponse is returned when an idea is marked as completed.
type CompleteResponse struct {
	Message string       `json:"message"`
	Idea    IdeaResponse `json:"idea"`
}
