package model

import (
	ideamodel "github.com/festy23/ideawaves/internal/idea/model"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
)

// SendRequest represents POST /api/requests/send.
type SendRequest struct {
	IdeaID string `json:"ideaId" binding:"required,notblank"`
}

// DecisionRequest represents POST /api/requests/approve and /reject.
type DecisionRequest struct {
	RequestID string `json:"requestId" binding:"required,notblank"`
}

// RequestView is a join request with its idea and counterpart user resolved.
// Received requests carry Requester; sent requests carry Owner.
type RequestView struct {
	JoinRequest
	Idea      *ideamodel.Ref     `json:"idea"`
	Requester *usermodel.Summary `json:"requester,omitempty"`
	Owner     *usermodel.Summary `json:"owner,omitempty"`
}
