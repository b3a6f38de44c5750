package model

import (
	ideamodel "github.com/festy23/ideawaves/internal/idea/model"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
)

// SendMessageRequest represents POST /api/chat/send.
type SendMessageRequest struct {
	IdeaID string `json:"ideaId" binding:"required,notblank"`
	Text   string `json:"text"   binding:"required,notblank,max=4000"`
}

// ChatView is a chat with participants resolved and the parent idea attached
// so clients can switch to read-only once the idea is completed.
type ChatView struct {
	ID           string              `json:"id"`
	IdeaID       string              `json:"ideaId"`
	Participants []usermodel.Summary `json:"participants"`
	Messages     []Message           `json:"messages"`
	Idea         ideamodel.Ref       `json:"idea"`
	ReadOnly     bool                `json:"readOnly"`
}
