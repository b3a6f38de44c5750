package model

import "github.com/festy23/ideawaves/pkg/apperror"

var (
	// ErrChatNotFound indicates that no chat exists for the idea yet.
	ErrChatNotFound = apperror.New(apperror.KindNotFound, "NOT_FOUND",
		"chat will be enabled once your request is approved")
	// ErrNotParticipant indicates access by a user outside the idea team.
	ErrNotParticipant = apperror.New(apperror.KindForbidden, "FORBIDDEN",
		"access denied: you are not part of this idea team")
	// ErrChatReadOnly indicates a message to the chat of a completed idea.
	ErrChatReadOnly = apperror.New(apperror.KindInvalidOperation, "CHAT_READ_ONLY",
		"chat is read-only for completed ideas")
	// ErrEmptyText indicates a blank message.
	ErrEmptyText = apperror.Validation("text is required")
)
