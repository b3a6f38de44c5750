package model

import "github.com/festy23/ideawaves/pkg/apperror"

var (
	// ErrIdeaNotFound indicates that the requested idea does not exist.
	ErrIdeaNotFound = apperror.New(apperror.KindNotFound, "NOT_FOUND", "idea not found")
	// ErrNotOwner indicates that only the owner may perform the action.
	ErrNotOwner = apperror.New(apperror.KindForbidden, "FORBIDDEN", "not authorized to modify this idea")
	// ErrNotInProgress indicates a completion attempt on an idea that is not In Progress.
	ErrNotInProgress = apperror.New(apperror.KindInvalidOperation, "INVALID_STATUS",
		"only ideas in progress can be marked as completed")
	// ErrIdeaCompleted indicates a mutation of an idea in its terminal state.
	ErrIdeaCompleted = apperror.New(apperror.KindInvalidOperation, "IDEA_COMPLETED", "idea is already completed")
	// ErrMissingFields indicates that title, description or category is empty.
	ErrMissingFields = apperror.Validation("title, description and category are required")
	// ErrInvalidImage indicates an upload that is not an image or exceeds the size limit.
	ErrInvalidImage = apperror.Validation("image must be a picture no larger than the upload limit")
)
