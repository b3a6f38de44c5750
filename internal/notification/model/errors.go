package model

import "github.com/festy23/ideawaves/pkg/apperror"

// ErrEmptyMessage indicates an attempt to store a blank notification.
var ErrEmptyMessage = apperror.Validation("notification message is required")
