package model

import (
	"net/http"

	"github.com/festy23/ideawaves/pkg/apperror"
)

var (
	// ErrRequestNotFound indicates that the join request does not exist.
	ErrRequestNotFound = apperror.New(apperror.KindNotFound, "NOT_FOUND", "request not found")
	// ErrSelfRequest indicates an owner asking to join their own idea.
	ErrSelfRequest = apperror.New(apperror.KindInvalidOperation, "SELF_REQUEST",
		"you cannot request to join your own idea")
	// ErrRequestExists indicates a second request for the same idea and requester.
	// The pair is unique forever, also after a rejection.
	ErrRequestExists = apperror.New(apperror.KindConflict, "REQUEST_EXISTS", "join request already sent").
				WithStatus(http.StatusBadRequest)
	// ErrNotRequestOwner indicates a decision by someone other than the idea owner.
	ErrNotRequestOwner = apperror.New(apperror.KindForbidden, "FORBIDDEN", "not authorized to decide this request")
	// ErrAlreadyDecided indicates a decision on a request that is no longer Pending.
	ErrAlreadyDecided = apperror.New(apperror.KindConflict, "REQUEST_ALREADY_DECIDED",
		"request has already been decided")
)
