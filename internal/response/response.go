// Package response writes the JSON error envelope shared by all handlers.
package response

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/pkg/apperror"
)

// ErrorResponse represents error response structure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the payload of ErrorResponse.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error writes an error response and aborts the chain.
func Error(c *gin.Context, code, message string, status int) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, message string) {
	Error(c, "NOT_FOUND", message, http.StatusNotFound)
}

// Internal writes a 500 response without leaking details.
func Internal(c *gin.Context) {
	Error(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
}

// FromError maps business errors to their status; anything else is logged and answered with 500.
func FromError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	if appErr, ok := apperror.As(err); ok {
		Error(c, appErr.Code, appErr.Message, appErr.HTTPStatus())
		return
	}
	logger.Errorw("Request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	_ = c.Error(err)
	Internal(c)
}

// BindError answers a failed ShouldBind* call with 400 INVALID_REQUEST.
func BindError(c *gin.Context, err error) {
	Error(c, "INVALID_REQUEST", BindMessage(err), http.StatusBadRequest)
}

// BindMessage turns a binding error into a client-facing message naming the failing fields.
func BindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fieldMessage(fe))
		}
		return strings.Join(parts, "; ")
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}
	return "invalid request body"
}

func fieldMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
