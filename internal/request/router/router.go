// Package router provides join request module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/request/handler"
	"github.com/festy23/ideawaves/internal/request/service"
)

// RegisterRoutes registers join request routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	requests := protected.Group("/requests")
	requests.POST("/send", h.Send)
	requests.GET("/received", h.Received)
	requests.GET("/sent", h.Sent)
	requests.POST("/approve", h.Approve)
	requests.POST("/reject", h.Reject)
}
