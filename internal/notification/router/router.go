// Package router provides notification module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/notification/handler"
	"github.com/festy23/ideawaves/internal/notification/service"
)

// RegisterRoutes registers notification routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	protected.GET("/notifications", h.List)
}
