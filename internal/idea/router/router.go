// Package router provides idea module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/idea/handler"
	"github.com/festy23/ideawaves/internal/idea/service"
)

// RegisterRoutes registers idea routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	ideas := protected.Group("/ideas")
	ideas.POST("", h.Create)
	ideas.GET("", h.List)
	ideas.GET("/:id", h.Get)
	ideas.PUT("/:id/complete", h.Complete)
	ideas.DELETE("/:id", h.Delete)
}
