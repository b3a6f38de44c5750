// Package router provides chat module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/chat/handler"
	"github.com/festy23/ideawaves/internal/chat/service"
)

// RegisterRoutes registers chat routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	chat := protected.Group("/chat")
	chat.POST("/send", h.Send)
	chat.GET("/:ideaId", h.Get)
}
