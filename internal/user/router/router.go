// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/user/handler"
	"github.com/festy23/ideawaves/internal/user/service"
)

// RegisterRoutes registers the public auth routes on public and the profile routes on protected.
func RegisterRoutes(public, protected *gin.RouterGroup, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	auth := public.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	me := protected.Group("/auth")
	me.GET("/me", h.Me)
	me.PUT("/profile", h.UpdateProfile)
}
