// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/statistics/handler"
	"github.com/festy23/ideawaves/internal/statistics/repository"
	"github.com/festy23/ideawaves/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	protected.GET("/ideas/leaderboard", h.GetLeaderboard)
	protected.GET("/statistics/ideas", h.GetIdeaStatistics)
}
