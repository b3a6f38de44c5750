// Package service provides business logic layer for statistics module.
package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/statistics/model"
	"github.com/festy23/ideawaves/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetLeaderboard returns all users ranked by engagement score.
	GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)

	// GetIdeaStatistics returns aggregate counters over all ideas.
	GetIdeaStatistics(ctx context.Context) (*model.IdeaStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetLeaderboard ranks users by ideas created plus ideas joined, highest
// first. Equal scores keep registration order.
func (s *service) GetLeaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	s.logger.Debugw("GetLeaderboard called")

	users, err := s.repo.GetUserEngagement(ctx)
	if err != nil {
		s.logger.Errorw("GetLeaderboard failed", "error", err)
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, model.LeaderboardEntry{
			ID:                u.ID,
			Name:              u.Name,
			Email:             u.Email,
			IdeasCreatedCount: u.IdeasCreatedCount,
			IdeasJoinedCount:  u.IdeasJoinedCount,
			EngagementScore:   u.IdeasCreatedCount + u.IdeasJoinedCount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EngagementScore > entries[j].EngagementScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	s.logger.Infow("GetLeaderboard completed", "count", len(entries))
	return entries, nil
}

// GetIdeaStatistics returns aggregate counters over all ideas.
func (s *service) GetIdeaStatistics(ctx context.Context) (*model.IdeaStatisticsResponse, error) {
	s.logger.Debugw("GetIdeaStatistics called")

	stats, err := s.repo.GetIdeaStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetIdeaStatistics failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetIdeaStatistics completed", "total_ideas", stats.TotalIdeas)
	return &model.IdeaStatisticsResponse{
		Statistics: *stats,
	}, nil
}
