// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetUserEngagement returns the counters of all users in registration order.
	GetUserEngagement(ctx context.Context) ([]model.UserEngagement, error)

	// GetIdeaStatistics returns aggregate counters over all ideas.
	GetIdeaStatistics(ctx context.Context) (*model.IdeaStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetUserEngagement returns the counters of all users, oldest registration first.
func (r *repository) GetUserEngagement(ctx context.Context) ([]model.UserEngagement, error) {
	r.logger.Debugw("GetUserEngagement called")

	var rows []model.UserEngagement

	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, name, email, ideas_created_count, ideas_joined_count, created_at").
		Order("created_at ASC, id ASC").
		Scan(&rows).Error

	if err != nil {
		r.logger.Errorw("GetUserEngagement database error", "error", err)
		return nil, err
	}

	if rows == nil {
		rows = []model.UserEngagement{}
	}

	r.logger.Debugw("GetUserEngagement completed", "count", len(rows))
	return rows, nil
}

// GetIdeaStatistics returns aggregate counters over all ideas.
func (r *repository) GetIdeaStatistics(ctx context.Context) (*model.IdeaStatistics, error) {
	r.logger.Debugw("GetIdeaStatistics called")

	var result struct {
		TotalIdeas          int64   `gorm:"column:total_ideas"`
		RequestedIdeas      int64   `gorm:"column:requested_ideas"`
		InProgressIdeas     int64   `gorm:"column:in_progress_ideas"`
		CompletedIdeas      int64   `gorm:"column:completed_ideas"`
		AverageContributors float64 `gorm:"column:avg_contributors"`
		WithoutContributors int64   `gorm:"column:ideas_0_contributors"`
	}

	err := r.db.WithContext(ctx).
		Table("ideas").
		Select(`
			COUNT(*) as total_ideas,
			COALESCE(SUM(CASE WHEN status = 'Requested' THEN 1 ELSE 0 END), 0) as requested_ideas,
			COALESCE(SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END), 0) as in_progress_ideas,
			COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0) as completed_ideas,
			COALESCE(AVG(COALESCE(contributor_counts.contributor_count, 0)), 0) as avg_contributors,
			COALESCE(SUM(CASE WHEN COALESCE(contributor_counts.contributor_count, 0) = 0 THEN 1 ELSE 0 END), 0) as ideas_0_contributors
		`).
		Joins(`
			LEFT JOIN (
				SELECT idea_id, CAST(COUNT(*) AS REAL) as contributor_count
				FROM idea_contributors
				GROUP BY idea_id
			) contributor_counts ON ideas.id = contributor_counts.idea_id
		`).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetIdeaStatistics database error", "error", err)
		return nil, err
	}

	var pending int64
	err = r.db.WithContext(ctx).
		Table("join_requests").
		Where("status = ?", "Pending").
		Count(&pending).Error

	if err != nil {
		r.logger.Errorw("GetIdeaStatistics pending requests error", "error", err)
		return nil, err
	}

	stats := &model.IdeaStatistics{
		TotalIdeas:                 int(result.TotalIdeas),
		RequestedIdeas:             int(result.RequestedIdeas),
		InProgressIdeas:            int(result.InProgressIdeas),
		CompletedIdeas:             int(result.CompletedIdeas),
		AverageContributorsPerIdea: result.AverageContributors,
		IdeasWithoutContributors:   int(result.WithoutContributors),
		PendingRequests:            int(pending),
	}

	r.logger.Debugw("GetIdeaStatistics completed", "total_ideas", stats.TotalIdeas)
	return stats, nil
}
