// Package repository provides data access layer for notification module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/notification/model"
)

// Repository defines the interface for notification data access operations.
type Repository interface {
	// CreateBatch appends notifications in one statement.
	CreateBatch(ctx context.Context, notifications []model.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Notification, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new notification repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// CreateBatch appends notifications.
func (r *repository) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	r.logger.Debugw("CreateBatch called", "count", len(notifications))

	if err := r.db.WithContext(ctx).Create(&notifications).Error; err != nil {
		r.logger.Errorw("CreateBatch database error", "count", len(notifications), "error", err)
		return err
	}
	return nil
}

// ListByUser returns the user's notifications, newest first.
func (r *repository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notifications).Error

	if err != nil {
		r.logger.Errorw("ListByUser database error", "user_id", userID, "error", err)
		return nil, err
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}
