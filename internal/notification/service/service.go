// Package service provides business logic layer for notification module.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/notification/model"
	"github.com/festy23/ideawaves/internal/notification/repository"
)

// Service defines the interface for notification operations.
type Service interface {
	// Notify appends one message for a user.
	Notify(ctx context.Context, userID, message string) error

	// NotifyMany appends the same message for every user in userIDs.
	NotifyMany(ctx context.Context, userIDs []string, message string) error

	// List returns the user's notifications, newest first.
	List(ctx context.Context, userID string) ([]model.Notification, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new notification service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// Notify appends one message.
func (s *service) Notify(ctx context.Context, userID, message string) error {
	return s.NotifyMany(ctx, []string{userID}, message)
}

// NotifyMany appends the same message for every distinct user.
func (s *service) NotifyMany(ctx context.Context, userIDs []string, message string) error {
	if strings.TrimSpace(message) == "" {
		return model.ErrEmptyMessage
	}

	seen := make(map[string]struct{}, len(userIDs))
	batch := make([]model.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		batch = append(batch, model.Notification{UserID: id, Message: message})
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return err
	}

	s.logger.Debugw("NotifyMany completed", "recipients", len(batch))
	return nil
}

// List returns the user's notifications.
func (s *service) List(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}
