// Package repository provides data access layer for join request module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/request/model"
)

// Repository defines the interface for join request data access operations.
type Repository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) Repository

	// Create inserts a Pending request. Returns ErrRequestExists for a repeated pair.
	Create(ctx context.Context, req *model.JoinRequest) error

	// GetByID finds a request by id.
	GetByID(ctx context.Context, requestID string) (*model.JoinRequest, error)

	// FindByIdeaAndRequester returns the request of a user for an idea, or nil.
	FindByIdeaAndRequester(ctx context.Context, ideaID, requesterID string) (*model.JoinRequest, error)

	// TransitionStatus moves a request from one status to another.
	// It reports false when the request was not in the from status.
	TransitionStatus(ctx context.Context, requestID, from, to string) (bool, error)

	// ListByOwner returns requests addressed to the owner, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.JoinRequest, error)

	// ListByRequester returns requests sent by the user, newest first.
	ListByRequester(ctx context.Context, requesterID string) ([]model.JoinRequest, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new join request repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, logger: r.logger}
}

// Create inserts a request.
func (r *repository) Create(ctx context.Context, req *model.JoinRequest) error {
	r.logger.Debugw("Create called", "idea_id", req.IdeaID, "requester_id", req.RequesterID)

	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.Debugw("Create request exists", "idea_id", req.IdeaID, "requester_id", req.RequesterID)
			return model.ErrRequestExists
		}
		r.logger.Errorw("Create database error", "idea_id", req.IdeaID, "requester_id", req.RequesterID, "error", err)
		return err
	}
	return nil
}

// GetByID finds a request by id.
func (r *repository) GetByID(ctx context.Context, requestID string) (*model.JoinRequest, error) {
	return r.get(r.db.WithContext(ctx), requestID)
}

func (r *repository) get(q *gorm.DB, requestID string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := q.Where("id = ?", requestID).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("GetByID request not found", "request_id", requestID)
			return nil, model.ErrRequestNotFound
		}
		r.logger.Errorw("GetByID database error", "request_id", requestID, "error", err)
		return nil, err
	}
	return &req, nil
}

// FindByIdeaAndRequester returns nil without error when no request exists.
func (r *repository) FindByIdeaAndRequester(ctx context.Context, ideaID, requesterID string) (*model.JoinRequest, error) {
	var req model.JoinRequest
	err := r.db.WithContext(ctx).
		Where("idea_id = ? AND requester_id = ?", ideaID, requesterID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("FindByIdeaAndRequester database error", "idea_id", ideaID, "requester_id", requesterID, "error", err)
		return nil, err
	}
	return &req, nil
}

// TransitionStatus performs a compare-and-set on the status column.
func (r *repository) TransitionStatus(ctx context.Context, requestID, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.JoinRequest{}).
		Where("id = ? AND status = ?", requestID, from).
		Update("status", to)

	if result.Error != nil {
		r.logger.Errorw("TransitionStatus database error", "request_id", requestID, "to", to, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByOwner returns requests addressed to the owner.
func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]model.JoinRequest, error) {
	return r.list(ctx, "owner_id = ?", ownerID)
}

// ListByRequester returns requests sent by the user.
func (r *repository) ListByRequester(ctx context.Context, requesterID string) ([]model.JoinRequest, error) {
	return r.list(ctx, "requester_id = ?", requesterID)
}

func (r *repository) list(ctx context.Context, cond string, arg string) ([]model.JoinRequest, error) {
	var reqs []model.JoinRequest
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reqs).Error

	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}
	if reqs == nil {
		reqs = []model.JoinRequest{}
	}
	return reqs, nil
}
