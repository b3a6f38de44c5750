// Package repository provides data access layer for user module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) Repository

	// Create inserts a user. A duplicate email yields ErrEmailTaken.
	Create(ctx context.Context, user *model.User) error

	// GetByID finds user by id.
	GetByID(ctx context.Context, userID string) (*model.User, error)

	// GetByEmail finds user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Update saves profile fields of an existing user.
	Update(ctx context.Context, user *model.User) error

	// GetSummaries returns public projections keyed by id. Unknown ids are skipped.
	GetSummaries(ctx context.Context, userIDs []string) (map[string]model.Summary, error)

	// AdjustCreatedCount adds delta to ideas_created_count without clamping.
	AdjustCreatedCount(ctx context.Context, userID string, delta int) error

	// IncrementJoinedCount adds one to ideas_joined_count.
	IncrementJoinedCount(ctx context.Context, userID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, logger: r.logger}
}

// Create inserts a user.
func (r *repository) Create(ctx context.Context, user *model.User) error {
	r.logger.Debugw("Create called", "email", user.Email)

	user.Email = normalizeEmail(user.Email)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.Debugw("Create email already taken", "email", user.Email)
			return model.ErrEmailTaken
		}
		r.logger.Errorw("Create database error", "email", user.Email, "error", err)
		return err
	}

	r.logger.Infow("Create completed", "user_id", user.ID)
	return nil
}

// GetByID finds user by id.
func (r *repository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	r.logger.Debugw("GetByID called", "user_id", userID)

	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("GetByID user not found", "user_id", userID)
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByID database error", "user_id", userID, "error", err)
		return nil, err
	}

	return &user, nil
}

// GetByEmail finds user by email.
func (r *repository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByEmail database error", "error", err)
		return nil, err
	}

	return &user, nil
}

// Update saves name, email, password hash and skills.
func (r *repository) Update(ctx context.Context, user *model.User) error {
	r.logger.Debugw("Update called", "user_id", user.ID)

	user.Email = normalizeEmail(user.Email)
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"skills":        user.Skills,
		})

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrEmailTaken
		}
		r.logger.Errorw("Update database error", "user_id", user.ID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrUserNotFound
	}

	r.logger.Infow("Update completed", "user_id", user.ID)
	return nil
}

// GetSummaries returns public projections keyed by id.
func (r *repository) GetSummaries(ctx context.Context, userIDs []string) (map[string]model.Summary, error) {
	summaries := make(map[string]model.Summary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "skills").
		Where("id IN ?", userIDs).
		Find(&users).Error

	if err != nil {
		r.logger.Errorw("GetSummaries database error", "count", len(userIDs), "error", err)
		return nil, err
	}

	for i := range users {
		summaries[users[i].ID] = users[i].Summary()
	}
	return summaries, nil
}

// AdjustCreatedCount adds delta to ideas_created_count.
func (r *repository) AdjustCreatedCount(ctx context.Context, userID string, delta int) error {
	r.logger.Debugw("AdjustCreatedCount called", "user_id", userID, "delta", delta)
	return r.increment(ctx, userID, "ideas_created_count", delta)
}

// IncrementJoinedCount adds one to ideas_joined_count.
func (r *repository) IncrementJoinedCount(ctx context.Context, userID string) error {
	r.logger.Debugw("IncrementJoinedCount called", "user_id", userID)
	return r.increment(ctx, userID, "ideas_joined_count", 1)
}

// increment updates a counter in place so concurrent writers never lose an update.
func (r *repository) increment(ctx context.Context, userID, column string, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))

	if result.Error != nil {
		r.logger.Errorw("Counter update database error", "user_id", userID, "column", column, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
