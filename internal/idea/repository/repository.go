// Package repository provides data access layer for idea module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	chatmodel "github.com/festy23/ideawaves/internal/chat/model"
	"github.com/festy23/ideawaves/internal/idea/model"
	requestmodel "github.com/festy23/ideawaves/internal/request/model"
)

// Repository defines the interface for idea data access operations.
type Repository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) Repository

	// Create inserts an idea.
	Create(ctx context.Context, idea *model.Idea) error

	// GetByID finds an idea by id.
	GetByID(ctx context.Context, ideaID string) (*model.Idea, error)

	// GetForUpdate finds an idea and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, ideaID string) (*model.Idea, error)

	// List returns all ideas, newest first.
	List(ctx context.Context) ([]model.Idea, error)

	// GetRefs returns short projections of several ideas keyed by id.
	GetRefs(ctx context.Context, ideaIDs []string) (map[string]model.Ref, error)

	// TransitionStatus moves an idea from one status to another.
	// It reports false when the idea was not in the from status.
	TransitionStatus(ctx context.Context, ideaID, from, to string) (bool, error)

	// MarkCompleted moves an In Progress idea to Completed and stamps completed_at.
	MarkCompleted(ctx context.Context, ideaID string, at time.Time) (bool, error)

	// AddContributor inserts the user into the team. It reports false when already present.
	AddContributor(ctx context.Context, ideaID, userID string) (bool, error)

	// ContributorIDs returns the team of one idea in join order.
	ContributorIDs(ctx context.Context, ideaID string) ([]string, error)

	// ContributorIDsByIdea returns the teams of several ideas keyed by idea id.
	ContributorIDsByIdea(ctx context.Context, ideaIDs []string) (map[string][]string, error)

	// Delete removes the idea with its team, join requests and chat.
	Delete(ctx context.Context, ideaID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new idea repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, logger: r.logger}
}

// Create inserts an idea.
func (r *repository) Create(ctx context.Context, idea *model.Idea) error {
	r.logger.Debugw("Create called", "owner_id", idea.OwnerID, "title", idea.Title)

	if err := r.db.WithContext(ctx).Create(idea).Error; err != nil {
		r.logger.Errorw("Create database error", "owner_id", idea.OwnerID, "error", err)
		return err
	}
	return nil
}

// GetByID finds an idea by id.
func (r *repository) GetByID(ctx context.Context, ideaID string) (*model.Idea, error) {
	return r.get(ctx, r.db.WithContext(ctx), ideaID)
}

// GetForUpdate locks the idea row. SQLite ignores the locking clause and
// serializes writers on its own.
func (r *repository) GetForUpdate(ctx context.Context, ideaID string) (*model.Idea, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ideaID)
}

func (r *repository) get(_ context.Context, q *gorm.DB, ideaID string) (*model.Idea, error) {
	var idea model.Idea
	err := q.Where("id = ?", ideaID).First(&idea).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("GetByID idea not found", "idea_id", ideaID)
			return nil, model.ErrIdeaNotFound
		}
		r.logger.Errorw("GetByID database error", "idea_id", ideaID, "error", err)
		return nil, err
	}
	return &idea, nil
}

// List returns all ideas, newest first.
func (r *repository) List(ctx context.Context) ([]model.Idea, error) {
	var ideas []model.Idea
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ideas).Error

	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}
	if ideas == nil {
		ideas = []model.Idea{}
	}
	return ideas, nil
}

// GetRefs returns short projections of several ideas. Missing ids are skipped.
func (r *repository) GetRefs(ctx context.Context, ideaIDs []string) (map[string]model.Ref, error) {
	refs := make(map[string]model.Ref, len(ideaIDs))
	if len(ideaIDs) == 0 {
		return refs, nil
	}

	var ideas []model.Idea
	err := r.db.WithContext(ctx).
		Select("id", "title", "status").
		Where("id IN ?", ideaIDs).
		Find(&ideas).Error

	if err != nil {
		r.logger.Errorw("GetRefs database error", "count", len(ideaIDs), "error", err)
		return nil, err
	}
	for i := range ideas {
		refs[ideas[i].ID] = ideas[i].Ref()
	}
	return refs, nil
}

// TransitionStatus performs a compare-and-set on the status column.
func (r *repository) TransitionStatus(ctx context.Context, ideaID, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Idea{}).
		Where("id = ? AND status = ?", ideaID, from).
		Update("status", to)

	if result.Error != nil {
		r.logger.Errorw("TransitionStatus database error", "idea_id", ideaID, "to", to, "error", result.Error)
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		r.logger.Infow("Idea status changed", "idea_id", ideaID, "from", from, "to", to)
	}
	return result.RowsAffected > 0, nil
}

// MarkCompleted moves an In Progress idea to Completed.
func (r *repository) MarkCompleted(ctx context.Context, ideaID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Idea{}).
		Where("id = ? AND status = ?", ideaID, model.StatusInProgress).
		Updates(map[string]interface{}{
			"status":       model.StatusCompleted,
			"completed_at": at,
		})

	if result.Error != nil {
		r.logger.Errorw("MarkCompleted database error", "idea_id", ideaID, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddContributor inserts the user into the team.
func (r *repository) AddContributor(ctx context.Context, ideaID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Contributor{IdeaID: ideaID, UserID: userID})

	if result.Error != nil {
		r.logger.Errorw("AddContributor database error", "idea_id", ideaID, "user_id", userID, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ContributorIDs returns the team of one idea.
func (r *repository) ContributorIDs(ctx context.Context, ideaID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Contributor{}).
		Where("idea_id = ?", ideaID).
		Order("joined_at ASC").
		Pluck("user_id", &ids).Error

	if err != nil {
		r.logger.Errorw("ContributorIDs database error", "idea_id", ideaID, "error", err)
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ContributorIDsByIdea returns the teams of several ideas.
func (r *repository) ContributorIDsByIdea(ctx context.Context, ideaIDs []string) (map[string][]string, error) {
	teams := make(map[string][]string, len(ideaIDs))
	if len(ideaIDs) == 0 {
		return teams, nil
	}

	var rows []model.Contributor
	err := r.db.WithContext(ctx).
		Where("idea_id IN ?", ideaIDs).
		Order("joined_at ASC").
		Find(&rows).Error

	if err != nil {
		r.logger.Errorw("ContributorIDsByIdea database error", "count", len(ideaIDs), "error", err)
		return nil, err
	}
	for _, row := range rows {
		teams[row.IdeaID] = append(teams[row.IdeaID], row.UserID)
	}
	return teams, nil
}

// Delete removes the idea and everything that hangs off it. Dependents are
// removed explicitly so the result does not depend on foreign key enforcement.
func (r *repository) Delete(ctx context.Context, ideaID string) error {
	r.logger.Infow("Delete called", "idea_id", ideaID)

	db := r.db.WithContext(ctx)
	chatIDs := db.Model(&chatmodel.Chat{}).Select("id").Where("idea_id = ?", ideaID)

	steps := []struct {
		name string
		run  func() error
	}{
		{"chat messages", func() error {
			return db.Where("chat_id IN (?)", chatIDs).Delete(&chatmodel.Message{}).Error
		}},
		{"chat participants", func() error {
			return db.Where("chat_id IN (?)", chatIDs).Delete(&chatmodel.Participant{}).Error
		}},
		{"chat", func() error {
			return db.Where("idea_id = ?", ideaID).Delete(&chatmodel.Chat{}).Error
		}},
		{"join requests", func() error {
			return db.Where("idea_id = ?", ideaID).Delete(&requestmodel.JoinRequest{}).Error
		}},
		{"contributors", func() error {
			return db.Where("idea_id = ?", ideaID).Delete(&model.Contributor{}).Error
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			r.logger.Errorw("Delete dependents failed", "idea_id", ideaID, "step", step.name, "error", err)
			return err
		}
	}

	result := db.Where("id = ?", ideaID).Delete(&model.Idea{})
	if result.Error != nil {
		r.logger.Errorw("Delete database error", "idea_id", ideaID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrIdeaNotFound
	}

	r.logger.Infow("Delete completed", "idea_id", ideaID)
	return nil
}
