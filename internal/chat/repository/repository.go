// Package repository provides data access layer for chat module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/ideawaves/internal/chat/model"
)

// Repository defines the interface for chat data access operations.
type Repository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) Repository

	// Ensure returns the chat of an idea, creating it when missing.
	Ensure(ctx context.Context, ideaID string) (*model.Chat, error)

	// GetByIdeaID finds the chat of an idea.
	GetByIdeaID(ctx context.Context, ideaID string) (*model.Chat, error)

	// AddParticipant grants access. It reports false when the user already had it.
	AddParticipant(ctx context.Context, chatID, userID string) (bool, error)

	// IsParticipant reports whether the user may read and write the chat.
	IsParticipant(ctx context.Context, chatID, userID string) (bool, error)

	// ParticipantIDs returns the participants in join order.
	ParticipantIDs(ctx context.Context, chatID string) ([]string, error)

	// AppendMessage stores a message and fills its id.
	AppendMessage(ctx context.Context, msg *model.Message) error

	// Messages returns the chat history in append order.
	Messages(ctx context.Context, chatID string) ([]model.Message, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new chat repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, logger: r.logger}
}

// Ensure inserts the chat unless one exists, then reads it back.
// The unique index on idea_id makes concurrent callers converge on one row.
func (r *repository) Ensure(ctx context.Context, ideaID string) (*model.Chat, error) {
	r.logger.Debugw("Ensure called", "idea_id", ideaID)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "idea_id"}}, DoNothing: true}).
		Create(&model.Chat{IdeaID: ideaID})

	if result.Error != nil {
		r.logger.Errorw("Ensure database error", "idea_id", ideaID, "error", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		r.logger.Infow("Chat created", "idea_id", ideaID)
	}

	return r.GetByIdeaID(ctx, ideaID)
}

// GetByIdeaID finds the chat of an idea.
func (r *repository) GetByIdeaID(ctx context.Context, ideaID string) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.WithContext(ctx).
		Where("idea_id = ?", ideaID).
		First(&chat).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrChatNotFound
		}
		r.logger.Errorw("GetByIdeaID database error", "idea_id", ideaID, "error", err)
		return nil, err
	}
	return &chat, nil
}

// AddParticipant grants access.
func (r *repository) AddParticipant(ctx context.Context, chatID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Participant{ChatID: chatID, UserID: userID})

	if result.Error != nil {
		r.logger.Errorw("AddParticipant database error", "chat_id", chatID, "user_id", userID, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsParticipant reports whether the user may access the chat.
func (r *repository) IsParticipant(ctx context.Context, chatID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("IsParticipant database error", "chat_id", chatID, "user_id", userID, "error", err)
		return false, err
	}
	return count > 0, nil
}

// ParticipantIDs returns the participants in join order.
func (r *repository) ParticipantIDs(ctx context.Context, chatID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("chat_id = ?", chatID).
		Order("joined_at ASC").
		Pluck("user_id", &ids).Error

	if err != nil {
		r.logger.Errorw("ParticipantIDs database error", "chat_id", chatID, "error", err)
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// AppendMessage stores a message.
func (r *repository) AppendMessage(ctx context.Context, msg *model.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		r.logger.Errorw("AppendMessage database error", "chat_id", msg.ChatID, "error", err)
		return err
	}
	return nil
}

// Messages returns the chat history in append order.
func (r *repository) Messages(ctx context.Context, chatID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("id ASC").
		Find(&messages).Error

	if err != nil {
		r.logger.Errorw("Messages database error", "chat_id", chatID, "error", err)
		return nil, err
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages, nil
}
