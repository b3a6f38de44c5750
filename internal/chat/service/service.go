// Package service provides business logic layer for chat module.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/chat/model"
	"github.com/festy23/ideawaves/internal/chat/repository"
	ideamodel "github.com/festy23/ideawaves/internal/idea/model"
	idearepo "github.com/festy23/ideawaves/internal/idea/repository"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
	userrepo "github.com/festy23/ideawaves/internal/user/repository"
	"github.com/festy23/ideawaves/pkg/retry"
)

// Service defines the interface for chat business logic operations.
type Service interface {
	// GetChat returns the chat of an idea to one of its participants.
	GetChat(ctx context.Context, ideaID, userID string) (*model.ChatView, error)

	// SendMessage appends a message from a participant while the idea is not completed.
	SendMessage(ctx context.Context, ideaID, senderID, text string) (*model.Message, error)

	// IsParticipant reports whether the user belongs to the chat of the idea.
	IsParticipant(ctx context.Context, ideaID, userID string) (bool, error)
}

type service struct {
	db     *gorm.DB
	chats  repository.Repository
	ideas  idearepo.Repository
	users  userrepo.Repository
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new chat service instance.
func New(
	db *gorm.DB,
	chats repository.Repository,
	ideas idearepo.Repository,
	users userrepo.Repository,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		db:     db,
		chats:  chats,
		ideas:  ideas,
		users:  users,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetChat returns the chat with participants, history and the idea state.
func (s *service) GetChat(ctx context.Context, ideaID, userID string) (*model.ChatView, error) {
	s.logger.Debugw("GetChat called", "idea_id", ideaID, "user_id", userID)

	chat, err := s.chats.GetByIdeaID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	participantIDs, err := s.chats.ParticipantIDs(ctx, chat.ID)
	if err != nil {
		return nil, err
	}
	if !contains(participantIDs, userID) {
		s.logger.Debugw("GetChat access denied", "idea_id", ideaID, "user_id", userID)
		return nil, model.ErrNotParticipant
	}

	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	messages, err := s.chats.Messages(ctx, chat.ID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.users.GetSummaries(ctx, participantIDs)
	if err != nil {
		return nil, err
	}

	view := &model.ChatView{
		ID:           chat.ID,
		IdeaID:       chat.IdeaID,
		Participants: make([]usermodel.Summary, 0, len(participantIDs)),
		Messages:     messages,
		Idea:         idea.Ref(),
		ReadOnly:     idea.Status == ideamodel.StatusCompleted,
	}
	for _, id := range participantIDs {
		if summary, ok := summaries[id]; ok {
			summary.Skills = nil
			view.Participants = append(view.Participants, summary)
		}
	}
	return view, nil
}

// SendMessage appends a message. The idea row is locked so a concurrent
// completion either happens before the check or after the append.
func (s *service) SendMessage(ctx context.Context, ideaID, senderID, text string) (*model.Message, error) {
	s.logger.Debugw("SendMessage called", "idea_id", ideaID, "sender_id", senderID)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyText
	}

	var msg *model.Message
	err := retry.Do(ctx, retry.Logged(retry.TransactionConfig(), s.logger, "SendMessage"), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			chats := s.chats.WithTx(tx)

			chat, err := chats.GetByIdeaID(ctx, ideaID)
			if err != nil {
				return err
			}

			ok, err := chats.IsParticipant(ctx, chat.ID, senderID)
			if err != nil {
				return err
			}
			if !ok {
				return model.ErrNotParticipant
			}

			idea, err := s.ideas.WithTx(tx).GetForUpdate(ctx, ideaID)
			if err != nil {
				return err
			}
			if idea.Status == ideamodel.StatusCompleted {
				return model.ErrChatReadOnly
			}

			sender, err := s.users.WithTx(tx).GetByID(ctx, senderID)
			if err != nil {
				return err
			}

			msg = &model.Message{
				ChatID:     chat.ID,
				SenderID:   senderID,
				SenderName: sender.Name,
				Text:       text,
				SentAt:     s.now(),
			}
			return chats.AppendMessage(ctx, msg)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("SendMessage completed", "idea_id", ideaID, "sender_id", senderID, "message_id", msg.ID)
	return msg, nil
}

// IsParticipant reports whether the user belongs to the chat of the idea.
// A missing chat means nobody is a participant yet.
func (s *service) IsParticipant(ctx context.Context, ideaID, userID string) (bool, error) {
	chat, err := s.chats.GetByIdeaID(ctx, ideaID)
	if err != nil {
		if errors.Is(err, model.ErrChatNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.chats.IsParticipant(ctx, chat.ID, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
