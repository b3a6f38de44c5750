// Package service provides business logic layer for the join request workflow.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	chatmodel "github.com/festy23/ideawaves/internal/chat/model"
	chatrepo "github.com/festy23/ideawaves/internal/chat/repository"
	ideamodel "github.com/festy23/ideawaves/internal/idea/model"
	idearepo "github.com/festy23/ideawaves/internal/idea/repository"
	"github.com/festy23/ideawaves/internal/request/model"
	"github.com/festy23/ideawaves/internal/request/repository"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
	userrepo "github.com/festy23/ideawaves/internal/user/repository"
	"github.com/festy23/ideawaves/pkg/retry"
)

// Notifier delivers in-app notifications.
type Notifier interface {
	Notify(ctx context.Context, userID, message string) error
}

// Service defines the interface for join request business logic operations.
type Service interface {
	// Send creates a Pending request of requesterID to join the idea.
	Send(ctx context.Context, ideaID, requesterID string) (*model.JoinRequest, error)

	// Approve accepts a Pending request and grants the requester team and chat access.
	Approve(ctx context.Context, requestID, actingUserID string) (*model.JoinRequest, error)

	// Reject declines a Pending request.
	Reject(ctx context.Context, requestID, actingUserID string) (*model.JoinRequest, error)

	// GetReceived returns requests addressed to the owner with ideas and requesters resolved.
	GetReceived(ctx context.Context, ownerID string) ([]model.RequestView, error)

	// GetSent returns requests sent by the user with ideas and owners resolved.
	GetSent(ctx context.Context, requesterID string) ([]model.RequestView, error)

	// FindStatus returns the status of the user's request for the idea, or "" when none exists.
	FindStatus(ctx context.Context, ideaID, requesterID string) (string, error)
}

type service struct {
	db       *gorm.DB
	requests repository.Repository
	ideas    idearepo.Repository
	users    userrepo.Repository
	chats    chatrepo.Repository
	notifier Notifier
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// New creates a new join request service instance.
func New(
	db *gorm.DB,
	requests repository.Repository,
	ideas idearepo.Repository,
	users userrepo.Repository,
	chats chatrepo.Repository,
	notifier Notifier,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		db:       db,
		requests: requests,
		ideas:    ideas,
		users:    users,
		chats:    chats,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Send validates the pair and stores a Pending request. The unique index on
// (idea_id, requester_id) decides between concurrent duplicates.
func (s *service) Send(ctx context.Context, ideaID, requesterID string) (*model.JoinRequest, error) {
	s.logger.Debugw("Send called", "idea_id", ideaID, "requester_id", requesterID)

	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.IsOwner(requesterID) {
		return nil, model.ErrSelfRequest
	}
	if idea.Status == ideamodel.StatusCompleted {
		return nil, ideamodel.ErrIdeaCompleted
	}

	existing, err := s.requests.FindByIdeaAndRequester(ctx, ideaID, requesterID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Debugw("Send request exists", "idea_id", ideaID, "requester_id", requesterID, "status", existing.Status)
		return nil, model.ErrRequestExists
	}

	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	req := &model.JoinRequest{
		IdeaID:      idea.ID,
		RequesterID: requesterID,
		OwnerID:     idea.OwnerID,
		Status:      model.StatusPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, idea.OwnerID, fmt.Sprintf("%s has requested to join your idea: \"%s\"", requester.Name, idea.Title))

	s.logger.Infow("Send completed", "request_id", req.ID, "idea_id", ideaID, "requester_id", requesterID)
	return req, nil
}

// Approve runs the whole grant in one transaction: request status, idea
// status, team membership, joined counter, chat membership and the system
// message either all apply or none do.
func (s *service) Approve(ctx context.Context, requestID, actingUserID string) (*model.JoinRequest, error) {
	s.logger.Debugw("Approve called", "request_id", requestID, "acting_user_id", actingUserID)

	req, err := s.authorize(ctx, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	var title string
	err = retry.Do(ctx, retry.Logged(retry.TransactionConfig(), s.logger, "ApproveRequest"), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txErr error
			title, txErr = s.approveTx(ctx, tx, req)
			return txErr
		})
	})
	if err != nil {
		return nil, err
	}

	req.Status = model.StatusApproved
	s.notify(ctx, req.RequesterID, fmt.Sprintf("Your request to join \"%s\" has been approved!", title))

	s.logger.Infow("Approve completed", "request_id", req.ID, "idea_id", req.IdeaID, "requester_id", req.RequesterID)
	return req, nil
}

func (s *service) approveTx(ctx context.Context, tx *gorm.DB, req *model.JoinRequest) (string, error) {
	requests := s.requests.WithTx(tx)
	ideas := s.ideas.WithTx(tx)
	users := s.users.WithTx(tx)
	chats := s.chats.WithTx(tx)

	ok, err := requests.TransitionStatus(ctx, req.ID, model.StatusPending, model.StatusApproved)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", model.ErrAlreadyDecided
	}

	idea, err := ideas.GetForUpdate(ctx, req.IdeaID)
	if err != nil {
		return "", err
	}
	if idea.Status == ideamodel.StatusCompleted {
		return "", ideamodel.ErrIdeaCompleted
	}
	if idea.Status == ideamodel.StatusRequested {
		if _, err := ideas.TransitionStatus(ctx, idea.ID, ideamodel.StatusRequested, ideamodel.StatusInProgress); err != nil {
			return "", err
		}
	}

	added, err := ideas.AddContributor(ctx, idea.ID, req.RequesterID)
	if err != nil {
		return "", err
	}
	if added {
		if err := users.IncrementJoinedCount(ctx, req.RequesterID); err != nil {
			return "", err
		}
	}

	chat, err := chats.Ensure(ctx, idea.ID)
	if err != nil {
		return "", err
	}
	if _, err := chats.AddParticipant(ctx, chat.ID, idea.OwnerID); err != nil {
		return "", err
	}
	joined, err := chats.AddParticipant(ctx, chat.ID, req.RequesterID)
	if err != nil {
		return "", err
	}
	if joined {
		requester, err := users.GetByID(ctx, req.RequesterID)
		if err != nil {
			return "", err
		}
		msg := &chatmodel.Message{
			ChatID:          chat.ID,
			SenderID:        idea.OwnerID,
			SenderName:      chatmodel.SystemSenderName,
			Text:            fmt.Sprintf("%s has joined the idea!", requester.Name),
			IsSystemMessage: true,
			SentAt:          s.now(),
		}
		if err := chats.AppendMessage(ctx, msg); err != nil {
			return "", err
		}
	}

	return idea.Title, nil
}

// Reject declines a Pending request. Ideas and chats are untouched.
func (s *service) Reject(ctx context.Context, requestID, actingUserID string) (*model.JoinRequest, error) {
	s.logger.Debugw("Reject called", "request_id", requestID, "acting_user_id", actingUserID)

	req, err := s.authorize(ctx, requestID, actingUserID)
	if err != nil {
		return nil, err
	}

	ok, err := s.requests.TransitionStatus(ctx, req.ID, model.StatusPending, model.StatusRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAlreadyDecided
	}
	req.Status = model.StatusRejected

	idea, err := s.ideas.GetByID(ctx, req.IdeaID)
	if err != nil {
		s.logger.Warnw("Reject notification skipped", "request_id", req.ID, "error", err)
	} else {
		s.notify(ctx, req.RequesterID, fmt.Sprintf("Your request to join \"%s\" has been rejected.", idea.Title))
	}

	s.logger.Infow("Reject completed", "request_id", req.ID, "idea_id", req.IdeaID, "requester_id", req.RequesterID)
	return req, nil
}

func (s *service) authorize(ctx context.Context, requestID, actingUserID string) (*model.JoinRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != actingUserID {
		s.logger.Debugw("Decision forbidden", "request_id", requestID, "acting_user_id", actingUserID)
		return nil, model.ErrNotRequestOwner
	}
	return req, nil
}

// GetReceived returns requests addressed to the owner, newest first.
func (s *service) GetReceived(ctx context.Context, ownerID string) ([]model.RequestView, error) {
	reqs, err := s.requests.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, reqs, func(r *model.JoinRequest) string { return r.RequesterID }, func(v *model.RequestView, u *usermodel.Summary) {
		v.Requester = u
	})
}

// GetSent returns requests sent by the user, newest first.
func (s *service) GetSent(ctx context.Context, requesterID string) ([]model.RequestView, error) {
	reqs, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, reqs, func(r *model.JoinRequest) string { return r.OwnerID }, func(v *model.RequestView, u *usermodel.Summary) {
		v.Owner = u
	})
}

func (s *service) views(
	ctx context.Context,
	reqs []model.JoinRequest,
	counterpart func(*model.JoinRequest) string,
	attach func(*model.RequestView, *usermodel.Summary),
) ([]model.RequestView, error) {
	ideaIDs := make([]string, 0, len(reqs))
	userIDs := make([]string, 0, len(reqs))
	for i := range reqs {
		ideaIDs = append(ideaIDs, reqs[i].IdeaID)
		userIDs = append(userIDs, counterpart(&reqs[i]))
	}

	refs, err := s.ideas.GetRefs(ctx, ideaIDs)
	if err != nil {
		return nil, err
	}
	summaries, err := s.users.GetSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]model.RequestView, 0, len(reqs))
	for i := range reqs {
		view := model.RequestView{JoinRequest: reqs[i]}
		if ref, ok := refs[reqs[i].IdeaID]; ok {
			view.Idea = &ref
		}
		if summary, ok := summaries[counterpart(&reqs[i])]; ok {
			attach(&view, &summary)
		}
		views = append(views, view)
	}
	return views, nil
}

// FindStatus returns the status of the user's request for the idea.
func (s *service) FindStatus(ctx context.Context, ideaID, requesterID string) (string, error) {
	req, err := s.requests.FindByIdeaAndRequester(ctx, ideaID, requesterID)
	if err != nil || req == nil {
		return "", err
	}
	return req.Status, nil
}

func (s *service) notify(ctx context.Context, userID, message string) {
	if err := s.notifier.Notify(ctx, userID, message); err != nil {
		s.logger.Warnw("Notification failed", "user_id", userID, "error", err)
	}
}
