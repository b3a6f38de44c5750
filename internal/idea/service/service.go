// Package service provides business logic layer for idea module.
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/idea/model"
	"github.com/festy23/ideawaves/internal/idea/repository"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
	userrepo "github.com/festy23/ideawaves/internal/user/repository"
	"github.com/festy23/ideawaves/pkg/retry"
	"github.com/festy23/ideawaves/pkg/tags"
)

// CompletionMessageFormat is the notification sent to every contributor of a completed idea.
const CompletionMessageFormat = "Mission Accomplished! The project \"%s\" has been marked as completed. " +
	"Your contribution is locked in the archives."

// ImageStore persists uploaded images.
type ImageStore interface {
	Save(ctx context.Context, originalName, contentType string, body io.Reader) (string, error)
}

// RequestLookup resolves the caller's join request for an idea.
type RequestLookup interface {
	FindStatus(ctx context.Context, ideaID, requesterID string) (string, error)
}

// Notifier delivers in-app notifications.
type Notifier interface {
	NotifyMany(ctx context.Context, userIDs []string, message string) error
}

// Service defines the interface for idea business logic operations.
type Service interface {
	// Create stores a new idea owned by ownerID. upload may be nil.
	Create(ctx context.Context, ownerID string, req *model.CreateIdeaRequest, upload *model.Upload) (*model.IdeaResponse, error)

	// List returns all ideas, newest first.
	List(ctx context.Context) ([]model.IdeaResponse, error)

	// Get returns one idea with the caller's request status.
	Get(ctx context.Context, ideaID, callerID string) (*model.IdeaResponse, error)

	// MarkAsCompleted moves an In Progress idea to Completed and notifies its team.
	MarkAsCompleted(ctx context.Context, ideaID, actingUserID string) (*model.IdeaResponse, error)

	// Delete removes the idea with everything attached to it.
	Delete(ctx context.Context, ideaID, actingUserID string) error
}

// Option configures the idea service.
type Option func(*service)

// WithMaxUploadBytes limits the accepted image size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *service) {
		s.maxUploadBytes = n
	}
}

type service struct {
	db             *gorm.DB
	ideas          repository.Repository
	users          userrepo.Repository
	images         ImageStore
	requests       RequestLookup
	notifier       Notifier
	logger         *zap.SugaredLogger
	maxUploadBytes int64
	now            func() time.Time
}

// New creates a new idea service instance.
func New(
	db *gorm.DB,
	ideas repository.Repository,
	users userrepo.Repository,
	images ImageStore,
	requests RequestLookup,
	notifier Notifier,
	logger *zap.SugaredLogger,
	opts ...Option,
) Service {
	s := &service{
		db:             db,
		ideas:          ideas,
		users:          users,
		images:         images,
		requests:       requests,
		notifier:       notifier,
		logger:         logger,
		maxUploadBytes: 5 << 20,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the request, stores the image and inserts the idea while
// counting it for the owner in the same transaction.
func (s *service) Create(
	ctx context.Context,
	ownerID string,
	req *model.CreateIdeaRequest,
	upload *model.Upload,
) (*model.IdeaResponse, error) {
	s.logger.Debugw("Create called", "owner_id", ownerID)

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	category := strings.TrimSpace(req.Category)
	if title == "" || description == "" || category == "" {
		return nil, model.ErrMissingFields
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	image := strings.TrimSpace(req.Image)
	if upload != nil {
		image, err = s.saveImage(ctx, upload)
		if err != nil {
			return nil, err
		}
	}

	contact := strings.TrimSpace(req.ContactEmail)
	if contact == "" {
		contact = owner.Email
	}

	idea := &model.Idea{
		Title:          title,
		Description:    description,
		Category:       category,
		Image:          image,
		RequiredSkills: tags.Normalize(req.RequiredSkills),
		OwnerID:        owner.ID,
		OwnerEmail:     owner.Email,
		ContactEmail:   contact,
		Status:         model.StatusRequested,
	}

	err = retry.Do(ctx, retry.Logged(retry.TransactionConfig(), s.logger, "CreateIdea"), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			idea.ID = ""
			if err := s.ideas.WithTx(tx).Create(ctx, idea); err != nil {
				return err
			}
			return s.users.WithTx(tx).AdjustCreatedCount(ctx, owner.ID, 1)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Create completed", "idea_id", idea.ID, "owner_id", owner.ID)
	ownerSummary := owner.Summary()
	return &model.IdeaResponse{Idea: *idea, Owner: &ownerSummary, Contributors: []usermodel.Summary{}}, nil
}

func (s *service) saveImage(ctx context.Context, upload *model.Upload) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("image storage is not configured")
	}
	if !strings.HasPrefix(upload.ContentType, "image/") || upload.Size > s.maxUploadBytes {
		s.logger.Debugw("Create rejected image", "content_type", upload.ContentType, "size", upload.Size)
		return "", model.ErrInvalidImage
	}

	url, err := s.images.Save(ctx, upload.Filename, upload.ContentType, io.LimitReader(upload.Body, s.maxUploadBytes))
	if err != nil {
		s.logger.Errorw("Create image upload failed", "filename", upload.Filename, "error", err)
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return url, nil
}

// List returns all ideas with owners and teams resolved.
func (s *service) List(ctx context.Context) ([]model.IdeaResponse, error) {
	ideas, err := s.ideas.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, ideas)
}

// Get returns one idea. myRequestStatus is filled for callers other than the owner.
func (s *service) Get(ctx context.Context, ideaID, callerID string) (*model.IdeaResponse, error) {
	idea, err := s.ideas.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolve(ctx, []model.Idea{*idea})
	if err != nil {
		return nil, err
	}
	resp := &resolved[0]

	if callerID != "" && !idea.IsOwner(callerID) && s.requests != nil {
		status, err := s.requests.FindStatus(ctx, ideaID, callerID)
		if err != nil {
			return nil, err
		}
		resp.MyRequestStatus = status
	}
	return resp, nil
}

// MarkAsCompleted completes the idea under a row lock so a concurrent
// approval either lands before completion or fails on the terminal state.
func (s *service) MarkAsCompleted(ctx context.Context, ideaID, actingUserID string) (*model.IdeaResponse, error) {
	s.logger.Debugw("MarkAsCompleted called", "idea_id", ideaID, "acting_user_id", actingUserID)

	var (
		idea         *model.Idea
		contributors []string
	)
	err := retry.Do(ctx, retry.Logged(retry.TransactionConfig(), s.logger, "MarkAsCompleted"), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			ideas := s.ideas.WithTx(tx)

			var err error
			idea, err = ideas.GetForUpdate(ctx, ideaID)
			if err != nil {
				return err
			}
			if !idea.IsOwner(actingUserID) {
				return model.ErrNotOwner
			}
			if idea.Status != model.StatusInProgress {
				return model.ErrNotInProgress
			}

			at := s.now()
			ok, err := ideas.MarkCompleted(ctx, ideaID, at)
			if err != nil {
				return err
			}
			if !ok {
				return model.ErrNotInProgress
			}
			idea.Status = model.StatusCompleted
			idea.CompletedAt = &at

			contributors, err = ideas.ContributorIDs(ctx, ideaID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	if len(contributors) > 0 {
		msg := fmt.Sprintf(CompletionMessageFormat, idea.Title)
		if err := s.notifier.NotifyMany(ctx, contributors, msg); err != nil {
			s.logger.Warnw("Completion notifications failed", "idea_id", ideaID, "error", err)
		}
	}

	s.logger.Infow("MarkAsCompleted completed", "idea_id", ideaID, "contributors", len(contributors))

	resolved, err := s.resolve(ctx, []model.Idea{*idea})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// Delete removes the idea and decrements the owner's counter.
func (s *service) Delete(ctx context.Context, ideaID, actingUserID string) error {
	s.logger.Debugw("Delete called", "idea_id", ideaID, "acting_user_id", actingUserID)

	err := retry.Do(ctx, retry.Logged(retry.TransactionConfig(), s.logger, "DeleteIdea"), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			ideas := s.ideas.WithTx(tx)

			idea, err := ideas.GetForUpdate(ctx, ideaID)
			if err != nil {
				return err
			}
			if !idea.IsOwner(actingUserID) {
				return model.ErrNotOwner
			}
			if err := ideas.Delete(ctx, ideaID); err != nil {
				return err
			}
			return s.users.WithTx(tx).AdjustCreatedCount(ctx, idea.OwnerID, -1)
		})
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Delete completed", "idea_id", ideaID)
	return nil
}

// resolve attaches owner and contributor summaries to each idea.
func (s *service) resolve(ctx context.Context, ideas []model.Idea) ([]model.IdeaResponse, error) {
	ideaIDs := make([]string, 0, len(ideas))
	userIDs := make([]string, 0, len(ideas))
	for i := range ideas {
		ideaIDs = append(ideaIDs, ideas[i].ID)
		userIDs = append(userIDs, ideas[i].OwnerID)
	}

	teams, err := s.ideas.ContributorIDsByIdea(ctx, ideaIDs)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		userIDs = append(userIDs, team...)
	}

	summaries, err := s.users.GetSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]model.IdeaResponse, 0, len(ideas))
	for i := range ideas {
		resp := model.IdeaResponse{Idea: ideas[i], Contributors: []usermodel.Summary{}}
		if owner, ok := summaries[ideas[i].OwnerID]; ok {
			resp.Owner = &owner
		}
		for _, id := range teams[ideas[i].ID] {
			if summary, ok := summaries[id]; ok {
				resp.Contributors = append(resp.Contributors, summary)
			}
		}
		out = append(out, resp)
	}
	return out, nil
}
