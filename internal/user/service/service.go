// Package service provides business logic layer for user module.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/festy23/ideawaves/internal/user/model"
	"github.com/festy23/ideawaves/internal/user/repository"
	"github.com/festy23/ideawaves/pkg/tags"
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, name, email string) (string, error)
}

// Service defines the interface for user business logic operations.
type Service interface {
	// Register creates an account and returns it with a token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a fresh token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// GetProfile returns the caller's profile with counters.
	GetProfile(ctx context.Context, userID string) (*model.ProfileResponse, error)

	// UpdateProfile applies non-empty fields and returns a token carrying the new name and email.
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.AuthResponse, error)
}

type service struct {
	repo       repository.Repository
	tokens     TokenIssuer
	logger     *zap.SugaredLogger
	bcryptCost int
}

// Option customizes the service.
type Option func(*service)

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *service) {
		s.bcryptCost = cost
	}
}

// New creates a new user service instance.
func New(repo repository.Repository, tokens TokenIssuer, logger *zap.SugaredLogger, opts ...Option) Service {
	s := &service{
		repo:       repo,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account.
func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	s.logger.Debugw("Register called", "email", req.Email)

	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, model.ErrMissingFields
	}
	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        req.Email,
		PasswordHash: hash,
		Skills:       datatypes.JSONSlice[string](tags.Normalize(req.Skills)),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("Register completed", "user_id", user.ID)
	return s.authResponse(user)
}

// Login verifies credentials.
func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.logger.Debugw("Login unknown email")
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debugw("Login password mismatch", "user_id", user.ID)
		return nil, model.ErrInvalidCredentials
	}

	s.logger.Infow("Login completed", "user_id", user.ID)
	return s.authResponse(user)
}

// GetProfile returns the caller's profile.
func (s *service) GetProfile(ctx context.Context, userID string) (*model.ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Skills == nil {
		user.Skills = datatypes.JSONSlice[string]{}
	}
	return &model.ProfileResponse{
		User:            *user,
		EngagementScore: user.IdeasCreatedCount + user.IdeasJoinedCount,
	}, nil
}

// UpdateProfile applies non-empty fields.
func (s *service) UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.AuthResponse, error) {
	s.logger.Debugw("UpdateProfile called", "user_id", userID)

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(req.Email); email != "" && !strings.EqualFold(email, user.Email) {
		if _, err := s.repo.GetByEmail(ctx, email); err == nil {
			return nil, model.ErrEmailTaken
		} else if !errors.Is(err, model.ErrUserNotFound) {
			return nil, err
		}
		user.Email = email
	}
	if req.Password != "" {
		if len(req.Password) < model.MinPasswordLength {
			return nil, model.ErrPasswordTooShort
		}
		hash, err := s.hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.Skills != nil {
		user.Skills = datatypes.JSONSlice[string](tags.Normalize(req.Skills))
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("UpdateProfile completed", "user_id", userID)
	return s.authResponse(user)
}

func (s *service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *service) authResponse(user *model.User) (*model.AuthResponse, error) {
	tkn, err := s.tokens.Issue(user.ID, user.Name, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Skills: user.Summary().Skills,
		Token:  tkn,
	}, nil
}
