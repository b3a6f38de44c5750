package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/ideawaves/internal/notification/model"
	"github.com/festy23/ideawaves/internal/notification/repository"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateBatch(ctx context.Context, notifications []model.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *mockRepository) ListByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

var _ repository.Repository = (*mockRepository)(nil)

func TestService_NotifyMany(t *testing.T) {
	ctx := context.Background()

	t.Run("deduplicates recipients", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("CreateBatch", ctx, []model.Notification{
			{UserID: "u1", Message: "done"},
			{UserID: "u2", Message: "done"},
		}).Return(nil)

		svc := New(repo, zap.NewNop().Sugar())
		require.NoError(t, svc.NotifyMany(ctx, []string{"u1", "", "u2", "u1"}, "done"))

		repo.AssertExpectations(t)
	})

	t.Run("blank message", func(t *testing.T) {
		repo := new(mockRepository)
		svc := New(repo, zap.NewNop().Sugar())

		err := svc.NotifyMany(ctx, []string{"u1"}, "   ")

		assert.ErrorIs(t, err, model.ErrEmptyMessage)
		repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("CreateBatch", ctx, mock.Anything).Return(errors.New("db down"))
		svc := New(repo, zap.NewNop().Sugar())

		assert.EqualError(t, svc.Notify(ctx, "u1", "hello"), "db down")
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	expected := []model.Notification{{ID: 2, UserID: "u1", Message: "b"}, {ID: 1, UserID: "u1", Message: "a"}}
	repo.On("ListByUser", ctx, "u1").Return(expected, nil)

	list, err := New(repo, zap.NewNop().Sugar()).List(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, expected, list)
}
