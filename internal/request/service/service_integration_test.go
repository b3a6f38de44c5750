//go:build integration

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresDriver "gorm.io/driver/postgres"

	chatrepo "github.com/festy23/ideawaves/internal/chat/repository"
	"github.com/festy23/ideawaves/internal/database/database"
	"github.com/festy23/ideawaves/internal/database/migrate"
	"github.com/festy23/ideawaves/internal/database/testdb"
	idearepo "github.com/festy23/ideawaves/internal/idea/repository"
	notificationrepo "github.com/festy23/ideawaves/internal/notification/repository"
	notificationservice "github.com/festy23/ideawaves/internal/notification/service"
	"github.com/festy23/ideawaves/internal/request/model"
	"github.com/festy23/ideawaves/internal/request/repository"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
	userrepo "github.com/festy23/ideawaves/internal/user/repository"
)

func TestApprove_ConcurrentOnPostgres(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ideawaves"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := database.Open(postgresDriver.Open(connStr))
	require.NoError(t, err)
	require.NoError(t, migrate.MigrateFrom(db, "../../../migrations", logger))

	ideas := idearepo.New(db, logger)
	chats := chatrepo.New(db, logger)
	requests := repository.New(db, logger)
	notifier := notificationservice.New(notificationrepo.New(db, logger), logger)
	svc := New(db, requests, ideas, userrepo.New(db, logger), chats, notifier, logger)

	owner := testdb.CreateUser(t, db, "Alice")
	idea := testdb.CreateIdea(t, db, owner, "Moon base")

	const n = 8
	requesters := make([]*usermodel.User, n)
	reqs := make([]*model.JoinRequest, n)
	for i := range requesters {
		requesters[i] = testdb.CreateUser(t, db, "Member "+string(rune('A'+i)))
		reqs[i], err = svc.Send(ctx, idea.ID, requesters[i].ID)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = svc.Approve(ctx, id, owner.ID)
		}(i, req.ID)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	team, err := ideas.ContributorIDs(ctx, idea.ID)
	require.NoError(t, err)
	assert.Len(t, team, n)

	chat, err := chats.GetByIdeaID(ctx, idea.ID)
	require.NoError(t, err)
	participants, err := chats.ParticipantIDs(ctx, chat.ID)
	require.NoError(t, err)
	assert.Len(t, participants, n+1)

	messages, err := chats.Messages(ctx, chat.ID)
	require.NoError(t, err)
	assert.Len(t, messages, n)
}
