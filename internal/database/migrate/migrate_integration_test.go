//go:build integration

package migrate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/festy23/ideawaves/internal/database/database"
)

const migrationsDir = "../../../migrations"

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

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
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(postgresDriver.Open(connStr))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestMigrateFrom_Postgres(t *testing.T) {
	db := startPostgres(t)
	log := zap.NewNop().Sugar()

	require.NoError(t, MigrateFrom(db, migrationsDir, log))
	// a second run is a no-op
	require.NoError(t, MigrateFrom(db, migrationsDir, log))

	for _, table := range []string{
		"users", "ideas", "idea_contributors", "join_requests",
		"chats", "chat_participants", "chat_messages", "notifications",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	t.Run("join request pair is unique", func(t *testing.T) {
		require.NoError(t, db.Exec(`INSERT INTO users (id, name, email, password_hash) VALUES
			('u1', 'Alice', 'alice@example.com', 'x'), ('u2', 'Bob', 'bob@example.com', 'x')`).Error)
		require.NoError(t, db.Exec(`INSERT INTO ideas (id, title, description, category, owner_id, owner_email)
			VALUES ('i1', 'Moon base', 'd', 'Tech', 'u1', 'alice@example.com')`).Error)

		insert := `INSERT INTO join_requests (id, idea_id, requester_id, owner_id) VALUES (?, 'i1', 'u2', 'u1')`
		require.NoError(t, db.Exec(insert, "r1").Error)
		err := db.Exec(insert, "r2").Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("deleting an idea cascades", func(t *testing.T) {
		require.NoError(t, db.Exec(`INSERT INTO idea_contributors (idea_id, user_id) VALUES ('i1', 'u2')`).Error)
		require.NoError(t, db.Exec(`DELETE FROM ideas WHERE id = 'i1'`).Error)

		var remaining int64
		require.NoError(t, db.Table("join_requests").Count(&remaining).Error)
		assert.Zero(t, remaining)
		require.NoError(t, db.Table("idea_contributors").Count(&remaining).Error)
		assert.Zero(t, remaining)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		err := db.Exec(`INSERT INTO ideas (id, title, description, category, owner_id, owner_email, status)
			VALUES ('i2', 't', 'd', 'Tech', 'u1', 'alice@example.com', 'Archived')`).Error
		assert.Error(t, err)
	})

	t.Run("counters may go negative", func(t *testing.T) {
		require.NoError(t, db.Exec(`UPDATE users SET ideas_created_count = ideas_created_count - 1,
			ideas_joined_count = ideas_joined_count - 1 WHERE id = 'u2'`).Error)

		var counters struct {
			IdeasCreatedCount int
			IdeasJoinedCount  int
		}
		require.NoError(t, db.Table("users").Select("ideas_created_count, ideas_joined_count").
			Where("id = ?", "u2").Scan(&counters).Error)
		assert.Equal(t, -1, counters.IdeasCreatedCount)
		assert.Equal(t, -1, counters.IdeasJoinedCount)
	})
}
