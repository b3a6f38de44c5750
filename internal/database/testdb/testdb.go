// Package testdb opens in-memory SQLite databases with the application schema for tests.
package testdb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	chatmodel "github.com/festy23/ideawaves/internal/chat/model"
	"github.com/festy23/ideawaves/internal/database/database"
	ideamodel "github.com/festy23/ideawaves/internal/idea/model"
	notificationmodel "github.com/festy23/ideawaves/internal/notification/model"
	requestmodel "github.com/festy23/ideawaves/internal/request/model"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
)

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&usermodel.User{},
		&ideamodel.Idea{},
		&ideamodel.Contributor{},
		&requestmodel.JoinRequest{},
		&chatmodel.Chat{},
		&chatmodel.Participant{},
		&chatmodel.Message{},
		&notificationmodel.Notification{},
	}
}

// New returns a fresh migrated database closed at the end of the test.
// A single connection keeps the in-memory database alive and serializes
// writers the way row locks do on PostgreSQL.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(Models()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
