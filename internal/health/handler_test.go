package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func serve(t *testing.T, h *Handler) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.Check)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestHandler_Check(t *testing.T) {
	logger := zap.NewNop().Sugar()

	t.Run("all dependencies up", func(t *testing.T) {
		db := openSQLite(t)
		defer func() {
			sqlDB, _ := db.DB()
			_ = sqlDB.Close()
		}()

		code, resp := serve(t, New(logger, Database(db)))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "up", resp.Checks["database"])
	})

	t.Run("closed database", func(t *testing.T) {
		db := openSQLite(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		code, resp := serve(t, New(logger, Database(db)))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "down", resp.Checks["database"])
	})

	t.Run("one failing probe marks the service unhealthy", func(t *testing.T) {
		ok := Check{Name: "database", Probe: func(context.Context) error { return nil }}
		down := Check{Name: "realtime", Probe: func(context.Context) error { return errors.New("redis: connection refused") }}

		code, resp := serve(t, New(logger, ok, down))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, map[string]string{"database": "up", "realtime": "down"}, resp.Checks)
	})

	t.Run("no checks", func(t *testing.T) {
		code, resp := serve(t, New(logger))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", resp.Status)
	})

	t.Run("probe receives deadline", func(t *testing.T) {
		var hasDeadline bool
		probe := Check{Name: "x", Probe: func(ctx context.Context) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}}
		serve(t, New(logger, probe))
		assert.True(t, hasDeadline)
	})
}
