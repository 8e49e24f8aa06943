package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equiptrack/internal/domain/status"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("equiptrack.db"))
	assert.False(t, IsPostgres("file::memory:?cache=shared"))
}

func TestBootstrapSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:database_test_%s?mode=memory&cache=shared", t.Name())
	db, err := Connect(dsn, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Bootstrap(ctx, db))
	require.NoError(t, Bootstrap(ctx, db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	var n int64
	require.NoError(t, db.Model(&status.ReservationStatus{}).Count(&n).Error)
	assert.Equal(t, int64(len(status.ReservationNames)), n)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	raw, err := migrations.ReadFile("migrations/" + entries[0].Name())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "-- +goose Up")
	assert.Contains(t, string(raw), "EXCLUDE USING gist")
}
