package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestBringUpToDate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)

	for _, table := range []string{"users", "books", "requests", "borrows", "favorites", "notifications"} {
		var count int
		err := db.NewRaw("SELECT COUNT(*) FROM " + table).Scan(ctx, &count)
		require.NoError(t, err, table)
		assert.Zero(t, count, table)
	}

	// Running again is a no-op.
	group, err = BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, group.ID)
}

func TestRollback(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := BringUpToDate(ctx, db)
	require.NoError(t, err)

	group, err := NewMigrator(db).Rollback(ctx)
	require.NoError(t, err)
	assert.NotZero(t, group.ID)

	var count int
	err = db.NewRaw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'books'").Scan(ctx, &count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
