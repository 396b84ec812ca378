//go:build integration

package circulation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/config"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/database"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/errcodes"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
)

// newPostgresDB starts a PostgreSQL container and returns a migrated handle to
// it, opened the same way the API opens its database.
func newPostgresDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("library"),
		postgres.WithUsername("library"),
		postgres.WithPassword("library"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := config.NewForTest()
	cfg.DatabaseDriver = config.DriverPostgres
	cfg.DatabaseURL = connStr
	cfg.DatabaseConnectRetryCount = 5
	cfg.DatabaseConnectRetryDelay = time.Second

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(ctx, db)
	require.NoError(t, err)

	return db
}

func TestPostgres_LendingCycle(t *testing.T) {
	db := newPostgresDB(t)
	svc := NewService(db)
	ctx := context.Background()
	book := createBook(t, db, "Dune", "Herbert")

	request, err := svc.SubmitRequest(ctx, book.ID, "alice")
	require.NoError(t, err)
	_, err = svc.SubmitRequest(ctx, book.ID, "alice")
	assert.ErrorIs(t, err, errcodes.Conflict("You have already requested this book"))

	_, err = svc.ApproveRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.True(t, retrieveBook(t, db, book.ID).Issued)

	borrowed, err := svc.ListBorrowedBooks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, borrowed, 1)
	assert.Equal(t, book.ID, borrowed[0].Book.ID)

	notification, err := svc.ReturnBook(ctx, book.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, `Please return the book "Dune" by Herbert. The admin has marked it for return.`, notification.Message)
	assert.False(t, retrieveBook(t, db, book.ID).Issued)
	assert.Empty(t, issuedMismatches(t, db))
}

func TestPostgres_ConcurrentApprovalsIssueOnce(t *testing.T) {
	db := newPostgresDB(t)
	svc := NewService(db)
	ctx := context.Background()
	book := createBook(t, db, "Dune", "Herbert")

	const students = 10
	ids := make([]string, 0, students)
	for i := 0; i < students; i++ {
		request, err := svc.SubmitRequest(ctx, book.ID, "student"+string(rune('a'+i)))
		require.NoError(t, err)
		ids = append(ids, request.ID)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	start := make(chan struct{})
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			<-start
			_, err := svc.ApproveRequest(ctx, id)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, errcodes.Conflict("Book is already issued"))
		}(id)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Len(t, openBorrows(t, db, book.ID), 1)
	assert.Empty(t, issuedMismatches(t, db))
}
