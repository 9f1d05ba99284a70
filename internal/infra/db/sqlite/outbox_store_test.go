package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	outboxSQLite "github.com/davicafu/moderlab/internal/infra/db/sqlite"
	"github.com/davicafu/moderlab/internal/outbox"
)

func newOutboxDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Una sola conexión: cada conexión de ":memory:" abre una base distinta.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, outboxSQLite.InitOutboxSQLite(db))
	return db
}

func TestOutboxStoreSQLite_FetchPendingInInsertionOrder(t *testing.T) {
	// Arrange
	db := newOutboxDB(t)
	store := outboxSQLite.NewOutboxStoreSQLite(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	first := outbox.Message{MessageID: uuid.New(), Data: []byte(`{"n":1}`), EventType: "ModerationStarted", CreatedAt: base}
	second := outbox.Message{MessageID: uuid.New(), Data: []byte(`{"n":2}`), EventType: "AdminReassigned", CreatedAt: base.Add(time.Second)}

	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, second))

	// Act
	pending, err := store.FetchPending(ctx, 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.MessageID, pending[0].MessageID)
	assert.Equal(t, second.MessageID, pending[1].MessageID)
	assert.Equal(t, first.Data, pending[0].Data)
	assert.Equal(t, "ModerationStarted", pending[0].EventType)
}

func TestOutboxStoreSQLite_MarkPublishedRemovesFromPending(t *testing.T) {
	// Arrange
	db := newOutboxDB(t)
	store := outboxSQLite.NewOutboxStoreSQLite(db)
	ctx := context.Background()

	msg := outbox.Message{MessageID: uuid.New(), Data: []byte(`{}`), EventType: "ModerationStarted", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(ctx, msg))

	// Act
	require.NoError(t, store.MarkPublished(ctx, msg.MessageID))

	// Assert
	pending, err := store.FetchPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestOutboxStoreSQLite_MarkPublishedUnknownID(t *testing.T) {
	// Arrange
	db := newOutboxDB(t)
	store := outboxSQLite.NewOutboxStoreSQLite(db)

	// Act
	err := store.MarkPublished(context.Background(), uuid.New())

	// Assert
	assert.Error(t, err)
}

func TestOutboxStoreSQLite_FetchPendingHonorsLimit(t *testing.T) {
	// Arrange
	db := newOutboxDB(t)
	store := outboxSQLite.NewOutboxStoreSQLite(db)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		msg := outbox.Message{
			MessageID: uuid.New(),
			Data:      []byte(`{}`),
			EventType: "ModerationStarted",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.Insert(ctx, msg))
	}

	// Act
	pending, err := store.FetchPending(ctx, 3)

	// Assert
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}
