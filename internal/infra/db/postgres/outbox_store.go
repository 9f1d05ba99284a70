package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davicafu/moderlab/internal/outbox"
	"github.com/davicafu/moderlab/internal/shared/infra/persistence"
	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OutboxStorePostgres implementa outbox.Store sobre Postgres (driver pgx).
type OutboxStorePostgres struct {
	db persistence.Executor
}

func NewOutboxStorePostgres(db persistence.Executor) *OutboxStorePostgres {
	return &OutboxStorePostgres{db: db}
}

func (s *OutboxStorePostgres) Insert(ctx context.Context, msg outbox.Message) error {
	// ON CONFLICT DO NOTHING: el message_id es el event_id, así que el
	// reintento de una misma operación no duplica filas.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outbox (message_id, data, event_type, created_at, published)
		 VALUES ($1, $2, $3, $4, false)
		 ON CONFLICT (message_id) DO NOTHING`,
		msg.MessageID, string(msg.Data), msg.EventType, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	return nil
}

func (s *OutboxStorePostgres) FetchPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, data, event_type, created_at
		 FROM outbox
		 WHERE published = false
		 ORDER BY created_at, message_id
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []outbox.Message
	for rows.Next() {
		var msg outbox.Message
		var data string
		if err := rows.Scan(&msg.MessageID, &data, &msg.EventType, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Data = []byte(data)
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (s *OutboxStorePostgres) MarkPublished(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE outbox SET published = true WHERE message_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("outbox message not found: %s", id)
	}
	return nil
}

// InitOutboxPostgres crea la tabla outbox si no existe.
func InitOutboxPostgres(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS outbox (
		message_id UUID PRIMARY KEY,
		data TEXT NOT NULL,
		event_type TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		published BOOLEAN NOT NULL DEFAULT FALSE
	)`)
	return err
}

// Verificación en tiempo de compilación.
var _ outbox.Store = (*OutboxStorePostgres)(nil)
