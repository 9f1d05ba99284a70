package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davicafu/moderlab/internal/outbox"
	"github.com/davicafu/moderlab/internal/shared/infra/persistence"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// OutboxStoreSQLite implementa outbox.Store sobre SQLite. Construido sobre la
// transacción de la petición inserta en el mismo commit que la entidad;
// construido sobre *sql.DB sirve al relay.
type OutboxStoreSQLite struct {
	db persistence.Executor
}

func NewOutboxStoreSQLite(db persistence.Executor) *OutboxStoreSQLite {
	return &OutboxStoreSQLite{db: db}
}

func (s *OutboxStoreSQLite) Insert(ctx context.Context, msg outbox.Message) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outbox (message_id, data, event_type, created_at, published)
		 VALUES (?, ?, ?, ?, 0)`,
		msg.MessageID.String(), string(msg.Data), msg.EventType, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	return nil
}

func (s *OutboxStoreSQLite) FetchPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, data, event_type, created_at
		 FROM outbox
		 WHERE published = 0
		 ORDER BY created_at, message_id
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []outbox.Message
	for rows.Next() {
		var msg outbox.Message
		var idStr, data string

		if err := rows.Scan(&idStr, &data, &msg.EventType, &msg.CreatedAt); err != nil {
			return nil, err
		}

		// El id se guarda como TEXT, lo parseamos de vuelta.
		msg.MessageID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID in outbox row: %w", err)
		}
		msg.Data = []byte(data)

		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (s *OutboxStoreSQLite) MarkPublished(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE outbox SET published = 1 WHERE message_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("outbox message not found: %s", id)
	}
	return nil
}

// InitOutboxSQLite crea la tabla outbox si no existe.
func InitOutboxSQLite(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS outbox (
		message_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		event_type TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		published BOOLEAN NOT NULL DEFAULT 0
	)`)
	return err
}

// Verificación en tiempo de compilación.
var _ outbox.Store = (*OutboxStoreSQLite)(nil)
