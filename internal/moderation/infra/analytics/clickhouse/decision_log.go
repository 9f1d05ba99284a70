package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
)

// DecisionRecord es la fila que se inserta en el log analítico de decisiones.
type DecisionRecord struct {
	EventID     uuid.UUID
	TaskID      uuid.UUID
	Decision    string
	ContentType string
	ContentID   uuid.UUID
	DecidedAt   time.Time
}

// DailyDecisionTrend agrega decisiones por día.
type DailyDecisionTrend struct {
	Day           time.Time
	ApprovedCount uint64
	RejectedCount uint64
}

// DecisionAnalyticsRepo escribe el log de decisiones de moderación en
// ClickHouse para consultas analíticas.
type DecisionAnalyticsRepo struct {
	db *sql.DB
}

// NewDecisionAnalyticsRepo es el constructor.
func NewDecisionAnalyticsRepo(addr string, dbName string) (*DecisionAnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}

	return &DecisionAnalyticsRepo{db: conn}, nil
}

// LogBatch inserta un lote de decisiones. ClickHouse funciona mejor con
// inserciones en lotes.
func (r *DecisionAnalyticsRepo) LogBatch(ctx context.Context, records []DecisionRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO moderation_decisions_log (event_id, task_id, decision, content_type, content_id, decided_at, event_time)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	eventTime := time.Now().UTC()
	for _, rec := range records {
		if _, err := stmt.ExecContext(
			ctx,
			rec.EventID,
			rec.TaskID,
			rec.Decision,
			rec.ContentType,
			rec.ContentID,
			rec.DecidedAt,
			eventTime,
		); err != nil {
			// Si un registro falla, hacemos rollback de todo el lote.
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for task %s: %w", rec.TaskID, err)
		}
	}

	return tx.Commit()
}

// GetDailyTrend devuelve el número de aprobaciones y rechazos por día.
func (r *DecisionAnalyticsRepo) GetDailyTrend(ctx context.Context, start, end time.Time) ([]DailyDecisionTrend, error) {
	query := `
		SELECT
			toStartOfDay(decided_at) AS day,
			countIf(decision = 'approved') AS approved,
			countIf(decision = 'rejected') AS rejected
		FROM moderation_decisions_log
		WHERE decided_at BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []DailyDecisionTrend
	for rows.Next() {
		var trend DailyDecisionTrend
		if err := rows.Scan(&trend.Day, &trend.ApprovedCount, &trend.RejectedCount); err != nil {
			return nil, err
		}
		trends = append(trends, trend)
	}
	return trends, rows.Err()
}

// InitSchema crea la tabla en ClickHouse si no existe.
func (r *DecisionAnalyticsRepo) InitSchema() error {
	// Particionada por mes y ordenada por los campos habituales de consulta.
	query := `
		CREATE TABLE IF NOT EXISTS moderation_decisions_log (
			event_id     UUID,
			task_id      UUID,
			decision     String,
			content_type String,
			content_id   UUID,
			decided_at   DateTime64(3),
			event_time   DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(decided_at)
		ORDER BY (content_type, decision, decided_at);
	`
	_, err := r.db.Exec(query)
	return err
}
