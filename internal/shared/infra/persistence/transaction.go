package persistence

import (
	"context"
	"database/sql"
)

// Executor es lo que comparten *sql.DB y *sql.Tx: los adaptadores se
// construyen sobre él para servir tanto dentro como fuera de una transacción.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Transaction es la unidad con scope de petición: ejecutar, confirmar o
// deshacer. *sql.Tx la satisface directamente.
type Transaction interface {
	Executor
	Commit() error
	Rollback() error
}

// Verificaciones estáticas
var (
	_ Executor    = (*sql.DB)(nil)
	_ Transaction = (*sql.Tx)(nil)
)
