package persistence

import (
	"context"
	"database/sql"
)

// Executor is satisfied by *sql.DB, *sql.Conn and *sql.Tx so helpers can run
// inside or outside a transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
