package postgres

import (
	"context"
	"database/sql"
)

// Queryer is the query surface repositories depend on; *sql.DB and *sql.Tx
// both satisfy it.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
