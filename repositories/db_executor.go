package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cockroachdb/errors"
)

// Executor is the query surface shared by the connection pool and open
// transactions.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ExecutorGetter struct {
	pool *pgxpool.Pool
}

func NewExecutorGetter(pool *pgxpool.Pool) ExecutorGetter {
	return ExecutorGetter{pool: pool}
}

func (g ExecutorGetter) GetExecutor() Executor {
	return g.pool
}

// Transaction runs fn inside a transaction, committing on nil return and
// rolling back otherwise.
func (g ExecutorGetter) Transaction(ctx context.Context, fn func(tx Executor) error) error {
	err := pgx.BeginFunc(ctx, g.pool, func(tx pgx.Tx) error {
		return fn(tx)
	})
	if err != nil {
		return errors.Wrap(err, "error executing transaction")
	}
	return nil
}
