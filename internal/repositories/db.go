package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/carevantage/staffing-service/internal/utils"
)

// DB is the subset of pgxpool.Pool the repositories use. Narrowed to an
// interface so tests can substitute fakes.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// mapDBErr normalizes driver errors at the repository boundary. A context
// deadline from the pool must surface as an upstream timeout, never be
// mistaken for a business-rule rejection.
func mapDBErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.ErrUpstreamTimeout
	}
	return err
}
