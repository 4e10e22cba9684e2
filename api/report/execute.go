package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the narrow query surface the reporting layer needs from
// the database. *pgxpool.Pool satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Execute builds, runs and normalizes one metric in a single round
// trip. Validation failures surface as ErrInvalidParameter before any
// SQL runs; query errors are returned as-is for the caller to classify.
func Execute(ctx context.Context, q Querier, kind Kind, opts Options) (any, error) {
	spec, err := Build(kind, opts)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, spec.SQL, spec.Args...)
	if err != nil {
		return nil, fmt.Errorf("metric %s query failed: %w", kind, err)
	}

	res, err := Normalize(spec, rows)
	if err != nil {
		return nil, fmt.Errorf("metric %s normalization failed: %w", kind, err)
	}
	return res, nil
}
