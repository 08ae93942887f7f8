package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es el subconjunto de pgx que los adaptadores necesitan. Lo
// satisfacen tanto *pgxpool.Pool como pgx.Tx, de modo que el mismo repositorio
// funcione atado al pool (lecturas sueltas) o a una transacción (motor).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
