package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	jsoniter "github.com/json-iterator/go"
	"github.com/nubecafe/pos-core/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Querier abstrae pool y transacción: los repositorios funcionan igual con
// *pgxpool.Pool que con pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn empaqueta el Querier con el timeout acotado de cada operación.
type conn struct {
	q       Querier
	timeout time.Duration
}

func newConn(q Querier, timeout time.Duration) conn {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return conn{q: q, timeout: timeout}
}

// ctx acota la operación al timeout configurado.
func (c conn) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, c.timeout)
}

// storageErr traduce un error del driver a los errores de dominio:
// deadline agotado -> ErrStorageTimeout; el resto -> ErrStorage.
func storageErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrStorageTimeout, op)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
