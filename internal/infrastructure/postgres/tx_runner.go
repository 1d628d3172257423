package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL:
// los repositorios entregados a fn quedan atados a la tx y el resultado es
// Commit o Rollback completo.
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, timeout: timeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *repository.Set) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSet(tx, r.timeout)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewSet construye el conjunto completo de repositorios sobre pool o tx.
func NewSet(q Querier, timeout time.Duration) *repository.Set {
	return &repository.Set{
		Products:    NewProductRepository(q, timeout),
		Sales:       NewSaleRepository(q, timeout),
		Sessions:    NewSessionRepository(q, timeout),
		Customers:   NewCustomerRepository(q, timeout),
		Memberships: NewMembershipRepository(q, timeout),
		CashCuts:    NewCashCutRepository(q, timeout),
		Expenses:    NewExpenseRepository(q, timeout),
		Users:       NewUserRepository(q, timeout),
	}
}
