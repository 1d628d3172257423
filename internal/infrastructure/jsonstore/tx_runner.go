package jsonstore

import (
	"context"

	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner del backend de archivos JSON. El almacén no tiene transacciones
// reales: cada escritura de colección es atómica por sí misma (mutex por
// colección + rename), y la atomicidad de las operaciones multi-entidad la
// garantiza el orden validar-antes-de-mutar de los casos de uso.
type TxRunner struct {
	set *repository.Set
}

// NewTxRunner construye el runner con el conjunto de repositorios del almacén.
func NewTxRunner(set *repository.Set) *TxRunner {
	return &TxRunner{set: set}
}

// Run ejecuta fn con los repositorios del almacén, sin transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(repos *repository.Set) error) error {
	return fn(r.set)
}

// NewSet construye el conjunto completo de repositorios sobre el almacén.
func NewSet(store *Store) *repository.Set {
	return &repository.Set{
		Products:    NewProductRepository(store),
		Sales:       NewSaleRepository(store),
		Sessions:    NewSessionRepository(store),
		Customers:   NewCustomerRepository(store),
		Memberships: NewMembershipRepository(store),
		CashCuts:    NewCashCutRepository(store),
		Expenses:    NewExpenseRepository(store),
		Users:       NewUserRepository(store),
	}
}
