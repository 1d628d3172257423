package repository

import "context"

// Set agrupa los repositorios de todas las colecciones. Es lo que el backend
// activo (jsonstore o postgres) entrega al resto de la aplicación: los casos
// de uso dependen solo de este conjunto, nunca del backend concreto.
type Set struct {
	Products    ProductRepository
	Sales       SaleRepository
	Sessions    SessionRepository
	Customers   CustomerRepository
	Memberships MembershipRepository
	CashCuts    CashCutRepository
	Expenses    ExpenseRepository
	Users       UserRepository
}

// TxRunner ejecuta fn con repositorios atados a una unidad de trabajo.
// El backend PostgreSQL la implementa con una transacción real (Commit o
// Rollback); el backend de archivos JSON entrega sus repositorios tal cual y
// la atomicidad se garantiza validando antes de mutar (ver casos de uso).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos *Set) error) error
}
