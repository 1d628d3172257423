package jsonstore

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository sobre el almacén JSON.
type ExpenseRepo struct {
	store *Store
}

// NewExpenseRepository construye el adaptador de gastos.
func NewExpenseRepository(store *Store) *ExpenseRepo {
	return &ExpenseRepo{store: store}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	return mutate(ctx, r.store, ColExpenses, func(records []entity.Expense) ([]entity.Expense, error) {
		return append(records, *expense), nil
	})
}

// GetByID obtiene un gasto por ID. Devuelve (nil, nil) si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	records, err := view[entity.Expense](ctx, r.store, ColExpenses)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			e := records[i]
			return &e, nil
		}
	}
	return nil, nil
}

// List lista gastos no borrados dentro del rango de fechas (límites opcionales).
func (r *ExpenseRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error) {
	records, err := view[entity.Expense](ctx, r.store, ColExpenses)
	if err != nil {
		return nil, err
	}
	var list []*entity.Expense
	for i := range records {
		e := records[i]
		if e.IsDeleted {
			continue
		}
		if from != nil && e.ExpenseDate.Before(*from) {
			continue
		}
		if to != nil && e.ExpenseDate.After(*to) {
			continue
		}
		list = append(list, &e)
	}
	return list, nil
}

// Update reemplaza el gasto existente con el mismo ID.
func (r *ExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	return mutate(ctx, r.store, ColExpenses, func(records []entity.Expense) ([]entity.Expense, error) {
		for i := range records {
			if records[i].ID == expense.ID {
				records[i] = *expense
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// SoftDelete marca el gasto como borrado con metadatos de baja.
func (r *ExpenseRepo) SoftDelete(ctx context.Context, id, actor string) error {
	return mutate(ctx, r.store, ColExpenses, func(records []entity.Expense) ([]entity.Expense, error) {
		for i := range records {
			if records[i].ID == id {
				now := time.Now()
				records[i].IsDeleted = true
				records[i].DeletedAt = &now
				records[i].DeletedBy = actor
				records[i].UpdatedAt = now
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
