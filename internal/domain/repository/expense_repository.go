package repository

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	SoftDelete(ctx context.Context, id, actor string) error
}
