package repository

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// CashCutRepository define el puerto de persistencia para CashCut.
// GetLast devuelve el corte más reciente o (nil, nil) si no hay ninguno.
type CashCutRepository interface {
	Create(ctx context.Context, cut *entity.CashCut) error
	GetByID(ctx context.Context, id string) (*entity.CashCut, error)
	GetLast(ctx context.Context) (*entity.CashCut, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.CashCut, error)
	SoftDelete(ctx context.Context, id, actor string) error
}
