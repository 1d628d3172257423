package jsonstore

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.CashCutRepository = (*CashCutRepo)(nil)

// CashCutRepo implementación de CashCutRepository sobre el almacén JSON.
type CashCutRepo struct {
	store *Store
}

// NewCashCutRepository construye el adaptador de cortes de caja.
func NewCashCutRepository(store *Store) *CashCutRepo {
	return &CashCutRepo{store: store}
}

// Create persiste un corte de caja.
func (r *CashCutRepo) Create(ctx context.Context, cut *entity.CashCut) error {
	return mutate(ctx, r.store, ColCashCuts, func(records []entity.CashCut) ([]entity.CashCut, error) {
		return append(records, *cut), nil
	})
}

// GetByID obtiene un corte por ID. Devuelve (nil, nil) si no existe.
func (r *CashCutRepo) GetByID(ctx context.Context, id string) (*entity.CashCut, error) {
	records, err := view[entity.CashCut](ctx, r.store, ColCashCuts)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			c := records[i]
			return &c, nil
		}
	}
	return nil, nil
}

// GetLast devuelve el corte no borrado más reciente, o (nil, nil) si no hay.
func (r *CashCutRepo) GetLast(ctx context.Context) (*entity.CashCut, error) {
	records, err := view[entity.CashCut](ctx, r.store, ColCashCuts)
	if err != nil {
		return nil, err
	}
	var last *entity.CashCut
	for i := range records {
		if records[i].IsDeleted {
			continue
		}
		if last == nil || records[i].PeriodEnd.After(last.PeriodEnd) {
			c := records[i]
			last = &c
		}
	}
	return last, nil
}

// List lista cortes no borrados dentro del rango de fechas (límites opcionales).
func (r *CashCutRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.CashCut, error) {
	records, err := view[entity.CashCut](ctx, r.store, ColCashCuts)
	if err != nil {
		return nil, err
	}
	var list []*entity.CashCut
	for i := range records {
		c := records[i]
		if c.IsDeleted {
			continue
		}
		if from != nil && c.PeriodEnd.Before(*from) {
			continue
		}
		if to != nil && c.PeriodEnd.After(*to) {
			continue
		}
		list = append(list, &c)
	}
	return list, nil
}

// SoftDelete marca el corte como borrado con metadatos de baja.
func (r *CashCutRepo) SoftDelete(ctx context.Context, id, actor string) error {
	return mutate(ctx, r.store, ColCashCuts, func(records []entity.CashCut) ([]entity.CashCut, error) {
		for i := range records {
			if records[i].ID == id {
				now := time.Now()
				records[i].IsDeleted = true
				records[i].DeletedAt = &now
				records[i].DeletedBy = actor
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
