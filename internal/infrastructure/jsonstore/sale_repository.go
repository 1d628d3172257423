package jsonstore

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre el almacén JSON.
type SaleRepo struct {
	store *Store
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{store: store}
}

// Create persiste una venta al final de la colección.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return mutate(ctx, r.store, ColSales, func(records []entity.Sale) ([]entity.Sale, error) {
		return append(records, *sale), nil
	})
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	records, err := view[entity.Sale](ctx, r.store, ColSales)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			s := records[i]
			return &s, nil
		}
	}
	return nil, nil
}

// List lista ventas aplicando el filtro; las borradas quedan fuera salvo
// que el filtro pida incluirlas.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	records, err := view[entity.Sale](ctx, r.store, ColSales)
	if err != nil {
		return nil, err
	}
	var list []*entity.Sale
	for i := range records {
		if !filter.Matches(&records[i]) {
			continue
		}
		s := records[i]
		list = append(list, &s)
	}
	return list, nil
}

// Update reemplaza la venta existente con el mismo ID.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	return mutate(ctx, r.store, ColSales, func(records []entity.Sale) ([]entity.Sale, error) {
		for i := range records {
			if records[i].ID == sale.ID {
				records[i] = *sale
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// SoftDelete marca la venta como borrada con metadatos de baja.
func (r *SaleRepo) SoftDelete(ctx context.Context, id, actor string) error {
	return mutate(ctx, r.store, ColSales, func(records []entity.Sale) ([]entity.Sale, error) {
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
