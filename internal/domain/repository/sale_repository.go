package repository

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas. Los campos en cero no filtran.
type SaleFilter struct {
	From           *time.Time
	To             *time.Time
	ServiceType    string
	PaymentMethod  string
	IncludeDeleted bool
}

// Matches indica si la venta pasa el filtro.
func (f SaleFilter) Matches(s *entity.Sale) bool {
	if s.IsDeleted && !f.IncludeDeleted {
		return false
	}
	if f.From != nil && s.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && s.CreatedAt.After(*f.To) {
		return false
	}
	if f.ServiceType != "" && s.ServiceType != f.ServiceType {
		return false
	}
	if f.PaymentMethod != "" && s.PaymentMethod != f.PaymentMethod {
		return false
	}
	return true
}

// SaleRepository define el puerto de persistencia para Sale.
// GetByID devuelve (nil, nil) si la venta no existe.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	SoftDelete(ctx context.Context, id, actor string) error
}
