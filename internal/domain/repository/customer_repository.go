package repository

import (
	"context"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID y GetByName devuelven (nil, nil) si el cliente no existe.
// GetByName compara sin distinguir mayúsculas ni acentos.
// Search devuelve los clientes cuyo nombre, email o teléfono contiene el
// término, con la misma normalización.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByName(ctx context.Context, name string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	Search(ctx context.Context, query string) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	SoftDelete(ctx context.Context, id, actor string) error
}
