package jsonstore

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/pkg/normalize"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre el almacén JSON.
type CustomerRepo struct {
	store *Store
}

// NewCustomerRepository construye el adaptador de clientes.
func NewCustomerRepository(store *Store) *CustomerRepo {
	return &CustomerRepo{store: store}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	return mutate(ctx, r.store, ColCustomers, func(records []entity.Customer) ([]entity.Customer, error) {
		for i := range records {
			if records[i].ID == customer.ID {
				return nil, domain.ErrDuplicate
			}
		}
		return append(records, *customer), nil
	})
}

// GetByID obtiene un cliente por ID. Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	records, err := view[entity.Customer](ctx, r.store, ColCustomers)
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

// GetByName busca un cliente por nombre normalizado (sin acentos ni mayúsculas).
// Devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	records, err := view[entity.Customer](ctx, r.store, ColCustomers)
	if err != nil {
		return nil, err
	}
	want := normalize.Fold(name)
	for i := range records {
		if records[i].IsDeleted {
			continue
		}
		if normalize.Fold(records[i].Name) == want {
			c := records[i]
			return &c, nil
		}
	}
	return nil, nil
}

// List lista los clientes no borrados.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	records, err := view[entity.Customer](ctx, r.store, ColCustomers)
	if err != nil {
		return nil, err
	}
	var list []*entity.Customer
	for i := range records {
		if records[i].IsDeleted {
			continue
		}
		c := records[i]
		list = append(list, &c)
	}
	return list, nil
}

// Search devuelve los clientes cuyo nombre, email o teléfono contiene el término.
func (r *CustomerRepo) Search(ctx context.Context, query string) ([]*entity.Customer, error) {
	records, err := view[entity.Customer](ctx, r.store, ColCustomers)
	if err != nil {
		return nil, err
	}
	var list []*entity.Customer
	for i := range records {
		c := &records[i]
		if c.IsDeleted {
			continue
		}
		if normalize.Contains(c.Name, query) || normalize.Contains(c.Email, query) || normalize.Contains(c.Phone, query) {
			cc := records[i]
			list = append(list, &cc)
		}
	}
	return list, nil
}

// Update reemplaza el cliente existente con el mismo ID.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	return mutate(ctx, r.store, ColCustomers, func(records []entity.Customer) ([]entity.Customer, error) {
		for i := range records {
			if records[i].ID == customer.ID {
				records[i] = *customer
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// SoftDelete marca el cliente como borrado con metadatos de baja.
func (r *CustomerRepo) SoftDelete(ctx context.Context, id, actor string) error {
	return mutate(ctx, r.store, ColCustomers, func(records []entity.Customer) ([]entity.Customer, error) {
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
