package jsonstore

import (
	"context"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación de MembershipRepository sobre el almacén JSON.
type MembershipRepo struct {
	store *Store
}

// NewMembershipRepository construye el adaptador de membresías.
func NewMembershipRepository(store *Store) *MembershipRepo {
	return &MembershipRepo{store: store}
}

// Create persiste una membresía.
func (r *MembershipRepo) Create(ctx context.Context, membership *entity.Membership) error {
	return mutate(ctx, r.store, ColMemberships, func(records []entity.Membership) ([]entity.Membership, error) {
		return append(records, *membership), nil
	})
}

// GetByID obtiene una membresía por ID. Devuelve (nil, nil) si no existe.
func (r *MembershipRepo) GetByID(ctx context.Context, id string) (*entity.Membership, error) {
	records, err := view[entity.Membership](ctx, r.store, ColMemberships)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			m := records[i]
			return &m, nil
		}
	}
	return nil, nil
}

// GetActiveByCustomer devuelve la membresía activa vigente del cliente,
// o (nil, nil) si no tiene ninguna.
func (r *MembershipRepo) GetActiveByCustomer(ctx context.Context, customerID string) (*entity.Membership, error) {
	records, err := view[entity.Membership](ctx, r.store, ColMemberships)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range records {
		if records[i].CustomerID == customerID && records[i].ActiveOn(now) {
			m := records[i]
			return &m, nil
		}
	}
	return nil, nil
}

// List lista las membresías no borradas.
func (r *MembershipRepo) List(ctx context.Context) ([]*entity.Membership, error) {
	records, err := view[entity.Membership](ctx, r.store, ColMemberships)
	if err != nil {
		return nil, err
	}
	var list []*entity.Membership
	for i := range records {
		if records[i].IsDeleted {
			continue
		}
		m := records[i]
		list = append(list, &m)
	}
	return list, nil
}

// Update reemplaza la membresía existente con el mismo ID.
func (r *MembershipRepo) Update(ctx context.Context, membership *entity.Membership) error {
	return mutate(ctx, r.store, ColMemberships, func(records []entity.Membership) ([]entity.Membership, error) {
		for i := range records {
			if records[i].ID == membership.ID {
				records[i] = *membership
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// SoftDelete marca la membresía como borrada con metadatos de baja.
func (r *MembershipRepo) SoftDelete(ctx context.Context, id, actor string) error {
	return mutate(ctx, r.store, ColMemberships, func(records []entity.Membership) ([]entity.Membership, error) {
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
