package repository

import (
	"context"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// MembershipRepository define el puerto de persistencia para Membership.
// GetActiveByCustomer devuelve la membresía activa vigente del cliente o
// (nil, nil) si no tiene.
type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	GetByID(ctx context.Context, id string) (*entity.Membership, error)
	GetActiveByCustomer(ctx context.Context, customerID string) (*entity.Membership, error)
	List(ctx context.Context) ([]*entity.Membership, error)
	Update(ctx context.Context, membership *entity.Membership) error
	SoftDelete(ctx context.Context, id, actor string) error
}
