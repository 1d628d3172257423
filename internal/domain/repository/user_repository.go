package repository

import (
	"context"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// GetByUsername devuelve (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id, actor string) error
}
