package jsonstore

import (
	"context"
	"strings"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre el almacén JSON.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste un usuario. El username es único (sin distinguir mayúsculas).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return mutate(ctx, r.store, ColUsers, func(records []entity.User) ([]entity.User, error) {
		for i := range records {
			if strings.EqualFold(records[i].Username, user.Username) {
				return nil, domain.ErrDuplicate
			}
		}
		return append(records, *user), nil
	})
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	records, err := view[entity.User](ctx, r.store, ColUsers)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			u := records[i]
			return &u, nil
		}
	}
	return nil, nil
}

// GetByUsername obtiene un usuario por username. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	records, err := view[entity.User](ctx, r.store, ColUsers)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if strings.EqualFold(records[i].Username, username) {
			u := records[i]
			return &u, nil
		}
	}
	return nil, nil
}

// List lista los usuarios activos.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	records, err := view[entity.User](ctx, r.store, ColUsers)
	if err != nil {
		return nil, err
	}
	var list []*entity.User
	for i := range records {
		if !records[i].IsActive {
			continue
		}
		u := records[i]
		list = append(list, &u)
	}
	return list, nil
}

// Update reemplaza el usuario existente con el mismo ID.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return mutate(ctx, r.store, ColUsers, func(records []entity.User) ([]entity.User, error) {
		for i := range records {
			if records[i].ID == user.ID {
				records[i] = *user
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// SoftDelete desactiva el usuario con metadatos de baja.
func (r *UserRepo) SoftDelete(ctx context.Context, id, actor string) error {
	return mutate(ctx, r.store, ColUsers, func(records []entity.User) ([]entity.User, error) {
		for i := range records {
			if records[i].ID == id {
				now := time.Now()
				records[i].IsActive = false
				records[i].DeletedAt = &now
				records[i].DeletedBy = actor
				records[i].UpdatedAt = now
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
