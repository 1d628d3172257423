package jsonstore

import (
	"context"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre el almacén JSON.
type SessionRepo struct {
	store *Store
}

// NewSessionRepository construye el adaptador de sesiones de coworking.
func NewSessionRepository(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

// Create persiste una sesión al final de la colección.
func (r *SessionRepo) Create(ctx context.Context, session *entity.CoworkingSession) error {
	return mutate(ctx, r.store, ColSessions, func(records []entity.CoworkingSession) ([]entity.CoworkingSession, error) {
		return append(records, *session), nil
	})
}

// GetByID obtiene una sesión por ID. Devuelve (nil, nil) si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.CoworkingSession, error) {
	records, err := view[entity.CoworkingSession](ctx, r.store, ColSessions)
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

// List lista sesiones por status; status vacío lista todas.
func (r *SessionRepo) List(ctx context.Context, status string) ([]*entity.CoworkingSession, error) {
	records, err := view[entity.CoworkingSession](ctx, r.store, ColSessions)
	if err != nil {
		return nil, err
	}
	var list []*entity.CoworkingSession
	for i := range records {
		if status != "" && records[i].Status != status {
			continue
		}
		s := records[i]
		list = append(list, &s)
	}
	return list, nil
}

// Update reemplaza la sesión existente con el mismo ID.
func (r *SessionRepo) Update(ctx context.Context, session *entity.CoworkingSession) error {
	return mutate(ctx, r.store, ColSessions, func(records []entity.CoworkingSession) ([]entity.CoworkingSession, error) {
		for i := range records {
			if records[i].ID == session.ID {
				records[i] = *session
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
