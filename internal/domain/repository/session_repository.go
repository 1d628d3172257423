package repository

import (
	"context"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para CoworkingSession.
// GetByID devuelve (nil, nil) si la sesión no existe.
// List filtra por status; status vacío lista todas.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.CoworkingSession) error
	GetByID(ctx context.Context, id string) (*entity.CoworkingSession, error)
	List(ctx context.Context, status string) ([]*entity.CoworkingSession, error)
	Update(ctx context.Context, session *entity.CoworkingSession) error
}
