package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/internal/infrastructure/jsonstore"
	"github.com/nubecafe/pos-core/internal/infrastructure/postgres"
	"github.com/nubecafe/pos-core/pkg/config"
	"github.com/nubecafe/pos-core/pkg/logger"
)

// Manager es el punto de entrada único a la persistencia. Se construye una
// sola vez al arrancar el proceso: si hay DATABASE_URL el backend es
// PostgreSQL, si no el almacén de documentos JSON. El backend elegido es
// inmutable durante la vida del proceso y los casos de uso solo ven Repos y Tx,
// nunca el backend concreto.
type Manager struct {
	Repos   *repository.Set
	Tx      repository.TxRunner
	backend string
	pool    *pgxpool.Pool
}

// New construye el manager según la configuración.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (*Manager, error) {
	if cfg.Backend() == config.BackendPostgres {
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("backend", config.BackendPostgres).Msg("almacenamiento inicializado")
		return &Manager{
			Repos:   postgres.NewSet(pool, cfg.Timeout),
			Tx:      postgres.NewTxRunner(pool, cfg.Timeout),
			backend: config.BackendPostgres,
			pool:    pool,
		}, nil
	}

	store, err := jsonstore.NewStore(cfg.DataDir, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	set := jsonstore.NewSet(store)
	log.Info().Str("backend", config.BackendJSON).Str("dir", cfg.DataDir).Msg("almacenamiento inicializado")
	return &Manager{
		Repos:   set,
		Tx:      jsonstore.NewTxRunner(set),
		backend: config.BackendJSON,
	}, nil
}

// Backend devuelve el nombre del backend activo.
func (m *Manager) Backend() string {
	return m.backend
}

// Close libera los recursos del backend.
func (m *Manager) Close() {
	if m.pool != nil {
		m.pool.Close()
	}
}
