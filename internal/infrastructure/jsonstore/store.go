package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/nubecafe/pos-core/internal/domain"
)

// Nombres de las colecciones (un archivo JSON por colección).
const (
	ColProducts    = "products"
	ColSales       = "sales"
	ColSessions    = "coworking_sessions"
	ColCustomers   = "customers"
	ColMemberships = "memberships"
	ColCashCuts    = "cashcuts"
	ColExpenses    = "expenses"
	ColUsers       = "users"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store es el almacén de documentos JSON: cada colección vive en
// <dir>/<nombre>.json como un arreglo ordenado de entidades. Toda mutación es
// read-modify-write de la colección completa bajo un mutex por colección
// (disciplina de escritor único); la escritura va a un archivo temporal y se
// renombra para que un fallo a medias nunca corrompa la colección.
//
// Este backend es de un solo proceso: la serialización es por instancia.
type Store struct {
	dir     string
	timeout time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore crea el almacén sobre dir (se crea si no existe).
func NewStore(dir string, timeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: crear directorio de datos: %v", domain.ErrStorage, err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Store{dir: dir, timeout: timeout, locks: make(map[string]*sync.Mutex)}, nil
}

// lock devuelve el mutex de la colección, creándolo si hace falta.
func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// guard acota la operación al timeout del store y traduce la cancelación
// a ErrStorageTimeout.
func (s *Store) guard(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrStorageTimeout
		}
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return nil
}

// readAll lee la colección completa. Una colección ausente no es error:
// devuelve un slice vacío (inicialización perezosa).
func readAll[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("%w: leer %s: %v", domain.ErrStorage, collection, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decodificar %s: %v", domain.ErrStorage, collection, err)
	}
	return records, nil
}

// writeAll reemplaza la colección completa de forma atómica: escribe a un
// archivo temporal en el mismo directorio y lo renombra sobre el definitivo.
// La escritura es síncrona; al volver, los datos están en disco.
func writeAll[T any](ctx context.Context, s *Store, collection string, records []T) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: codificar %s: %v", domain.ErrStorage, collection, err)
	}
	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: escribir %s: %v", domain.ErrStorage, collection, err)
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: reemplazar %s: %v", domain.ErrStorage, collection, err)
	}
	return nil
}

// mutate ejecuta un read-modify-write serializado de la colección.
// fn recibe los registros actuales y devuelve los que deben persistirse;
// si fn devuelve error no se escribe nada.
func mutate[T any](ctx context.Context, s *Store, collection string, fn func(records []T) ([]T, error)) error {
	ctx, cancel := s.guard(ctx)
	defer cancel()

	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := readAll[T](ctx, s, collection)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return writeAll(ctx, s, collection, next)
}

// view ejecuta una lectura de la colección bajo el timeout del store.
func view[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	ctx, cancel := s.guard(ctx)
	defer cancel()
	return readAll[T](ctx, s, collection)
}
