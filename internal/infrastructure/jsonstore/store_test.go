package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/internal/infrastructure/jsonstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*jsonstore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := jsonstore.NewStore(dir, 5*time.Second)
	require.NoError(t, err)
	return store, dir
}

func testProduct(id, name string, qty int) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:            id,
		Name:          name,
		Category:      entity.CategoryCafeteria,
		Quantity:      qty,
		Cost:          decimal.NewFromInt(5),
		Price:         decimal.NewFromInt(25),
		LowStockAlert: entity.DefaultLowStockAlert,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestStore_ColeccionAusenteEsVacia(t *testing.T) {
	store, dir := newStore(t)
	repo := jsonstore.NewProductRepository(store)

	// Sin archivo la colección simplemente está vacía; no es error.
	list, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = os.Stat(filepath.Join(dir, "products.json"))
	assert.True(t, os.IsNotExist(err), "leer no debe crear el archivo")
}

func TestStore_EscrituraAtomicaSinTemporales(t *testing.T) {
	store, dir := newStore(t)
	repo := jsonstore.NewProductRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Latte", 10)))

	// El definitivo existe y no queda ningún archivo temporal.
	_, err := os.Stat(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "no deben quedar temporales tras escribir")
	}
}

func TestStore_PersisteEntreInstancias(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()
	require.NoError(t, jsonstore.NewProductRepository(store).Create(ctx, testProduct("p1", "Latte", 10)))

	// Otra instancia sobre el mismo directorio ve los mismos datos.
	store2, err := jsonstore.NewStore(dir, 5*time.Second)
	require.NoError(t, err)
	got, err := jsonstore.NewProductRepository(store2).GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Latte", got.Name)
	assert.Equal(t, 10, got.Quantity)
}

func TestStore_CreateDuplicado(t *testing.T) {
	store, _ := newStore(t)
	repo := jsonstore.NewProductRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Latte", 10)))
	err := repo.Create(ctx, testProduct("p1", "Otro", 3))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_AdjustStockTruncaEnCero(t *testing.T) {
	store, _ := newStore(t)
	repo := jsonstore.NewProductRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Latte", 3)))

	// Restar más de lo disponible deja cero, nunca negativo.
	got, err := repo.AdjustStock(ctx, "p1", 10, repository.StockSubtract)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	got, err = repo.AdjustStock(ctx, "p1", 7, repository.StockAdd)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	got, err = repo.AdjustStock(ctx, "p1", 4, repository.StockSet)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
}

func TestStore_EscritoresConcurrentes(t *testing.T) {
	store, _ := newStore(t)
	repo := jsonstore.NewProductRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Latte", 0)))

	// Cien incrementos concurrentes de una unidad: el mutex por colección
	// serializa los read-modify-write y no se pierde ninguno.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AdjustStock(ctx, "p1", 1, repository.StockAdd)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 100, got.Quantity)
}

func TestStore_GetByIDInexistente(t *testing.T) {
	store, _ := newStore(t)
	repo := jsonstore.NewProductRepository(store)

	got, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err, "un ID inexistente no es error")
	assert.Nil(t, got)
}

func TestStore_SoftDeleteOcultaDelListado(t *testing.T) {
	store, _ := newStore(t)
	repo := jsonstore.NewProductRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testProduct("p1", "Latte", 5)))
	require.NoError(t, repo.SoftDelete(ctx, "p1", "admin"))

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
	assert.Equal(t, "admin", all[0].DeletedBy)
}
