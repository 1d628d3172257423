package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/nubecafe/pos-core/internal/application/catalog"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/internal/infrastructure/jsonstore"
	"github.com/nubecafe/pos-core/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newEnv(t *testing.T) *catalog.UseCase {
	t.Helper()
	store, err := jsonstore.NewStore(t.TempDir(), 5*time.Second)
	require.NoError(t, err)
	return catalog.NewUseCase(jsonstore.NewSet(store), logger.Nop())
}

func TestCreate_AltaConUmbralPorOmision(t *testing.T) {
	uc := newEnv(t)

	p, err := uc.Create(context.Background(), catalog.CreateInput{
		Name: "Latte", Category: entity.CategoryCafeteria, Quantity: 10,
		Cost: dec("5"), Price: dec("25"),
	})
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, entity.DefaultLowStockAlert, p.LowStockAlert, "sin umbral usa el por omisión")
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   catalog.CreateInput
	}{
		{"sin nombre", catalog.CreateInput{Category: entity.CategoryFood, Price: dec("1")}},
		{"categoría inválida", catalog.CreateInput{Name: "x", Category: "licores", Price: dec("1")}},
		{"cantidad negativa", catalog.CreateInput{Name: "x", Category: entity.CategoryFood, Quantity: -1}},
		{"precio negativo", catalog.CreateInput{Name: "x", Category: entity.CategoryFood, Price: dec("-1")}},
		{"costo negativo", catalog.CreateInput{Name: "x", Category: entity.CategoryFood, Cost: dec("-1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdate_CamposParciales(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, catalog.CreateInput{
		Name: "Latte", Category: entity.CategoryCafeteria, Quantity: 10,
		Cost: dec("5"), Price: dec("25"),
	})
	require.NoError(t, err)

	newPrice := dec("28")
	got, err := uc.Update(ctx, p.ID, catalog.UpdateInput{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(dec("28")))
	assert.Equal(t, "Latte", got.Name, "los campos no enviados no cambian")
	assert.Equal(t, 10, got.Quantity, "el stock no se edita por Update")

	bad := dec("-3")
	_, err = uc.Update(ctx, p.ID, catalog.UpdateInput{Price: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "nope", catalog.UpdateInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_Operaciones(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, catalog.CreateInput{
		Name: "Latte", Category: entity.CategoryCafeteria, Quantity: 10,
		Cost: dec("5"), Price: dec("25"),
	})
	require.NoError(t, err)

	got, err := uc.AdjustStock(ctx, p.ID, 5, repository.StockAdd)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity)

	got, err = uc.AdjustStock(ctx, p.ID, 20, repository.StockSubtract)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity, "restar de más trunca en cero")

	got, err = uc.AdjustStock(ctx, p.ID, 8, repository.StockSet)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)

	_, err = uc.AdjustStock(ctx, p.ID, 1, "multiply")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AdjustStock(ctx, p.ID, -1, repository.StockAdd)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLowStock_UmbralInclusivo(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, catalog.CreateInput{
		Name: "Latte", Category: entity.CategoryCafeteria, Quantity: 5,
		Cost: dec("5"), Price: dec("25"), LowStockAlert: 5,
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, catalog.CreateInput{
		Name: "Agua", Category: entity.CategoryRefrigerator, Quantity: 50,
		Cost: dec("5"), Price: dec("25"), LowStockAlert: 5,
	})
	require.NoError(t, err)

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1, "en el umbral exacto ya es stock bajo")
	assert.Equal(t, "Latte", low[0].Name)
}

func TestDelete_BajaLogica(t *testing.T) {
	uc := newEnv(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, catalog.CreateInput{
		Name: "Latte", Category: entity.CategoryCafeteria, Quantity: 10,
		Cost: dec("5"), Price: dec("25"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID, "admin"))

	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un producto dado de baja no se sirve")

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1, "el registro sobrevive para el historial")
	assert.False(t, all[0].IsActive)

	assert.ErrorIs(t, uc.Delete(ctx, p.ID, "admin"), domain.ErrNotFound)
}
