package billing_test

import (
	"testing"
	"time"

	"github.com/nubecafe/pos-core/internal/domain/billing"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var testRules = billing.Rules{
	DayRate:      decimal.NewFromInt(180),
	DayRateAfter: decimal.NewFromInt(4),
}

func TestFinalize_VentaCafeteria(t *testing.T) {
	// Dos cafés de 25 con costo 5 y un sándwich de 10 con costo 5:
	// subtotal 60, costo 15, total 60, ganancia 45.
	s := &entity.Sale{
		ServiceType: entity.ServiceCafeteria,
		Items: []entity.SaleItem{
			{ProductID: "p1", Name: "Latte", Quantity: 2, UnitPrice: dec("25"), UnitCost: dec("5"), Category: entity.CategoryCafeteria},
			{ProductID: "p2", Name: "Sándwich", Quantity: 1, UnitPrice: dec("10"), UnitCost: dec("5"), Category: entity.CategoryFood},
		},
	}
	billing.Finalize(s)

	assert.True(t, s.Subtotal.Equal(dec("60")), "subtotal: %s", s.Subtotal)
	assert.True(t, s.Cost.Equal(dec("15")), "costo: %s", s.Cost)
	assert.True(t, s.Total.Equal(dec("60")), "total: %s", s.Total)
	assert.True(t, s.Profit.Equal(dec("45")), "ganancia: %s", s.Profit)
	assert.True(t, s.DrinksCost.IsZero(), "en cafetería no hay costo de bebidas aparte")
}

func TestFinalize_IdentidadesDeTotales(t *testing.T) {
	// Total = Subtotal + ServiceCharge + Tip y Profit = Total - Cost
	// se cumplen siempre, con propina y cargo por servicio incluidos.
	s := &entity.Sale{
		ServiceType:   entity.ServiceCafeteria,
		ServiceCharge: dec("12.50"),
		Tip:           dec("7.25"),
		Items: []entity.SaleItem{
			{ProductID: "p1", Quantity: 3, UnitPrice: dec("33.33"), UnitCost: dec("11.11"), Category: entity.CategoryFood},
		},
	}
	billing.Finalize(s)

	assert.True(t, s.Total.Equal(s.Subtotal.Add(s.ServiceCharge).Add(s.Tip)),
		"total debe ser subtotal + cargo + propina")
	assert.True(t, s.Profit.Equal(s.Total.Sub(s.Cost)), "ganancia debe ser total - costo")
}

func TestFinalize_CoworkingSoloCobraRefrigerador(t *testing.T) {
	// En coworking el café de barra no se cobra (su costo va a DrinksCost);
	// la bebida del refrigerador sí. Con cargo por tiempo de 116 (2h x 58):
	// subtotal 25, total 141, costo 10, ganancia 131.
	s := &entity.Sale{
		ServiceType:   entity.ServiceCoworking,
		Hours:         dec("2"),
		ServiceCharge: dec("116"),
		Items: []entity.SaleItem{
			{ProductID: "cafe", Name: "Americano", Quantity: 1, UnitPrice: dec("30"), UnitCost: dec("5"), Category: entity.CategoryCafeteria},
			{ProductID: "agua", Name: "Agua mineral", Quantity: 1, UnitPrice: dec("25"), UnitCost: dec("5"), Category: entity.CategoryRefrigerator},
		},
	}
	billing.Finalize(s)

	assert.True(t, s.Subtotal.Equal(dec("25")), "solo el refrigerador se cobra: %s", s.Subtotal)
	assert.True(t, s.Total.Equal(dec("141")), "total: %s", s.Total)
	assert.True(t, s.Cost.Equal(dec("10")), "el costo cuenta todas las líneas: %s", s.Cost)
	assert.True(t, s.Profit.Equal(dec("131")), "ganancia: %s", s.Profit)
	assert.True(t, s.DrinksCost.Equal(dec("5")), "el costo del café va a DrinksCost: %s", s.DrinksCost)
}

func TestTimeCharge_PorHora(t *testing.T) {
	// Hasta el umbral aplica tarifa horaria.
	got := billing.TimeCharge(dec("58"), dec("2"), testRules)
	assert.True(t, got.Equal(dec("116")), "2h x 58: %s", got)

	got = billing.TimeCharge(dec("58"), dec("4"), testRules)
	assert.True(t, got.Equal(dec("232")), "exactamente 4h sigue siendo por hora: %s", got)
}

func TestTimeCharge_TarifaDeDiaCompleto(t *testing.T) {
	// Más de 4 horas aplica la tarifa plana sin importar la tarifa horaria.
	got := billing.TimeCharge(dec("58"), dec("4.01"), testRules)
	assert.True(t, got.Equal(dec("180")), "4.01h: %s", got)

	got = billing.TimeCharge(dec("100"), dec("8"), testRules)
	assert.True(t, got.Equal(dec("180")), "la tarifa horaria no importa pasado el umbral: %s", got)
}

func TestTierFor_Umbrales(t *testing.T) {
	cases := []struct {
		points int64
		want   string
	}{
		{0, entity.TierBronze},
		{1999, entity.TierBronze},
		{2000, entity.TierSilver},
		{4999, entity.TierSilver},
		{5000, entity.TierGold},
		{9999, entity.TierGold},
		{10000, entity.TierPlatinum},
		{50000, entity.TierPlatinum},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, billing.TierFor(tc.points), "puntos=%d", tc.points)
	}
}

func TestApplyVisit_Agregados(t *testing.T) {
	now := time.Now()
	c := &entity.Customer{ID: "c1", Name: "Ana", Tier: entity.TierBronze}
	s := &entity.Sale{
		ID:            "s1",
		ServiceType:   entity.ServiceCafeteria,
		PaymentMethod: entity.PaymentCash,
		Total:         dec("60.75"),
		CreatedAt:     now,
		Items: []entity.SaleItem{
			{ProductID: "p1", Name: "Latte", Quantity: 2, UnitPrice: dec("25")},
		},
	}

	billing.ApplyVisit(c, s, now)

	assert.Equal(t, 1, c.TotalVisits)
	require.NotNil(t, c.FirstVisit)
	require.NotNil(t, c.LastVisit)
	assert.True(t, c.TotalSpent.Equal(dec("60.75")))
	assert.True(t, c.AverageSpent.Equal(dec("60.75")))
	assert.Equal(t, int64(60), c.LoyaltyPoints, "los puntos se truncan al entero")
	assert.Equal(t, entity.TierBronze, c.Tier)
	assert.Equal(t, 1, c.PaymentStats[entity.PaymentCash])
	require.Contains(t, c.ProductStats, "p1")
	assert.Equal(t, 2, c.ProductStats["p1"].Quantity)
	assert.True(t, c.ProductStats["p1"].Spent.Equal(dec("50")))
}

func TestApplyVisit_PromedioYCoworking(t *testing.T) {
	now := time.Now()
	c := &entity.Customer{ID: "c1", Name: "Ana", Tier: entity.TierBronze}

	first := &entity.Sale{ServiceType: entity.ServiceCafeteria, PaymentMethod: entity.PaymentCard, Total: dec("100"), CreatedAt: now}
	second := &entity.Sale{ServiceType: entity.ServiceCoworking, PaymentMethod: entity.PaymentCash, Total: dec("50"), Hours: dec("2.5"), CreatedAt: now}

	billing.ApplyVisit(c, first, now)
	billing.ApplyVisit(c, second, now)

	assert.Equal(t, 2, c.TotalVisits)
	assert.True(t, c.TotalSpent.Equal(dec("150")))
	assert.True(t, c.AverageSpent.Equal(dec("75")), "promedio: %s", c.AverageSpent)
	assert.Equal(t, 1, c.CoworkingVisits)
	assert.True(t, c.CoworkingHours.Equal(dec("2.5")))
}

func TestApplyVisit_SubeDeNivel(t *testing.T) {
	now := time.Now()
	c := &entity.Customer{ID: "c1", Name: "Ana", Tier: entity.TierBronze, LoyaltyPoints: 1990}
	s := &entity.Sale{ServiceType: entity.ServiceCafeteria, PaymentMethod: entity.PaymentCash, Total: dec("15"), CreatedAt: now}

	billing.ApplyVisit(c, s, now)

	assert.Equal(t, int64(2005), c.LoyaltyPoints)
	assert.Equal(t, entity.TierSilver, c.Tier, "al cruzar 2000 puntos sube a silver")
}
