package billing

import (
	"time"

	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Rules parametriza el cobro de coworking.
type Rules struct {
	DayRate      decimal.Decimal // tarifa plana de día completo
	DayRateAfter decimal.Decimal // umbral de horas a partir del cual aplica DayRate
}

// LineTotals resultado del recorrido de las líneas de una venta.
type LineTotals struct {
	Subtotal   decimal.Decimal // lo que se cobra por productos
	Cost       decimal.Decimal // costo de todas las líneas
	DrinksCost decimal.Decimal // costo de bebidas de cafetería no cobradas (coworking)
}

// SaleTotals recorre las líneas y acumula subtotal y costos según el tipo de
// servicio. En cafetería toda línea suma al subtotal; en coworking solo las de
// refrigerador se cobran: las de cafetería se consumen sin cargo y su costo se
// acumula en DrinksCost para reportes.
func SaleTotals(serviceType string, items []entity.SaleItem) LineTotals {
	var t LineTotals
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		lineCost := it.UnitCost.Mul(qty)
		t.Cost = t.Cost.Add(lineCost)

		if serviceType == entity.ServiceCoworking && it.Category != entity.CategoryRefrigerator {
			if it.Category == entity.CategoryCafeteria {
				t.DrinksCost = t.DrinksCost.Add(lineCost)
			}
			continue
		}
		t.Subtotal = t.Subtotal.Add(it.UnitPrice.Mul(qty))
	}
	return t
}

// TimeCharge calcula el cargo por tiempo de coworking: hourlyRate * hours,
// salvo que hours supere el umbral de día completo, en cuyo caso aplica la
// tarifa plana DayRate sin importar la tarifa horaria.
func TimeCharge(hourlyRate, hours decimal.Decimal, rules Rules) decimal.Decimal {
	if hours.GreaterThan(rules.DayRateAfter) {
		return rules.DayRate
	}
	return hourlyRate.Mul(hours).Round(2)
}

// Finalize fija los campos derivados de la venta a partir de sus líneas,
// cargo por servicio y propina. Total = Subtotal + ServiceCharge + Tip;
// Profit = Total - Cost. Siempre se recalcula, nunca se almacena sin recomputar.
func Finalize(s *entity.Sale) {
	t := SaleTotals(s.ServiceType, s.Items)
	s.Subtotal = t.Subtotal.Round(2)
	s.Cost = t.Cost.Round(2)
	s.DrinksCost = t.DrinksCost.Round(2)
	s.Total = s.Subtotal.Add(s.ServiceCharge).Add(s.Tip).Round(2)
	s.Profit = s.Total.Sub(s.Cost).Round(2)
}

// Umbrales de puntos para cada nivel de lealtad.
var (
	tierSilver   = int64(2000)
	tierGold     = int64(5000)
	tierPlatinum = int64(10000)
)

// TierFor deriva el nivel de lealtad de los puntos acumulados.
// Función pura y monótona: recalcularla sobre los mismos puntos es idempotente.
func TierFor(points int64) string {
	switch {
	case points >= tierPlatinum:
		return entity.TierPlatinum
	case points >= tierGold:
		return entity.TierGold
	case points >= tierSilver:
		return entity.TierSilver
	default:
		return entity.TierBronze
	}
}

// ApplyVisit actualiza los agregados del cliente con una venta:
// visitas, gasto total y promedio, puntos (1 por unidad monetaria, truncado),
// nivel, histogramas por producto y método de pago, y horas de coworking.
func ApplyVisit(c *entity.Customer, s *entity.Sale, now time.Time) {
	c.TotalVisits++
	if c.FirstVisit == nil {
		first := s.CreatedAt
		c.FirstVisit = &first
	}
	last := s.CreatedAt
	c.LastVisit = &last

	c.TotalSpent = c.TotalSpent.Add(s.Total)
	c.AverageSpent = c.TotalSpent.Div(decimal.NewFromInt(int64(c.TotalVisits))).Round(2)

	c.LoyaltyPoints += s.Total.IntPart()
	c.Tier = TierFor(c.LoyaltyPoints)

	if c.ProductStats == nil {
		c.ProductStats = make(map[string]*entity.ProductStat)
	}
	for _, it := range s.Items {
		st, ok := c.ProductStats[it.ProductID]
		if !ok {
			st = &entity.ProductStat{Name: it.Name}
			c.ProductStats[it.ProductID] = st
		}
		st.Quantity += it.Quantity
		st.Spent = st.Spent.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	if c.PaymentStats == nil {
		c.PaymentStats = make(map[string]int)
	}
	c.PaymentStats[s.PaymentMethod]++

	if s.ServiceType == entity.ServiceCoworking {
		c.CoworkingVisits++
		c.CoworkingHours = c.CoworkingHours.Add(s.Hours)
	}

	c.UpdatedAt = now
}
