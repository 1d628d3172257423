package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea de venta: el precio y el costo se toman del producto.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ClientName    string            `json:"client_name" validate:"required,min=1,max=200"`
	ServiceType   string            `json:"service_type" validate:"required,oneof=cafeteria coworking"`
	Items         []SaleItemRequest `json:"items" validate:"dive"`
	Hours         decimal.Decimal   `json:"hours"`
	HourlyRate    decimal.Decimal   `json:"hourly_rate"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Tip           decimal.Decimal   `json:"tip"`
}

// SaleListRequest filtros de listado de ventas.
type SaleListRequest struct {
	From           string `query:"from"` // RFC 3339 o YYYY-MM-DD
	To             string `query:"to"`
	ServiceType    string `query:"service_type" validate:"omitempty,oneof=cafeteria coworking"`
	PaymentMethod  string `query:"payment_method" validate:"omitempty,oneof=cash card transfer"`
	IncludeDeleted bool   `query:"include_deleted"`
}
