package dto

import "github.com/shopspring/decimal"

// StartSessionRequest entrada para abrir una sesión de coworking.
type StartSessionRequest struct {
	ClientName string          `json:"client_name" validate:"required,min=1,max=200"`
	HourlyRate decimal.Decimal `json:"hourly_rate"` // cero usa la tarifa por omisión
}

// SessionItemRequest consumo para una sesión abierta.
type SessionItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CloseSessionRequest entrada para cerrar una sesión y emitir su venta.
type CloseSessionRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash card transfer"`
}
