package dto

import "github.com/shopspring/decimal"

// UpsertCustomerRequest datos de contacto de un cliente.
type UpsertCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

// SellMembershipRequest entrada para vender una membresía de coworking.
type SellMembershipRequest struct {
	CustomerID string          `json:"customer_id" validate:"required"`
	Type       string          `json:"type" validate:"required,oneof=weekly monthly"`
	Price      decimal.Decimal `json:"price"`
}
