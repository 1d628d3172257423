package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nubecafe/pos-core/internal/application/customers"
	"github.com/nubecafe/pos-core/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes y membresías (protegido).
type CustomerHandler struct {
	uc *customers.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Upsert godoc
// @Summary      Crear o actualizar cliente por nombre
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertCustomerRequest  true  "Datos de contacto"
// @Success      200   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Upsert(c.Context(), customers.UpsertInput{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetSummary godoc
// @Summary      Resumen del cliente con su membresía vigente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  customers.Summary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar clientes (nombre, email o teléfono, sin acentos)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Término de búsqueda"
// @Success      200  {array}  entity.Customer
// @Router       /api/customers [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Dar de baja un cliente
// @Tags         customers
// @Security     Bearer
// @Param        id  path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUsername(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SellMembership godoc
// @Summary      Vender membresía de coworking
// @Tags         memberships
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SellMembershipRequest  true  "Membresía"
// @Success      201   {object}  entity.Membership
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/memberships [post]
func (h *CustomerHandler) SellMembership(c *fiber.Ctx) error {
	var in dto.SellMembershipRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SellMembership(c.Context(), customers.SellMembershipInput{
		CustomerID: in.CustomerID,
		Type:       in.Type,
		Price:      in.Price,
		CreatedBy:  GetUsername(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMemberships godoc
// @Summary      Listar membresías
// @Tags         memberships
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Membership
// @Router       /api/memberships [get]
func (h *CustomerHandler) ListMemberships(c *fiber.Ctx) error {
	out, err := h.uc.ListMemberships(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CancelMembership godoc
// @Summary      Cancelar membresía
// @Tags         memberships
// @Security     Bearer
// @Param        id  path  string  true  "ID de la membresía"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/memberships/{id} [delete]
func (h *CustomerHandler) CancelMembership(c *fiber.Ctx) error {
	if err := h.uc.CancelMembership(c.Context(), c.Params("id"), GetUsername(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
