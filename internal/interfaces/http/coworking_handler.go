package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nubecafe/pos-core/internal/application/coworking"
	"github.com/nubecafe/pos-core/internal/application/dto"
)

// CoworkingHandler maneja las peticiones HTTP de sesiones de coworking (protegido).
type CoworkingHandler struct {
	uc *coworking.UseCase
}

// NewCoworkingHandler construye el handler.
func NewCoworkingHandler(uc *coworking.UseCase) *CoworkingHandler {
	return &CoworkingHandler{uc: uc}
}

// Start godoc
// @Summary      Abrir sesión de coworking
// @Tags         coworking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSessionRequest  true  "Datos de la sesión"
// @Success      201   {object}  entity.CoworkingSession
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions [post]
func (h *CoworkingHandler) Start(c *fiber.Ctx) error {
	var in dto.StartSessionRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Start(c.Context(), coworking.StartInput{
		ClientName: in.ClientName,
		HourlyRate: in.HourlyRate,
		CreatedBy:  GetUsername(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sesión con totales en vivo
// @Tags         coworking
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  entity.CoworkingSession
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions/{id} [get]
func (h *CoworkingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sesiones
// @Tags         coworking
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | paused | closed | cancelled"
// @Success      200  {array}  entity.CoworkingSession
// @Router       /api/coworking/sessions [get]
func (h *CoworkingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Pause godoc
// @Summary      Pausar el reloj de una sesión activa
// @Tags         coworking
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  entity.CoworkingSession
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions/{id}/pause [post]
func (h *CoworkingHandler) Pause(c *fiber.Ctx) error {
	out, err := h.uc.Pause(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Resume godoc
// @Summary      Reanudar una sesión pausada
// @Tags         coworking
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  entity.CoworkingSession
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions/{id}/resume [post]
func (h *CoworkingHandler) Resume(c *fiber.Ctx) error {
	out, err := h.uc.Resume(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar consumo a la sesión
// @Tags         coworking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.SessionItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  entity.CoworkingSession
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions/{id}/items [post]
func (h *CoworkingHandler) AddItem(c *fiber.Ctx) error {
	var in dto.SessionItemRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddItem(c.Context(), c.Params("id"), coworking.AddItemInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar consumo de la sesión
// @Tags         coworking
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true   "ID de la sesión"
// @Param        productId  path   string  true   "ID del producto"
// @Param        quantity   query  int     false  "Unidades a quitar"  default(1)
// @Success      200  {object}  entity.CoworkingSession
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions/{id}/items/{productId} [delete]
func (h *CoworkingHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), c.Params("id"), c.Params("productId"), c.QueryInt("quantity", 1))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar sesión y emitir su venta
// @Tags         coworking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sesión"
// @Param        body  body  dto.CloseSessionRequest  true  "Método de pago"
// @Success      200   {object}  entity.CoworkingSession
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions/{id}/close [post]
func (h *CoworkingHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Close(c.Context(), c.Params("id"), in.PaymentMethod, GetUsername(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar sesión sin emitir venta
// @Tags         coworking
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la sesión"
// @Success      200  {object}  entity.CoworkingSession
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/coworking/sessions/{id}/cancel [post]
func (h *CoworkingHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
