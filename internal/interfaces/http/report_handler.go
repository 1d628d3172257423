package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nubecafe/pos-core/internal/application/dto"
	"github.com/nubecafe/pos-core/internal/application/reports"
	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// CashCutPDFGenerator genera el comprobante imprimible de un corte.
type CashCutPDFGenerator interface {
	Generate(ctx context.Context, cut *entity.CashCut) ([]byte, error)
}

// ReportHandler maneja reportes financieros, cortes de caja y gastos (protegido).
type ReportHandler struct {
	uc  *reports.UseCase
	pdf CashCutPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase, pdf CashCutPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// Financial godoc
// @Summary      Reporte financiero de un rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta"
// @Success      200  {object}  reports.FinancialReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/financial [get]
func (h *ReportHandler) Financial(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	// Un rango por días incluye el día final completo.
	if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	out, err := h.uc.Financial(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateCashCut godoc
// @Summary      Cerrar corte de caja
// @Tags         cashcuts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCashCutRequest  true  "Efectivo contado y notas"
// @Success      201   {object}  entity.CashCut
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cashcuts [post]
func (h *ReportHandler) CreateCashCut(c *fiber.Ctx) error {
	var in dto.CreateCashCutRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateCashCut(c.Context(), reports.CreateCashCutInput{
		CountedCash: in.CountedCash,
		Notes:       in.Notes,
		CreatedBy:   GetUsername(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCashCuts godoc
// @Summary      Listar cortes de caja
// @Tags         cashcuts
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta"
// @Success      200  {array}  entity.CashCut
// @Router       /api/cashcuts [get]
func (h *ReportHandler) ListCashCuts(c *fiber.Ctx) error {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		}
		to = &t
	}
	out, err := h.uc.ListCashCuts(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CashCutPDF godoc
// @Summary      Descargar comprobante PDF de un corte
// @Tags         cashcuts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del corte"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cashcuts/{id}/pdf [get]
func (h *ReportHandler) CashCutPDF(c *fiber.Ctx) error {
	cut, err := h.uc.GetCashCut(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	data, err := h.pdf.Generate(c.Context(), cut)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="corte-`+cut.ID+`.pdf"`)
	return c.Send(data)
}

// CreateExpense godoc
// @Summary      Registrar gasto
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto"
// @Success      201   {object}  entity.Expense
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ReportHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	var date time.Time
	if in.ExpenseDate != "" {
		t, err := parseDate(in.ExpenseDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "expense_date inválida"})
		}
		date = t
	}
	out, err := h.uc.CreateExpense(c.Context(), reports.CreateExpenseInput{
		Description:   in.Description,
		Category:      in.Category,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		ExpenseDate:   date,
		CreatedBy:     GetUsername(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses godoc
// @Summary      Listar gastos
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta"
// @Success      200  {array}  entity.Expense
// @Router       /api/expenses [get]
func (h *ReportHandler) ListExpenses(c *fiber.Ctx) error {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		}
		to = &t
	}
	out, err := h.uc.ListExpenses(c.Context(), from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteExpense godoc
// @Summary      Borrar gasto
// @Tags         expenses
// @Security     Bearer
// @Param        id  path  string  true  "ID del gasto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ReportHandler) DeleteExpense(c *fiber.Ctx) error {
	if err := h.uc.DeleteExpense(c.Context(), c.Params("id"), GetUsername(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
