package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oficinapro/oficina-api/internal/application/budget"
	"github.com/oficinapro/oficina-api/internal/application/dto"
)

// BudgetHandler trata o ciclo de vida do orçamento (protegido).
type BudgetHandler struct {
	uc *budget.UseCase
}

// NewBudgetHandler constrói o handler.
func NewBudgetHandler(uc *budget.UseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

// Create godoc
// @Summary      Gerar orçamento
// @Description  A ordem de serviço deve estar em IN_DIAGNOSIS. O total é a soma
//               das linhas em centavos.
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateBudgetRequest  true  "service_order_id, validity_days, items"
// @Success      201   {object}  dto.BudgetResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var in dto.GenerateBudgetRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	b, err := h.uc.Generate(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(budget.Response(b))
}

// GetByID devolve um orçamento.
func (h *BudgetHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(budget.Response(b))
}

// Send envia o orçamento ao cliente (EMPLOYEE).
func (h *BudgetHandler) Send(c *fiber.Ctx) error {
	b, err := h.uc.Send(c.Context(), c.Params("id"), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(budget.Response(b))
}

// MarkAsReceived registra a confirmação de recebimento pelo cliente.
func (h *BudgetHandler) MarkAsReceived(c *fiber.Ctx) error {
	b, err := h.uc.MarkAsReceived(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(budget.Response(b))
}

// Approve aprova o orçamento dentro da janela de validade.
func (h *BudgetHandler) Approve(c *fiber.Ctx) error {
	b, err := h.uc.Approve(c.Context(), c.Params("id"), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(budget.Response(b))
}

// Reject rejeita o orçamento dentro da janela de validade.
func (h *BudgetHandler) Reject(c *fiber.Ctx) error {
	b, err := h.uc.Reject(c.Context(), c.Params("id"), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(budget.Response(b))
}

// Update setters incondicionais (validade, meio de envio, observações).
func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBudgetRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	b, err := h.uc.UpdateFields(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(budget.Response(b))
}

// GetPDF godoc
// @Summary      Baixar o orçamento em PDF
// @Tags         budgets
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID do orçamento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/pdf [get]
func (h *BudgetHandler) GetPDF(c *fiber.Ctx) error {
	data, err := h.uc.GeneratePDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orcamento.pdf"`)
	return c.Send(data)
}
