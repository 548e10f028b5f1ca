package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/stock"
	"github.com/oficinapro/oficina-api/internal/application/usecase"
)

// StockHandler trata itens de estoque e o ledger de movimentações (protegido).
type StockHandler struct {
	itemUC   *usecase.StockItemUseCase
	ledgerUC *stock.LedgerUseCase
}

// NewStockHandler constrói o handler.
func NewStockHandler(itemUC *usecase.StockItemUseCase, ledgerUC *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{itemUC: itemUC, ledgerUC: ledgerUC}
}

// CreateItem cadastra um item de estoque.
func (h *StockHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	item, err := h.itemUC.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.StockItemResponse(item))
}

// GetItem devolve um item de estoque.
func (h *StockHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.itemUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.StockItemResponse(item))
}

// ListItems lista itens paginados.
func (h *StockHandler) ListItems(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, err)
	}
	page.DefaultPage()
	items, err := h.itemUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.StockItemResponse(item))
	}
	return c.JSON(out)
}

// UpdateItemPrices atualiza custo e preço de venda revalidando a margem.
func (h *StockHandler) UpdateItemPrices(c *fiber.Ctx) error {
	var in dto.UpdateStockItemPricesRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	item, err := h.itemUC.UpdatePrices(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.StockItemResponse(item))
}

// LowStockReport lista itens abaixo do mínimo com o déficit de cada um.
func (h *StockHandler) LowStockReport(c *fiber.Ctx) error {
	report, err := h.itemUC.LowStockReport(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// CreateMovement godoc
// @Summary      Registrar movimentação de estoque
// @Description  IN/OUT são deltas; ADJUSTMENT grava um nível absoluto. A
//               atualização do saldo e a movimentação são gravadas na mesma
//               transação; saldo nunca fica negativo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementRequest  true  "stock_item_id, type, quantity"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateStockMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.ledgerUC.CreateMovement(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stock.MovementResponse(mov))
}

// UpdateMovement emenda uma movimentação existente; o efeito original é
// desfeito algebricamente e o novo aplicado em uma única transação.
func (h *StockHandler) UpdateMovement(c *fiber.Ctx) error {
	var in dto.UpdateStockMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.ledgerUC.UpdateMovement(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stock.MovementResponse(mov))
}

// ListMovements lista o histórico de movimentações de um item, com filtro
// opcional de período (from/to em RFC3339).
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, err)
	}
	page.DefaultPage()

	from := parseTimeQuery(c, "from")
	to := parseTimeQuery(c, "to")
	movs, err := h.ledgerUC.ListMovements(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, stock.MovementResponse(m))
	}
	return c.JSON(out)
}

// parseTimeQuery interpreta um query param RFC3339 opcional.
func parseTimeQuery(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
