package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/order"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
)

// OrderHandler trata o ciclo de vida da ordem de serviço (protegido).
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler constrói o handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir ordem de serviço
// @Description  CLIENT abre em REQUESTED; EMPLOYEE/ADMIN abre no balcão em RECEIVED.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceOrderRequest  true  "client_id, vehicle_id, notes"
// @Success      201   {object}  dto.ServiceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateServiceOrderRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.Open(c.Context(), in, GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order.Response(o))
}

// GetByID devolve uma ordem.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	o, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order.Response(o))
}

// List lista ordens por cliente ou por status (query params).
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, err)
	}
	page.DefaultPage()

	var (
		orders []*entity.ServiceOrder
		err    error
	)
	if clientID := c.Query("client_id"); clientID != "" {
		orders, err = h.uc.ListByClient(c.Context(), clientID, page.Limit, page.Offset)
	} else {
		status := entity.OrderStatus(c.Query("status", string(entity.OrderStatusRequested)))
		orders, err = h.uc.ListByStatus(c.Context(), status, page.Limit, page.Offset)
	}
	if err != nil {
		return writeError(c, err)
	}

	out := make([]dto.ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, order.Response(o))
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar status da ordem
// @Description  Valida a tabela de transições e o papel do chamador. Em erro de
//               transição devolve o conjunto de destinos permitidos.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da ordem"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status destino"
// @Success      200   {object}  dto.ServiceOrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), entity.OrderStatus(in.Status), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order.Response(o))
}

// Cancel cancela a ordem com motivo obrigatório (exclusivo do ADMIN).
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelOrderRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.Cancel(c.Context(), c.Params("id"), in.Reason, GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order.Response(o))
}
