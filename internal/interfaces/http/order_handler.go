package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/orders"
	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// OrderHandler maneja el import y consulta de pedidos.
type OrderHandler struct {
	importUC *orders.ImportUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(importUC *orders.ImportUseCase) *OrderHandler {
	return &OrderHandler{importUC: importUC}
}

// ImportOpen godoc
// @Summary      Importar pedidos abiertos desde el WMS
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportOrdersRequest  false  "filtros"
// @Success      200   {object}  dto.ImportOrdersResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/orders/import [post]
func (h *OrderHandler) ImportOpen(c *fiber.Ctx) error {
	var in dto.ImportOrdersRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.importUC.ImportOpen(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WMS_ERROR", Message: err.Error()})
	}
	return c.JSON(out)
}

// ImportByIDs godoc
// @Summary      Importar pedidos puntuales por id
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportOrdersByIDsRequest  true  "order_ids"
// @Success      200   {object}  dto.ImportOrdersResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/orders/import-by-ids [post]
func (h *OrderHandler) ImportByIDs(c *fiber.Ctx) error {
	var in dto.ImportOrdersByIDsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.importUC.ImportByIDs(c.Context(), in.OrderIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_ids es requerido"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WMS_ERROR", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListLines godoc
// @Summary      Listar líneas importadas de un pedido
// @Tags         orders
// @Produce      json
// @Param        id   path      int  true  "order id"
// @Success      200  {array}   dto.OrderLineDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/lines [get]
func (h *OrderHandler) ListLines(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || orderID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order id inválido"})
	}
	lines, err := h.importUC.ListLines(c.Context(), orderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(lines) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido sin líneas importadas"})
	}
	return c.JSON(lines)
}
