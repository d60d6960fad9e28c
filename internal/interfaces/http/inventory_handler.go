package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/inventory"
)

// InventoryHandler maneja el import y consulta de la proyección de inventario.
type InventoryHandler struct {
	importUC *inventory.ImportUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(importUC *inventory.ImportUseCase) *InventoryHandler {
	return &InventoryHandler{importUC: importUC}
}

// Import godoc
// @Summary      Importar el snapshot de inventario del WMS
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.ImportInventoryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	out, err := h.importUC.Import(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WMS_ERROR", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListAvailable godoc
// @Summary      Listar recepciones con disponible positivo
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.ReceiptDTO
// @Router       /api/inventory/receipts [get]
func (h *InventoryHandler) ListAvailable(c *fiber.Ctx) error {
	receipts, err := h.importUC.ListAvailable(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(receipts)
}
