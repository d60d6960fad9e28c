package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	appalloc "github.com/jhoicas/fulfillment-api/internal/application/allocation"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// AllocationHandler maneja recomputación, consulta, push y ticket de picking.
type AllocationHandler struct {
	recomputeUC  *appalloc.RecomputeUseCase
	queryUC      *appalloc.QueryUseCase
	pushUC       *appalloc.PushUseCase
	pickTicketUC *appalloc.PickTicketUseCase
}

// NewAllocationHandler construye el handler de asignaciones.
func NewAllocationHandler(
	recomputeUC *appalloc.RecomputeUseCase,
	queryUC *appalloc.QueryUseCase,
	pushUC *appalloc.PushUseCase,
	pickTicketUC *appalloc.PickTicketUseCase,
) *AllocationHandler {
	return &AllocationHandler{
		recomputeUC:  recomputeUC,
		queryUC:      queryUC,
		pushUC:       pushUC,
		pickTicketUC: pickTicketUC,
	}
}

// Recompute godoc
// @Summary      Recomputar asignaciones sugeridas
// @Description  Borra y reconstruye el ledger de las líneas del alcance. Idempotente
// @Description  con los mismos insumos; truncated=true indica corte por techo de iteraciones.
// @Tags         allocations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecomputeRequest  true  "order_ids o line_ids, scope, strategy"
// @Success      200   {object}  dto.RecomputeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/allocations/recompute [post]
func (h *AllocationHandler) Recompute(c *fiber.Ctx) error {
	var in dto.RecomputeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.OrderIDs) == 0 && len(in.LineIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_ids o line_ids es requerido"})
	}
	out, err := h.recomputeUC.Recompute(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyScope) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_SCOPE", Message: "ningún line id válido en el alcance; el ledger no se tocó"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByOrder godoc
// @Summary      Consultar asignaciones vigentes de un pedido
// @Tags         allocations
// @Produce      json
// @Param        id   path      int  true  "order id"
// @Success      200  {object}  dto.OrderAllocationsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/allocations [get]
func (h *AllocationHandler) GetByOrder(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order id inválido"})
	}
	out, err := h.queryUC.GetByOrder(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido sin líneas importadas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Push godoc
// @Summary      Empujar el plan de un pedido al allocator del WMS
// @Description  Un rechazo del WMS se reporta con accepted=false; el ledger local no cambia.
// @Tags         allocations
// @Produce      json
// @Param        id   path      int  true  "order id"
// @Success      200  {object}  dto.PushResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/allocations/push [post]
func (h *AllocationHandler) Push(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order id inválido"})
	}
	out, err := h.pushUC.Push(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order id inválido"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WMS_ERROR", Message: err.Error()})
	}
	return c.JSON(out)
}

// PickTicket godoc
// @Summary      Generar el ticket de picking en PDF
// @Tags         allocations
// @Produce      application/pdf
// @Param        id   path  int  true  "order id"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pick-ticket [get]
func (h *AllocationHandler) PickTicket(c *fiber.Ctx) error {
	orderID, err := parseOrderID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order id inválido"})
	}
	pdfBytes, err := h.pickTicketUC.Generate(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido sin líneas importadas"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order id inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="pick-ticket-%d.pdf"`, orderID))
	return c.Send(pdfBytes)
}

func parseOrderID(c *fiber.Ctx) (int64, error) {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || orderID <= 0 {
		return 0, fmt.Errorf("order id inválido")
	}
	return orderID, nil
}
