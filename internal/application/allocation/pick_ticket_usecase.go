package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// PickItem una fila del ticket de picking: qué recoger, de dónde y cuánto.
type PickItem struct {
	LineID       int64
	SKU          string
	Qualifier    string
	ReceiptID    int64
	LocationName string
	Qty          int
}

// PickTicket documento de picking de un pedido, armado desde el ledger vigente.
type PickTicket struct {
	OrderID      int64
	CustomerName string
	ReferenceNum string
	GeneratedAt  time.Time
	Items        []PickItem
	TotalUnits   int
}

// PickTicketRenderer puerto hacia el generador de documentos (PDF).
type PickTicketRenderer interface {
	Render(ctx context.Context, ticket *PickTicket) ([]byte, error)
}

// PickTicketUseCase arma el ticket de picking de un pedido cruzando líneas,
// ledger y ubicaciones de las recepciones.
type PickTicketUseCase struct {
	lineRepo    repository.OrderLineRepository
	receiptRepo repository.InventoryReceiptRepository
	allocRepo   repository.AllocationRepository
	renderer    PickTicketRenderer
	log         zerolog.Logger
}

// NewPickTicketUseCase construye el caso de uso.
func NewPickTicketUseCase(
	lineRepo repository.OrderLineRepository,
	receiptRepo repository.InventoryReceiptRepository,
	allocRepo repository.AllocationRepository,
	renderer PickTicketRenderer,
	log zerolog.Logger,
) *PickTicketUseCase {
	return &PickTicketUseCase{
		lineRepo:    lineRepo,
		receiptRepo: receiptRepo,
		allocRepo:   allocRepo,
		renderer:    renderer,
		log:         log,
	}
}

// Generate arma el ticket del pedido y lo renderiza a PDF.
// Un pedido sin líneas es ErrNotFound; un pedido sin asignaciones produce un
// ticket vacío (es un estado normal, no un error).
func (uc *PickTicketUseCase) Generate(ctx context.Context, orderID int64) ([]byte, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order id inválido", domain.ErrInvalidInput)
	}

	lines, err := uc.lineRepo.ListByOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas del pedido: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}

	allocs, err := uc.allocRepo.ListByOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("listar asignaciones del pedido: %w", err)
	}

	byLine := make(map[int64]int, len(lines))
	ticket := &PickTicket{
		OrderID:      orderID,
		CustomerName: lines[0].CustomerName,
		ReferenceNum: lines[0].ReferenceNum,
		GeneratedAt:  time.Now(),
	}
	for i, l := range lines {
		byLine[l.ID] = i
	}

	for _, a := range allocs {
		item := PickItem{
			LineID:    a.LineID,
			ReceiptID: a.ReceiptID,
			Qty:       a.Qty,
		}
		if idx, ok := byLine[a.LineID]; ok {
			item.SKU = lines[idx].SKU
			item.Qualifier = lines[idx].Qualifier
		}
		rec, err := uc.receiptRepo.GetByID(a.ReceiptID)
		if err != nil {
			return nil, fmt.Errorf("consultar recepción %d: %w", a.ReceiptID, err)
		}
		if rec != nil {
			item.LocationName = rec.LocationName
		}
		ticket.Items = append(ticket.Items, item)
		ticket.TotalUnits += a.Qty
	}

	uc.log.Debug().
		Int64("order_id", orderID).
		Int("items", len(ticket.Items)).
		Int("total_units", ticket.TotalUnits).
		Msg("ticket de picking armado")

	return uc.renderer.Render(ctx, ticket)
}
