package allocation

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain"
	domalloc "github.com/jhoicas/fulfillment-api/internal/domain/allocation"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
)

// QueryUseCase lee el estado de asignación de un pedido: resumen por línea
// (asignado vs restante) y las filas crudas del ledger. Solo lectura.
type QueryUseCase struct {
	lineRepo  repository.OrderLineRepository
	allocRepo repository.AllocationRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(lineRepo repository.OrderLineRepository, allocRepo repository.AllocationRepository) *QueryUseCase {
	return &QueryUseCase{lineRepo: lineRepo, allocRepo: allocRepo}
}

// GetByOrder devuelve la proyección del pedido. Pedido sin líneas => ErrNotFound.
func (uc *QueryUseCase) GetByOrder(ctx context.Context, orderID int64) (*dto.OrderAllocationsResponse, error) {
	if orderID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.lineRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	allocs, err := uc.allocRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}

	engLines := make([]domalloc.Line, 0, len(lines))
	for _, ln := range lines {
		engLines = append(engLines, domalloc.LineFrom(ln))
	}
	ledger := domalloc.NewLedger(domalloc.RowsFrom(allocs)...)

	resp := &dto.OrderAllocationsResponse{
		OrderID: orderID,
		Lines:   make([]dto.LineSummaryDTO, 0, len(lines)),
		Rows:    make([]dto.AllocationRowDTO, 0, len(allocs)),
	}
	for _, s := range domalloc.Summarize(engLines, ledger) {
		resp.Lines = append(resp.Lines, dto.LineSummaryDTO{
			LineID:    s.LineID,
			OrderID:   s.OrderID,
			SKU:       s.SKU,
			Ordered:   s.Ordered,
			Allocated: s.Allocated,
			Remaining: s.Remaining,
		})
	}
	for _, a := range allocs {
		resp.Rows = append(resp.Rows, dto.AllocationRowDTO{LineID: a.LineID, ReceiptID: a.ReceiptID, Qty: a.Qty})
	}
	return resp, nil
}
