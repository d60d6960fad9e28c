package allocation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
)

// PushModeLive es el único modo que transmite al WMS; cualquier otro valor
// (el default "dry-run") arma el plan y lo registra sin enviarlo.
const PushModeLive = "live"

// PushUseCase agrupa las filas del ledger por pedido y las envía al allocator del
// WMS. Cero filas es un no-op, no un error. Un rechazo del WMS se reporta en la
// respuesta pero nunca toca el ledger: el estado sugerido local es independiente
// de si fue transmitido con éxito.
type PushUseCase struct {
	allocRepo repository.AllocationRepository
	wms       ports.WMSClient
	pushMode  string
	log       zerolog.Logger
}

// NewPushUseCase construye el caso de uso. pushMode viene de WMS_PUSH_MODE.
func NewPushUseCase(allocRepo repository.AllocationRepository, wms ports.WMSClient, pushMode string, log zerolog.Logger) *PushUseCase {
	return &PushUseCase{allocRepo: allocRepo, wms: wms, pushMode: pushMode, log: log}
}

// Push envía el plan de un pedido. Solo los errores de transporte/persistencia se
// propagan como error; el rechazo del sistema externo es un dato de la respuesta.
func (uc *PushUseCase) Push(ctx context.Context, orderID int64) (*dto.PushResponse, error) {
	if orderID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.allocRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &dto.PushResponse{OrderID: orderID, PushedItems: 0, Accepted: true, Message: "sin filas para empujar"}, nil
	}

	byLine := make(map[int64][]ports.AllocationPush)
	for _, r := range rows {
		byLine[r.LineID] = append(byLine[r.LineID], ports.AllocationPush{ReceiptID: r.ReceiptID, Qty: r.Qty})
	}
	items := make([]ports.AllocationPushItem, 0, len(byLine))
	for lineID, allocs := range byLine {
		items = append(items, ports.AllocationPushItem{LineID: lineID, Allocations: allocs})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].LineID < items[j].LineID })

	if !strings.EqualFold(uc.pushMode, PushModeLive) {
		uc.log.Info().
			Int64("order_id", orderID).
			Int("items", len(items)).
			Str("push_mode", uc.pushMode).
			Msg("modo dry-run: el plan se registra pero no se transmite al WMS")
		return &dto.PushResponse{
			OrderID:     orderID,
			PushedItems: len(items),
			Accepted:    true,
			Message:     "modo dry-run: el plan no se transmitió al WMS",
		}, nil
	}

	outcome, err := uc.wms.PushAllocations(ctx, orderID, items)
	if err != nil {
		return nil, fmt.Errorf("push allocations: %w", err)
	}
	resp := &dto.PushResponse{
		OrderID:     orderID,
		PushedItems: len(items),
		Accepted:    outcome.Accepted,
		WMSStatus:   outcome.StatusCode,
	}
	if !outcome.Accepted {
		resp.Message = outcome.Body
		uc.log.Warn().
			Int64("order_id", orderID).
			Int("status", outcome.StatusCode).
			Msg("el WMS rechazó el push de asignaciones; el ledger local queda intacto")
	}
	return resp, nil
}
