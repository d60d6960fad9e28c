// Package allocation contiene los casos de uso alrededor del motor de asignación:
// recomputar el plan de un alcance, consultarlo por pedido y empujarlo al WMS.
package allocation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	domalloc "github.com/jhoicas/fulfillment-api/internal/domain/allocation"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
)

// RecomputeUseCase ejecuta una recomputación: resuelve el alcance, borra las
// asignaciones previas de esas líneas y reconstruye el plan con el motor, todo
// dentro de una transacción. Las filas de las líneas del alcance se bloquean
// (SELECT FOR UPDATE) para serializar recomputaciones concurrentes solapadas.
type RecomputeUseCase struct {
	txRunner TxRunner
	lineRepo repository.OrderLineRepository
	log      zerolog.Logger
}

// NewRecomputeUseCase construye el caso de uso.
func NewRecomputeUseCase(txRunner TxRunner, lineRepo repository.OrderLineRepository, log zerolog.Logger) *RecomputeUseCase {
	return &RecomputeUseCase{txRunner: txRunner, lineRepo: lineRepo, log: log}
}

// Recompute resuelve el alcance y corre el motor. Un alcance vacío es un error de
// entrada reportado antes de cualquier mutación; una línea que queda con restante
// positivo NO es un error. Los errores de persistencia se propagan sin reintento:
// reintentar la recomputación completa es seguro por idempotencia.
func (uc *RecomputeUseCase) Recompute(ctx context.Context, in dto.RecomputeRequest) (*dto.RecomputeResponse, error) {
	lineIDs, err := uc.resolveScope(in)
	if err != nil {
		return nil, err
	}

	scope := domalloc.ParseScope(in.Scope)
	tieBreak := domalloc.TieBreakByName(in.Strategy)
	runID := uuid.New().String()
	now := time.Now()

	var resp *dto.RecomputeResponse
	err = uc.txRunner.Run(ctx, func(
		lineRepo repository.OrderLineRepository,
		receiptRepo repository.InventoryReceiptRepository,
		allocRepo repository.AllocationRepository,
	) error {
		lines, err := lineRepo.ListByIDsForUpdate(lineIDs)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyScope
		}

		receipts, err := receiptRepo.ListAvailable()
		if err != nil {
			return err
		}

		var prior []domalloc.Row
		if scope == domalloc.ScopeGlobal {
			external, err := allocRepo.ListExcludingLines(lineIDs)
			if err != nil {
				return err
			}
			prior = domalloc.RowsFrom(external)
		}

		// Reset idempotente: solo las líneas que se están recomputando.
		if err := allocRepo.DeleteByLineIDs(lineIDs); err != nil {
			return err
		}

		engLines := make([]domalloc.Line, 0, len(lines))
		for _, ln := range lines {
			engLines = append(engLines, domalloc.LineFrom(ln))
		}
		engReceipts := make([]domalloc.Receipt, 0, len(receipts))
		for _, rc := range receipts {
			engReceipts = append(engReceipts, domalloc.ReceiptFrom(rc))
		}

		result := domalloc.NewEngine(tieBreak).Run(domalloc.Input{
			Lines:     engLines,
			Receipts:  engReceipts,
			PriorRows: prior,
			Scope:     scope,
		})

		if len(result.Rows) > 0 {
			batch := make([]*entity.SuggestedAllocation, 0, len(result.Rows))
			for _, r := range result.Rows {
				batch = append(batch, &entity.SuggestedAllocation{
					LineID:    r.LineID,
					ReceiptID: r.ReceiptID,
					Qty:       r.Qty,
					RunID:     runID,
					CreatedAt: now,
				})
			}
			if err := allocRepo.CreateBatch(batch); err != nil {
				return err
			}
		}

		resp = toRecomputeResponse(runID, scope, tieBreak, result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("run_id", runID).
		Int("lines", len(lineIDs)).
		Int("rows", len(resp.Rows)).
		Int("iterations", resp.Iterations).
		Bool("truncated", resp.Truncated).
		Msg("recomputación de asignaciones completada")
	return resp, nil
}

// resolveScope traduce la petición a line ids concretos sin tocar el ledger.
func (uc *RecomputeUseCase) resolveScope(in dto.RecomputeRequest) ([]int64, error) {
	if len(in.LineIDs) > 0 {
		ids := dedupeIDs(in.LineIDs)
		if len(ids) == 0 {
			return nil, domain.ErrEmptyScope
		}
		return ids, nil
	}
	if len(in.OrderIDs) == 0 {
		return nil, domain.ErrEmptyScope
	}
	lines, err := uc.lineRepo.ListByOrders(dedupeIDs(in.OrderIDs))
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ID)
	}
	if len(ids) == 0 {
		return nil, domain.ErrEmptyScope
	}
	return ids, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toRecomputeResponse(runID string, scope domalloc.Scope, tb domalloc.TieBreak, res domalloc.Result) *dto.RecomputeResponse {
	scopeName := "selected"
	if scope == domalloc.ScopeGlobal {
		scopeName = "global"
	}
	out := &dto.RecomputeResponse{
		RunID:      runID,
		Scope:      scopeName,
		Strategy:   tb.Name(),
		Iterations: res.Iterations,
		Truncated:  res.Truncated,
		Rows:       make([]dto.AllocationRowDTO, 0, len(res.Rows)),
		Summaries:  make([]dto.LineSummaryDTO, 0, len(res.Summaries)),
	}
	for _, r := range res.Rows {
		out.Rows = append(out.Rows, dto.AllocationRowDTO{LineID: r.LineID, ReceiptID: r.ReceiptID, Qty: r.Qty})
	}
	for _, s := range res.Summaries {
		out.Summaries = append(out.Summaries, dto.LineSummaryDTO{
			LineID:    s.LineID,
			OrderID:   s.OrderID,
			SKU:       s.SKU,
			Ordered:   s.Ordered,
			Allocated: s.Allocated,
			Remaining: s.Remaining,
		})
	}
	return out
}
