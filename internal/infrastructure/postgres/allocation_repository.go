package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación del ledger de asignaciones sobre PostgreSQL.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `line_id, receipt_id, qty, run_id, created_at`

// DeleteByLineIDs borra las filas del ledger de las líneas dadas (reset acotado).
func (r *AllocationRepo) DeleteByLineIDs(lineIDs []int64) error {
	if len(lineIDs) == 0 {
		return nil
	}
	query := `DELETE FROM suggested_allocations WHERE line_id = ANY($1)`
	if _, err := r.q.Exec(context.Background(), query, lineIDs); err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}
	return nil
}

// CreateBatch inserta las filas de una corrida. Las filas vienen ya validadas
// por el motor (qty > 0); una violación de unicidad aquí indica un reset incompleto.
func (r *AllocationRepo) CreateBatch(allocs []*entity.SuggestedAllocation) error {
	ctx := context.Background()
	query := `
		INSERT INTO suggested_allocations (line_id, receipt_id, qty, run_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	for _, a := range allocs {
		if _, err := r.q.Exec(ctx, query, a.LineID, a.ReceiptID, a.Qty, a.RunID, a.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert allocation línea %d recepción %d: %w", a.LineID, a.ReceiptID, err)
			}
			return fmt.Errorf("insert allocation: %w", err)
		}
	}
	return nil
}

// ListByLineIDs lista las filas del ledger de las líneas dadas.
func (r *AllocationRepo) ListByLineIDs(lineIDs []int64) ([]*entity.SuggestedAllocation, error) {
	if len(lineIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + allocationColumns + `
		FROM suggested_allocations WHERE line_id = ANY($1) ORDER BY line_id, receipt_id`
	return r.list(query, lineIDs)
}

// ListExcludingLines lista las filas de líneas FUERA del conjunto dado
// (proyección de disponibilidad en alcance global).
func (r *AllocationRepo) ListExcludingLines(lineIDs []int64) ([]*entity.SuggestedAllocation, error) {
	if len(lineIDs) == 0 {
		query := `SELECT ` + allocationColumns + ` FROM suggested_allocations ORDER BY line_id, receipt_id`
		return r.list(query)
	}
	query := `SELECT ` + allocationColumns + `
		FROM suggested_allocations WHERE NOT (line_id = ANY($1)) ORDER BY line_id, receipt_id`
	return r.list(query, lineIDs)
}

// ListByOrder lista las filas del ledger de todas las líneas de un pedido.
func (r *AllocationRepo) ListByOrder(orderID int64) ([]*entity.SuggestedAllocation, error) {
	query := `SELECT sa.line_id, sa.receipt_id, sa.qty, sa.run_id, sa.created_at
		FROM suggested_allocations sa
		JOIN order_lines ol ON ol.id = sa.line_id
		WHERE ol.order_id = $1
		ORDER BY sa.line_id, sa.receipt_id`
	return r.list(query, orderID)
}

func (r *AllocationRepo) list(query string, args ...any) ([]*entity.SuggestedAllocation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	var allocs []*entity.SuggestedAllocation
	for rows.Next() {
		var a entity.SuggestedAllocation
		if err := rows.Scan(&a.LineID, &a.ReceiptID, &a.Qty, &a.RunID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		allocs = append(allocs, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocations: %w", err)
	}
	return allocs, nil
}
