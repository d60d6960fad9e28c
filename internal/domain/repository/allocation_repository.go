package repository

import "github.com/jhoicas/fulfillment-api/internal/domain/entity"

// AllocationRepository define el puerto del ledger persistido de asignaciones
// sugeridas. El reset acotado + insert en lote dentro de una misma transacción
// es lo que hace la recomputación destructiva-luego-aditiva e idempotente.
type AllocationRepository interface {
	// DeleteByLineIDs borra las filas de las líneas dadas (reset acotado).
	// Nunca borra fuera de las líneas que se están recomputando.
	DeleteByLineIDs(lineIDs []int64) error
	CreateBatch(rows []*entity.SuggestedAllocation) error
	ListByLineIDs(lineIDs []int64) ([]*entity.SuggestedAllocation, error)
	// ListExcludingLines devuelve las filas de líneas FUERA del conjunto dado;
	// alimenta la proyección de disponibilidad en alcance global.
	ListExcludingLines(lineIDs []int64) ([]*entity.SuggestedAllocation, error)
	ListByOrder(orderID int64) ([]*entity.SuggestedAllocation, error)
}
