package allocation

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. El reset acotado + insert en lote de una recomputación debe ser
// observable desde afuera como una unidad atómica; ningún lector externo ve el
// ledger a medio reconstruir.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.OrderLineRepository,
		receiptRepo repository.InventoryReceiptRepository,
		allocRepo repository.AllocationRepository,
	) error) error
}
