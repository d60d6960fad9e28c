package repository

import "github.com/jhoicas/fulfillment-api/internal/domain/entity"

// InventoryReceiptRepository define el puerto para la proyección local del
// snapshot de inventario del WMS. Solo lectura para el motor; ReplaceAll lo usa
// el import para reconstruir la proyección completa.
type InventoryReceiptRepository interface {
	ReplaceAll(receipts []*entity.InventoryReceipt) error
	GetByID(id int64) (*entity.InventoryReceipt, error)
	ListAvailable() ([]*entity.InventoryReceipt, error)
	ListBySKUs(skus []string) ([]*entity.InventoryReceipt, error)
}
