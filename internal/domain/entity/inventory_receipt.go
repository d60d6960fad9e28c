package entity

import "time"

// InventoryReceipt representa un registro de recepción de stock físico en una ubicación
// (una unidad de oferta). Lo alimenta el snapshot de inventario del WMS; el motor de
// asignación solo lo lee.
type InventoryReceipt struct {
	ID           int64  // ReceiveItemID del WMS
	SKU          string
	ItemID       string // identificador crudo, igual criterio que OrderLine.ItemID
	Qualifier    string
	LocationName string
	ReceivedQty  int
	AvailableQty int // neto de reservas físicas fuera de este sistema; <= ReceivedQty
	ImportedAt   time.Time
}
