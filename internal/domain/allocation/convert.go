package allocation

import "github.com/jhoicas/fulfillment-api/internal/domain/entity"

// LineFrom convierte una línea persistida a la vista del motor, normalizando identidad.
func LineFrom(ol *entity.OrderLine) Line {
	return Line{
		ID:         ol.ID,
		OrderID:    ol.OrderID,
		Identity:   NormalizeIdentity(ol.SKU, ol.ItemID, ol.Qualifier),
		OrderedQty: ol.OrderedQty,
	}
}

// ReceiptFrom convierte una recepción persistida a la vista del motor.
func ReceiptFrom(ir *entity.InventoryReceipt) Receipt {
	return Receipt{
		ID:           ir.ID,
		Identity:     NormalizeIdentity(ir.SKU, ir.ItemID, ir.Qualifier),
		LocationName: ir.LocationName,
		ReceivedQty:  ir.ReceivedQty,
		AvailableQty: ir.AvailableQty,
	}
}

// RowsFrom convierte filas persistidas del ledger a filas del motor.
func RowsFrom(allocs []*entity.SuggestedAllocation) []Row {
	out := make([]Row, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, Row{LineID: a.LineID, ReceiptID: a.ReceiptID, Qty: a.Qty})
	}
	return out
}
