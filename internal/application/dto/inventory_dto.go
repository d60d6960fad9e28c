package dto

// ImportInventoryResponse resultado del import del snapshot de inventario.
type ImportInventoryResponse struct {
	ImportedReceipts int    `json:"imported_receipts"`
	Note             string `json:"note,omitempty"`
}

// ReceiptDTO una recepción de la proyección local.
type ReceiptDTO struct {
	ReceiptID    int64  `json:"receipt_id"`
	SKU          string `json:"sku"`
	ItemID       string `json:"item_id"`
	Qualifier    string `json:"qualifier,omitempty"`
	LocationName string `json:"location_name"`
	ReceivedQty  int    `json:"received_qty"`
	AvailableQty int    `json:"available_qty"`
}
