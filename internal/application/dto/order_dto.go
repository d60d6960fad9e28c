package dto

import "github.com/shopspring/decimal"

// ImportOrdersRequest filtros para importar pedidos abiertos desde el WMS.
type ImportOrdersRequest struct {
	Status        string `json:"status"`         // OPEN, AWAITINGPICK, CLOSED, CANCELLED
	CustomerID    int64  `json:"customer_id"`
	ReferenceLike string `json:"reference_like"`
	ModifiedSince string `json:"modified_since"` // ISO-8601
	PageSize      int    `json:"page_size"`
	MaxPages      int    `json:"max_pages"`
}

// ImportOrdersByIDsRequest importa pedidos puntuales por id.
type ImportOrdersByIDsRequest struct {
	OrderIDs []int64 `json:"order_ids"`
}

// OrderLineDTO una línea importada.
type OrderLineDTO struct {
	LineID       int64           `json:"line_id"`
	OrderID      int64           `json:"order_id"`
	SKU          string          `json:"sku"`
	ItemID       string          `json:"item_id"`
	Qualifier    string          `json:"qualifier,omitempty"`
	OrderedQty   int             `json:"ordered_qty"`
	UnitName     string          `json:"unit_name,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ReferenceNum string          `json:"reference_num,omitempty"`
}

// ImportedOrderDTO resumen de un pedido importado.
type ImportedOrderDTO struct {
	OrderID      int64          `json:"order_id"`
	CustomerID   int64          `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	ReferenceNum string         `json:"reference_num"`
	LineCount    int            `json:"line_count"`
	Lines        []OrderLineDTO `json:"lines"`
}

// ImportOrdersResponse resultado del import.
type ImportOrdersResponse struct {
	ImportedHeaders int                `json:"imported_headers"`
	UpsertedLines   int                `json:"upserted_lines"`
	Orders          []ImportedOrderDTO `json:"orders"`
}
