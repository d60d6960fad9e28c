// Package ports define los puertos de la capa de aplicación hacia servicios externos.
package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// WMSOrderLine línea de pedido ya normalizada desde el payload del WMS.
// ItemID queda como texto crudo: el motor decide después si admite forma numérica.
type WMSOrderLine struct {
	LineID    int64
	SKU       string
	ItemID    string
	Qualifier string
	Qty       int
	UnitID    int64
	UnitName  string
	UnitPrice decimal.Decimal
}

// WMSOrder pedido normalizado desde el payload del WMS.
type WMSOrder struct {
	OrderID      int64
	CustomerID   int64
	CustomerName string
	ReferenceNum string
	Lines        []WMSOrderLine
}

// WMSReceipt recepción de inventario normalizada desde el snapshot del WMS.
type WMSReceipt struct {
	ReceiptID    int64
	SKU          string
	ItemID       string
	Qualifier    string
	LocationName string
	ReceivedQty  int
	AvailableQty int
}

// OrderSearch filtros de búsqueda de pedidos en el WMS.
type OrderSearch struct {
	Status        string
	CustomerID    int64
	ReferenceLike string
	ModifiedSince string
	PageSize      int
	MaxPages      int
}

// AllocationPush una asignación de una recepción dentro de un push.
type AllocationPush struct {
	ReceiptID int64 `json:"receiveItemId"`
	Qty       int   `json:"qty"`
}

// AllocationPushItem asignaciones de una línea para el allocator del WMS.
type AllocationPushItem struct {
	LineID      int64            `json:"orderItemId"`
	Allocations []AllocationPush `json:"allocations"`
}

// PushOutcome resultado del push al WMS. Un rechazo (Accepted=false) es un dato,
// no un error: el ledger local no depende de que la transmisión haya sido aceptada.
type PushOutcome struct {
	StatusCode int
	Accepted   bool
	Body       string
}

// WMSClient puerto hacia el sistema externo de gestión de bodega. La adquisición
// de token, la paginación y la normalización de formas de payload viven del lado
// de la implementación.
type WMSClient interface {
	FetchOpenOrders(ctx context.Context, search OrderSearch) ([]WMSOrder, error)
	FetchOrdersByIDs(ctx context.Context, orderIDs []int64) ([]WMSOrder, error)
	FetchInventory(ctx context.Context) ([]WMSReceipt, error)
	PushAllocations(ctx context.Context, orderID int64, items []AllocationPushItem) (*PushOutcome, error)
}
