package dto

// RecomputeRequest pide recomputar asignaciones. Alcance por pedidos completos
// (order_ids) o por líneas puntuales (line_ids); scope controla si las
// asignaciones de líneas fuera del alcance descuentan disponibilidad.
type RecomputeRequest struct {
	OrderIDs []int64 `json:"order_ids"`
	LineIDs  []int64 `json:"line_ids"`
	Scope    string  `json:"scope"`    // "selected" (default) | "global"
	Strategy string  `json:"strategy"` // "prefer_fullest" (default) | "pallet_shelf"
}

// AllocationRowDTO una fila cruda del ledger.
type AllocationRowDTO struct {
	LineID    int64 `json:"line_id"`
	ReceiptID int64 `json:"receipt_id"`
	Qty       int   `json:"qty"`
}

// LineSummaryDTO proyección asignado vs restante por línea.
type LineSummaryDTO struct {
	LineID    int64  `json:"line_id"`
	OrderID   int64  `json:"order_id"`
	SKU       string `json:"sku"`
	Ordered   int    `json:"ordered"`
	Allocated int    `json:"allocated"`
	Remaining int    `json:"remaining"`
}

// RecomputeResponse resultado de una corrida de recomputación.
type RecomputeResponse struct {
	RunID      string             `json:"run_id"`
	Scope      string             `json:"scope"`
	Strategy   string             `json:"strategy"`
	Iterations int                `json:"iterations"`
	Truncated  bool               `json:"truncated"` // la búsqueda se cortó por el techo de iteraciones
	Rows       []AllocationRowDTO `json:"rows"`
	Summaries  []LineSummaryDTO   `json:"summaries"`
}

// OrderAllocationsResponse estado de asignación de un pedido: resúmenes + filas.
type OrderAllocationsResponse struct {
	OrderID   int64              `json:"order_id"`
	Lines     []LineSummaryDTO   `json:"lines"`
	Rows      []AllocationRowDTO `json:"allocations"`
}

// PushRequest pide empujar al WMS el plan de un pedido.
type PushRequest struct {
	OrderID int64 `json:"order_id"`
}

// PushResponse resultado del push. Un rechazo del WMS no es fatal para el ledger:
// se reporta aquí y el estado sugerido local queda intacto.
type PushResponse struct {
	OrderID     int64  `json:"order_id"`
	PushedItems int    `json:"pushed_items"`
	Accepted    bool   `json:"accepted"`
	WMSStatus   int    `json:"wms_status,omitempty"`
	Message     string `json:"message,omitempty"`
}
