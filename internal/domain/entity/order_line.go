package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine representa una línea de pedido importada del WMS externo (una unidad de demanda).
// ItemID se guarda como texto crudo: puede ser numérico o alfanumérico (ej. "VX-177-PK");
// el motor de asignación decide después si admite forma numérica.
type OrderLine struct {
	ID           int64  // OrderItemID del WMS, estable y único
	OrderID      int64
	CustomerID   int64
	CustomerName string
	SKU          string // código de stock, se normaliza en el motor
	ItemID       string // identificador de artículo crudo del WMS
	Qualifier    string // lote/grado; vacío = ausente
	OrderedQty   int
	UnitID       int64
	UnitName     string
	UnitPrice    decimal.Decimal
	ReferenceNum string
	ImportedAt   time.Time
	UpdatedAt    time.Time
}
