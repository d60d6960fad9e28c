package allocation

// Line es una línea de pedido vista por el motor: identidad canónica + demanda.
type Line struct {
	ID         int64
	OrderID    int64
	Identity   Identity
	OrderedQty int
}

// Receipt es una recepción de inventario vista por el motor: identidad canónica + oferta.
type Receipt struct {
	ID           int64
	Identity     Identity
	LocationName string
	ReceivedQty  int
	AvailableQty int
}

// Row es una fila del ledger: cantidad positiva asignada de una recepción a una línea.
type Row struct {
	LineID    int64
	ReceiptID int64
	Qty       int
}

// Scope controla qué filas preexistentes del ledger descuentan disponibilidad.
type Scope int

const (
	// ScopeSelected descuenta solo las asignaciones de las líneas recomputadas.
	ScopeSelected Scope = iota
	// ScopeGlobal descuenta además las asignaciones de líneas fuera del alcance.
	ScopeGlobal
)

// ParseScope interpreta el valor textual de la API ("selected" | "global").
// Cualquier otro valor cae a selected, igual que el comportamiento del batch original.
func ParseScope(s string) Scope {
	if s == "global" {
		return ScopeGlobal
	}
	return ScopeSelected
}

// Tier es la clase de prioridad de una coincidencia línea-recepción (menor gana).
type Tier int

const (
	// TierItemID: identificador de artículo + qualifier. Incluye el fallback textual
	// cuando ninguno de los dos lados tiene forma numérica.
	TierItemID Tier = 1
	// TierSKUQualifier: SKU + qualifier.
	TierSKUQualifier Tier = 2
	// TierSKUOnly: solo SKU, ignorando qualifier. Solo se considera para una línea
	// si los niveles superiores no produjeron ningún candidato en esta iteración.
	TierSKUOnly Tier = 3
)
