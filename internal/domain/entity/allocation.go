package entity

import "time"

// SuggestedAllocation es una fila del ledger de asignaciones: empareja demanda (línea)
// con oferta (recepción) por una cantidad positiva. El conjunto de filas de un alcance
// se borra y se reconstruye completo en cada recomputación.
type SuggestedAllocation struct {
	LineID    int64
	ReceiptID int64
	Qty       int
	RunID     string // uuid de la corrida de recomputación que produjo la fila
	CreatedAt time.Time
}
