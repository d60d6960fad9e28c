package allocation

// Ledger es el agregado mutable de asignaciones de una corrida. Se pasa explícito
// (nunca estado ambiente) para que el proyector de disponibilidad y el picker sean
// testeables con ledgers sintéticos. Mantiene las filas en orden de commit y los
// acumulados por línea y por recepción.
type Ledger struct {
	rows      []Row
	byLine    map[int64]int
	byReceipt map[int64]int
}

// NewLedger construye un ledger, opcionalmente sembrado con filas preexistentes.
func NewLedger(rows ...Row) *Ledger {
	l := &Ledger{
		byLine:    make(map[int64]int),
		byReceipt: make(map[int64]int),
	}
	for _, r := range rows {
		l.Commit(r.LineID, r.ReceiptID, r.Qty)
	}
	return l
}

// Commit agrega una fila. Cantidades no positivas se descartan: el ledger nunca
// contiene filas con qty <= 0.
func (l *Ledger) Commit(lineID, receiptID int64, qty int) {
	if qty <= 0 {
		return
	}
	l.rows = append(l.rows, Row{LineID: lineID, ReceiptID: receiptID, Qty: qty})
	l.byLine[lineID] += qty
	l.byReceipt[receiptID] += qty
}

// AllocatedToLine devuelve la suma asignada a una línea.
func (l *Ledger) AllocatedToLine(lineID int64) int { return l.byLine[lineID] }

// ConsumedFromReceipt devuelve la suma consumida de una recepción.
func (l *Ledger) ConsumedFromReceipt(receiptID int64) int { return l.byReceipt[receiptID] }

// Rows devuelve las filas en orden de commit. El slice devuelto es una copia.
func (l *Ledger) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len devuelve el número de filas.
func (l *Ledger) Len() int { return len(l.rows) }
