package allocation

import "sort"

// DefaultMaxIterations es el techo duro del loop de punto fijo. Cada iteración
// compromete exactamente un pick, así que también acota el número de filas de una
// corrida. Valor heredado del asignador batch original.
const DefaultMaxIterations = 20000

// Engine ejecuta el loop de punto fijo: generar candidatos, elegir un pick,
// comprometerlo y volver a escanear, hasta que ninguna línea tenga cantidad abierta
// o no exista candidato. Secuencial por diseño: cada commit cambia la entrada de la
// siguiente iteración.
type Engine struct {
	tieBreak      TieBreak
	maxIterations int
}

// NewEngine construye el motor con la política de desempate dada.
func NewEngine(tb TieBreak) *Engine {
	if tb == nil {
		tb = PreferFullest{}
	}
	return &Engine{tieBreak: tb, maxIterations: DefaultMaxIterations}
}

// WithMaxIterations ajusta el techo de iteraciones (para tests y corridas acotadas).
func (e *Engine) WithMaxIterations(n int) *Engine {
	if n > 0 {
		e.maxIterations = n
	}
	return e
}

// Input es la entrada de una corrida: demanda, oferta y las filas preexistentes del
// ledger que pertenecen a líneas FUERA del alcance (las del alcance ya fueron
// borradas por el reset idempotente antes de correr el motor).
type Input struct {
	Lines     []Line
	Receipts  []Receipt
	PriorRows []Row
	Scope     Scope
}

// LineSummary es la proyección por línea: asignado vs restante.
type LineSummary struct {
	LineID    int64
	OrderID   int64
	SKU       string
	Ordered   int
	Allocated int
	Remaining int
}

// Result es el resultado de una corrida. Remaining > 0 en una línea es un desenlace
// normal de negocio, no un error. Truncated distingue "explorado por completo,
// parcialmente satisfacible" de "la búsqueda se cortó por el techo de iteraciones".
type Result struct {
	Rows       []Row
	Summaries  []LineSummary
	Iterations int
	Truncated  bool
}

// Run ejecuta el loop hasta el punto fijo. No tiene efectos fuera del resultado:
// el ledger de trabajo nace vacío y las entradas no se mutan. Corridas repetidas
// con la misma entrada producen resultados idénticos fila por fila.
func (e *Engine) Run(in Input) Result {
	lines := make([]Line, len(in.Lines))
	copy(lines, in.Lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })

	work := NewLedger()
	avail := NewAvailability(NewLedger(in.PriorRows...), work, in.Scope)

	iterations := 0
	truncated := false
	for {
		if iterations >= e.maxIterations {
			truncated = true
			break
		}
		cands := GenerateCandidates(lines, in.Receipts, avail, work)
		pick, ok := Pick(cands, e.tieBreak)
		if !ok {
			break
		}
		work.Commit(pick.Line.ID, pick.Receipt.ID, PickQty(pick))
		iterations++
	}

	return Result{
		Rows:       work.Rows(),
		Summaries:  Summarize(lines, work),
		Iterations: iterations,
		Truncated:  truncated,
	}
}

// Summarize proyecta el ledger por línea, en orden ascendente de id de línea.
func Summarize(lines []Line, ledger *Ledger) []LineSummary {
	out := make([]LineSummary, 0, len(lines))
	for _, ln := range lines {
		alloc := ledger.AllocatedToLine(ln.ID)
		out = append(out, LineSummary{
			LineID:    ln.ID,
			OrderID:   ln.OrderID,
			SKU:       ln.Identity.SKU,
			Ordered:   ln.OrderedQty,
			Allocated: alloc,
			Remaining: ln.OrderedQty - alloc,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out
}
