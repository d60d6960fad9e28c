package allocation

// Availability proyecta la cantidad asignable restante por recepción:
// disponible menos lo ya comprometido. Según el alcance, las filas previas de líneas
// fuera de la recomputación descuentan (global) o no (selected). Se consulta de nuevo
// en cada iteración del loop porque cada commit del picker la cambia; no cachear.
type Availability struct {
	prior *Ledger // asignaciones preexistentes de líneas fuera del alcance
	work  *Ledger // asignaciones comprometidas por la corrida actual
	scope Scope
}

// NewAvailability construye el proyector. prior puede ser nil (sin filas externas).
func NewAvailability(prior, work *Ledger, scope Scope) Availability {
	if prior == nil {
		prior = NewLedger()
	}
	return Availability{prior: prior, work: work, scope: scope}
}

// Remaining devuelve la cantidad asignable restante de la recepción. Solo lectura.
func (a Availability) Remaining(r Receipt) int {
	rem := r.AvailableQty - a.work.ConsumedFromReceipt(r.ID)
	if a.scope == ScopeGlobal {
		rem -= a.prior.ConsumedFromReceipt(r.ID)
	}
	return rem
}

// Candidate es una recepción que podría satisfacer una línea abierta, con su nivel
// de prioridad y la cantidad restante de la recepción al momento de generarse.
type Candidate struct {
	Line      Line
	Receipt   Receipt
	Remaining int
	Tier      Tier
	Open      int // cantidad abierta de la línea en esta iteración
}

// matchTier evalúa los niveles altos (1 y 2) para un par línea-recepción.
// Nivel 1: identificador numérico + qualifier; si ningún lado tiene forma numérica,
// cae a coincidencia textual exacta + qualifier dentro del mismo nivel.
// Nivel 2: SKU + qualifier.
func matchTier(l, r Identity) (Tier, bool) {
	if l.QualifierMatches(r) {
		if l.HasItemID && r.HasItemID && l.ItemID == r.ItemID {
			return TierItemID, true
		}
		if !l.HasItemID && !r.HasItemID && l.RawItemID != "" && l.RawItemID == r.RawItemID {
			return TierItemID, true
		}
		if l.SKU != "" && l.SKU == r.SKU {
			return TierSKUQualifier, true
		}
	}
	return 0, false
}

// GenerateCandidates produce el conjunto de candidatos de la iteración actual para
// todas las líneas con cantidad abierta. El nivel 3 (solo SKU, qualifier ignorado)
// es asimétrico a propósito: solo entra para una línea cuando los niveles 1 y 2 no
// produjeron ningún candidato, de modo que una coincidencia que respeta qualifier
// nunca se descarta si existe.
func GenerateCandidates(lines []Line, receipts []Receipt, avail Availability, work *Ledger) []Candidate {
	var out []Candidate
	for _, ln := range lines {
		open := ln.OrderedQty - work.AllocatedToLine(ln.ID)
		if open <= 0 {
			continue
		}

		var high []Candidate
		for _, rc := range receipts {
			rem := avail.Remaining(rc)
			if rem <= 0 {
				continue
			}
			if tier, ok := matchTier(ln.Identity, rc.Identity); ok {
				high = append(high, Candidate{Line: ln, Receipt: rc, Remaining: rem, Tier: tier, Open: open})
			}
		}
		if len(high) > 0 {
			out = append(out, high...)
			continue
		}

		// Fallback nivel 3: mismo SKU, qualifier ignorado.
		for _, rc := range receipts {
			rem := avail.Remaining(rc)
			if rem <= 0 {
				continue
			}
			if ln.Identity.SKU != "" && ln.Identity.SKU == rc.Identity.SKU {
				out = append(out, Candidate{Line: ln, Receipt: rc, Remaining: rem, Tier: TierSKUOnly, Open: open})
			}
		}
	}
	return out
}
