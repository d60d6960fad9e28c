package allocation

import "strings"

// TieBreak es la política de desempate entre candidatos de la misma línea y nivel.
// Compare devuelve <0 si a es preferible, >0 si b es preferible, 0 si empatan.
// Es un punto de extensión: conviven la política por defecto (agotar la recepción
// más llena) y la heurística de pallet/estantería de la variante anterior del
// asignador, sin asumir cuál es la autoritativa.
type TieBreak interface {
	Name() string
	Compare(a, b Candidate) int
}

// PreferFullest prefiere la recepción con mayor cantidad restante, reduciendo
// fragmentación del inventario.
type PreferFullest struct{}

func (PreferFullest) Name() string { return "prefer_fullest" }

func (PreferFullest) Compare(a, b Candidate) int {
	return b.Remaining - a.Remaining
}

// PalletShelf reproduce la heurística de colocación por pallet y estantería del
// asignador anterior: prioriza pallets intactos, estantería 'A' y ajustes exactos;
// entre pallets intactos agota el más lleno, entre parciales toma el más chico
// que alcance.
type PalletShelf struct{}

func (PalletShelf) Name() string { return "pallet_shelf" }

func (PalletShelf) Compare(a, b Candidate) int {
	ra, rb := palletRank(a), palletRank(b)
	if ra != rb {
		return ra - rb
	}
	if ra <= 6 {
		return b.Remaining - a.Remaining
	}
	return a.Remaining - b.Remaining
}

// palletRank clasifica el candidato en la secuencia 1..8 de la heurística original.
func palletRank(c Candidate) int {
	full := c.Receipt.ReceivedQty == c.Receipt.AvailableQty
	shelfA := shelfLetter(c.Receipt.LocationName) == "A"
	switch {
	case full && shelfA && c.Open == c.Remaining:
		return 1
	case full && !shelfA && c.Open == c.Remaining:
		return 2
	case full && !shelfA && c.Open > c.Remaining:
		return 3
	case full && shelfA && c.Open > c.Remaining:
		return 4
	case !full && shelfA && c.Open >= c.Remaining:
		return 5
	case !full && !shelfA && c.Open >= c.Remaining:
		return 6
	case shelfA:
		return 7
	default:
		return 8
	}
}

// shelfLetter extrae la estantería del nombre de ubicación "ZONA-ESTANTE-NIVEL".
func shelfLetter(location string) string {
	parts := strings.Split(location, "-")
	if len(parts) < 2 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(parts[1]))
}

// TieBreakByName devuelve la política pedida por la API; desconocida o vacía cae
// a PreferFullest.
func TieBreakByName(name string) TieBreak {
	if name == (PalletShelf{}).Name() {
		return PalletShelf{}
	}
	return PreferFullest{}
}

// Pick selecciona exactamente un candidato del conjunto completo de la iteración:
// primero por id de línea ascendente (equidad entre líneas), luego nivel ascendente,
// luego la política de desempate, y como llave final id de recepción ascendente para
// que el resultado sea determinista y estable entre corridas con el mismo ledger.
func Pick(cands []Candidate, tb TieBreak) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if pickLess(c, best, tb) {
			best = c
		}
	}
	return best, true
}

func pickLess(a, b Candidate, tb TieBreak) bool {
	if a.Line.ID != b.Line.ID {
		return a.Line.ID < b.Line.ID
	}
	if a.Tier != b.Tier {
		return a.Tier < b.Tier
	}
	if d := tb.Compare(a, b); d != 0 {
		return d < 0
	}
	return a.Receipt.ID < b.Receipt.ID
}

// PickQty es la cantidad a comprometer por el pick: lo que falte de la línea o lo
// que quede en la recepción, lo que sea menor.
func PickQty(c Candidate) int {
	if c.Open < c.Remaining {
		return c.Open
	}
	return c.Remaining
}
