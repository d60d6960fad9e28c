package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/fulfillment-api/internal/domain/allocation"
)

func cand(lineID int64, tier allocation.Tier, receiptID int64, remaining, open int) allocation.Candidate {
	return allocation.Candidate{
		Line:      allocation.Line{ID: lineID},
		Receipt:   allocation.Receipt{ID: receiptID},
		Remaining: remaining,
		Tier:      tier,
		Open:      open,
	}
}

// TestPick_OrdenDeLlaves: línea asc > nivel asc > desempate > recepción asc.
func TestPick_OrdenDeLlaves(t *testing.T) {
	tb := allocation.PreferFullest{}

	// La línea menor gana aunque su candidato sea de peor nivel.
	p, ok := allocation.Pick([]allocation.Candidate{
		cand(20, allocation.TierItemID, 1, 50, 10),
		cand(10, allocation.TierSKUOnly, 2, 5, 10),
	}, tb)
	require.True(t, ok)
	assert.Equal(t, int64(10), p.Line.ID)

	// Dentro de la misma línea, el nivel menor gana.
	p, _ = allocation.Pick([]allocation.Candidate{
		cand(1, allocation.TierSKUQualifier, 7, 100, 10),
		cand(1, allocation.TierItemID, 8, 1, 10),
	}, tb)
	assert.Equal(t, int64(8), p.Receipt.ID)

	// Mismo nivel: la recepción más llena gana.
	p, _ = allocation.Pick([]allocation.Candidate{
		cand(1, allocation.TierSKUQualifier, 7, 20, 30),
		cand(1, allocation.TierSKUQualifier, 8, 50, 30),
	}, tb)
	assert.Equal(t, int64(8), p.Receipt.ID)

	// Empate total: id de recepción ascendente, estable entre corridas.
	p, _ = allocation.Pick([]allocation.Candidate{
		cand(1, allocation.TierSKUQualifier, 9, 10, 10),
		cand(1, allocation.TierSKUQualifier, 4, 10, 10),
	}, tb)
	assert.Equal(t, int64(4), p.Receipt.ID)
}

func TestPickQty_MinimoEntreAbiertoYRestante(t *testing.T) {
	assert.Equal(t, 10, allocation.PickQty(cand(1, 1, 1, 25, 10)))
	assert.Equal(t, 25, allocation.PickQty(cand(1, 1, 1, 25, 40)))
}

// TestPalletShelf_PrefierePalletIntactoEnA: la heurística alternativa prioriza
// pallets sin tocar en estantería A con ajuste exacto.
func TestPalletShelf_PrefierePalletIntactoEnA(t *testing.T) {
	tb := allocation.PalletShelf{}

	intactoA := allocation.Candidate{
		Receipt:   allocation.Receipt{ID: 1, LocationName: "Z1-A-03", ReceivedQty: 40, AvailableQty: 40},
		Remaining: 40, Open: 40, Tier: allocation.TierSKUQualifier,
	}
	intactoB := allocation.Candidate{
		Receipt:   allocation.Receipt{ID: 2, LocationName: "Z1-B-01", ReceivedQty: 40, AvailableQty: 40},
		Remaining: 40, Open: 40, Tier: allocation.TierSKUQualifier,
	}
	parcialA := allocation.Candidate{
		Receipt:   allocation.Receipt{ID: 3, LocationName: "Z1-A-07", ReceivedQty: 60, AvailableQty: 45},
		Remaining: 45, Open: 40, Tier: allocation.TierSKUQualifier,
	}

	assert.Negative(t, tb.Compare(intactoA, intactoB), "estantería A gana sobre B a igual ajuste")
	assert.Negative(t, tb.Compare(intactoA, parcialA), "pallet intacto gana sobre parcial")

	// Entre parciales en la misma estantería que alcanzan, el más chico que cubre
	// la demanda gana.
	parcialGrande := allocation.Candidate{
		Receipt:   allocation.Receipt{ID: 4, LocationName: "Z1-C-01", ReceivedQty: 60, AvailableQty: 45},
		Remaining: 45, Open: 40, Tier: allocation.TierSKUQualifier,
	}
	parcialChico := allocation.Candidate{
		Receipt:   allocation.Receipt{ID: 5, LocationName: "Z1-C-02", ReceivedQty: 60, AvailableQty: 42},
		Remaining: 42, Open: 40, Tier: allocation.TierSKUQualifier,
	}
	assert.Positive(t, tb.Compare(parcialGrande, parcialChico))
}

func TestTieBreakByName(t *testing.T) {
	assert.Equal(t, "pallet_shelf", allocation.TieBreakByName("pallet_shelf").Name())
	assert.Equal(t, "prefer_fullest", allocation.TieBreakByName("").Name())
	assert.Equal(t, "prefer_fullest", allocation.TieBreakByName("desconocida").Name())
}
