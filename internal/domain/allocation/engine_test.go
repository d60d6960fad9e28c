package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/fulfillment-api/internal/domain/allocation"
)

func line(id, orderID int64, sku, itemID, qualifier string, qty int) allocation.Line {
	return allocation.Line{
		ID:         id,
		OrderID:    orderID,
		Identity:   allocation.NormalizeIdentity(sku, itemID, qualifier),
		OrderedQty: qty,
	}
}

func receipt(id int64, sku, itemID, qualifier, location string, received, available int) allocation.Receipt {
	return allocation.Receipt{
		ID:           id,
		Identity:     allocation.NormalizeIdentity(sku, itemID, qualifier),
		LocationName: location,
		ReceivedQty:  received,
		AvailableQty: available,
	}
}

func run(in allocation.Input) allocation.Result {
	return allocation.NewEngine(allocation.PreferFullest{}).Run(in)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario A: la línea pide 30 de WIDGET/ROJO; hay dos recepciones del mismo
// nivel (20 y 50 disponibles). El desempate por mayor restante hace que todo
// salga de la recepción más llena; la chica queda intacta.
// ──────────────────────────────────────────────────────────────────────────────
func TestEngine_EscenarioA_DesempatePorMasLleno(t *testing.T) {
	res := run(allocation.Input{
		Lines: []allocation.Line{line(1, 900, "WIDGET", "", "RED", 30)},
		Receipts: []allocation.Receipt{
			receipt(101, "WIDGET", "", "RED", "Z1-A-01", 20, 20),
			receipt(102, "WIDGET", "", "RED", "Z1-B-02", 50, 50),
		},
	})

	require.Len(t, res.Rows, 1)
	assert.Equal(t, allocation.Row{LineID: 1, ReceiptID: 102, Qty: 30}, res.Rows[0])
	require.Len(t, res.Summaries, 1)
	assert.Equal(t, 30, res.Summaries[0].Allocated)
	assert.Zero(t, res.Summaries[0].Remaining)
	assert.False(t, res.Truncated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario B: la línea tiene item id 555 sin qualifier. La recepción con item id
// igual pero qualifier BLUE queda excluida del nivel 1 (ausente vs presente no
// coincide); se asigna por SKU desde la recepción con qualifier ausente.
// ──────────────────────────────────────────────────────────────────────────────
func TestEngine_EscenarioB_QualifierExcluyeNivel1(t *testing.T) {
	res := run(allocation.Input{
		Lines: []allocation.Line{line(2, 900, "GADGET", "555", "", 10)},
		Receipts: []allocation.Receipt{
			receipt(201, "GADGET", "555", "BLUE", "Z1-A-01", 10, 10),
			receipt(202, "GADGET", "777", "", "Z1-B-01", 10, 10),
		},
	})

	require.Len(t, res.Rows, 1)
	assert.Equal(t, allocation.Row{LineID: 2, ReceiptID: 202, Qty: 10}, res.Rows[0])
}

// Escenario B': si además los SKU no coinciden, la línea queda sin asignar y eso
// es un desenlace normal (Remaining > 0, sin error).
func TestEngine_EscenarioB_SinCandidatoQuedaAbierta(t *testing.T) {
	res := run(allocation.Input{
		Lines: []allocation.Line{line(2, 900, "GADGET", "555", "", 10)},
		Receipts: []allocation.Receipt{
			receipt(201, "OTRA-COSA", "555", "BLUE", "Z1-A-01", 10, 10),
		},
	})

	assert.Empty(t, res.Rows)
	require.Len(t, res.Summaries, 1)
	assert.Equal(t, 10, res.Summaries[0].Remaining)
	assert.False(t, res.Truncated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario C / idempotencia: recomputar dos veces con entradas idénticas produce
// exactamente las mismas filas y el mismo resumen.
// ──────────────────────────────────────────────────────────────────────────────
func TestEngine_EscenarioC_Idempotencia(t *testing.T) {
	in := allocation.Input{
		Lines: []allocation.Line{
			line(1, 900, "WIDGET", "", "RED", 30),
			line(2, 900, "GADGET", "555", "", 10),
			line(3, 901, "WIDGET", "", "", 80),
		},
		Receipts: []allocation.Receipt{
			receipt(101, "WIDGET", "", "RED", "Z1-A-01", 20, 20),
			receipt(102, "WIDGET", "", "RED", "Z1-B-02", 50, 50),
			receipt(103, "WIDGET", "", "", "Z1-C-01", 60, 55),
			receipt(202, "GADGET", "777", "", "Z1-B-01", 10, 10),
		},
	}

	primera := run(in)
	segunda := run(in)

	assert.Equal(t, primera.Rows, segunda.Rows)
	assert.Equal(t, primera.Summaries, segunda.Summaries)
	assert.Equal(t, primera.Iterations, segunda.Iterations)
}

// TestEngine_PrecedenciaDeNiveles: un candidato de nivel 1 se agota por completo
// antes de tocar el candidato que solo existe en nivel 3.
func TestEngine_PrecedenciaDeNiveles(t *testing.T) {
	res := run(allocation.Input{
		Lines: []allocation.Line{line(1, 900, "A1", "100", "Q1", 8)},
		Receipts: []allocation.Receipt{
			// Nivel 1 por item id + qualifier, aunque el SKU no coincida.
			receipt(301, "ZZ", "100", "Q1", "Z1-A-01", 5, 5),
			// Solo nivel 3: SKU igual pero qualifier distinto.
			receipt(302, "A1", "", "OTRO", "Z1-B-01", 10, 10),
		},
	})

	require.Len(t, res.Rows, 2)
	assert.Equal(t, allocation.Row{LineID: 1, ReceiptID: 301, Qty: 5}, res.Rows[0])
	assert.Equal(t, allocation.Row{LineID: 1, ReceiptID: 302, Qty: 3}, res.Rows[1])
}

// TestEngine_FallbackNivel3ConQualifierDistinto: sin candidatos de nivel 1 ni 2,
// el SKU igual con qualifier diferente sí recibe asignación vía nivel 3.
func TestEngine_FallbackNivel3ConQualifierDistinto(t *testing.T) {
	res := run(allocation.Input{
		Lines: []allocation.Line{line(1, 900, "WIDGET", "", "RED", 10)},
		Receipts: []allocation.Receipt{
			receipt(401, "WIDGET", "", "VERDE", "Z1-A-01", 15, 15),
		},
	})

	require.Len(t, res.Rows, 1)
	assert.Equal(t, allocation.Row{LineID: 1, ReceiptID: 401, Qty: 10}, res.Rows[0])
}

// TestEngine_Conservacion: ninguna línea recibe más de lo pedido y ninguna
// recepción entrega más de lo disponible, incluso con demanda cruzada sobre las
// mismas recepciones.
func TestEngine_ConservacionYNoSobreasignacion(t *testing.T) {
	lines := []allocation.Line{
		line(1, 900, "WIDGET", "", "", 40),
		line(2, 900, "WIDGET", "", "", 25),
		line(3, 901, "WIDGET", "", "", 70),
	}
	receipts := []allocation.Receipt{
		receipt(501, "WIDGET", "", "", "Z1-A-01", 30, 30),
		receipt(502, "WIDGET", "", "", "Z1-B-01", 50, 45),
		receipt(503, "WIDGET", "", "", "Z1-C-01", 10, 10),
	}
	res := run(allocation.Input{Lines: lines, Receipts: receipts})

	porLinea := map[int64]int{}
	porRecepcion := map[int64]int{}
	for _, r := range res.Rows {
		require.Positive(t, r.Qty, "el ledger no admite filas con qty <= 0")
		porLinea[r.LineID] += r.Qty
		porRecepcion[r.ReceiptID] += r.Qty
	}
	for _, ln := range lines {
		assert.LessOrEqual(t, porLinea[ln.ID], ln.OrderedQty)
	}
	for _, rc := range receipts {
		assert.LessOrEqual(t, porRecepcion[rc.ID], rc.AvailableQty)
	}

	// Oferta total 85 < demanda total 135: el sobrante queda como demanda abierta.
	totalAsignado := 0
	totalRestante := 0
	for _, s := range res.Summaries {
		totalAsignado += s.Allocated
		totalRestante += s.Remaining
	}
	assert.Equal(t, 85, totalAsignado)
	assert.Equal(t, 50, totalRestante)
	assert.False(t, res.Truncated)
}

// TestEngine_EquidadPorLinea: el orden primario es id de línea ascendente, no la
// calidad global del candidato; la línea menor se procesa primero.
func TestEngine_EquidadPorLinea(t *testing.T) {
	res := run(allocation.Input{
		Lines: []allocation.Line{
			line(7, 900, "WIDGET", "", "", 10),
			line(3, 901, "WIDGET", "", "", 10),
		},
		Receipts: []allocation.Receipt{
			receipt(601, "WIDGET", "", "", "Z1-A-01", 10, 10),
		},
	})

	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(3), res.Rows[0].LineID, "la línea con id menor consume primero")
}

// TestEngine_AlcanceGlobalVsSeleccionado: las filas previas de líneas fuera del
// alcance descuentan disponibilidad solo en alcance global.
func TestEngine_AlcanceGlobalVsSeleccionado(t *testing.T) {
	lines := []allocation.Line{line(1, 900, "WIDGET", "", "", 10)}
	receipts := []allocation.Receipt{receipt(701, "WIDGET", "", "", "Z1-A-01", 10, 10)}
	prior := []allocation.Row{{LineID: 99, ReceiptID: 701, Qty: 6}}

	sel := run(allocation.Input{Lines: lines, Receipts: receipts, PriorRows: prior, Scope: allocation.ScopeSelected})
	require.Len(t, sel.Rows, 1)
	assert.Equal(t, 10, sel.Rows[0].Qty)

	glob := run(allocation.Input{Lines: lines, Receipts: receipts, PriorRows: prior, Scope: allocation.ScopeGlobal})
	require.Len(t, glob.Rows, 1)
	assert.Equal(t, 4, glob.Rows[0].Qty)
	assert.Equal(t, 6, glob.Summaries[0].Remaining)
}

// TestEngine_TechoDeIteraciones: el techo fuerza la terminación y se reporta como
// resultado parcial (flag), no como error.
func TestEngine_TechoDeIteraciones(t *testing.T) {
	engine := allocation.NewEngine(allocation.PreferFullest{}).WithMaxIterations(1)

	res := engine.Run(allocation.Input{
		Lines: []allocation.Line{line(1, 900, "WIDGET", "", "", 30)},
		Receipts: []allocation.Receipt{
			receipt(801, "WIDGET", "", "", "Z1-A-01", 20, 20),
			receipt(802, "WIDGET", "", "", "Z1-B-01", 15, 15),
		},
	})

	assert.True(t, res.Truncated)
	assert.Equal(t, 1, res.Iterations)
	require.Len(t, res.Rows, 1)
	require.Len(t, res.Summaries, 1)
	assert.Equal(t, 10, res.Summaries[0].Remaining, "lo comprometido hasta el corte es válido")
}

// TestEngine_EntradaVacia: sin líneas no hay iteraciones ni filas.
func TestEngine_EntradaVacia(t *testing.T) {
	res := run(allocation.Input{})

	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Summaries)
	assert.Zero(t, res.Iterations)
	assert.False(t, res.Truncated)
}
