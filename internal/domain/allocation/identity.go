// Package allocation implementa el motor de asignación sugerida: empareja líneas de
// pedido abiertas con recepciones de inventario disponibles bajo un esquema de
// coincidencia por niveles (tiers), consume cantidad de forma greedy y converge a un
// plan estable que es seguro recomputar (idempotente) y acotar por alcance.
package allocation

import (
	"strconv"
	"strings"
)

// Identity es la identidad canónica de una línea o recepción para el matching.
// Todos los campos de texto van en mayúsculas y sin espacios laterales; vacío = ausente.
// ItemID numérico se distingue de ausente con HasItemID: cero ES un identificador válido.
type Identity struct {
	SKU       string
	ItemID    int64
	HasItemID bool
	RawItemID string // forma textual del identificador; usada cuando no hay forma numérica
	Qualifier string // "" = sin qualifier
}

// NormalizeIdentity canonicaliza las tres llaves de matching. Función pura; nunca falla:
// un identificador con pinta numérica pero mal formado queda como ausente-numérico con
// el texto retenido en RawItemID, jamás como cero.
func NormalizeIdentity(sku, rawItemID, qualifier string) Identity {
	id := Identity{
		SKU:       strings.ToUpper(strings.TrimSpace(sku)),
		RawItemID: strings.ToUpper(strings.TrimSpace(rawItemID)),
		Qualifier: strings.ToUpper(strings.TrimSpace(qualifier)),
	}
	if id.RawItemID != "" {
		if n, err := strconv.ParseInt(id.RawItemID, 10, 64); err == nil {
			id.ItemID = n
			id.HasItemID = true
		}
	}
	return id
}

// QualifierMatches implementa la regla de qualifier: coinciden si ambos están
// presentes e iguales, o si ambos están ausentes.
func (a Identity) QualifierMatches(b Identity) bool {
	return a.Qualifier == b.Qualifier
}
