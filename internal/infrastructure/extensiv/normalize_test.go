package extensiv

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Los tenants de Extensiv devuelven el mismo recurso con tres formas distintas;
// estos tests fijan que la normalización las tolera todas.

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestFirstArray_FormasDeRespuesta(t *testing.T) {
	plano := decode(t, `[{"a":1},{"a":2}]`)
	assert.Len(t, firstArray(plano), 2, "array plano")

	resourceList := decode(t, `{"TotalResults":2,"ResourceList":[{"a":1},{"a":2}]}`)
	assert.Len(t, firstArray(resourceList), 2, "ResourceList")

	hal := decode(t, `{"_embedded":{"http://api.3plCentral.com/rels/orders/order":[{"a":1}]}}`)
	assert.Len(t, firstArray(hal), 1, "HAL _embedded")

	vacio := decode(t, `{"TotalResults":0}`)
	assert.Empty(t, firstArray(vacio), "sin arrays")
}

func TestNormalizeOrder_FormaHAL(t *testing.T) {
	raw := decode(t, `{
		"readOnly": {
			"orderId": 5001,
			"customerIdentifier": {"id": 77, "name": "ACME CO"}
		},
		"referenceNum": "PO-1234",
		"_embedded": {
			"http://api.3plCentral.com/rels/orders/item": [
				{
					"readOnly": {"orderItemId": 9001, "unitIdentifier": {"id": 3, "name": "Each"}},
					"itemIdentifier": {"sku": "ab-100", "id": 42},
					"qualifier": "LOTE-A",
					"qty": 12,
					"unitPrice": 4.5
				}
			]
		}
	}`)

	order, ok := normalizeOrder(raw)
	require.True(t, ok)
	assert.Equal(t, int64(5001), order.OrderID)
	assert.Equal(t, int64(77), order.CustomerID)
	assert.Equal(t, "ACME CO", order.CustomerName)
	assert.Equal(t, "PO-1234", order.ReferenceNum)

	require.Len(t, order.Lines, 1)
	line := order.Lines[0]
	assert.Equal(t, int64(9001), line.LineID)
	assert.Equal(t, "ab-100", line.SKU)
	assert.Equal(t, "42", line.ItemID, "sin itemCode se usa el id numérico del artículo")
	assert.Equal(t, "LOTE-A", line.Qualifier)
	assert.Equal(t, 12, line.Qty)
	assert.Equal(t, int64(3), line.UnitID)
	assert.Equal(t, "Each", line.UnitName)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromFloat(4.5)))
}

func TestNormalizeOrder_FormaPascalPlana(t *testing.T) {
	raw := decode(t, `{
		"OrderId": 5002,
		"ReferenceNum": "PO-9",
		"OrderItems": [
			{"OrderItemId": 9101, "SKU": "XYZ", "Qualifier": "", "OrderedQty": 3}
		]
	}`)

	order, ok := normalizeOrder(raw)
	require.True(t, ok)
	assert.Equal(t, int64(5002), order.OrderID)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(9101), order.Lines[0].LineID)
	assert.Equal(t, "XYZ", order.Lines[0].SKU)
	assert.Equal(t, 3, order.Lines[0].Qty)
}

func TestNormalizeOrder_SinOrderIDSeDescarta(t *testing.T) {
	raw := decode(t, `{"referenceNum":"PO-X"}`)
	_, ok := normalizeOrder(raw)
	assert.False(t, ok)
}

func TestNormalizeOrderLine_SinLineIDSeDescarta(t *testing.T) {
	raw := decode(t, `{"itemIdentifier":{"sku":"AB"},"qty":5}`)
	_, ok := normalizeOrderLine(raw)
	assert.False(t, ok, "una línea sin orderItemId no tiene identidad estable")
}

func TestNormalizeReceipt_FormasDeUbicacion(t *testing.T) {
	anidada := decode(t, `{
		"receiveItemId": 7001,
		"itemIdentifier": {"sku": "ab-100", "itemCode": "555"},
		"qualifier": "LOTE-A",
		"locationIdentifier": {"nameKey": {"name": "Z1-A-03"}},
		"receivedQty": 40,
		"availableQty": 25
	}`)
	rec, ok := normalizeReceipt(anidada)
	require.True(t, ok)
	assert.Equal(t, int64(7001), rec.ReceiptID)
	assert.Equal(t, "ab-100", rec.SKU)
	assert.Equal(t, "555", rec.ItemID)
	assert.Equal(t, "Z1-A-03", rec.LocationName)
	assert.Equal(t, 40, rec.ReceivedQty)
	assert.Equal(t, 25, rec.AvailableQty)

	plana := decode(t, `{
		"ReceiveItemID": 7002,
		"SKU": "CD-200",
		"LocationName": "Z2-B-01",
		"OnHand": 10,
		"Available": 10
	}`)
	rec, ok = normalizeReceipt(plana)
	require.True(t, ok)
	assert.Equal(t, int64(7002), rec.ReceiptID)
	assert.Equal(t, "CD-200", rec.SKU)
	assert.Equal(t, "Z2-B-01", rec.LocationName)
	assert.Equal(t, 10, rec.ReceivedQty)
	assert.Equal(t, 10, rec.AvailableQty)
}

func TestNormalizeReceipt_SinReceiptIDSeDescarta(t *testing.T) {
	raw := decode(t, `{"sku":"AB","availableQty":5}`)
	_, ok := normalizeReceipt(raw)
	assert.False(t, ok)
}
