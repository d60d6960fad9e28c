package extensiv

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
)

// Los tenants de Extensiv devuelven los mismos recursos con formas distintas:
// array plano, {ResourceList: [...]}, HAL {_embedded: {rel: [...]}} o {data: [...]}.
// Además los campos de solo lectura a veces vienen envueltos en readOnly/ReadOnly.
// Este archivo tolera todas esas formas; el resto del cliente trabaja con los
// tipos del puerto ya normalizados.

const (
	relOrder = "http://api.3plCentral.com/rels/orders/order"
	relItem  = "http://api.3plCentral.com/rels/orders/item"
)

// firstArray extrae el primer array de cualquiera de las formas de respuesta conocidas.
func firstArray(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		for _, key := range []string{"ResourceList", "data", "items", "Items", "records", "value"} {
			if arr, ok := t[key].([]any); ok {
				return arr
			}
		}
		if em, ok := t["_embedded"].(map[string]any); ok {
			if arr, ok := em[relOrder].([]any); ok {
				return arr
			}
			for _, ev := range em {
				if arr, ok := ev.([]any); ok {
					return arr
				}
			}
		}
		for _, ev := range t {
			if arr, ok := ev.([]any); ok {
				return arr
			}
		}
	}
	return nil
}

// readOnly devuelve el objeto readOnly/ReadOnly del recurso, o el recurso mismo si no existe.
func readOnly(m map[string]any) map[string]any {
	if ro, ok := m["readOnly"].(map[string]any); ok {
		return ro
	}
	if ro, ok := m["ReadOnly"].(map[string]any); ok {
		return ro
	}
	return m
}

// itemsFromOrder extrae las líneas de un pedido en cualquiera de sus formas.
func itemsFromOrder(ord map[string]any) []any {
	if em, ok := ord["_embedded"].(map[string]any); ok {
		if arr, ok := em[relItem].([]any); ok {
			return arr
		}
	}
	for _, key := range []string{"OrderItems", "orderItems", "Items", "items"} {
		if arr, ok := ord[key].([]any); ok {
			return arr
		}
	}
	return nil
}

// str lee el primer valor string presente entre las llaves dadas.
func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok {
			return s
		}
	}
	return ""
}

// i64 lee el primer valor numérico presente entre las llaves dadas.
// Los números JSON llegan como float64; los IDs como string también se aceptan.
func i64(m map[string]any, keys ...string) int64 {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return int64(v)
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

func dec(m map[string]any, keys ...string) decimal.Decimal {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

func obj(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		if o, ok := m[k].(map[string]any); ok {
			return o
		}
	}
	return nil
}

// normalizeOrder convierte un pedido crudo (cualquier forma) al tipo del puerto.
func normalizeOrder(raw any) (ports.WMSOrder, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return ports.WMSOrder{}, false
	}
	ro := readOnly(m)

	order := ports.WMSOrder{
		OrderID:      i64(ro, "orderId", "OrderId"),
		ReferenceNum: str(m, "referenceNum", "ReferenceNum"),
	}
	if order.OrderID == 0 {
		order.OrderID = i64(m, "orderId", "OrderId")
	}
	if cust := obj(ro, "customerIdentifier", "CustomerIdentifier"); cust != nil {
		order.CustomerID = i64(cust, "id", "Id")
		order.CustomerName = str(cust, "name", "Name")
	}
	if order.OrderID == 0 {
		return ports.WMSOrder{}, false
	}

	for _, rawItem := range itemsFromOrder(m) {
		if line, ok := normalizeOrderLine(rawItem); ok {
			order.Lines = append(order.Lines, line)
		}
	}
	return order, true
}

// normalizeOrderLine convierte una línea cruda al tipo del puerto.
// Una línea sin orderItemId se descarta: sin ID estable no hay upsert posible.
func normalizeOrderLine(raw any) (ports.WMSOrderLine, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return ports.WMSOrderLine{}, false
	}
	ro := readOnly(m)

	line := ports.WMSOrderLine{
		LineID:    i64(ro, "orderItemId", "OrderItemId"),
		Qualifier: str(m, "qualifier", "Qualifier"),
		Qty:       int(i64(m, "qty", "Qty", "orderedQty", "OrderedQty")),
		UnitPrice: dec(m, "unitPrice", "UnitPrice"),
	}
	if line.LineID == 0 {
		line.LineID = i64(m, "orderItemId", "OrderItemId")
	}
	if ident := obj(m, "itemIdentifier", "ItemIdentifier"); ident != nil {
		line.SKU = str(ident, "sku", "Sku", "SKU")
		line.ItemID = str(ident, "itemCode", "ItemCode")
		if line.ItemID == "" {
			// algunos tenants exponen el id numérico del artículo
			if id := i64(ident, "id", "Id"); id != 0 {
				line.ItemID = strconv.FormatInt(id, 10)
			}
		}
	}
	if line.SKU == "" {
		line.SKU = str(m, "sku", "SKU", "Sku")
	}
	if unit := obj(ro, "unitIdentifier", "UnitIdentifier"); unit != nil {
		line.UnitID = i64(unit, "id", "Id")
		line.UnitName = str(unit, "name", "Name")
	}
	if line.LineID == 0 {
		return ports.WMSOrderLine{}, false
	}
	return line, true
}

// normalizeReceipt convierte una fila de inventario cruda al tipo del puerto.
func normalizeReceipt(raw any) (ports.WMSReceipt, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return ports.WMSReceipt{}, false
	}
	ro := readOnly(m)

	rec := ports.WMSReceipt{
		ReceiptID:    i64(ro, "receiveItemId", "ReceiveItemId", "ReceiveItemID"),
		Qualifier:    str(m, "qualifier", "Qualifier"),
		ReceivedQty:  int(i64(m, "receivedQty", "ReceivedQty", "onHand", "OnHand", "qtyOnHand")),
		AvailableQty: int(i64(m, "availableQty", "AvailableQty", "available", "Available")),
	}
	if rec.ReceiptID == 0 {
		rec.ReceiptID = i64(m, "receiveItemId", "ReceiveItemId", "ReceiveItemID")
	}
	if ident := obj(m, "itemIdentifier", "ItemIdentifier"); ident != nil {
		rec.SKU = str(ident, "sku", "Sku", "SKU")
		rec.ItemID = str(ident, "itemCode", "ItemCode")
		if rec.ItemID == "" {
			if id := i64(ident, "id", "Id"); id != 0 {
				rec.ItemID = strconv.FormatInt(id, 10)
			}
		}
	}
	if rec.SKU == "" {
		rec.SKU = str(m, "sku", "SKU", "Sku", "itemCode", "ItemCode")
	}
	if rec.ItemID == "" {
		rec.ItemID = str(m, "itemId", "ItemID", "ItemId")
	}
	if loc := obj(m, "locationIdentifier", "LocationIdentifier"); loc != nil {
		rec.LocationName = str(loc, "name", "Name")
		if rec.LocationName == "" {
			if nk := obj(loc, "nameKey", "NameKey"); nk != nil {
				rec.LocationName = str(nk, "name", "Name")
			}
		}
	}
	if rec.LocationName == "" {
		rec.LocationName = str(m, "locationName", "LocationName", "location", "Location")
	}
	if rec.ReceiptID == 0 {
		return ports.WMSReceipt{}, false
	}
	return rec, true
}
