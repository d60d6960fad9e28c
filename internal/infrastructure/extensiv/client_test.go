package extensiv

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/pkg/config"
)

// newTestServer monta un servidor falso de Extensiv: token OAuth, página de
// pedidos y allocator. tokenCalls cuenta adquisiciones para validar el caché.
func newTestServer(t *testing.T, tokenCalls *int32, allocatorStatus int, allocatorBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/AuthServer/api/Token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		require.Equal(t, http.MethodPost, r.Method)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "el token se pide con Basic auth")
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"TotalResults": 1,
			"ResourceList": []map[string]any{
				{
					"readOnly":     map[string]any{"orderId": 5001, "customerIdentifier": map[string]any{"id": 7, "name": "ACME"}},
					"referenceNum": "PO-1",
					"OrderItems": []map[string]any{
						{"readOnly": map[string]any{"orderItemId": 9001}, "itemIdentifier": map[string]any{"sku": "AB-100"}, "qty": 4},
					},
				},
			},
		})
	})

	mux.HandleFunc("/inventory", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"receiveItemId": 7001, "itemIdentifier": map[string]any{"sku": "AB-100"}, "locationName": "Z1-A-01", "receivedQty": 10, "availableQty": 8},
		})
	})

	mux.HandleFunc("/orders/5001/allocator", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		var payload allocatorPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Allocations, 1)
		assert.Equal(t, int64(9001), payload.Allocations[0].OrderItemID)
		assert.Equal(t, int64(7001), payload.Allocations[0].ReceiveItemID)
		assert.Equal(t, 4, payload.Allocations[0].Qty)
		w.WriteHeader(allocatorStatus)
		_, _ = w.Write([]byte(allocatorBody))
	})

	return httptest.NewServer(mux)
}

func newTestClient(baseURL string) *Client {
	return NewClient(config.WMSConfig{
		BaseURL:      baseURL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		UserLogin:    "user@test",
		TplGUID:      "guid-1",
		PageSize:     100,
	}, zerolog.Nop())
}

func TestClient_FetchOpenOrdersYCacheDeToken(t *testing.T) {
	var tokenCalls int32
	srv := newTestServer(t, &tokenCalls, http.StatusOK, `{}`)
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := context.Background()

	orders, err := c.FetchOpenOrders(ctx, ports.OrderSearch{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(5001), orders[0].OrderID)
	assert.Equal(t, "ACME", orders[0].CustomerName)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, "AB-100", orders[0].Lines[0].SKU)

	// Segunda llamada: el token cacheado no vuelve a pedirse
	_, err = c.FetchInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "el token debe reutilizarse mientras no expira")
}

func TestBuildOrdersRQL_MapeaEstadoYFiltros(t *testing.T) {
	c := newTestClient("https://wms.test")

	// Sin estado: pedidos abiertos por defecto
	rql := c.buildOrdersRQL(ports.OrderSearch{})
	assert.Equal(t, "readOnly.fullyAllocated==false;readOnly.status==0", rql)

	// Estado textual se traduce al código numérico del WMS
	assert.Contains(t, c.buildOrdersRQL(ports.OrderSearch{Status: "closed"}), "readOnly.status==9")
	assert.Contains(t, c.buildOrdersRQL(ports.OrderSearch{Status: "CANCELLED"}), "readOnly.status==5")
	assert.Contains(t, c.buildOrdersRQL(ports.OrderSearch{Status: "AWAITINGPICK"}), "readOnly.status==0")

	// Estado no reconocido: se omite el filtro en vez de inventar un código
	assert.NotContains(t, c.buildOrdersRQL(ports.OrderSearch{Status: "BOGUS"}), "readOnly.status")

	rql = c.buildOrdersRQL(ports.OrderSearch{CustomerID: 7, ReferenceLike: "PO-", ModifiedSince: "2026-08-01"})
	assert.Contains(t, rql, "readOnly.customerIdentifier.id==7")
	assert.Contains(t, rql, "referenceNum==PO-*")
	assert.Contains(t, rql, "readOnly.lastModifiedDate=ge=2026-08-01")
}

func TestBuildOrdersRQL_FiltrosDeConfiguracion(t *testing.T) {
	c := NewClient(config.WMSConfig{
		BaseURL:     "https://wms.test",
		FacilityIDs: []int{3, 8},
		CustomerIDs: []int{101, 205},
	}, zerolog.Nop())

	rql := c.buildOrdersRQL(ports.OrderSearch{})
	assert.Contains(t, rql, "readOnly.customerIdentifier.id=in=(101,205)")
	assert.Contains(t, rql, "readOnly.facilityIdentifier.id=in=(3,8)")

	// Un cliente explícito en la búsqueda gana sobre la lista de configuración
	rql = c.buildOrdersRQL(ports.OrderSearch{CustomerID: 7})
	assert.Contains(t, rql, "readOnly.customerIdentifier.id==7")
	assert.NotContains(t, rql, "=in=(101,205)")
}

func TestClient_FetchInventory(t *testing.T) {
	var tokenCalls int32
	srv := newTestServer(t, &tokenCalls, http.StatusOK, `{}`)
	defer srv.Close()

	receipts, err := newTestClient(srv.URL).FetchInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, int64(7001), receipts[0].ReceiptID)
	assert.Equal(t, "Z1-A-01", receipts[0].LocationName)
	assert.Equal(t, 8, receipts[0].AvailableQty)
}

func TestClient_PushAllocationsAceptado(t *testing.T) {
	var tokenCalls int32
	srv := newTestServer(t, &tokenCalls, http.StatusOK, `{"ok":true}`)
	defer srv.Close()

	items := []ports.AllocationPushItem{
		{LineID: 9001, Allocations: []ports.AllocationPush{{ReceiptID: 7001, Qty: 4}}},
	}
	outcome, err := newTestClient(srv.URL).PushAllocations(context.Background(), 5001, items)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.Equal(t, http.StatusOK, outcome.StatusCode)
}

func TestClient_PushAllocationsRechazadoNoEsError(t *testing.T) {
	var tokenCalls int32
	srv := newTestServer(t, &tokenCalls, http.StatusUnprocessableEntity, `{"errors":["lot mismatch"]}`)
	defer srv.Close()

	items := []ports.AllocationPushItem{
		{LineID: 9001, Allocations: []ports.AllocationPush{{ReceiptID: 7001, Qty: 4}}},
	}
	outcome, err := newTestClient(srv.URL).PushAllocations(context.Background(), 5001, items)
	require.NoError(t, err, "un rechazo del WMS es un dato, no un error de transporte")
	assert.False(t, outcome.Accepted)
	assert.Equal(t, http.StatusUnprocessableEntity, outcome.StatusCode)
	assert.Contains(t, outcome.Body, "lot mismatch")
}
