package extensiv

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/pkg/config"
)

var _ ports.WMSClient = (*Client)(nil)

// tokenSkew margen antes de la expiración real para renovar el token.
const tokenSkew = 60 * time.Second

// Client adaptador HTTP hacia la API REST de Extensiv (3PL Central).
// Maneja token OAuth client-credentials con caché, paginación de pedidos
// y la tolerancia de formas de payload entre tenants.
type Client struct {
	cfg  config.WMSConfig
	http *http.Client
	log  zerolog.Logger

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewClient construye el cliente con la configuración WMS.
func NewClient(cfg config.WMSConfig, log zerolog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

// FetchOpenOrders consulta pedidos abiertos y no asignados, paginando hasta
// agotar resultados o alcanzar MaxPages.
func (c *Client) FetchOpenOrders(ctx context.Context, search ports.OrderSearch) ([]ports.WMSOrder, error) {
	pageSize := search.PageSize
	if pageSize <= 0 {
		pageSize = c.cfg.PageSize
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	maxPages := search.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}

	rql := c.buildOrdersRQL(search)
	var orders []ports.WMSOrder
	for pg := 1; pg <= maxPages; pg++ {
		raw, err := c.getOrdersPage(ctx, pageSize, pg, rql)
		if err != nil {
			return nil, fmt.Errorf("consultar pedidos página %d: %w", pg, err)
		}
		page := firstArray(raw)
		if len(page) == 0 {
			break
		}
		for _, rawOrder := range page {
			if order, ok := normalizeOrder(rawOrder); ok {
				orders = append(orders, order)
			}
		}
		if len(page) < pageSize {
			break
		}
	}
	c.log.Debug().Int("orders", len(orders)).Msg("pedidos abiertos consultados del WMS")
	return orders, nil
}

// FetchOrdersByIDs consulta pedidos concretos por ID. Un ID inexistente se omite
// del resultado sin error.
func (c *Client) FetchOrdersByIDs(ctx context.Context, orderIDs []int64) ([]ports.WMSOrder, error) {
	var orders []ports.WMSOrder
	for _, id := range orderIDs {
		raw, err := c.getOrdersPage(ctx, 1, 1, fmt.Sprintf("readOnly.orderId==%d", id))
		if err != nil {
			return nil, fmt.Errorf("consultar pedido %d: %w", id, err)
		}
		page := firstArray(raw)
		if len(page) == 0 {
			c.log.Warn().Int64("order_id", id).Msg("pedido no encontrado en el WMS")
			continue
		}
		if order, ok := normalizeOrder(page[0]); ok {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// FetchInventory consulta el snapshot de inventario. Los tenants exponen el
// recurso bajo rutas distintas, así que se prueban en orden hasta obtener filas.
func (c *Client) FetchInventory(ctx context.Context) ([]ports.WMSReceipt, error) {
	paths := []string{"/inventory", "/api/v1/inventory", "/api/inventory", "/items/inventory"}

	var lastErr error
	for _, path := range paths {
		raw, err := c.getJSON(ctx, c.baseURL()+path, nil)
		if err != nil {
			lastErr = err
			continue
		}
		rows := firstArray(raw)
		if len(rows) == 0 {
			continue
		}
		var receipts []ports.WMSReceipt
		for _, rawRow := range rows {
			if rec, ok := normalizeReceipt(rawRow); ok {
				receipts = append(receipts, rec)
			}
		}
		c.log.Debug().Int("receipts", len(receipts)).Str("path", path).Msg("inventario consultado del WMS")
		return receipts, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("consultar inventario: %w", lastErr)
	}
	return nil, nil
}

// PushAllocations envía las asignaciones de un pedido al allocator del WMS.
// Intenta PUT y, si el tenant responde 404/405/501, reintenta con POST.
// Un rechazo del WMS se reporta en el outcome, no como error.
func (c *Client) PushAllocations(ctx context.Context, orderID int64, items []ports.AllocationPushItem) (*ports.PushOutcome, error) {
	payload := allocatorPayload{Allocations: []allocatorRow{}}
	for _, item := range items {
		for _, a := range item.Allocations {
			payload.Allocations = append(payload.Allocations, allocatorRow{
				OrderItemID:   item.LineID,
				ReceiveItemID: a.ReceiptID,
				Qty:           a.Qty,
			})
		}
	}

	endpoint := fmt.Sprintf("%s/orders/%d/allocator", c.baseURL(), orderID)
	status, body, err := c.sendJSON(ctx, http.MethodPut, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("push allocator pedido %d: %w", orderID, err)
	}
	if status == http.StatusNotFound || status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, body, err = c.sendJSON(ctx, http.MethodPost, endpoint, payload)
		if err != nil {
			return nil, fmt.Errorf("push allocator pedido %d (POST): %w", orderID, err)
		}
	}

	outcome := &ports.PushOutcome{
		StatusCode: status,
		Accepted:   status >= 200 && status < 300,
		Body:       body,
	}
	if !outcome.Accepted {
		c.log.Warn().Int64("order_id", orderID).Int("status", status).Msg("el WMS rechazó el push de asignaciones")
	}
	return outcome, nil
}

// statusRQLCodes traduce el estado textual al código numérico del WMS.
// OPEN y AWAITINGPICK comparten código; un estado no reconocido omite el filtro.
var statusRQLCodes = map[string]int{
	"OPEN":         0,
	"AWAITINGPICK": 0,
	"CANCELLED":    5,
	"CLOSED":       9,
}

func (c *Client) buildOrdersRQL(search ports.OrderSearch) string {
	// fullyAllocated=false excluye pedidos ya asignados
	clauses := []string{"readOnly.fullyAllocated==false"}
	status := strings.ToUpper(strings.TrimSpace(search.Status))
	if status == "" {
		clauses = append(clauses, "readOnly.status==0")
	} else if code, ok := statusRQLCodes[status]; ok {
		clauses = append(clauses, fmt.Sprintf("readOnly.status==%d", code))
	}
	if search.CustomerID > 0 {
		clauses = append(clauses, fmt.Sprintf("readOnly.customerIdentifier.id==%d", search.CustomerID))
	} else if len(c.cfg.CustomerIDs) > 0 {
		clauses = append(clauses, "readOnly.customerIdentifier.id=in=("+joinIDs(c.cfg.CustomerIDs)+")")
	}
	if len(c.cfg.FacilityIDs) > 0 {
		clauses = append(clauses, "readOnly.facilityIdentifier.id=in=("+joinIDs(c.cfg.FacilityIDs)+")")
	}
	if search.ReferenceLike != "" {
		clauses = append(clauses, fmt.Sprintf("referenceNum==%s*", search.ReferenceLike))
	}
	if search.ModifiedSince != "" {
		clauses = append(clauses, fmt.Sprintf("readOnly.lastModifiedDate=ge=%s", search.ModifiedSince))
	}
	return strings.Join(clauses, ";")
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	return strings.Join(parts, ",")
}

func (c *Client) getOrdersPage(ctx context.Context, pageSize, pageNum int, rql string) (any, error) {
	params := url.Values{}
	params.Set("pgsiz", fmt.Sprint(pageSize))
	params.Set("pgnum", fmt.Sprint(pageNum))
	params.Set("detail", "OrderItems")
	params.Set("itemdetail", "All")
	if rql != "" {
		params.Set("rql", rql)
	}
	return c.getJSON(ctx, c.baseURL()+"/orders", params)
}

func (c *Client) baseURL() string {
	return strings.TrimRight(c.cfg.BaseURL, "/")
}

// bearerToken devuelve el token en caché o adquiere uno nuevo si expiró.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	authURL := c.cfg.AuthURL
	if authURL == "" {
		authURL = c.baseURL() + "/AuthServer/api/Token"
	}
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	if c.cfg.UserLogin != "" {
		form.Set("user_login", c.cfg.UserLogin)
	}
	if c.cfg.TplGUID != "" {
		form.Set("tplguid", c.cfg.TplGUID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("crear request de token: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("solicitar token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token HTTP %d: %s", resp.StatusCode, string(body))
	}
	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decodificar token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("respuesta de token sin access_token")
	}

	c.token = tok.AccessToken
	expiresIn := time.Duration(tok.ExpiresIn) * time.Second
	if expiresIn <= tokenSkew {
		expiresIn = 10 * time.Minute
	}
	c.tokenExp = time.Now().Add(expiresIn - tokenSkew)
	return c.token, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values) (any, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/hal+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("GET %s: HTTP %d: %s", endpoint, resp.StatusCode, string(body))
	}
	var out any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decodificar respuesta: %w", err)
	}
	return out, nil
}

// sendJSON ejecuta PUT/POST con cuerpo JSON. Los códigos de error HTTP se
// devuelven al llamador: un rechazo del WMS no es un error de transporte.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, payload any) (int, string, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return 0, "", err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("serializar payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/hal+json; charset=utf-8")
	req.Header.Set("Accept", "application/hal+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, string(respBody), nil
}
