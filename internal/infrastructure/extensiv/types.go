package extensiv

// tokenResponse respuesta del endpoint OAuth de Extensiv (client credentials).
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// allocatorRow fila del payload del allocator: una línea recibe cantidad de una recepción.
type allocatorRow struct {
	OrderItemID   int64 `json:"orderItemId"`
	ReceiveItemID int64 `json:"receiveItemId"`
	Qty           int   `json:"qty"`
}

// allocatorPayload cuerpo del PUT /orders/{id}/allocator.
type allocatorPayload struct {
	Allocations []allocatorRow `json:"allocations"`
}
