package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// PedidosClient talks to the order endpoints. Status transitions happen only
// backend-side; this client submits and reflects whatever comes back.
type PedidosClient struct {
	c *Client
}

// NewPedidosClient constructs a PedidosClient.
func NewPedidosClient(c *Client) *PedidosClient {
	return &PedidosClient{c: c}
}

// ListAll fetches every order. Admin-only on the backend.
func (p *PedidosClient) ListAll(ctx context.Context) ([]Pedido, error) {
	var pedidos []Pedido
	err := p.c.do(ctx, http.MethodGet, "/api/pedidos", nil, nil, &pedidos)
	return pedidos, err
}

// ListByUsuario fetches one user's orders, optionally restricted to the
// statuses the backend considers visible.
func (p *PedidosClient) ListByUsuario(ctx context.Context, usuarioID string, visiveis *bool) ([]Pedido, error) {
	query := url.Values{}
	if visiveis != nil {
		query.Set("visiveis", strconv.FormatBool(*visiveis))
	}
	var pedidos []Pedido
	err := p.c.do(ctx, http.MethodGet, "/api/pedidos/usuario/"+url.PathEscape(usuarioID), query, nil, &pedidos)
	return pedidos, err
}

// FindByID fetches one order.
func (p *PedidosClient) FindByID(ctx context.Context, id string) (Pedido, error) {
	var pedido Pedido
	err := p.c.do(ctx, http.MethodGet, "/api/pedidos/"+url.PathEscape(id), nil, nil, &pedido)
	return pedido, err
}

// Create places a new order. The response is the authoritative record for
// the one order it created.
func (p *PedidosClient) Create(ctx context.Context, req PedidoRequest) (Pedido, error) {
	var pedido Pedido
	err := p.c.do(ctx, http.MethodPost, "/api/pedidos", nil, req, &pedido)
	return pedido, err
}

// Pay submits a payment descriptor for the order.
func (p *PedidosClient) Pay(ctx context.Context, id string, pagamento PagamentoRequest) error {
	return p.c.do(ctx, http.MethodPost, "/api/pedidos/"+url.PathEscape(id)+"/pagar", nil, pagamento, nil)
}

// Cancel asks the backend to cancel the order.
func (p *PedidosClient) Cancel(ctx context.Context, id string) error {
	return p.c.do(ctx, http.MethodPost, "/api/pedidos/"+url.PathEscape(id)+"/cancelar", nil, nil, nil)
}
