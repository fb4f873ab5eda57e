package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// EstoqueClient talks to the stock movement endpoints. Movements are posted
// as query parameters with an empty body, matching the backend contract.
type EstoqueClient struct {
	c *Client
}

// NewEstoqueClient constructs an EstoqueClient.
func NewEstoqueClient(c *Client) *EstoqueClient {
	return &EstoqueClient{c: c}
}

// Entrada registers stock coming in for a product.
func (e *EstoqueClient) Entrada(ctx context.Context, produtoID string, qtd int) error {
	return e.c.do(ctx, http.MethodPost, "/api/estoque/entrada", movimentoQuery(produtoID, qtd), nil, nil)
}

// Saida registers stock going out for a product.
func (e *EstoqueClient) Saida(ctx context.Context, produtoID string, qtd int) error {
	return e.c.do(ctx, http.MethodPost, "/api/estoque/saida", movimentoQuery(produtoID, qtd), nil, nil)
}

func movimentoQuery(produtoID string, qtd int) url.Values {
	query := url.Values{}
	query.Set("produtoId", produtoID)
	query.Set("qtd", strconv.Itoa(qtd))
	return query
}
