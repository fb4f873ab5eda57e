package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ProdutosClient talks to the product catalog endpoints.
type ProdutosClient struct {
	c *Client
}

// NewProdutosClient constructs a ProdutosClient.
func NewProdutosClient(c *Client) *ProdutosClient {
	return &ProdutosClient{c: c}
}

// List fetches products, optionally filtered by visibility.
func (p *ProdutosClient) List(ctx context.Context, ativo *bool) ([]Produto, error) {
	query := url.Values{}
	if ativo != nil {
		query.Set("ativo", strconv.FormatBool(*ativo))
	}
	var produtos []Produto
	err := p.c.do(ctx, http.MethodGet, "/api/produtos", query, nil, &produtos)
	return produtos, err
}

// FindByID fetches one product.
func (p *ProdutosClient) FindByID(ctx context.Context, id string) (Produto, error) {
	var produto Produto
	err := p.c.do(ctx, http.MethodGet, "/api/produtos/"+url.PathEscape(id), nil, nil, &produto)
	return produto, err
}

// Create registers a new product. New products are published immediately.
func (p *ProdutosClient) Create(ctx context.Context, req ProdutoRequest) (Produto, error) {
	var produto Produto
	err := p.c.do(ctx, http.MethodPost, "/api/produtos", nil, req, &produto)
	return produto, err
}

// Update replaces a product's attributes.
func (p *ProdutosClient) Update(ctx context.Context, id string, req ProdutoRequest) (Produto, error) {
	var produto Produto
	err := p.c.do(ctx, http.MethodPut, "/api/produtos/"+url.PathEscape(id), nil, req, &produto)
	return produto, err
}

// SetVisibility toggles the soft ativo flag; products are never deleted.
func (p *ProdutosClient) SetVisibility(ctx context.Context, id string, ativo bool) error {
	query := url.Values{}
	query.Set("ativo", strconv.FormatBool(ativo))
	return p.c.do(ctx, http.MethodPut, "/api/produtos/"+url.PathEscape(id)+"/visibilidade", query, nil, nil)
}
