package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacouro/loja-web/internal/api"
)

type staticToken string

func (t staticToken) Token(ctx context.Context) (string, bool) {
	return string(t), t != ""
}

func newBackend(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, 5*time.Second, staticToken("tok-123"))
}

func TestBearerTokenAndHeaders(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode([]api.Pedido{})
	})

	_, err := api.NewPedidosClient(client).ListAll(context.Background())
	require.NoError(t, err)
}

func TestBackendErrorMessageIsPreserved(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Estoque insuficiente."})
	})

	_, err := api.NewPedidosClient(client).Create(context.Background(), api.PedidoRequest{})
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Estoque insuficiente.", apiErr.Message)
	assert.Equal(t, "Estoque insuficiente.", api.Message(err, "fallback"))
}

func TestMessageFallsBackWhenBackendIsSilent(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := api.NewPedidosClient(client).Cancel(context.Background(), "o1")
	require.Error(t, err)
	assert.Equal(t, "algo deu errado", api.Message(err, "algo deu errado"))
}

func TestEstoqueMovementsUseQueryParams(t *testing.T) {
	var gotPath, gotProduto, gotQtd string
	var gotLen int64
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotProduto = r.URL.Query().Get("produtoId")
		gotQtd = r.URL.Query().Get("qtd")
		gotLen = r.ContentLength
		w.WriteHeader(http.StatusNoContent)
	})

	estoque := api.NewEstoqueClient(client)
	require.NoError(t, estoque.Entrada(context.Background(), "p1", 5))
	assert.Equal(t, "/api/estoque/entrada", gotPath)
	assert.Equal(t, "p1", gotProduto)
	assert.Equal(t, "5", gotQtd)
	assert.Zero(t, gotLen, "movement posts carry no body")

	require.NoError(t, estoque.Saida(context.Background(), "p2", 3))
	assert.Equal(t, "/api/estoque/saida", gotPath)
}

func TestPedidoEndpointPaths(t *testing.T) {
	var paths []string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.RequestURI())
		if r.Method == http.MethodGet && r.URL.Path != "/api/pedidos/o1" {
			_ = json.NewEncoder(w).Encode([]api.Pedido{})
			return
		}
		_ = json.NewEncoder(w).Encode(api.Pedido{ID: "o1"})
	})

	pedidos := api.NewPedidosClient(client)
	ctx := context.Background()
	visiveis := true

	_, err := pedidos.ListByUsuario(ctx, "u1", &visiveis)
	require.NoError(t, err)
	_, err = pedidos.FindByID(ctx, "o1")
	require.NoError(t, err)
	require.NoError(t, pedidos.Pay(ctx, "o1", api.PagamentoRequest{Metodo: "pix", Referencia: "ref"}))
	require.NoError(t, pedidos.Cancel(ctx, "o1"))

	assert.Equal(t, []string{
		"GET /api/pedidos/usuario/u1?visiveis=true",
		"GET /api/pedidos/o1",
		"POST /api/pedidos/o1/pagar",
		"POST /api/pedidos/o1/cancelar",
	}, paths)
}

func TestUsuariosListFilter(t *testing.T) {
	var query string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]api.User{})
	})

	usuarios := api.NewUsuariosClient(client)
	ctx := context.Background()

	_, err := usuarios.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, query, "absent filter sends no query param")

	ativo := true
	_, err = usuarios.List(ctx, &ativo)
	require.NoError(t, err)
	assert.Equal(t, "ativo=true", query)
}
