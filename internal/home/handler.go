// Package home serves the storefront screen: the visible catalog, the
// single-line order form and the actor's order list.
package home

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/lacouro/loja-web/internal/api"
	"github.com/lacouro/loja-web/internal/pedidos"
	"github.com/lacouro/loja-web/internal/session"
	"github.com/lacouro/loja-web/internal/view"
)

// Handler wires the storefront endpoints.
type Handler struct {
	logger    *slog.Logger
	produtos  *api.ProdutosClient
	orders    *pedidos.Controller
	store     *session.Store
	templates *view.Engine
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, produtos *api.ProdutosClient, orders *pedidos.Controller, store *session.Store, templates *view.Engine) *Handler {
	return &Handler{
		logger:    logger,
		produtos:  produtos,
		orders:    orders,
		store:     store,
		templates: templates,
		validator: validator.New(),
	}
}

// MountRoutes registers storefront routes. Callers guard them behind an
// authenticated session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showHome)
	r.Post("/pedidos", h.handleCreatePedido)
}

type pedidoForm struct {
	ProdutoID  string `validate:"required"`
	Quantidade int    `validate:"required,min=1"`
}

type homePageData struct {
	Produtos         []api.Produto
	Nomes            map[string]string
	Board            pedidos.Board
	ProdutosFeedback string
	Papel            string
	Form             pedidoForm
}

func (h *Handler) showHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := homePageData{Form: pedidoForm{Quantidade: 1}}

	// Catalog and order list come from different resources; fetch them
	// side by side.
	g, gctx := errgroup.WithContext(ctx)
	var produtosErr error
	g.Go(func() error {
		ativo := true
		produtos, err := h.produtos.List(gctx, &ativo)
		if err != nil {
			produtosErr = err
			return nil
		}
		data.Produtos = produtos
		return nil
	})
	g.Go(func() error {
		data.Board = h.orders.Load(gctx)
		return nil
	})
	_ = g.Wait()

	if produtosErr != nil {
		h.logger.Warn("carregar produtos", slog.Any("error", produtosErr))
		data.ProdutosFeedback = "Não foi possível carregar os produtos."
	}

	h.finish(w, r, data)
}

func (h *Handler) handleCreatePedido(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	quantidade, _ := strconv.Atoi(r.PostFormValue("quantidade"))
	form := pedidoForm{
		ProdutoID:  r.PostFormValue("produtoId"),
		Quantidade: quantidade,
	}

	board := h.orders.Load(ctx)
	if err := h.validator.Struct(form); err != nil {
		board.Feedback = &pedidos.Feedback{Kind: pedidos.FeedbackError, Message: "Escolha um produto e uma quantidade válida."}
	} else {
		board = h.orders.Create(ctx, board, form.ProdutoID, form.Quantidade)
	}

	ativo := true
	produtos, err := h.produtos.List(ctx, &ativo)
	data := homePageData{Produtos: produtos, Board: board, Form: form}
	if err != nil {
		h.logger.Warn("carregar produtos", slog.Any("error", err))
		data.ProdutosFeedback = "Não foi possível carregar os produtos."
	}
	h.finish(w, r, data)
}

func (h *Handler) finish(w http.ResponseWriter, r *http.Request, data homePageData) {
	ctx := r.Context()
	data.Papel = h.papel(ctx)
	data.Nomes = nomesPorID(data.Produtos)

	isAdmin := h.store.HasRole(ctx, session.RoleAdmin)
	err := h.templates.Render(w, "pages/home.html", view.TemplateData{
		Title:       "Loja",
		CurrentPath: r.URL.Path,
		IsAdmin:     isAdmin,
		IsCliente:   h.store.HasRole(ctx, session.RoleCliente),
		Data:        data,
	})
	if err != nil {
		h.logger.Error("render home", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// papel names the actor's access class for display.
func (h *Handler) papel(ctx context.Context) string {
	switch {
	case h.store.HasRole(ctx, session.RoleAdmin):
		return string(session.RoleAdmin)
	case h.store.HasRole(ctx, session.RoleCliente):
		return string(session.RoleCliente)
	default:
		return "DESCONHECIDO"
	}
}

func nomesPorID(produtos []api.Produto) map[string]string {
	nomes := make(map[string]string, len(produtos))
	for _, p := range produtos {
		if p.ID != "" {
			nomes[p.ID] = p.Nome
		}
	}
	return nomes
}
