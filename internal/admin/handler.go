// Package admin serves the back-office screens: the order dashboard with
// payment and cancellation, inventory upkeep and admin provisioning.
package admin

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lacouro/loja-web/internal/api"
	"github.com/lacouro/loja-web/internal/pedidos"
	"github.com/lacouro/loja-web/internal/view"
)

// Handler wires the admin endpoints. The router mounts it behind the ADMIN
// role guard.
type Handler struct {
	logger    *slog.Logger
	clients   *api.Clients
	orders    *pedidos.Controller
	templates *view.Engine
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, clients *api.Clients, orders *pedidos.Controller, templates *view.Engine) *Handler {
	return &Handler{
		logger:    logger,
		clients:   clients,
		orders:    orders,
		templates: templates,
		validator: validator.New(),
	}
}

// MountRoutes registers admin routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
	r.Post("/pedidos/{id}/pagar", h.handlePagar)
	r.Post("/pedidos/{id}/cancelar", h.handleCancelar)

	r.Get("/estoque", h.showEstoque)
	r.Post("/produtos", h.handleSalvarProduto)
	r.Post("/produtos/{id}", h.handleSalvarProduto)
	r.Post("/produtos/{id}/visibilidade", h.handleVisibilidade)
	r.Post("/estoque/movimentos", h.handleMovimento)

	r.Get("/usuarios", h.showUsuarios)
	r.Post("/usuarios", h.handleRegistrarAdmin)
	r.Post("/usuarios/{id}/desativar", h.handleDesativarUsuario)
}

// --- dashboard ---

type dashboardPageData struct {
	Board             pedidos.Board
	Nomes             map[string]string
	StatusFiltro      string
	StatusDisponiveis []string
	PagamentoForm     pagamentoForm
}

type pagamentoForm struct {
	Metodo     string `validate:"required"`
	Referencia string `validate:"required"`
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	board := h.orders.Load(r.Context())
	h.renderDashboard(w, r, board, r.URL.Query().Get("status"))
}

func (h *Handler) handlePagar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	pedidoID := chi.URLParam(r, "id")
	form := pagamentoForm{
		Metodo:     r.PostFormValue("metodo"),
		Referencia: r.PostFormValue("referencia"),
	}

	board := h.orders.Load(ctx)
	if err := h.validator.Struct(form); err != nil {
		board.Feedback = &pedidos.Feedback{Kind: pedidos.FeedbackError, Message: "Informe método e referência do pagamento."}
	} else {
		board = h.orders.Pay(ctx, board, pedidoID, form.Metodo, form.Referencia)
	}
	h.renderDashboard(w, r, board, "")
}

func (h *Handler) handleCancelar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	board := h.orders.Load(ctx)
	board = h.orders.Cancel(ctx, board, chi.URLParam(r, "id"))
	h.renderDashboard(w, r, board, "")
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, board pedidos.Board, filtro string) {
	produtos, err := h.clients.Produtos.List(r.Context(), nil)
	if err != nil {
		h.logger.Warn("carregar produtos", slog.Any("error", err))
	}

	data := dashboardPageData{
		Board:             board,
		Nomes:             nomesPorID(produtos),
		StatusFiltro:      filtro,
		StatusDisponiveis: statusDisponiveis(board.Pedidos),
	}
	if filtro != "" {
		data.Board.Pedidos = filtrarPorStatus(board.Pedidos, filtro)
	}

	h.render(w, r, "pages/admin_dashboard.html", "Pedidos", data)
}

// statusDisponiveis collects the distinct statuses present, for the filter.
func statusDisponiveis(list []api.Pedido) []string {
	seen := map[string]bool{}
	for _, p := range list {
		status := p.Status
		if status == "" {
			status = "SEM STATUS"
		}
		seen[status] = true
	}
	status := make([]string, 0, len(seen))
	for s := range seen {
		status = append(status, s)
	}
	sort.Strings(status)
	return status
}

func filtrarPorStatus(list []api.Pedido, filtro string) []api.Pedido {
	filtered := make([]api.Pedido, 0, len(list))
	for _, p := range list {
		status := p.Status
		if status == "" {
			status = "SEM STATUS"
		}
		if status == filtro {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// --- estoque ---

type produtoForm struct {
	Nome              string  `validate:"required,min=2"`
	Tamanho           string  `validate:"required"`
	Cor               string  `validate:"required"`
	Preco             float64 `validate:"min=0"`
	QuantidadeEstoque int     `validate:"min=0"`
	FotoURL           string
}

type estoquePageData struct {
	Produtos          []api.Produto
	Feedback          string
	FeedbackKind      string
	MovimentoFeedback string
	Form              produtoForm
	EditingID         string
}

func (h *Handler) showEstoque(w http.ResponseWriter, r *http.Request) {
	data := estoquePageData{}
	if id := r.URL.Query().Get("editar"); id != "" {
		if produto, err := h.clients.Produtos.FindByID(r.Context(), id); err == nil {
			data.EditingID = id
			data.Form = produtoForm{
				Nome:              produto.Nome,
				Tamanho:           produto.Tamanho,
				Cor:               produto.Cor,
				Preco:             produto.Preco,
				QuantidadeEstoque: produto.QuantidadeEstoque,
				FotoURL:           produto.FotoURL,
			}
		}
	}
	h.renderEstoque(w, r, data)
}

func (h *Handler) handleSalvarProduto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	preco, _ := strconv.ParseFloat(r.PostFormValue("preco"), 64)
	quantidade, _ := strconv.Atoi(r.PostFormValue("quantidadeEstoque"))
	form := produtoForm{
		Nome:              r.PostFormValue("nome"),
		Tamanho:           r.PostFormValue("tamanho"),
		Cor:               r.PostFormValue("cor"),
		Preco:             preco,
		QuantidadeEstoque: quantidade,
		FotoURL:           r.PostFormValue("fotoUrl"),
	}
	id := chi.URLParam(r, "id")

	data := estoquePageData{Form: form, EditingID: id}
	if err := h.validator.Struct(form); err != nil {
		data.Feedback = "Preencha nome, tamanho e cor; preço e estoque não podem ser negativos."
		data.FeedbackKind = pedidos.FeedbackError
		h.renderEstoque(w, r, data)
		return
	}

	req := api.ProdutoRequest{
		Nome:              form.Nome,
		Tamanho:           form.Tamanho,
		Cor:               form.Cor,
		Preco:             form.Preco,
		QuantidadeEstoque: form.QuantidadeEstoque,
		FotoURL:           form.FotoURL,
	}

	var err error
	if id != "" {
		_, err = h.clients.Produtos.Update(ctx, id, req)
		data.Feedback = "Produto atualizado com sucesso."
	} else {
		_, err = h.clients.Produtos.Create(ctx, req)
		data.Feedback = "Produto criado e publicado."
	}
	data.FeedbackKind = pedidos.FeedbackSuccess
	if err != nil {
		h.logger.Warn("salvar produto", slog.Any("error", err))
		data.Feedback = api.Message(err, "Não foi possível salvar o produto.")
		data.FeedbackKind = pedidos.FeedbackError
	} else {
		data.Form = produtoForm{}
		data.EditingID = ""
	}
	h.renderEstoque(w, r, data)
}

func (h *Handler) handleVisibilidade(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ativo := r.PostFormValue("ativo") == "true"

	data := estoquePageData{FeedbackKind: pedidos.FeedbackSuccess}
	if err := h.clients.Produtos.SetVisibility(r.Context(), chi.URLParam(r, "id"), ativo); err != nil {
		h.logger.Warn("alterar visibilidade", slog.Any("error", err))
		data.Feedback = "Não foi possível alterar a visibilidade."
		data.FeedbackKind = pedidos.FeedbackError
	} else if ativo {
		data.Feedback = "Produto ativado."
	} else {
		data.Feedback = "Produto desativado."
	}
	h.renderEstoque(w, r, data)
}

type movimentoForm struct {
	ProdutoID string `validate:"required"`
	Qtd       int    `validate:"required,min=1"`
	Tipo      string `validate:"required,oneof=entrada saida"`
}

func (h *Handler) handleMovimento(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	qtd, _ := strconv.Atoi(r.PostFormValue("qtd"))
	form := movimentoForm{
		ProdutoID: r.PostFormValue("produtoId"),
		Qtd:       qtd,
		Tipo:      r.PostFormValue("tipo"),
	}

	data := estoquePageData{}
	if err := h.validator.Struct(form); err != nil {
		data.MovimentoFeedback = "Escolha um produto, um tipo e uma quantidade válida."
		h.renderEstoque(w, r, data)
		return
	}

	var err error
	if form.Tipo == "entrada" {
		err = h.clients.Estoque.Entrada(ctx, form.ProdutoID, form.Qtd)
	} else {
		err = h.clients.Estoque.Saida(ctx, form.ProdutoID, form.Qtd)
	}
	if err != nil {
		h.logger.Warn("registrar movimento", slog.Any("error", err))
		data.MovimentoFeedback = api.Message(err, "Não foi possível registrar a movimentação.")
	} else {
		data.MovimentoFeedback = "Movimentação registrada."
	}
	h.renderEstoque(w, r, data)
}

func (h *Handler) renderEstoque(w http.ResponseWriter, r *http.Request, data estoquePageData) {
	// The back office lists the whole catalog, hidden products included.
	ativo := false
	produtos, err := h.clients.Produtos.List(r.Context(), &ativo)
	if err != nil {
		h.logger.Warn("carregar produtos", slog.Any("error", err))
		if data.Feedback == "" {
			data.Feedback = "Não foi possível carregar os produtos."
			data.FeedbackKind = pedidos.FeedbackError
		}
	}
	data.Produtos = produtos
	h.render(w, r, "pages/admin_estoque.html", "Estoque", data)
}

// --- usuarios ---

type adminForm struct {
	Nome  string `validate:"required,min=3"`
	Email string `validate:"required,email"`
	Senha string `validate:"required,min=6"`
}

type usuariosPageData struct {
	Usuarios     []api.User
	Feedback     string
	FeedbackKind string
	Form         adminForm
}

func (h *Handler) showUsuarios(w http.ResponseWriter, r *http.Request) {
	h.renderUsuarios(w, r, usuariosPageData{})
}

func (h *Handler) handleRegistrarAdmin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := adminForm{
		Nome:  r.PostFormValue("nome"),
		Email: r.PostFormValue("email"),
		Senha: r.PostFormValue("senha"),
	}

	data := usuariosPageData{Form: form}
	if err := h.validator.Struct(form); err != nil {
		data.Feedback = "Preencha nome (mín. 3), e-mail válido e senha (mín. 6)."
		data.FeedbackKind = pedidos.FeedbackError
		h.renderUsuarios(w, r, data)
		return
	}

	_, err := h.clients.Usuarios.RegisterAdmin(r.Context(), api.RegisterRequest{Nome: form.Nome, Email: form.Email, Senha: form.Senha})
	if err != nil {
		h.logger.Warn("registrar admin", slog.Any("error", err))
		data.Feedback = api.Message(err, "Não foi possível criar o administrador.")
		data.FeedbackKind = pedidos.FeedbackError
	} else {
		data.Feedback = "Novo ADMIN criado com sucesso."
		data.FeedbackKind = pedidos.FeedbackSuccess
		data.Form = adminForm{}
	}
	h.renderUsuarios(w, r, data)
}

func (h *Handler) handleDesativarUsuario(w http.ResponseWriter, r *http.Request) {
	data := usuariosPageData{FeedbackKind: pedidos.FeedbackSuccess, Feedback: "Usuário desativado."}
	if err := h.clients.Usuarios.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Warn("desativar usuário", slog.Any("error", err))
		data.Feedback = api.Message(err, "Não foi possível desativar o usuário.")
		data.FeedbackKind = pedidos.FeedbackError
	}
	h.renderUsuarios(w, r, data)
}

func (h *Handler) renderUsuarios(w http.ResponseWriter, r *http.Request, data usuariosPageData) {
	usuarios, err := h.clients.Usuarios.List(r.Context(), nil)
	if err != nil {
		h.logger.Warn("carregar usuários", slog.Any("error", err))
		if data.Feedback == "" {
			data.Feedback = "Não foi possível carregar os usuários."
			data.FeedbackKind = pedidos.FeedbackError
		}
	}
	data.Usuarios = usuarios
	h.render(w, r, "pages/admin_usuarios.html", "Usuários", data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	err := h.templates.Render(w, page, view.TemplateData{
		Title:       title,
		CurrentPath: r.URL.Path,
		IsAdmin:     true,
		Data:        data,
	})
	if err != nil {
		h.logger.Error("render "+page, slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
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
