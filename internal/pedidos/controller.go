package pedidos

import (
	"context"
	"log/slog"

	"github.com/lacouro/loja-web/internal/api"
	"github.com/lacouro/loja-web/internal/session"
)

// Controller is the effect boundary of the workflow: it issues the one-shot
// backend calls and folds their outcomes into the board through Reduce.
// Failures never escape; they land in the board's feedback slot.
type Controller struct {
	pedidos *api.PedidosClient
	store   *session.Store
	logger  *slog.Logger
}

// NewController constructs a Controller.
func NewController(pedidos *api.PedidosClient, store *session.Store, logger *slog.Logger) *Controller {
	return &Controller{pedidos: pedidos, store: store, logger: logger}
}

// Load fetches the order list for the current actor: every order for an
// admin, only the actor's own visible orders otherwise. A session without a
// subject id (and without the admin role) loads nothing.
func (c *Controller) Load(ctx context.Context) Board {
	board := Reduce(Board{}, loadStarted{})

	if c.store.HasRole(ctx, session.RoleAdmin) {
		pedidos, err := c.pedidos.ListAll(ctx)
		return c.loaded(board, pedidos, err)
	}

	usuarioID, ok := c.store.SubjectID(ctx)
	if !ok {
		board.Loading = false
		return board
	}
	visiveis := true
	pedidos, err := c.pedidos.ListByUsuario(ctx, usuarioID, &visiveis)
	return c.loaded(board, pedidos, err)
}

func (c *Controller) loaded(board Board, pedidos []api.Pedido, err error) Board {
	if err != nil {
		c.logger.Warn("carregar pedidos", slog.Any("error", err))
		return Reduce(board, loadFailed{err: err})
	}
	return Reduce(board, loadSucceeded{pedidos: pedidos})
}

// Create places a single-line order for the acting user and prepends the
// response to the board without refetching the list.
func (c *Controller) Create(ctx context.Context, board Board, produtoID string, quantidade int) Board {
	usuarioID, ok := c.store.SubjectID(ctx)
	if !ok {
		return Reduce(board, createFailed{})
	}

	pedido, err := c.pedidos.Create(ctx, api.PedidoRequest{
		UsuarioID: usuarioID,
		Itens:     []api.PedidoItem{{ProdutoID: produtoID, Quantidade: quantidade}},
	})
	if err != nil {
		c.logger.Warn("criar pedido", slog.Any("error", err))
		return Reduce(board, createFailed{err: err})
	}
	return Reduce(board, created{pedido: pedido})
}

// Pay submits a payment for the order and, on success, refetches the whole
// list: payment changes status backend-side, so only the server's view is
// trusted afterwards.
func (c *Controller) Pay(ctx context.Context, board Board, pedidoID, metodo, referencia string) Board {
	err := c.pedidos.Pay(ctx, pedidoID, api.PagamentoRequest{Metodo: metodo, Referencia: referencia})
	if err != nil {
		c.logger.Warn("pagar pedido", slog.String("pedido", pedidoID), slog.Any("error", err))
		return Reduce(board, payFailed{err: err})
	}

	pedidos, err := c.refetch(ctx, board)
	if err != nil {
		return Reduce(board, loadFailed{err: err})
	}
	return Reduce(board, paySucceeded{pedidos: pedidos})
}

// Cancel asks the backend to cancel the order, then refetches like Pay does.
// Transition legality is not checked here; the backend's answer is reflected
// as-is.
func (c *Controller) Cancel(ctx context.Context, board Board, pedidoID string) Board {
	if err := c.pedidos.Cancel(ctx, pedidoID); err != nil {
		c.logger.Warn("cancelar pedido", slog.String("pedido", pedidoID), slog.Any("error", err))
		return Reduce(board, cancelFailed{err: err})
	}

	pedidos, err := c.refetch(ctx, board)
	if err != nil {
		return Reduce(board, loadFailed{err: err})
	}
	return Reduce(board, cancelSucceeded{pedidos: pedidos})
}

func (c *Controller) refetch(ctx context.Context, board Board) ([]api.Pedido, error) {
	if c.store.HasRole(ctx, session.RoleAdmin) {
		return c.pedidos.ListAll(ctx)
	}
	usuarioID, ok := c.store.SubjectID(ctx)
	if !ok {
		return board.Pedidos, nil
	}
	visiveis := true
	return c.pedidos.ListByUsuario(ctx, usuarioID, &visiveis)
}
