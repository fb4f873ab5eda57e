package pedidos

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lacouro/loja-web/internal/api"
)

func TestReduceCreatePrepends(t *testing.T) {
	board := Board{Pedidos: []api.Pedido{{ID: "o1"}, {ID: "o2"}}}

	board = Reduce(board, created{pedido: api.Pedido{ID: "o3", Status: StatusCriado}})

	assert.Equal(t, "o3", board.Pedidos[0].ID)
	assert.Len(t, board.Pedidos, 3)
	assert.Equal(t, FeedbackSuccess, board.Feedback.Kind)
}

func TestReduceLoadLifecycle(t *testing.T) {
	board := Reduce(Board{Feedback: &Feedback{Kind: FeedbackError, Message: "anterior"}}, loadStarted{})
	assert.True(t, board.Loading)
	assert.Nil(t, board.Feedback, "starting a load clears stale feedback")

	board = Reduce(board, loadSucceeded{pedidos: []api.Pedido{{ID: "o1"}}})
	assert.False(t, board.Loading)
	assert.Len(t, board.Pedidos, 1)
}

func TestReducePrefersBackendMessage(t *testing.T) {
	backendErr := &api.Error{Status: http.StatusConflict, Message: "Pedido já pago."}

	board := Reduce(Board{}, payFailed{err: backendErr})
	assert.Equal(t, "Pedido já pago.", board.Feedback.Message)
	assert.Equal(t, FeedbackError, board.Feedback.Kind)

	board = Reduce(Board{}, payFailed{err: errors.New("connection refused")})
	assert.Equal(t, "Não foi possível registrar o pagamento.", board.Feedback.Message)
}

func TestReducePaySucceededReplacesList(t *testing.T) {
	board := Board{Pedidos: []api.Pedido{{ID: "o1", Status: StatusCriado}}}

	board = Reduce(board, paySucceeded{pedidos: []api.Pedido{{ID: "o1", Status: StatusPago}}})

	assert.Equal(t, StatusPago, board.Pedidos[0].Status)
	assert.Equal(t, FeedbackSuccess, board.Feedback.Kind)
}

func TestChipClass(t *testing.T) {
	assert.Equal(t, "chip-paid", ChipClass("PAGO"))
	assert.Equal(t, "chip-created", ChipClass("criado"))
	assert.Equal(t, "chip-cancelado", ChipClass("cancelado"))
	assert.Equal(t, "chip-default", ChipClass(""))
	assert.Equal(t, "chip-default", ChipClass("em separação"))
}
