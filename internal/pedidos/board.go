// Package pedidos sequences the order-payment workflow: listing keyed off
// the actor's role, optimistic insertion on creation, and a full refetch
// after payment or cancellation since those calls change fields the client
// never computes.
package pedidos

import "github.com/lacouro/loja-web/internal/api"

// Feedback kinds shown in the dismissible feedback slot.
const (
	FeedbackSuccess = "success"
	FeedbackError   = "error"
)

// Feedback is one user-facing message. Nil means the slot is empty.
type Feedback struct {
	Kind    string
	Message string
}

// Board is the per-screen order list state. It is a disposable local copy;
// the backend stays the source of truth.
type Board struct {
	Pedidos  []api.Pedido
	Feedback *Feedback
	Loading  bool
}

// Action mutates a Board through Reduce.
type Action interface {
	isAction()
}

type loadStarted struct{}

type loadSucceeded struct {
	pedidos []api.Pedido
}

type loadFailed struct {
	err error
}

// created carries the creation response, trusted as authoritative for the
// one record it describes.
type created struct {
	pedido api.Pedido
}

type createFailed struct {
	err error
}

type paySucceeded struct {
	pedidos []api.Pedido
}

type payFailed struct {
	err error
}

type cancelSucceeded struct {
	pedidos []api.Pedido
}

type cancelFailed struct {
	err error
}

func (loadStarted) isAction()     {}
func (loadSucceeded) isAction()   {}
func (loadFailed) isAction()      {}
func (created) isAction()         {}
func (createFailed) isAction()    {}
func (paySucceeded) isAction()    {}
func (payFailed) isAction()       {}
func (cancelSucceeded) isAction() {}
func (cancelFailed) isAction()    {}

// Reduce applies one action to the board and returns the next state. It
// performs no I/O; the Controller owns the effect boundary.
func Reduce(board Board, action Action) Board {
	switch a := action.(type) {
	case loadStarted:
		board.Loading = true
		board.Feedback = nil
	case loadSucceeded:
		board.Loading = false
		board.Pedidos = a.pedidos
	case loadFailed:
		board.Loading = false
		board.Feedback = errorFeedback(a.err, "Não foi possível carregar os pedidos.")
	case created:
		board.Pedidos = append([]api.Pedido{a.pedido}, board.Pedidos...)
		board.Feedback = &Feedback{Kind: FeedbackSuccess, Message: "Pedido criado! Ele aparece abaixo e pode ser pago pelo admin."}
	case createFailed:
		board.Feedback = errorFeedback(a.err, "Não foi possível criar o pedido.")
	case paySucceeded:
		board.Pedidos = a.pedidos
		board.Feedback = &Feedback{Kind: FeedbackSuccess, Message: "Pagamento registrado com sucesso."}
	case payFailed:
		board.Feedback = errorFeedback(a.err, "Não foi possível registrar o pagamento.")
	case cancelSucceeded:
		board.Pedidos = a.pedidos
		board.Feedback = &Feedback{Kind: FeedbackSuccess, Message: "Pedido cancelado."}
	case cancelFailed:
		board.Feedback = errorFeedback(a.err, "Não foi possível cancelar o pedido.")
	}
	return board
}

// errorFeedback prefers the backend's own message over the localized fallback.
func errorFeedback(err error, fallback string) *Feedback {
	return &Feedback{Kind: FeedbackError, Message: api.Message(err, fallback)}
}
