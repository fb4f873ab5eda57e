package pedidos

import "strings"

// Status values observed from the backend. The set is open; unknown values
// are displayed as-is.
const (
	StatusCriado    = "criado"
	StatusPago      = "pago"
	StatusCancelado = "cancelado"
)

// ChipClass maps a status to the CSS chip class used in the views.
func ChipClass(status string) string {
	switch strings.ToLower(status) {
	case StatusPago, "ativo":
		return "chip-paid"
	case StatusCriado:
		return "chip-created"
	case StatusCancelado, "inativo":
		return "chip-cancelado"
	default:
		return "chip-default"
	}
}
