package api

// Request and response shapes for the Loja backend. Field names follow the
// backend's JSON contract, which is in Portuguese.

// LoginRequest carries credentials for the token exchange.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest creates an account; the backend decides the role from the
// endpoint it is posted to.
type RegisterRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// User is a backend user account. Senha is write-only and never echoed back.
type User struct {
	ID    string `json:"id,omitempty"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha,omitempty"`
	Role  string `json:"role,omitempty"`
	Ativo *bool  `json:"ativo,omitempty"`
}

// Produto is a catalog item. Ativo is a soft visibility toggle, not deletion.
type Produto struct {
	ID                string  `json:"id,omitempty"`
	Nome              string  `json:"nome"`
	Tamanho           string  `json:"tamanho"`
	Cor               string  `json:"cor"`
	Preco             float64 `json:"preco"`
	QuantidadeEstoque int     `json:"quantidadeEstoque"`
	FotoURL           string  `json:"fotoUrl,omitempty"`
	Ativo             *bool   `json:"ativo,omitempty"`
}

// ProdutoRequest creates or replaces a Produto.
type ProdutoRequest struct {
	Nome              string  `json:"nome"`
	Tamanho           string  `json:"tamanho"`
	Cor               string  `json:"cor"`
	Preco             float64 `json:"preco"`
	QuantidadeEstoque int     `json:"quantidadeEstoque"`
	FotoURL           string  `json:"fotoUrl,omitempty"`
}

// PedidoItem is one order line, optionally carrying the product snapshot the
// backend embedded at order time.
type PedidoItem struct {
	ProdutoID  string   `json:"produtoId"`
	Quantidade int      `json:"quantidade"`
	Produto    *Produto `json:"produto,omitempty"`
}

// Pedido is an order. Status is whatever the backend reports; the client
// never computes the next value.
type Pedido struct {
	ID        string       `json:"id,omitempty"`
	UsuarioID string       `json:"usuarioId"`
	Status    string       `json:"status,omitempty"`
	Itens     []PedidoItem `json:"itens"`
}

// PedidoRequest creates a Pedido.
type PedidoRequest struct {
	UsuarioID string       `json:"usuarioId"`
	Itens     []PedidoItem `json:"itens"`
}

// PagamentoRequest describes a payment submission for one Pedido.
type PagamentoRequest struct {
	Metodo     string `json:"metodo"`
	Referencia string `json:"referencia"`
}
