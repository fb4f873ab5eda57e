package api

// Clients bundles one sub-client per backend resource group.
type Clients struct {
	Auth     *AuthClient
	Usuarios *UsuariosClient
	Produtos *ProdutosClient
	Pedidos  *PedidosClient
	Estoque  *EstoqueClient
}

// NewClients constructs the full set over one base Client.
func NewClients(base *Client) *Clients {
	return &Clients{
		Auth:     NewAuthClient(base),
		Usuarios: NewUsuariosClient(base),
		Produtos: NewProdutosClient(base),
		Pedidos:  NewPedidosClient(base),
		Estoque:  NewEstoqueClient(base),
	}
}
