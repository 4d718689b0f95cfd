package domain

import "time"

// CartItem é um item do carrinho de um comprador. O preço unitário é o preço
// corrente do produto no momento em que o item entrou no carrinho; no checkout
// ele é capturado na linha do pedido.
type CartItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// Cart é o carrinho persistido de um comprador
type Cart struct {
	UserID    int        `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total soma os itens do carrinho
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// CheckoutRequest são os dados de entrega e pagamento enviados no checkout
type CheckoutRequest struct {
	ShippingDetails ShippingDetails `json:"shipping_details"`
	PaymentMethod   string          `json:"payment_method"`
}
