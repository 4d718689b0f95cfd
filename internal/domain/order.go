package domain

import "time"

// OrderStatus é o conjunto fechado de status de um pedido
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// StatusDisplayOrder é a ordem fixa de exibição dos status nos painéis
var StatusDisplayOrder = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusCancelled,
}

// OrderLineItem é uma linha de um pedido. O preço unitário é capturado no momento
// do pedido e nunca rederivado do catálogo, para que totais históricos permaneçam
// estáveis mesmo que o preço do produto mude depois.
type OrderLineItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"` // cópia desnormalizada para exibição
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// ShippingDetails são metadados de entrega, opacos para o motor de agregação
type ShippingDetails struct {
	FullName    string `json:"full_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	PhoneNumber string `json:"phone_number"`
}

// Order é um pedido multi-vendedor. As linhas podem pertencer a agricultores
// diferentes; o motor de agregação lê o pedido e nunca o altera.
type Order struct {
	ID              string          `json:"id"`
	BuyerID         int             `json:"buyer_id"`
	Items           []OrderLineItem `json:"items"`
	Status          OrderStatus     `json:"status"`
	ShippingDetails ShippingDetails `json:"shipping_details"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Total soma todas as linhas do pedido, de todos os vendedores
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// OrderRecord é o formato frouxo em que pedidos chegam de colaboradores externos:
// campos opcionais, produto ora embutido ora referenciado por ID. A normalização
// acontece uma única vez na borda, para que o motor trabalhe apenas com o formato
// estrito de Order.
type OrderRecord struct {
	ID              string           `json:"id"`
	BuyerID         int              `json:"buyer_id"`
	Items           []LineItemRecord `json:"items"`
	Status          *string          `json:"status"`
	ShippingDetails *ShippingDetails `json:"shipping_details"`
	PaymentMethod   *string          `json:"payment_method"`
	CreatedAt       *time.Time       `json:"created_at"`
	UpdatedAt       *time.Time       `json:"updated_at"`
}

// LineItemRecord é uma linha frouxa de pedido externo
type LineItemRecord struct {
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product"` // cópia embutida, quando presente
	UnitPrice *float64 `json:"unit_price"`
	Quantity  *int     `json:"quantity"`
}

// Normalize converte um registro externo no formato estrito de Order, aplicando
// os padrões defensivos uma única vez: status desconhecido ou ausente vira
// pending, linhas sem produto resolvível ou com quantidade inválida são
// descartadas, preço ausente cai para o preço embutido do produto.
func (r *OrderRecord) Normalize() *Order {
	order := &Order{
		ID:      r.ID,
		BuyerID: r.BuyerID,
		Status:  normalizeStatus(r.Status),
		Items:   make([]OrderLineItem, 0, len(r.Items)),
	}

	if r.ShippingDetails != nil {
		order.ShippingDetails = *r.ShippingDetails
	}

	if r.PaymentMethod != nil {
		order.PaymentMethod = *r.PaymentMethod
	}

	if r.CreatedAt != nil {
		order.CreatedAt = *r.CreatedAt
	}

	if r.UpdatedAt != nil {
		order.UpdatedAt = *r.UpdatedAt
	}

	for _, item := range r.Items {
		line, ok := item.normalize()
		if !ok {
			continue
		}
		order.Items = append(order.Items, line)
	}

	return order
}

func (i *LineItemRecord) normalize() (OrderLineItem, bool) {
	line := OrderLineItem{ProductID: i.ProductID}

	// O produto pode vir embutido ou apenas referenciado por ID
	if i.Product != nil {
		if line.ProductID == "" {
			line.ProductID = i.Product.ID
		}
		line.ProductName = i.Product.Name
	}

	if line.ProductID == "" {
		return OrderLineItem{}, false
	}

	if i.Quantity == nil || *i.Quantity < 1 {
		return OrderLineItem{}, false
	}
	line.Quantity = *i.Quantity

	switch {
	case i.UnitPrice != nil:
		line.UnitPrice = *i.UnitPrice
	case i.Product != nil:
		line.UnitPrice = i.Product.Price
	default:
		return OrderLineItem{}, false
	}

	return line, true
}

func normalizeStatus(status *string) OrderStatus {
	if status == nil {
		return StatusPending
	}

	switch OrderStatus(*status) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return OrderStatus(*status)
	default:
		// Status não reconhecido nunca é rejeitado, apenas padronizado
		return StatusPending
	}
}
