package domain

import "time"

// AttributedOrder envolve um pedido reduzido à visão de um único agricultor:
// apenas as linhas cujo produto pertence a ele e o subtotal dessas linhas.
// Invariante: um pedido só aparece como AttributedOrder se o subconjunto de
// linhas do agricultor for não vazio.
type AttributedOrder struct {
	Order       *Order          `json:"order"`
	SellerItems []OrderLineItem `json:"seller_items"`
	Subtotal    float64         `json:"subtotal"`
}

// MonthlyBucket acumula vendas e contagem de pedidos de um mês do ano corrente
type MonthlyBucket struct {
	Month      string  `json:"month"` // Jan..Dec
	Sales      float64 `json:"sales"`
	OrderCount int     `json:"order_count"`
}

// TopProduct acumula quantidade e receita de um produto do agricultor
type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// AnalyticsSnapshot é o resultado de um passe completo de agregação para um
// agricultor. Recalculado do zero a cada requisição, nunca remendado.
//
// TotalSales cobre todos os anos, enquanto MonthlySales cobre somente o ano
// calendário corrente. A discrepância é intencional (card de receita
// vitalícia vs gráfico de tendência do ano) e não deve ser unificada sem
// decisão de produto.
type AnalyticsSnapshot struct {
	FarmerID     int                 `json:"farmer_id"`
	Year         int                 `json:"year"` // ano calendário da série mensal
	TotalSales   float64             `json:"total_sales"`
	TotalOrders  int                 `json:"total_orders"`
	StatusCounts map[OrderStatus]int `json:"status_counts"`
	MonthlySales [12]MonthlyBucket   `json:"monthly_sales"` // 0=Jan .. 11=Dec
	TopProducts  []TopProduct        `json:"top_products"`  // ≤5, por receita desc
	GeneratedAt  time.Time           `json:"generated_at"`
}

// StatusShare é uma fatia do gráfico de distribuição de status
type StatusShare struct {
	Label string `json:"label"` // status capitalizado, ex: Pending
	Count int    `json:"count"`
	Share string `json:"share"` // percentual sobre o total de pedidos, ex: 50.0%
}

// MonthlyPoint é um ponto já formatado da série mensal
type MonthlyPoint struct {
	Month      string  `json:"month"`
	Sales      float64 `json:"sales"` // arredondado para 2 casas
	OrderCount int     `json:"order_count"`
}

// TopProductView é uma entrada formatada do ranking de produtos
type TopProductView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Revenue   string `json:"revenue"` // 2 casas decimais
}

// DashboardView é o contrato de apresentação do painel do agricultor. Apenas
// formatação: nenhum valor agregado é alterado nesta etapa.
type DashboardView struct {
	TotalSales         string           `json:"total_sales"` // 2 casas decimais
	TotalOrders        int              `json:"total_orders"`
	StatusDistribution []StatusShare    `json:"status_distribution"`
	MonthlySales       []MonthlyPoint   `json:"monthly_sales"`
	TopProducts        []TopProductView `json:"top_products"`
	Year               int              `json:"year"`
	GeneratedAt        time.Time        `json:"generated_at"`
}
