package analytics

import (
	"sort"
	"time"

	"github.com/vfg2006/farm-market-api/internal/domain"
)

// topProductsLimit é o tamanho máximo do ranking de produtos do painel
const topProductsLimit = 5

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Estrutura para acompanhar o acumulado de um produto durante o ranking
type productAccumulator struct {
	productID string
	name      string
	quantity  int
	revenue   float64
}

// Aggregate dobra os pedidos atribuídos em um AnalyticsSnapshot completo:
// totais, histograma de status, série mensal do ano corrente e top-5 produtos
// por receita. Função pura: entradas idênticas produzem snapshots idênticos.
//
// TotalSales soma os subtotais de todos os anos; a série mensal cobre somente o
// ano calendário de `now`. Ver a nota de discrepância em domain.AnalyticsSnapshot.
func Aggregate(attributed []*domain.AttributedOrder, products []*domain.Product, sellerID int, now time.Time) *domain.AnalyticsSnapshot {
	catalog := indexCatalog(products)
	currentYear := now.Year()

	snapshot := &domain.AnalyticsSnapshot{
		FarmerID:     sellerID,
		Year:         currentYear,
		StatusCounts: make(map[domain.OrderStatus]int),
		TopProducts:  make([]domain.TopProduct, 0),
		GeneratedAt:  now,
	}

	// 12 buckets zerados do ano corrente, mesmo sem nenhum pedido
	for i := range snapshot.MonthlySales {
		snapshot.MonthlySales[i] = domain.MonthlyBucket{Month: monthLabels[i]}
	}

	for _, status := range domain.StatusDisplayOrder {
		snapshot.StatusCounts[status] = 0
	}

	// Acumuladores do ranking, preservando a ordem de primeira aparição para o
	// desempate determinístico
	accumulators := make(map[string]*productAccumulator)
	firstSeen := make([]string, 0)

	for _, ao := range attributed {
		if ao == nil || ao.Order == nil || len(ao.SellerItems) == 0 {
			continue
		}

		snapshot.TotalOrders++
		snapshot.TotalSales += ao.Subtotal

		// Histograma de status: a normalização da borda garante o conjunto
		// fechado, mas um valor fora dele ainda degrada para pending
		status := ao.Order.Status
		if _, known := snapshot.StatusCounts[status]; !known {
			status = domain.StatusPending
		}
		snapshot.StatusCounts[status]++

		// Série mensal: somente pedidos criados no ano corrente; os demais são
		// excluídos em silêncio, mas continuam contando em TotalSales
		if ao.Order.CreatedAt.Year() == currentYear {
			month := int(ao.Order.CreatedAt.Month()) - 1
			snapshot.MonthlySales[month].Sales += ao.Subtotal
			snapshot.MonthlySales[month].OrderCount++
		}

		for _, item := range ao.SellerItems {
			product, ok := catalog[item.ProductID]
			if !ok {
				// Mesma regra de falha fechada da filtragem
				continue
			}

			acc, ok := accumulators[item.ProductID]
			if !ok {
				acc = &productAccumulator{
					productID: item.ProductID,
					name:      product.Name,
				}
				accumulators[item.ProductID] = acc
				firstSeen = append(firstSeen, item.ProductID)
			}

			acc.quantity += item.Quantity
			acc.revenue += item.UnitPrice * float64(item.Quantity)
		}
	}

	snapshot.TopProducts = rankTopProducts(accumulators, firstSeen)

	return snapshot
}

// rankTopProducts ordena por receita decrescente, desempata pela ordem de
// primeira aparição e trunca no limite do painel
func rankTopProducts(accumulators map[string]*productAccumulator, firstSeen []string) []domain.TopProduct {
	ranked := make([]*productAccumulator, 0, len(firstSeen))
	for _, id := range firstSeen {
		ranked = append(ranked, accumulators[id])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].revenue > ranked[j].revenue
	})

	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}

	top := make([]domain.TopProduct, 0, len(ranked))
	for _, acc := range ranked {
		top = append(top, domain.TopProduct{
			ProductID: acc.productID,
			Name:      acc.name,
			Quantity:  acc.quantity,
			Revenue:   acc.revenue,
		})
	}

	return top
}
