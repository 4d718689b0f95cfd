package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/pkg/utils"
)

// Project formata um AnalyticsSnapshot nos contratos de apresentação do painel:
// valores monetários com 2 casas decimais, fatias percentuais do gráfico de
// status e rótulos capitalizados. Nenhuma lógica de agregação acontece aqui e
// nenhum total é alterado.
func Project(snapshot *domain.AnalyticsSnapshot) *domain.DashboardView {
	view := &domain.DashboardView{
		TotalSales:         formatAmount(snapshot.TotalSales),
		TotalOrders:        snapshot.TotalOrders,
		StatusDistribution: make([]domain.StatusShare, 0, len(domain.StatusDisplayOrder)),
		MonthlySales:       make([]domain.MonthlyPoint, 0, len(snapshot.MonthlySales)),
		TopProducts:        make([]domain.TopProductView, 0, len(snapshot.TopProducts)),
		Year:               snapshot.Year,
		GeneratedAt:        snapshot.GeneratedAt,
	}

	for _, status := range domain.StatusDisplayOrder {
		count := snapshot.StatusCounts[status]
		view.StatusDistribution = append(view.StatusDistribution, domain.StatusShare{
			Label: capitalize(string(status)),
			Count: count,
			Share: formatShare(count, snapshot.TotalOrders),
		})
	}

	for _, bucket := range snapshot.MonthlySales {
		view.MonthlySales = append(view.MonthlySales, domain.MonthlyPoint{
			Month:      bucket.Month,
			Sales:      utils.RoundWithTwoDecimalPlace(bucket.Sales),
			OrderCount: bucket.OrderCount,
		})
	}

	for _, top := range snapshot.TopProducts {
		view.TopProducts = append(view.TopProducts, domain.TopProductView{
			ProductID: top.ProductID,
			Name:      top.Name,
			Quantity:  top.Quantity,
			Revenue:   formatAmount(top.Revenue),
		})
	}

	return view
}

// formatAmount arredonda para 2 casas e formata com 2 casas fixas
func formatAmount(value float64) string {
	return strconv.FormatFloat(utils.RoundWithTwoDecimalPlace(value), 'f', 2, 64)
}

// formatShare calcula a fatia percentual de um status. Quando não há pedidos a
// fatia é definida como 0%, nunca uma divisão por zero.
func formatShare(count, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
