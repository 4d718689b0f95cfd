package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/farm-market-api/internal/domain"
)

func sellerCatalog() []*domain.Product {
	return []*domain.Product{
		{ID: "P1", Name: "Tomate Orgânico", Price: 10, Unit: "kg", FarmerID: 1},
		{ID: "P2", Name: "Alface", Price: 5, Unit: "kg", FarmerID: 1},
		{ID: "P3", Name: "Milho", Price: 8, Unit: "kg", FarmerID: 2},
	}
}

func TestFilterOrdersForSeller(t *testing.T) {
	products := sellerCatalog()

	tests := []struct {
		name     string
		orders   []*domain.Order
		sellerID int
		validate func(t *testing.T, result []*domain.AttributedOrder)
	}{
		{
			name: "Pedido com linhas de vários vendedores - mantém apenas as linhas do vendedor",
			orders: []*domain.Order{
				{
					ID: "O1",
					Items: []domain.OrderLineItem{
						{ProductID: "P1", UnitPrice: 10, Quantity: 3},
						{ProductID: "P2", UnitPrice: 5, Quantity: 2},
						{ProductID: "P3", UnitPrice: 8, Quantity: 1},
					},
				},
			},
			sellerID: 1,
			validate: func(t *testing.T, result []*domain.AttributedOrder) {
				assert.Len(t, result, 1)
				assert.Len(t, result[0].SellerItems, 2)
				assert.Equal(t, 40.0, result[0].Subtotal)
			},
		},
		{
			name: "Pedido sem nenhuma linha do vendedor - excluído do resultado",
			orders: []*domain.Order{
				{
					ID: "O2",
					Items: []domain.OrderLineItem{
						{ProductID: "P3", UnitPrice: 8, Quantity: 4},
					},
				},
			},
			sellerID: 1,
			validate: func(t *testing.T, result []*domain.AttributedOrder) {
				assert.Empty(t, result)
			},
		},
		{
			name: "Produto removido do catálogo - linha falha fechada e pedido sai da visão",
			orders: []*domain.Order{
				{
					ID: "O3",
					Items: []domain.OrderLineItem{
						{ProductID: "P-REMOVIDO", UnitPrice: 99, Quantity: 10},
					},
				},
			},
			sellerID: 1,
			validate: func(t *testing.T, result []*domain.AttributedOrder) {
				assert.Empty(t, result)
			},
		},
		{
			name: "Pedido malformado sem itens - conjunto vazio, nunca erro",
			orders: []*domain.Order{
				{ID: "O4", Items: nil},
				nil,
			},
			sellerID: 1,
			validate: func(t *testing.T, result []*domain.AttributedOrder) {
				assert.Empty(t, result)
			},
		},
		{
			name: "Fechamento da atribuição - todo pedido com linha do vendedor aparece",
			orders: []*domain.Order{
				{ID: "O5", Items: []domain.OrderLineItem{{ProductID: "P1", UnitPrice: 10, Quantity: 1}}},
				{ID: "O6", Items: []domain.OrderLineItem{{ProductID: "P3", UnitPrice: 8, Quantity: 1}}},
				{ID: "O7", Items: []domain.OrderLineItem{{ProductID: "P2", UnitPrice: 5, Quantity: 1}}},
			},
			sellerID: 1,
			validate: func(t *testing.T, result []*domain.AttributedOrder) {
				assert.Len(t, result, 2)
				for _, ao := range result {
					assert.NotEmpty(t, ao.SellerItems)
				}
				assert.Equal(t, "O5", result[0].Order.ID)
				assert.Equal(t, "O7", result[1].Order.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterOrdersForSeller(tt.orders, products, tt.sellerID)
			tt.validate(t, result)
		})
	}
}

func TestAttribute_SubtotalAdditivity(t *testing.T) {
	products := sellerCatalog()

	order := &domain.Order{
		ID:        "O1",
		Status:    domain.StatusCompleted,
		CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []domain.OrderLineItem{
			{ProductID: "P1", UnitPrice: 10, Quantity: 3},
			{ProductID: "P2", UnitPrice: 5, Quantity: 2},
			{ProductID: "P3", UnitPrice: 8, Quantity: 1},
		},
	}

	attributed := Attribute(order, products, 1)

	// Subtotal = soma exata de unitPrice × quantity das linhas do vendedor
	assert.Equal(t, 40.0, attributed.Subtotal)
	assert.Len(t, attributed.SellerItems, 2)

	// O pedido original não é alterado pela atribuição
	assert.Len(t, order.Items, 3)
}

func TestAttribute_UsesCapturedLinePrice(t *testing.T) {
	// O preço do catálogo mudou depois do pedido; o subtotal usa o preço
	// capturado na linha para manter totais históricos estáveis
	products := []*domain.Product{
		{ID: "P1", Name: "Tomate Orgânico", Price: 25, FarmerID: 1},
	}

	order := &domain.Order{
		ID: "O1",
		Items: []domain.OrderLineItem{
			{ProductID: "P1", UnitPrice: 10, Quantity: 2},
		},
	}

	attributed := Attribute(order, products, 1)
	assert.Equal(t, 20.0, attributed.Subtotal)
}
