// Package analytics implementa o motor de atribuição de pedidos e agregação de
// vendas do painel do agricultor. O fluxo é estritamente unidirecional:
// pedidos/catálogo → pedidos filtrados → pedidos atribuídos → agregados →
// view models. Nenhuma etapa altera a saída da anterior; cada recomputação é um
// passe novo sobre um snapshot em memória.
package analytics

import (
	"github.com/vfg2006/farm-market-api/internal/domain"
)

// indexCatalog indexa o catálogo por ID de produto para resolução das linhas
func indexCatalog(products []*domain.Product) map[string]*domain.Product {
	catalog := make(map[string]*domain.Product, len(products))
	for _, product := range products {
		if product == nil || product.ID == "" {
			continue
		}
		catalog[product.ID] = product
	}
	return catalog
}

// FilterOrdersForSeller seleciona, do conjunto global de pedidos, aqueles que
// contêm ao menos uma linha pertencente ao agricultor, já atribuídos.
//
// A resolução de produto falha fechada: linha cujo produto não existe mais no
// catálogo é excluída, para não atribuir referências órfãs ao vendedor errado.
// Pedidos malformados contam como conjunto vazio, nunca como erro.
func FilterOrdersForSeller(orders []*domain.Order, products []*domain.Product, sellerID int) []*domain.AttributedOrder {
	catalog := indexCatalog(products)

	attributed := make([]*domain.AttributedOrder, 0, len(orders))
	for _, order := range orders {
		ao := attributeWithCatalog(order, catalog, sellerID)
		if ao == nil || len(ao.SellerItems) == 0 {
			continue
		}
		attributed = append(attributed, ao)
	}

	return attributed
}

// Attribute reduz um pedido à visão do agricultor: somente as linhas cujo
// produto pertence a ele, com o subtotal correspondente. O subtotal usa o preço
// capturado na linha, nunca o preço corrente do catálogo, em precisão completa.
// O arredondamento monetário só acontece na projeção.
func Attribute(order *domain.Order, products []*domain.Product, sellerID int) *domain.AttributedOrder {
	return attributeWithCatalog(order, indexCatalog(products), sellerID)
}

func attributeWithCatalog(order *domain.Order, catalog map[string]*domain.Product, sellerID int) *domain.AttributedOrder {
	if order == nil {
		return nil
	}

	attributed := &domain.AttributedOrder{
		Order:       order,
		SellerItems: make([]domain.OrderLineItem, 0),
	}

	for _, item := range order.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			// Produto removido do catálogo: a linha sai da atribuição
			continue
		}

		if product.FarmerID != sellerID {
			continue
		}

		attributed.SellerItems = append(attributed.SellerItems, item)
		attributed.Subtotal += item.UnitPrice * float64(item.Quantity)
	}

	return attributed
}
