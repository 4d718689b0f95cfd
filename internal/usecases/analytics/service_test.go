package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/farm-market-api/infrastructure/repository/mocks"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_FarmerDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockProductRepo := mocks.NewMockProductRepository(ctrl)

	service := &Service{
		orderRepository:   mockOrderRepo,
		productRepository: mockProductRepo,
		now:               func() time.Time { return referenceNow },
	}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, view *domain.DashboardView, err error)
	}{
		{
			name: "Agregação completa do cenário de referência",
			setup: func() {
				mockProductRepo.EXPECT().
					ListByFarmer(1).
					Return(sellerCatalog(), nil)

				mockOrderRepo.EXPECT().
					ListAll().
					Return(referenceOrders(), nil)
			},
			validate: func(t *testing.T, view *domain.DashboardView, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "50.00", view.TotalSales)
				assert.Equal(t, 2, view.TotalOrders)
				assert.Equal(t, 40.0, view.MonthlySales[2].Sales)
				assert.Len(t, view.TopProducts, 2)
				assert.Equal(t, "P1", view.TopProducts[0].ProductID)
			},
		},
		{
			name: "Sem pedidos no sistema - snapshot zerado válido",
			setup: func() {
				mockProductRepo.EXPECT().
					ListByFarmer(1).
					Return(sellerCatalog(), nil)

				mockOrderRepo.EXPECT().
					ListAll().
					Return([]*domain.Order{}, nil)
			},
			validate: func(t *testing.T, view *domain.DashboardView, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "0.00", view.TotalSales)
				assert.Zero(t, view.TotalOrders)
				assert.Len(t, view.MonthlySales, 12)
			},
		},
		{
			name: "Falha na busca de pedidos - erro propagado sem snapshot parcial",
			setup: func() {
				mockProductRepo.EXPECT().
					ListByFarmer(1).
					Return(sellerCatalog(), nil)

				mockOrderRepo.EXPECT().
					ListAll().
					Return(nil, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, view *domain.DashboardView, err error) {
				assert.Error(t, err)
				assert.Nil(t, view)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			view, err := service.FarmerDashboard(1)
			tt.validate(t, view, err)
		})
	}
}

func TestService_SnapshotRecomputedEachPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockProductRepo := mocks.NewMockProductRepository(ctrl)

	service := &Service{
		orderRepository:   mockOrderRepo,
		productRepository: mockProductRepo,
		now:               func() time.Time { return referenceNow },
	}

	// Primeira passada com catálogo completo
	mockProductRepo.EXPECT().ListByFarmer(1).Return(sellerCatalog(), nil)
	mockOrderRepo.EXPECT().ListAll().Return(referenceOrders(), nil)

	first, err := service.FarmerSnapshot(1)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, first.TotalSales)

	// Produto P1 removido do catálogo: a recomputação reflete a remoção sem
	// nenhum remendo incremental (falha fechada em filtragem e ranking)
	reduced := []*domain.Product{
		{ID: "P2", Name: "Alface", Price: 5, FarmerID: 1},
	}
	mockProductRepo.EXPECT().ListByFarmer(1).Return(reduced, nil)
	mockOrderRepo.EXPECT().ListAll().Return(referenceOrders(), nil)

	second, err := service.FarmerSnapshot(1)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, second.TotalSales)
	assert.Equal(t, 1, second.TotalOrders)
	assert.Len(t, second.TopProducts, 1)
	assert.Equal(t, "P2", second.TopProducts[0].ProductID)
}
