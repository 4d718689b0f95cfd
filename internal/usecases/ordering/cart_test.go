package ordering

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/farm-market-api/infrastructure/repository/mocks"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/internal/usecases/analytics"
	"go.uber.org/mock/gomock"
)

var checkoutNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newCartService(cartRepo *mocks.MockCartRepository, orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		now:         func() time.Time { return checkoutNow },
	}
}

func cartWithItems(userID int, items ...domain.CartItem) *domain.Cart {
	return &domain.Cart{UserID: userID, Items: items}
}

func TestUpdateItemQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		setup    func(cartRepo *mocks.MockCartRepository)
		validate func(t *testing.T, cart *domain.Cart, err error)
	}{
		{
			name:     "Quantidade válida - item atualizado e carrinho salvo",
			quantity: 3,
			setup: func(cartRepo *mocks.MockCartRepository) {
				cartRepo.EXPECT().
					GetByUser(7).
					Return(cartWithItems(7, domain.CartItem{ID: "I1", ProductID: "P1", UnitPrice: 10, Quantity: 1}), nil)

				cartRepo.EXPECT().
					Save(gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, cart *domain.Cart, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 3, cart.Items[0].Quantity)
			},
		},
		{
			name:     "Quantidade abaixo de 1 - rejeitada antes de qualquer acesso ao repositório",
			quantity: 0,
			setup:    func(cartRepo *mocks.MockCartRepository) {},
			validate: func(t *testing.T, cart *domain.Cart, err error) {
				assert.ErrorIs(t, err, ErrInvalidQuantity)
				assert.Nil(t, cart)
			},
		},
		{
			name:     "Falha de persistência - erro propagado, nenhuma aplicação parcial",
			quantity: 2,
			setup: func(cartRepo *mocks.MockCartRepository) {
				cartRepo.EXPECT().
					GetByUser(7).
					Return(cartWithItems(7, domain.CartItem{ID: "I1", ProductID: "P1", UnitPrice: 10, Quantity: 1}), nil)

				cartRepo.EXPECT().
					Save(gomock.Any()).
					Return(errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, cart *domain.Cart, err error) {
				assert.Error(t, err)
				assert.Nil(t, cart)
			},
		},
		{
			name:     "Item inexistente - ErrItemNotFound",
			quantity: 2,
			setup: func(cartRepo *mocks.MockCartRepository) {
				cartRepo.EXPECT().
					GetByUser(7).
					Return(cartWithItems(7), nil)
			},
			validate: func(t *testing.T, cart *domain.Cart, err error) {
				assert.ErrorIs(t, err, ErrItemNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			cartRepo := mocks.NewMockCartRepository(ctrl)
			service := newCartService(cartRepo, mocks.NewMockOrderRepository(ctrl), mocks.NewMockProductRepository(ctrl))

			tt.setup(cartRepo)
			cart, err := service.UpdateItemQuantity(7, "I1", tt.quantity)
			tt.validate(t, cart, err)
		})
	}
}

func TestRemoveItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartRepo := mocks.NewMockCartRepository(ctrl)
	service := newCartService(cartRepo, mocks.NewMockOrderRepository(ctrl), mocks.NewMockProductRepository(ctrl))

	cartRepo.EXPECT().
		GetByUser(7).
		Return(cartWithItems(7,
			domain.CartItem{ID: "I1", ProductID: "P1", Quantity: 1},
			domain.CartItem{ID: "I2", ProductID: "P2", Quantity: 2},
		), nil)

	cartRepo.EXPECT().
		Save(gomock.Any()).
		DoAndReturn(func(cart *domain.Cart) error {
			assert.Len(t, cart.Items, 1)
			assert.Equal(t, "I2", cart.Items[0].ID)
			return nil
		})

	cart, err := service.RemoveItem(7, "I1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartMutationsAreSerialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartRepo := mocks.NewMockCartRepository(ctrl)
	service := newCartService(cartRepo, mocks.NewMockOrderRepository(ctrl), mocks.NewMockProductRepository(ctrl))

	// Detecta sobreposição: se duas mutações do mesmo carrinho rodarem ao mesmo
	// tempo, inFlight passa de 1
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	enter := func() {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
	}
	leave := func() {
		mu.Lock()
		inFlight--
		mu.Unlock()
	}

	cartRepo.EXPECT().
		GetByUser(7).
		DoAndReturn(func(userID int) (*domain.Cart, error) {
			enter()
			time.Sleep(5 * time.Millisecond)
			leave()
			return cartWithItems(7, domain.CartItem{ID: "I1", ProductID: "P1", Quantity: 1}), nil
		}).
		Times(10)

	cartRepo.EXPECT().
		Save(gomock.Any()).
		Return(nil).
		Times(10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.UpdateItemQuantity(7, "I1", 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight, "mutações do mesmo carrinho não podem se sobrepor")
}

func TestCheckout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartRepo := mocks.NewMockCartRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newCartService(cartRepo, orderRepo, mocks.NewMockProductRepository(ctrl))

	cartRepo.EXPECT().
		GetByUser(7).
		Return(cartWithItems(7,
			domain.CartItem{ID: "I1", ProductID: "P1", ProductName: "Tomate Orgânico", UnitPrice: 10, Quantity: 3},
			domain.CartItem{ID: "I2", ProductID: "P2", ProductName: "Alface", UnitPrice: 5, Quantity: 2},
		), nil)

	var created *domain.Order
	orderRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(order *domain.Order) error {
			created = order
			return nil
		})

	cartRepo.EXPECT().Clear(7).Return(nil)

	order, err := service.Checkout(7, &domain.CheckoutRequest{
		ShippingDetails: domain.ShippingDetails{FullName: "Maria Silva", City: "Erechim"},
		PaymentMethod:   "cash-on-delivery",
	})

	assert.NoError(t, err)
	assert.Equal(t, created, order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 7, order.BuyerID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, checkoutNow, order.CreatedAt)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 40.0, order.Total())
}

// O pedido sintetizado no checkout deve ser agregável pelo motor do painel sem
// nenhum caso especial, exatamente como um pedido vindo do servidor
func TestCheckout_OrderFeedsAggregation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartRepo := mocks.NewMockCartRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newCartService(cartRepo, orderRepo, mocks.NewMockProductRepository(ctrl))

	cartRepo.EXPECT().
		GetByUser(7).
		Return(cartWithItems(7,
			domain.CartItem{ID: "I1", ProductID: "P1", ProductName: "Tomate Orgânico", UnitPrice: 10, Quantity: 3},
		), nil)
	orderRepo.EXPECT().Create(gomock.Any()).Return(nil)
	cartRepo.EXPECT().Clear(7).Return(nil)

	order, err := service.Checkout(7, &domain.CheckoutRequest{PaymentMethod: "card"})
	assert.NoError(t, err)

	products := []*domain.Product{
		{ID: "P1", Name: "Tomate Orgânico", Price: 10, FarmerID: 1},
	}

	snapshot := analytics.Aggregate(
		analytics.FilterOrdersForSeller([]*domain.Order{order}, products, 1),
		products, 1, checkoutNow,
	)

	assert.Equal(t, 30.0, snapshot.TotalSales)
	assert.Equal(t, 1, snapshot.TotalOrders)
	assert.Equal(t, 1, snapshot.StatusCounts[domain.StatusPending])
	assert.Equal(t, 30.0, snapshot.MonthlySales[5].Sales)
}

func TestCheckout_EmptyCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartRepo := mocks.NewMockCartRepository(ctrl)
	service := newCartService(cartRepo, mocks.NewMockOrderRepository(ctrl), mocks.NewMockProductRepository(ctrl))

	cartRepo.EXPECT().GetByUser(7).Return(cartWithItems(7), nil)

	order, err := service.Checkout(7, &domain.CheckoutRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestCheckout_CreateFailureKeepsCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartRepo := mocks.NewMockCartRepository(ctrl)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	service := newCartService(cartRepo, orderRepo, mocks.NewMockProductRepository(ctrl))

	cartRepo.EXPECT().
		GetByUser(7).
		Return(cartWithItems(7, domain.CartItem{ID: "I1", ProductID: "P1", UnitPrice: 10, Quantity: 1}), nil)

	orderRepo.EXPECT().
		Create(gomock.Any()).
		Return(errors.New("conexão perdida"))

	// Clear não pode ser chamado: o carrinho anterior permanece intacto

	order, err := service.Checkout(7, &domain.CheckoutRequest{})
	assert.Error(t, err)
	assert.Nil(t, order)
}

func TestAddItem_UnavailableProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartRepo := mocks.NewMockCartRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)
	service := newCartService(cartRepo, mocks.NewMockOrderRepository(ctrl), productRepo)

	productRepo.EXPECT().
		GetByID("P1").
		Return(&domain.Product{ID: "P1", Status: domain.ProductSoldOut, FarmerID: 1}, nil)

	cart, err := service.AddItem(7, "P1", 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Nil(t, cart)
}
