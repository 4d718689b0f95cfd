// Package ordering cobre o ciclo carrinho → checkout → pedidos do comprador
package ordering

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/infrastructure/repository"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/pkg/utils"
)

var (
	ErrItemNotFound       = errors.New("item não encontrado no carrinho")
	ErrInvalidQuantity    = errors.New("quantidade deve ser no mínimo 1")
	ErrEmptyCart          = errors.New("carrinho vazio")
	ErrProductUnavailable = errors.New("produto indisponível")
)

type CartService interface {
	GetCart(userID int) (*domain.Cart, error)
	AddItem(userID int, productID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(userID int, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(userID int, itemID string) (*domain.Cart, error)
	Checkout(userID int, req *domain.CheckoutRequest) (*domain.Order, error)
}

type Service struct {
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	now         func() time.Time

	// Uma mutação em voo por carrinho: requisições concorrentes de
	// quantidade/remoção/checkout do mesmo usuário são serializadas, para que o
	// carrinho exibido nunca reflita uma atualização rejeitada ou atropelada
	cartLocks sync.Map // userID -> *sync.Mutex
}

func NewService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &Service{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

func (s *Service) lockCart(userID int) *sync.Mutex {
	lock, _ := s.cartLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	return mu
}

func (s *Service) GetCart(userID int) (*domain.Cart, error) {
	return s.cartRepo.GetByUser(userID)
}

func (s *Service) AddItem(userID int, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	mu := s.lockCart(userID)
	defer mu.Unlock()

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status != domain.ProductAvailable {
		return nil, ErrProductUnavailable
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	// Produto já no carrinho apenas acumula quantidade
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}

	if !found {
		itemID, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ID:          itemID,
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    quantity,
		})
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// UpdateItemQuantity altera a quantidade de um item. Quantidade mínima é 1;
// falha de persistência deixa o carrinho anterior intacto.
func (s *Service) UpdateItemQuantity(userID int, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	mu := s.lockCart(userID)
	defer mu.Unlock()

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}

	if !found {
		return nil, ErrItemNotFound
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *Service) RemoveItem(userID int, itemID string) (*domain.Cart, error) {
	mu := s.lockCart(userID)
	defer mu.Unlock()

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0, len(cart.Items))
	found := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			found = true
			continue
		}
		items = append(items, item)
	}

	if !found {
		return nil, ErrItemNotFound
	}

	cart.Items = items

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

// Checkout converte o carrinho em um Order com o mesmo formato dos pedidos
// vindos do servidor: a próxima agregação o inclui sem nenhum caso especial.
// O preço unitário de cada item é capturado na linha neste momento.
func (s *Service) Checkout(userID int, req *domain.CheckoutRequest) (*domain.Order, error) {
	if req == nil {
		req = &domain.CheckoutRequest{}
	}

	mu := s.lockCart(userID)
	defer mu.Unlock()

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	orderID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              orderID,
		BuyerID:         userID,
		Status:          domain.StatusPending,
		ShippingDetails: req.ShippingDetails,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       s.now(),
		Items:           make([]domain.OrderLineItem, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, domain.OrderLineItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}

	// Persistir o pedido antes de limpar o carrinho: se a criação falhar, o
	// carrinho exibido permanece como estava (nenhuma aplicação parcial)
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Clear(userID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"order_id": order.ID,
		}).Error("Pedido criado mas a limpeza do carrinho falhou")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"buyer_id": userID,
		"total":    order.Total(),
	}).Info("Checkout concluído")

	return order, nil
}
