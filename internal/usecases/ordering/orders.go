package ordering

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/infrastructure/repository"
	"github.com/vfg2006/farm-market-api/internal/domain"
)

var ErrOrderNotFound = errors.New("pedido não encontrado")
var ErrNotOrderOwner = errors.New("pedido pertence a outro comprador")
var ErrInvalidStatus = errors.New("status de pedido desconhecido")

type OrderService interface {
	ListBuyerOrders(buyerID int) ([]*domain.Order, error)
	GetOrder(buyerID int, orderID string) (*domain.Order, error)
	UpdateOrderStatus(orderID string, status domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{
		orderRepo: orderRepo,
	}
}

func (s *orderService) ListBuyerOrders(buyerID int) ([]*domain.Order, error) {
	return s.orderRepo.ListByBuyer(buyerID)
}

func (s *orderService) GetOrder(buyerID int, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.BuyerID != buyerID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

// UpdateOrderStatus avança um pedido no ciclo de vida. Só aceita os status do
// conjunto fechado; a próxima agregação reflete o novo histograma sem remendo.
func (s *orderService) UpdateOrderStatus(orderID string, status domain.OrderStatus) (*domain.Order, error) {
	switch status {
	case domain.StatusPending, domain.StatusProcessing, domain.StatusCompleted, domain.StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}

	order.Status = status

	logrus.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
	}).Info("Status do pedido atualizado")

	return order, nil
}
