package analytics

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/infrastructure/repository"
	"github.com/vfg2006/farm-market-api/internal/domain"
)

// Analyzer expõe o motor de agregação para o painel do agricultor
type Analyzer interface {
	FarmerSnapshot(farmerID int) (*domain.AnalyticsSnapshot, error)
	FarmerDashboard(farmerID int) (*domain.DashboardView, error)
}

type Service struct {
	orderRepository   repository.OrderRepository
	productRepository repository.ProductRepository
	now               func() time.Time
}

// NewService cria o serviço de analytics do painel
func NewService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) Analyzer {
	return &Service{
		orderRepository:   orderRepo,
		productRepository: productRepo,
		now:               time.Now,
	}
}

// FarmerSnapshot executa um passe completo de agregação sobre um snapshot novo
// de pedidos e catálogo. Nada é remendado incrementalmente: mudou o conjunto de
// pedidos ou produtos, recalcula do zero.
func (s *Service) FarmerSnapshot(farmerID int) (*domain.AnalyticsSnapshot, error) {
	products, err := s.productRepository.ListByFarmer(farmerID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar catálogo do agricultor")
		return nil, err
	}

	orders, err := s.orderRepository.ListAll()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar pedidos para agregação")
		return nil, err
	}

	attributed := FilterOrdersForSeller(orders, products, farmerID)
	snapshot := Aggregate(attributed, products, farmerID, s.now())

	logrus.WithFields(logrus.Fields{
		"farmer_id":    farmerID,
		"total_orders": snapshot.TotalOrders,
	}).Debug("Snapshot de analytics gerado")

	return snapshot, nil
}

// FarmerDashboard agrega e projeta em um único passo para o handler do painel
func (s *Service) FarmerDashboard(farmerID int) (*domain.DashboardView, error) {
	snapshot, err := s.FarmerSnapshot(farmerID)
	if err != nil {
		return nil, err
	}

	return Project(snapshot), nil
}
