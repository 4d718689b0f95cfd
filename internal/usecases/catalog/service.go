// Package catalog gerencia o catálogo de produtos dos agricultores
package catalog

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/farm-market-api/infrastructure/repository"
	"github.com/vfg2006/farm-market-api/internal/domain"
	"github.com/vfg2006/farm-market-api/pkg/utils"
)

var (
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrNotProductOwner = errors.New("produto pertence a outro agricultor")
	ErrMissingData     = errors.New("nome, preço e unidade são obrigatórios")
	ErrInvalidPrice    = errors.New("preço deve ser maior que zero")
)

type CatalogService interface {
	ListProducts(farmerID *int) ([]*domain.Product, error)
	GetProduct(id string) (*domain.Product, error)
	CreateProduct(farmerID int, product *domain.Product) (*domain.Product, error)
	UpdateProduct(farmerID int, req *domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(farmerID int, id string) error
}

type Service struct {
	productRepo repository.ProductRepository
}

func NewService(productRepo repository.ProductRepository) CatalogService {
	return &Service{
		productRepo: productRepo,
	}
}

// ListProducts retorna a vitrine completa ou apenas os produtos de um agricultor
func (s *Service) ListProducts(farmerID *int) ([]*domain.Product, error) {
	if farmerID != nil {
		return s.productRepo.ListByFarmer(*farmerID)
	}
	return s.productRepo.List()
}

func (s *Service) GetProduct(id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *Service) CreateProduct(farmerID int, product *domain.Product) (*domain.Product, error) {
	if product.Name == "" || product.Unit == "" {
		return nil, ErrMissingData
	}
	if product.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	product.ID = id
	product.FarmerID = farmerID
	if product.Status == "" {
		product.Status = domain.ProductAvailable
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"farmer_id":  farmerID,
	}).Info("Produto criado no catálogo")

	return product, nil
}

func (s *Service) UpdateProduct(farmerID int, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.ownedProduct(farmerID, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}

	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = *req.Price
	}

	if req.Unit != nil {
		product.Unit = *req.Unit
	}

	if req.Status != nil {
		product.Status = *req.Status
	}

	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct remove um produto do catálogo. A partir da remoção o produto
// deixa de resolver nas linhas de pedidos antigos, então a próxima agregação o
// exclui da atribuição e do ranking (falha fechada, sem remendo incremental).
func (s *Service) DeleteProduct(farmerID int, id string) error {
	if _, err := s.ownedProduct(farmerID, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"farmer_id":  farmerID,
	}).Info("Produto removido do catálogo")

	return nil
}

func (s *Service) ownedProduct(farmerID int, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.FarmerID != farmerID {
		return nil, ErrNotProductOwner
	}
	return product, nil
}
