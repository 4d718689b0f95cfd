package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/farm-market-api/infrastructure/database/postgres"
	"github.com/vfg2006/farm-market-api/internal/domain"
)

const (
	productsTable = "products p"
)

type ProductRepository interface {
	GetByID(id string) (*domain.Product, error)
	List() ([]*domain.Product, error)
	ListByFarmer(farmerID int) ([]*domain.Product, error)
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	Delete(id string) error
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) GetByID(id string) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("p.id, p.name, p.description, p.price, p.unit, p.status, p.image_url, p.farmer_id, p.created_at, p.updated_at").
		From(productsTable).
		Where(squirrel.Eq{"p.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	product, err := r.scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) List() ([]*domain.Product, error) {
	return r.list(squirrel.Eq{})
}

func (r *productRepository) ListByFarmer(farmerID int) ([]*domain.Product, error) {
	return r.list(squirrel.Eq{"p.farmer_id": farmerID})
}

func (r *productRepository) list(where squirrel.Eq) ([]*domain.Product, error) {
	builder := squirrel.
		Select("p.id, p.name, p.description, p.price, p.unit, p.status, p.image_url, p.farmer_id, p.created_at, p.updated_at").
		From(productsTable).
		OrderBy("p.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := r.scanProductRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produtos: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

func (r *productRepository) Create(product *domain.Product) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("products").
		Columns("id", "name", "description", "price", "unit", "status", "image_url", "farmer_id").
		Values(
			product.ID,
			product.Name,
			product.Description,
			product.Price,
			product.Unit,
			product.Status,
			product.ImageURL,
			product.FarmerID,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *productRepository) Update(product *domain.Product) error {
	query, args, err := squirrel.StatementBuilder.
		Update("products").
		Set("name", product.Name).
		Set("description", product.Description).
		Set("price", product.Price).
		Set("unit", product.Unit).
		Set("status", product.Status).
		Set("image_url", product.ImageURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *productRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete("products").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *productRepository) scanProduct(row *sql.Row) (*domain.Product, error) {
	product := &domain.Product{}

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Unit,
		&product.Status,
		&product.ImageURL,
		&product.FarmerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) scanProductRows(rows *sql.Rows) (*domain.Product, error) {
	product := &domain.Product{}

	err := rows.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Unit,
		&product.Status,
		&product.ImageURL,
		&product.FarmerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}
