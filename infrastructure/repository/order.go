package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/farm-market-api/infrastructure/database/postgres"
	"github.com/vfg2006/farm-market-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	GetByID(id string) (*domain.Order, error)
	ListByBuyer(buyerID int) ([]*domain.Order, error)
	ListAll() ([]*domain.Order, error)
	Create(order *domain.Order) error
	UpdateStatus(id string, status domain.OrderStatus) error
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) GetByID(id string) (*domain.Order, error) {
	query, args, err := squirrel.
		Select("o.id, o.buyer_id, o.items, o.status, o.shipping_details, o.payment_method, o.created_at, o.updated_at").
		From(ordersTable).
		Where(squirrel.Eq{"o.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	order, err := r.scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListByBuyer(buyerID int) ([]*domain.Order, error) {
	return r.list(squirrel.Eq{"o.buyer_id": buyerID})
}

// ListAll retorna o conjunto global de pedidos multi-vendedor. A atribuição por
// agricultor acontece no motor de agregação, não na query.
func (r *orderRepository) ListAll() ([]*domain.Order, error) {
	return r.list(nil)
}

func (r *orderRepository) list(where squirrel.Eq) ([]*domain.Order, error) {
	builder := squirrel.
		Select("o.id, o.buyer_id, o.items, o.status, o.shipping_details, o.payment_method, o.created_at, o.updated_at").
		From(ordersTable).
		OrderBy("o.created_at DESC").
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := r.scanOrderRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedidos: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) Create(order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("erro ao serializar itens do pedido para JSON: %w", err)
	}

	shippingJSON, err := json.Marshal(order.ShippingDetails)
	if err != nil {
		return fmt.Errorf("erro ao serializar dados de entrega para JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("orders").
		Columns("id", "buyer_id", "items", "status", "shipping_details", "payment_method", "created_at").
		Values(
			order.ID,
			order.BuyerID,
			itemsJSON,
			string(order.Status),
			shippingJSON,
			order.PaymentMethod,
			order.CreatedAt,
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

func (r *orderRepository) UpdateStatus(id string, status domain.OrderStatus) error {
	query, args, err := squirrel.StatementBuilder.
		Update("orders").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
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

func (r *orderRepository) scanOrder(row *sql.Row) (*domain.Order, error) {
	order := &domain.Order{}
	var itemsJSON, shippingJSON []byte
	var status string

	err := row.Scan(
		&order.ID,
		&order.BuyerID,
		&itemsJSON,
		&status,
		&shippingJSON,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.decodeOrder(order, status, itemsJSON, shippingJSON)
}

func (r *orderRepository) scanOrderRows(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}
	var itemsJSON, shippingJSON []byte
	var status string

	err := rows.Scan(
		&order.ID,
		&order.BuyerID,
		&itemsJSON,
		&status,
		&shippingJSON,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.decodeOrder(order, status, itemsJSON, shippingJSON)
}

func (r *orderRepository) decodeOrder(order *domain.Order, status string, itemsJSON, shippingJSON []byte) (*domain.Order, error) {
	// O status persistido passa pela mesma normalização da borda: valor
	// desconhecido degrada para pending em vez de rejeitar a linha
	record := domain.OrderRecord{Status: &status}
	order.Status = record.Normalize().Status

	if itemsJSON != nil {
		items := make([]domain.OrderLineItem, 0)
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de itens: %w", err)
		}
		order.Items = items
	}

	if shippingJSON != nil {
		if err := json.Unmarshal(shippingJSON, &order.ShippingDetails); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de entrega: %w", err)
		}
	}

	return order, nil
}
