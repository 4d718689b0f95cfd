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

type CartRepository interface {
	GetByUser(userID int) (*domain.Cart, error)
	Save(cart *domain.Cart) error
	Clear(userID int) error
}

type cartRepository struct {
	conn *postgres.Connection
}

func NewCartRepository(conn *postgres.Connection) CartRepository {
	return &cartRepository{
		conn: conn,
	}
}

// GetByUser retorna o carrinho do usuário; um carrinho vazio quando não há linha
func (r *cartRepository) GetByUser(userID int) (*domain.Cart, error) {
	query, args, err := squirrel.
		Select("c.user_id, c.items, c.updated_at").
		From("carts c").
		Where(squirrel.Eq{"c.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	cart := &domain.Cart{}
	var itemsJSON []byte

	row := r.conn.QueryRow(query, args...)
	err = row.Scan(&cart.UserID, &itemsJSON, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
		}
		return nil, fmt.Errorf("erro ao escanear carrinho: %w", err)
	}

	cart.Items = make([]domain.CartItem, 0)
	if itemsJSON != nil {
		if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de itens do carrinho: %w", err)
		}
	}

	return cart, nil
}

func (r *cartRepository) Save(cart *domain.Cart) error {
	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("erro ao serializar itens do carrinho para JSON: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("carts").
		Columns("user_id", "items").
		Values(cart.UserID, itemsJSON).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				items = EXCLUDED.items,
				updated_at = NOW()
		`).
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

func (r *cartRepository) Clear(userID int) error {
	query, args, err := squirrel.
		Delete("carts").
		Where(squirrel.Eq{"user_id": userID}).
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
