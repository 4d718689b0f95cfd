package domain

import "time"

// Status possíveis para um produto do catálogo
const (
	ProductAvailable = "available"
	ProductSoldOut   = "sold_out"
)

// Product representa um snapshot imutável de um produto do catálogo do agricultor.
// Durante um passe de agregação o produto nunca é alterado.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"` // ex: kg, dúzia, unidade
	Status      string    `json:"status"`
	ImageURL    *string   `json:"image_url,omitempty"`
	FarmerID    int       `json:"farmer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateProductRequest contém os campos opcionais de atualização de um produto
type UpdateProductRequest struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Unit        *string  `json:"unit"`
	Status      *string  `json:"status"`
	ImageURL    *string  `json:"image_url"`
}
