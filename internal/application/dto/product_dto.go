package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code       string          `json:"code"`
	Barcode    string          `json:"barcode"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
}

// UpdateProductRequest body para PUT /api/products/:id. No permite tocar
// Quantity: eso es territorio exclusivo de la reconciliación.
type UpdateProductRequest struct {
	Barcode    *string          `json:"barcode,omitempty"`
	Name       *string          `json:"name,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
	TaxRate    *decimal.Decimal `json:"tax_rate,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Barcode    string          `json:"barcode"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	TaxRate    decimal.Decimal `json:"tax_rate"`
	Quantity   int64           `json:"quantity"`
	CreatedAt  time.Time       `json:"created_at"`
}
