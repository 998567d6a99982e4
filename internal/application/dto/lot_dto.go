package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest body para POST /api/lots (alta manual de stock).
type CreateLotRequest struct {
	Code       string          `json:"code"`
	ProductID  string          `json:"product_id"`
	SupplierID string          `json:"supplier_id"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	Quantity   int64           `json:"quantity"`
	Date       *time.Time      `json:"date,omitempty"`
}

// UpdateLotRequest body para PUT /api/lots/:id. Campos nil = no cambiar.
type UpdateLotRequest struct {
	Code      *string          `json:"code,omitempty"`
	Quantity  *int64           `json:"quantity,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
	BuyPrice  *decimal.Decimal `json:"buy_price,omitempty"`
	SellPrice *decimal.Decimal `json:"sell_price,omitempty"`
}

// LotResponse representación de un lote en respuestas.
type LotResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	ProductID  string          `json:"product_id"`
	SupplierID string          `json:"supplier_id"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	Quantity   int64           `json:"quantity"`
	IsActive   bool            `json:"is_active"`
	Date       time.Time       `json:"date"`
}
