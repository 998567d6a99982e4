package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de compra o devolución a proveedor.
// En compras se crea un lote nuevo por línea; en devoluciones LotID referencia
// el lote a descontar.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id"`
	LotID     string          `json:"lot_id,omitempty"`
	LotCode   string          `json:"lot_code,omitempty"`
	Quantity  int64           `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

// CommitPurchaseRequest body para POST /api/purchases.
type CommitPurchaseRequest struct {
	SupplierID    string                `json:"supplier_id"`
	Lines         []PurchaseLineRequest `json:"lines"`
	PaymentMethod string                `json:"payment_method"`
	Type          string                `json:"type"` // purchase | return
	Date          *time.Time            `json:"date,omitempty"`
}
