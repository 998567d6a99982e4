package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest es una línea de venta. LotID solo aplica (y es obligatorio)
// cuando kind es "product"; los servicios no tocan stock.
type SaleLineRequest struct {
	Kind     string          `json:"kind"` // product | service
	LotID    string          `json:"lot_id,omitempty"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	TaxRate  decimal.Decimal `json:"tax_rate"`
}

// CommitSaleRequest body para POST /api/sales.
type CommitSaleRequest struct {
	ClientID      string            `json:"client_id"`
	Lines         []SaleLineRequest `json:"lines"`
	PaymentMethod string            `json:"payment_method"`
	BillDate      *time.Time        `json:"bill_date,omitempty"`
}

// LotDeductionDTO auditoría por línea de lo descontado en la venta.
type LotDeductionDTO struct {
	LotID            string `json:"lot_id"`
	QuantityDeducted int64  `json:"quantity_deducted"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
}

// CommitSaleResponse respuesta de la venta confirmada.
type CommitSaleResponse struct {
	TransactionID string            `json:"transaction_id"`
	DisplayNumber string            `json:"display_number"`
	LotDeductions []LotDeductionDTO `json:"lot_deductions"`
}

// ProformaRequest body para POST /api/proformas.
type ProformaRequest struct {
	ClientID string            `json:"client_id"`
	Lines    []SaleLineRequest `json:"lines"`
	Date     *time.Time        `json:"date,omitempty"`
}

// DocumentNumberResponse respuesta mínima con el número visible asignado.
type DocumentNumberResponse struct {
	TransactionID string `json:"transaction_id"`
	DisplayNumber string `json:"display_number"`
}

// InvoiceResponse respuesta de conversión remisión → factura.
type InvoiceResponse struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	OriginCode string    `json:"origin_code"`
	ClientID   string    `json:"client_id"`
	Date       time.Time `json:"date"`
}
