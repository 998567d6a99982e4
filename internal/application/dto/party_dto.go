package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyRequest alta/edición de cliente o proveedor.
type PartyRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// BalanceResponse saldo derivado de un tercero.
type BalanceResponse struct {
	PartyID         string          `json:"party_id"`
	TotalTransacted decimal.Decimal `json:"total_transacted"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Debt            decimal.Decimal `json:"debt"`
}

// PartyWithBalance fila de listado paginado con columnas de saldo.
type PartyWithBalance struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id"`
	Phone           string          `json:"phone"`
	TotalTransacted decimal.Decimal `json:"total_transacted"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Debt            decimal.Decimal `json:"debt"`
}

// PaymentRequest abono de cliente o pago a proveedor.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date,omitempty"`
}

// PeriodSpendResponse gasto del período (solo pagos, extremos inclusive).
type PeriodSpendResponse struct {
	PartyID string          `json:"party_id"`
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Amount  decimal.Decimal `json:"amount"`
}
