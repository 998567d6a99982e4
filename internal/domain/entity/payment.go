package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment es un abono de cliente o un pago a proveedor. Append-only: no se
// vincula a facturas concretas, liquida el saldo del tercero en agregado.
type Payment struct {
	ID        string
	PartyKind PartyKind
	PartyID   string
	Amount    decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string
}
