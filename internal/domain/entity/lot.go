package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote de adquisición: una cantidad de UN producto comprada a
// UN proveedor, a un precio y en una fecha. Es la única fuente autoritativa de
// stock por lote; el total del producto es un cache derivado de los lotes activos.
//
// Un lote agotado por ventas queda con Quantity=0 e IsActive=false; la
// reactivación es siempre explícita (update con cantidad nueva), nunca
// automática.
type Lot struct {
	ID         string
	Code       string // código externo del lote
	ProductID  string
	SupplierID string
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	Quantity   int64
	IsActive   bool
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ActiveQuantity devuelve la contribución del lote al total cacheado del
// producto: cero si el lote está inactivo.
func (l *Lot) ActiveQuantity() int64 {
	if !l.IsActive {
		return 0
	}
	return l.Quantity
}
