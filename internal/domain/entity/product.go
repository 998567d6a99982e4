package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity es la cantidad total cacheada: SIEMPRE debe ser igual a la suma de
// Quantity sobre los lotes ACTIVOS del producto. Solo la mutan los flujos de
// reconciliación de stock (compra/venta/lote), nunca los handlers directamente.
type Product struct {
	ID         string
	Code       string // código interno único
	Barcode    string
	Name       string
	CategoryID string
	TaxRate    decimal.Decimal // IVA: 0, 0.05, 0.19
	Quantity   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
