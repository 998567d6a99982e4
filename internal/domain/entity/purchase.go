package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de compra.
const (
	PurchaseTypePurchase = "purchase" // entrada de mercancía
	PurchaseTypeReturn   = "return"   // devolución al proveedor
)

// Purchase es el asiento de compra (o devolución a proveedor) del diario de
// transacciones. Inmutable una vez creado; el borrado elimina primero sus
// líneas y luego la cabecera, en una sola transacción.
type Purchase struct {
	ID            string
	Number        string // número visible NNNNN/AAAA
	SupplierID    string
	Type          string // PurchaseTypePurchase | PurchaseTypeReturn
	PaymentMethod string // contado, crédito, ...
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}

// PurchaseItem es una línea de compra. Name y precios van desnormalizados:
// el diario conserva lo que se transó aunque el catálogo cambie después.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	LotID      string // lote creado (compra) o afectado (devolución)
	Name       string
	Quantity   int64
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
}

// Total devuelve BuyPrice × Quantity de la línea.
func (i *PurchaseItem) Total() decimal.Decimal {
	return i.BuyPrice.Mul(decimal.NewFromInt(i.Quantity))
}
