package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind de documento de venta (para líneas compartidas y render de PDF).
const (
	SaleDocDeliveryNote = "delivery_note" // remisión
	SaleDocInvoice      = "invoice"       // factura
	SaleDocProforma     = "proforma"
)

// LineKind es la variante explícita de una línea de venta.
type LineKind string

const (
	LineProduct LineKind = "product" // descuenta lote
	LineService LineKind = "service" // sin efecto de stock
)

// Valid reporta si el kind de línea es soportado.
func (k LineKind) Valid() bool {
	return k == LineProduct || k == LineService
}

// DeliveryNote es la remisión: el documento de venta que descuenta stock.
type DeliveryNote struct {
	ID            string
	Number        string // número visible NNNNN/AAAA
	ClientID      string
	PaymentMethod string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}

// Invoice es la factura derivada de una remisión. OriginCode ("BON-<id>") tiene
// constraint único: convertir dos veces la misma remisión devuelve la factura
// existente en lugar de duplicarla.
type Invoice struct {
	ID         string
	Number     string
	OriginCode string
	ClientID   string
	Date       time.Time
	CreatedAt  time.Time
	CreatedBy  string
}

// Proforma es una cotización formal; no toca stock ni saldo.
type Proforma struct {
	ID        string
	Number    string
	ClientID  string
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string
}

// SaleItem es una línea de un documento de venta (remisión, factura o
// proforma). LotID solo aplica a líneas de tipo product.
type SaleItem struct {
	ID           string
	DocumentKind string // SaleDocDeliveryNote | SaleDocInvoice | SaleDocProforma
	DocumentID   string
	Kind         LineKind
	LotID        string // vacío en servicios
	Name         string
	Quantity     int64
	Price        decimal.Decimal // precio de venta unitario
	TaxRate      decimal.Decimal
}

// Total devuelve Price × Quantity de la línea.
func (i *SaleItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
