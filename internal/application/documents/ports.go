package documents

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot es el único insumo que recibe la capa de render: datos planos del
// documento con totales ya calculados. El core no sabe de geometría de página,
// fuentes ni formato de salida; los montos van en decimal plano de la moneda
// local, sin conversión.
type Snapshot struct {
	Kind       string // delivery_note | invoice | proforma
	Number     string
	Date       time.Time
	PartyName  string
	PartyTaxID string
	PartyAddr  string
	Lines      []SnapshotLine
	NetTotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// SnapshotLine una línea del documento.
type SnapshotLine struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal
	TaxRate  decimal.Decimal
	Total    decimal.Decimal
}

// PDFGenerator es el puerto hacia la capa de render excluida del core.
type PDFGenerator interface {
	Generate(ctx context.Context, snap *Snapshot) ([]byte, error)
}
