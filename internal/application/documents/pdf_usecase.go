package documents

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// PDFUseCase arma el snapshot de un documento de venta y lo entrega al
// generador. Fallos de recursos gráficos en el render (logo, imágenes) son
// deliberadamente no fatales: el documento sale sin la imagen.
type PDFUseCase struct {
	saleRepo   repository.SaleRepository
	clientRepo repository.ClientRepository
	generator  PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(saleRepo repository.SaleRepository, clientRepo repository.ClientRepository, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{saleRepo: saleRepo, clientRepo: clientRepo, generator: generator}
}

// Render genera el PDF del documento (remisión, factura o proforma).
func (uc *PDFUseCase) Render(ctx context.Context, kind, id string) ([]byte, error) {
	snap, err := uc.snapshot(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(ctx, snap)
}

// snapshot carga documento + líneas + cliente y calcula los totales.
func (uc *PDFUseCase) snapshot(ctx context.Context, kind, id string) (*Snapshot, error) {
	snap := &Snapshot{Kind: kind}
	var clientID string
	var items []*entity.SaleItem

	switch kind {
	case entity.SaleDocDeliveryNote:
		note, noteItems, err := uc.saleRepo.GetDeliveryNote(ctx, id)
		if err != nil {
			return nil, err
		}
		if note == nil {
			return nil, domain.ErrNotFound
		}
		snap.Number, snap.Date, clientID, items = note.Number, note.Date, note.ClientID, noteItems
	case entity.SaleDocInvoice:
		invoice, invItems, err := uc.saleRepo.GetInvoice(ctx, id)
		if err != nil {
			return nil, err
		}
		if invoice == nil {
			return nil, domain.ErrNotFound
		}
		snap.Number, snap.Date, clientID, items = invoice.Number, invoice.Date, invoice.ClientID, invItems
	case entity.SaleDocProforma:
		proforma, pfItems, err := uc.saleRepo.GetProforma(ctx, id)
		if err != nil {
			return nil, err
		}
		if proforma == nil {
			return nil, domain.ErrNotFound
		}
		snap.Number, snap.Date, clientID, items = proforma.Number, proforma.Date, proforma.ClientID, pfItems
	default:
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client != nil {
		snap.PartyName = client.Name
		snap.PartyTaxID = client.TaxID
		snap.PartyAddr = client.Address
	}

	net, tax := decimal.Zero, decimal.Zero
	for _, item := range items {
		lineTotal := item.Total()
		net = net.Add(lineTotal)
		tax = tax.Add(lineTotal.Mul(item.TaxRate))
		snap.Lines = append(snap.Lines, SnapshotLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			TaxRate:  item.TaxRate,
			Total:    lineTotal,
		})
	}
	snap.NetTotal = net
	snap.TaxTotal = tax
	snap.GrandTotal = net.Add(tax)
	return snap, nil
}
