package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/numbering"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ConvertInvoiceUseCase deriva la factura de una remisión. Idempotente: a lo
// sumo una factura por código de origen "BON-<id>"; re-convertir devuelve la
// existente en lugar de duplicarla.
type ConvertInvoiceUseCase struct {
	txRunner inventory.TxRunner
	saleRepo repository.SaleRepository
}

// NewConvertInvoiceUseCase construye el caso de uso.
func NewConvertInvoiceUseCase(txRunner inventory.TxRunner, saleRepo repository.SaleRepository) *ConvertInvoiceUseCase {
	return &ConvertInvoiceUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// OriginCode arma el código de origen de la factura derivada de una remisión.
func OriginCode(noteID string) string {
	return "BON-" + noteID
}

// Convert busca la factura existente antes de crear; si dos conversiones
// concurrentes se cuelan entre la búsqueda y el insert, el constraint único
// sobre origin_code rechaza la segunda y se devuelve la primera. La conversión
// no toca stock: el descuento ya ocurrió al confirmar la remisión.
func (uc *ConvertInvoiceUseCase) Convert(ctx context.Context, userID, noteID string) (*dto.InvoiceResponse, bool, error) {
	note, items, err := uc.saleRepo.GetDeliveryNote(ctx, noteID)
	if err != nil {
		return nil, false, err
	}
	if note == nil {
		return nil, false, domain.ErrNotFound
	}

	origin := OriginCode(noteID)
	if existing, err := uc.saleRepo.GetInvoiceByOrigin(ctx, origin); err != nil {
		return nil, false, err
	} else if existing != nil {
		return toInvoiceResponse(existing), false, nil
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		OriginCode: origin,
		ClientID:   note.ClientID,
		Date:       now,
		CreatedAt:  now,
		CreatedBy:  userID,
	}

	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		number, err := numbering.NextNumber(ctx, repos.Sequences, numbering.KeyInvoice, now)
		if err != nil {
			return err
		}
		invoice.Number = number

		copies := make([]*entity.SaleItem, 0, len(items))
		for _, item := range items {
			copies = append(copies, &entity.SaleItem{
				ID:           uuid.New().String(),
				DocumentKind: entity.SaleDocInvoice,
				DocumentID:   invoice.ID,
				Kind:         item.Kind,
				LotID:        item.LotID,
				Name:         item.Name,
				Quantity:     item.Quantity,
				Price:        item.Price,
				TaxRate:      item.TaxRate,
			})
		}
		return repos.Sales.CreateInvoice(ctx, invoice, copies)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			existing, gerr := uc.saleRepo.GetInvoiceByOrigin(ctx, origin)
			if gerr != nil {
				return nil, false, gerr
			}
			if existing != nil {
				return toInvoiceResponse(existing), false, nil
			}
		}
		return nil, false, err
	}
	return toInvoiceResponse(invoice), true, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		OriginCode: inv.OriginCode,
		ClientID:   inv.ClientID,
		Date:       inv.Date,
	}
}
