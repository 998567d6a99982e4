package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/numbering"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CommitSaleUseCase confirma una venta: verifica disponibilidad, descuenta
// lotes con UPDATE condicional, asigna número y escribe la remisión con sus
// líneas, todo en una transacción.
type CommitSaleUseCase struct {
	txRunner   inventory.TxRunner
	recon      *inventory.StockReconciliation
	clientRepo repository.ClientRepository
	saleRepo   repository.SaleRepository
}

// NewCommitSaleUseCase construye el caso de uso.
func NewCommitSaleUseCase(
	txRunner inventory.TxRunner,
	recon *inventory.StockReconciliation,
	clientRepo repository.ClientRepository,
	saleRepo repository.SaleRepository,
) *CommitSaleUseCase {
	return &CommitSaleUseCase{
		txRunner:   txRunner,
		recon:      recon,
		clientRepo: clientRepo,
		saleRepo:   saleRepo,
	}
}

// CommitSale ejecuta el flujo completo de venta.
//
// La secuencia check-then-act es segura aunque no sea atómica de extremo a
// extremo: la verificación previa solo sirve para reportar faltantes completos
// antes de intentar nada; el descuento real es condicional por lote. Si una
// línea pierde la carrera entre check y commit, el tx hace rollback y se
// reintenta UNA vez; si vuelve a perder, se retorna ErrConflict para que el
// usuario reintente.
func (uc *CommitSaleUseCase) CommitSale(ctx context.Context, userID string, in dto.CommitSaleRequest) (*dto.CommitSaleResponse, error) {
	lotLines, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := uc.recon.CheckAvailability(ctx, lotLines); err != nil {
		return nil, err
	}

	resp, err := uc.attempt(ctx, userID, in, lotLines)
	if err == nil {
		return resp, nil
	}
	if _, insufficient := domain.IsInsufficientStock(err); !insufficient {
		return nil, err
	}

	// Perdió la carrera contra otra venta concurrente: re-verificar y
	// reintentar una sola vez.
	if err := uc.recon.CheckAvailability(ctx, lotLines); err != nil {
		return nil, err
	}
	resp, err = uc.attempt(ctx, userID, in, lotLines)
	if err != nil {
		if _, insufficient := domain.IsInsufficientStock(err); insufficient {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return resp, nil
}

// attempt corre una transacción completa de venta: descuentos + número +
// remisión. Un fallo en cualquier línea hace rollback de todo.
func (uc *CommitSaleUseCase) attempt(ctx context.Context, userID string, in dto.CommitSaleRequest, lotLines []inventory.LotRequest) (*dto.CommitSaleResponse, error) {
	now := time.Now()
	date := now
	if in.BillDate != nil {
		date = *in.BillDate
	}

	var resp *dto.CommitSaleResponse
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		deductions, err := uc.recon.ApplyDeduction(ctx, repos, lotLines)
		if err != nil {
			return err
		}

		number, err := numbering.NextNumber(ctx, repos.Sequences, numbering.KeyDeliveryNote, now)
		if err != nil {
			return err
		}

		note := &entity.DeliveryNote{
			ID:            uuid.New().String(),
			Number:        number,
			ClientID:      in.ClientID,
			PaymentMethod: in.PaymentMethod,
			Date:          date,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		items := make([]*entity.SaleItem, 0, len(in.Lines))
		for _, line := range in.Lines {
			items = append(items, &entity.SaleItem{
				ID:           uuid.New().String(),
				DocumentKind: entity.SaleDocDeliveryNote,
				DocumentID:   note.ID,
				Kind:         entity.LineKind(line.Kind),
				LotID:        line.LotID,
				Name:         line.Name,
				Quantity:     line.Quantity,
				Price:        line.Price,
				TaxRate:      line.TaxRate,
			})
		}
		if err := repos.Sales.CreateDeliveryNote(ctx, note, items); err != nil {
			return err
		}

		out := make([]dto.LotDeductionDTO, 0, len(deductions))
		for _, d := range deductions {
			out = append(out, dto.LotDeductionDTO{
				LotID:            d.LotID,
				QuantityDeducted: d.QuantityDeducted,
				PreviousQuantity: d.PreviousQuantity,
				NewQuantity:      d.NewQuantity,
			})
		}
		resp = &dto.CommitSaleResponse{
			TransactionID: note.ID,
			DisplayNumber: number,
			LotDeductions: out,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// validate revisa cliente y líneas; devuelve las líneas con lote (las de tipo
// product) listas para reconciliación.
func (uc *CommitSaleUseCase) validate(ctx context.Context, in dto.CommitSaleRequest) ([]inventory.LotRequest, error) {
	if in.ClientID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	var lotLines []inventory.LotRequest
	for _, line := range in.Lines {
		kind := entity.LineKind(line.Kind)
		if !kind.Valid() || line.Name == "" || line.Quantity <= 0 || line.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if kind == entity.LineProduct {
			if line.LotID == "" {
				return nil, domain.ErrInvalidInput
			}
			lotLines = append(lotLines, inventory.LotRequest{LotID: line.LotID, Quantity: line.Quantity})
		}
	}
	return lotLines, nil
}

// ListByClient lista las remisiones de un cliente, paginadas.
func (uc *CommitSaleUseCase) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.DeliveryNote, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return uc.saleRepo.ListByClient(ctx, clientID, limit, offset)
}

// DeleteSale elimina una remisión del diario: primero sus líneas y luego la
// cabecera, en una transacción explícita. No repone stock: el diario registra
// lo que pasó, deshacer la venta físicamente es una operación de lotes aparte.
func (uc *CommitSaleUseCase) DeleteSale(ctx context.Context, id string) error {
	note, _, err := uc.saleRepo.GetDeliveryNote(ctx, id)
	if err != nil {
		return err
	}
	if note == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		return repos.Sales.DeleteDeliveryNote(ctx, id)
	})
}
