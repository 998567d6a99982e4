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

// ProformaUseCase crea proformas: cotizaciones formales con su propio
// consecutivo, sin efecto sobre stock ni saldo.
type ProformaUseCase struct {
	txRunner   inventory.TxRunner
	clientRepo repository.ClientRepository
}

// NewProformaUseCase construye el caso de uso.
func NewProformaUseCase(txRunner inventory.TxRunner, clientRepo repository.ClientRepository) *ProformaUseCase {
	return &ProformaUseCase{txRunner: txRunner, clientRepo: clientRepo}
}

// Create valida cliente y líneas, asigna número y persiste proforma + líneas.
func (uc *ProformaUseCase) Create(ctx context.Context, userID string, in dto.ProformaRequest) (*dto.DocumentNumberResponse, error) {
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
	for _, line := range in.Lines {
		if !entity.LineKind(line.Kind).Valid() || line.Name == "" || line.Quantity <= 0 || line.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	proforma := &entity.Proforma{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Date:      date,
		CreatedAt: now,
		CreatedBy: userID,
	}

	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		number, err := numbering.NextNumber(ctx, repos.Sequences, numbering.KeyProforma, now)
		if err != nil {
			return err
		}
		proforma.Number = number

		items := make([]*entity.SaleItem, 0, len(in.Lines))
		for _, line := range in.Lines {
			items = append(items, &entity.SaleItem{
				ID:           uuid.New().String(),
				DocumentKind: entity.SaleDocProforma,
				DocumentID:   proforma.ID,
				Kind:         entity.LineKind(line.Kind),
				LotID:        line.LotID,
				Name:         line.Name,
				Quantity:     line.Quantity,
				Price:        line.Price,
				TaxRate:      line.TaxRate,
			})
		}
		return repos.Sales.CreateProforma(ctx, proforma, items)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DocumentNumberResponse{TransactionID: proforma.ID, DisplayNumber: proforma.Number}, nil
}
