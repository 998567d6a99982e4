package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// PaymentUseCase registra abonos de cliente y pagos a proveedor (append-only)
// y los lista por tercero. El saldo nunca se actualiza aquí: es derivado.
type PaymentUseCase struct {
	paymentRepo  repository.PaymentRepository
	clientRepo   repository.ClientRepository
	supplierRepo repository.SupplierRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	supplierRepo repository.SupplierRepository,
) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo:  paymentRepo,
		clientRepo:   clientRepo,
		supplierRepo: supplierRepo,
	}
}

// Record valida tercero y monto y persiste el pago.
func (uc *PaymentUseCase) Record(ctx context.Context, kind entity.PartyKind, partyID, userID string, in dto.PaymentRequest) (*entity.Payment, error) {
	if !kind.Valid() || partyID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.resolveParty(ctx, kind, partyID); err != nil {
		return nil, err
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		PartyKind: kind,
		PartyID:   partyID,
		Amount:    in.Amount,
		Date:      date,
		CreatedAt: now,
		CreatedBy: userID,
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListByParty lista los pagos de un tercero, paginados.
func (uc *PaymentUseCase) ListByParty(ctx context.Context, kind entity.PartyKind, partyID string, limit, offset int) ([]*entity.Payment, error) {
	if !kind.Valid() || partyID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.paymentRepo.ListByParty(ctx, kind, partyID, limit, offset)
}

func (uc *PaymentUseCase) resolveParty(ctx context.Context, kind entity.PartyKind, partyID string) error {
	switch kind {
	case entity.PartyClient:
		client, err := uc.clientRepo.GetByID(ctx, partyID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
	case entity.PartySupplier:
		supplier, err := uc.supplierRepo.GetByID(ctx, partyID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}
