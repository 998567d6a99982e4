package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// SettlementUseCase es el motor de liquidación: lecturas agregadas sobre
// diario + pagos, nunca muta estado. Corre concurrente con las escrituras sin
// bloqueo (consistencia eventual aceptada para reportes).
type SettlementUseCase struct {
	settleRepo   repository.SettlementRepository
	clientRepo   repository.ClientRepository
	supplierRepo repository.SupplierRepository
}

// NewSettlementUseCase construye el caso de uso.
func NewSettlementUseCase(
	settleRepo repository.SettlementRepository,
	clientRepo repository.ClientRepository,
	supplierRepo repository.SupplierRepository,
) *SettlementUseCase {
	return &SettlementUseCase{
		settleRepo:   settleRepo,
		clientRepo:   clientRepo,
		supplierRepo: supplierRepo,
	}
}

// PartyBalance devuelve transado, pagado y deuda del tercero. Un tercero sin
// movimientos ni pagos tiene deuda 0, no es un error.
func (uc *SettlementUseCase) PartyBalance(ctx context.Context, kind entity.PartyKind, partyID string) (*dto.BalanceResponse, error) {
	if !kind.Valid() || partyID == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.settleRepo.PartyBalance(ctx, kind, partyID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		PartyID:         partyID,
		TotalTransacted: b.TotalTransacted,
		TotalPaid:       b.TotalPaid,
		Debt:            b.Debt,
	}, nil
}

// PeriodSpend suma los pagos del tercero con fecha en [from, to], extremos
// inclusive. Reporta gasto, no deuda: el diario no entra aquí.
func (uc *SettlementUseCase) PeriodSpend(ctx context.Context, kind entity.PartyKind, partyID string, from, to time.Time) (*dto.PeriodSpendResponse, error) {
	if !kind.Valid() || partyID == "" || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	amount, err := uc.settleRepo.PeriodSpend(ctx, kind, partyID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.PeriodSpendResponse{PartyID: partyID, From: from, To: to, Amount: amount}, nil
}

// ClientsWithBalances arma la página de clientes con columnas de saldo usando
// UNA consulta agrupada para los saldos de toda la página (sin N+1).
func (uc *SettlementUseCase) ClientsWithBalances(ctx context.Context, limit, offset int) ([]dto.PartyWithBalance, error) {
	clients, err := uc.clientRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	balances, err := uc.settleRepo.BalancesFor(ctx, entity.PartyClient, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.PartyWithBalance, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, withBalance(c.ID, c.Name, c.TaxID, c.Phone, balances[c.ID]))
	}
	return rows, nil
}

// SuppliersWithBalances igual que ClientsWithBalances pero sobre proveedores.
func (uc *SettlementUseCase) SuppliersWithBalances(ctx context.Context, limit, offset int) ([]dto.PartyWithBalance, error) {
	suppliers, err := uc.supplierRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		ids = append(ids, s.ID)
	}
	balances, err := uc.settleRepo.BalancesFor(ctx, entity.PartySupplier, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.PartyWithBalance, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, withBalance(s.ID, s.Name, s.TaxID, s.Phone, balances[s.ID]))
	}
	return rows, nil
}

func withBalance(id, name, taxID, phone string, b *repository.Balance) dto.PartyWithBalance {
	row := dto.PartyWithBalance{
		ID:              id,
		Name:            name,
		TaxID:           taxID,
		Phone:           phone,
		TotalTransacted: decimal.Zero,
		TotalPaid:       decimal.Zero,
		Debt:            decimal.Zero,
	}
	if b != nil {
		row.TotalTransacted = b.TotalTransacted
		row.TotalPaid = b.TotalPaid
		row.Debt = b.Debt
	}
	return row
}
