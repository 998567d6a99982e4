package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// Balance es el saldo derivado de un tercero. Nunca se persiste: se recalcula
// en cada lectura sumando diario menos pagos, así no puede divergir de su
// definición.
type Balance struct {
	PartyID         string
	TotalTransacted decimal.Decimal
	TotalPaid       decimal.Decimal
	Debt            decimal.Decimal
}

// SettlementRepository es el lado de lectura del motor de liquidación: pura
// agregación SQL, sin estado propio y sin mutaciones.
type SettlementRepository interface {
	// PartyBalance suma price×quantity del diario del tercero y le resta sus
	// pagos. Un tercero sin movimientos devuelve saldo 0, no error.
	PartyBalance(ctx context.Context, kind entity.PartyKind, partyID string) (*Balance, error)

	// BalancesFor calcula los saldos de un conjunto de terceros en UNA sola
	// consulta agrupada (para vistas paginadas, sin N+1).
	BalancesFor(ctx context.Context, kind entity.PartyKind, partyIDs []string) (map[string]*Balance, error)

	// PeriodSpend suma los pagos (no el diario) del tercero con fecha en
	// [from, to], ambos extremos inclusive.
	PeriodSpend(ctx context.Context, kind entity.PartyKind, partyID string, from, to time.Time) (decimal.Decimal, error)
}
