package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

// SettlementRepo lado de lectura del motor de liquidación: agrega diario menos
// pagos en SQL. Nada se persiste, el saldo se deriva en cada consulta.
//
// El transado de clientes suma SOLO remisiones: las facturas son copias
// derivadas de remisiones y sumarlas duplicaría la deuda. El de proveedores
// suma compras con signo (las devoluciones restan).
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository construye el adaptador de liquidación.
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

const clientTransactedExpr = `
	SELECT COALESCE(SUM(i.price * i.quantity), 0)
	FROM sale_items i
	JOIN delivery_notes n ON i.document_kind = 'delivery_note' AND i.document_id = n.id
	WHERE n.client_id = $1`

const supplierTransactedExpr = `
	SELECT COALESCE(SUM(CASE WHEN b.type = 'return' THEN -1 ELSE 1 END * i.buy_price * i.quantity), 0)
	FROM purchase_items i
	JOIN purchases b ON i.purchase_id = b.id
	WHERE b.supplier_id = $1`

// PartyBalance calcula transado, pagado y deuda de un tercero. Un tercero sin
// movimientos devuelve ceros, no error.
func (r *SettlementRepo) PartyBalance(ctx context.Context, kind entity.PartyKind, partyID string) (*repository.Balance, error) {
	var query string
	switch kind {
	case entity.PartyClient:
		query = `
			SELECT (` + clientTransactedExpr + `),
			       (SELECT COALESCE(SUM(amount), 0) FROM client_payments WHERE client_id = $1)`
	case entity.PartySupplier:
		query = `
			SELECT (` + supplierTransactedExpr + `),
			       (SELECT COALESCE(SUM(amount), 0) FROM supplier_payments WHERE supplier_id = $1)`
	default:
		return nil, domain.ErrInvalidInput
	}

	b := repository.Balance{PartyID: partyID}
	if err := r.q.QueryRow(ctx, query, partyID).Scan(&b.TotalTransacted, &b.TotalPaid); err != nil {
		return nil, fmt.Errorf("party balance: %w", err)
	}
	b.Debt = b.TotalTransacted.Sub(b.TotalPaid)
	return &b, nil
}

// BalancesFor calcula los saldos de un conjunto de terceros en una sola
// consulta agrupada. Terceros sin movimientos no aparecen en el mapa.
func (r *SettlementRepo) BalancesFor(ctx context.Context, kind entity.PartyKind, partyIDs []string) (map[string]*repository.Balance, error) {
	if len(partyIDs) == 0 {
		return map[string]*repository.Balance{}, nil
	}

	var query string
	switch kind {
	case entity.PartyClient:
		query = `
			SELECT COALESCE(t.client_id, p.client_id) AS party_id,
			       COALESCE(t.total, 0), COALESCE(p.total, 0)
			FROM (
				SELECT n.client_id, SUM(i.price * i.quantity) AS total
				FROM sale_items i
				JOIN delivery_notes n ON i.document_kind = 'delivery_note' AND i.document_id = n.id
				WHERE n.client_id = ANY($1)
				GROUP BY n.client_id
			) t
			FULL JOIN (
				SELECT client_id, SUM(amount) AS total
				FROM client_payments WHERE client_id = ANY($1)
				GROUP BY client_id
			) p ON t.client_id = p.client_id`
	case entity.PartySupplier:
		query = `
			SELECT COALESCE(t.supplier_id, p.supplier_id) AS party_id,
			       COALESCE(t.total, 0), COALESCE(p.total, 0)
			FROM (
				SELECT b.supplier_id,
				       SUM(CASE WHEN b.type = 'return' THEN -1 ELSE 1 END * i.buy_price * i.quantity) AS total
				FROM purchase_items i
				JOIN purchases b ON i.purchase_id = b.id
				WHERE b.supplier_id = ANY($1)
				GROUP BY b.supplier_id
			) t
			FULL JOIN (
				SELECT supplier_id, SUM(amount) AS total
				FROM supplier_payments WHERE supplier_id = ANY($1)
				GROUP BY supplier_id
			) p ON t.supplier_id = p.supplier_id`
	default:
		return nil, domain.ErrInvalidInput
	}

	rows, err := r.q.Query(ctx, query, partyIDs)
	if err != nil {
		return nil, fmt.Errorf("balances for: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]*repository.Balance, len(partyIDs))
	for rows.Next() {
		var b repository.Balance
		if err := rows.Scan(&b.PartyID, &b.TotalTransacted, &b.TotalPaid); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		b.Debt = b.TotalTransacted.Sub(b.TotalPaid)
		balances[b.PartyID] = &b
	}
	return balances, rows.Err()
}

// PeriodSpend suma los pagos del tercero con fecha en [from, to], ambos
// extremos inclusive. Solo pagos: el diario no entra aquí.
func (r *SettlementRepo) PeriodSpend(ctx context.Context, kind entity.PartyKind, partyID string, from, to time.Time) (decimal.Decimal, error) {
	var query string
	switch kind {
	case entity.PartyClient:
		query = `
			SELECT COALESCE(SUM(amount), 0) FROM client_payments
			WHERE client_id = $1 AND date >= $2 AND date <= $3`
	case entity.PartySupplier:
		query = `
			SELECT COALESCE(SUM(amount), 0) FROM supplier_payments
			WHERE supplier_id = $1 AND date >= $2 AND date <= $3`
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, partyID, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("period spend: %w", err)
	}
	return total, nil
}
