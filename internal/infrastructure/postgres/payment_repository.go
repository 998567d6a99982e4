package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos y abonos sobre PostgreSQL. Clientes y proveedores usan
// tablas separadas (client_payments / supplier_payments) detrás del mismo
// puerto; el kind decide la tabla.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos. Pasar pool o tx
// (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func paymentTable(kind entity.PartyKind) (table, partyCol string, err error) {
	switch kind {
	case entity.PartyClient:
		return "client_payments", "client_id", nil
	case entity.PartySupplier:
		return "supplier_payments", "supplier_id", nil
	default:
		return "", "", domain.ErrInvalidInput
	}
}

// Create registra un pago. Append-only: no hay update ni delete de pagos.
func (r *PaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	table, partyCol, err := paymentTable(payment.PartyKind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, amount, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`, table, partyCol)
	_, err = r.q.Exec(ctx, query,
		payment.ID, payment.PartyID, payment.Amount,
		payment.Date, payment.CreatedAt, payment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByParty lista los pagos de un tercero, más recientes primero.
func (r *PaymentRepo) ListByParty(ctx context.Context, kind entity.PartyKind, partyID string, limit, offset int) ([]*entity.Payment, error) {
	table, partyCol, err := paymentTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, %s, amount, date, created_at, created_by
		FROM %s WHERE %s = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`, partyCol, table, partyCol)
	rows, err := r.q.Query(ctx, query, partyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		p := entity.Payment{PartyKind: kind}
		if err := rows.Scan(
			&p.ID, &p.PartyID, &p.Amount, &p.Date, &p.CreatedAt, &p.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
