package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo diario de ventas sobre PostgreSQL. Remisiones, facturas y proformas
// comparten la tabla sale_items discriminada por document_kind.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleItemColumns = `id, document_kind, document_id, kind, lot_id, name, quantity, price, tax_rate`

func (r *SaleRepo) insertItems(ctx context.Context, items []*entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, item := range items {
		var lotID any
		if item.LotID != "" {
			lotID = item.LotID
		}
		_, err := r.q.Exec(ctx, query,
			item.ID, item.DocumentKind, item.DocumentID, item.Kind,
			lotID, item.Name, item.Quantity, item.Price, item.TaxRate,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) listItems(ctx context.Context, documentKind, documentID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT ` + saleItemColumns + `
		FROM sale_items WHERE document_kind = $1 AND document_id = $2`
	rows, err := r.q.Query(ctx, query, documentKind, documentID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		var lotID *string
		if err := rows.Scan(
			&item.ID, &item.DocumentKind, &item.DocumentID, &item.Kind,
			&lotID, &item.Name, &item.Quantity, &item.Price, &item.TaxRate,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		if lotID != nil {
			item.LotID = *lotID
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// CreateDeliveryNote persiste la remisión y sus líneas. Llamar dentro de la
// transacción de venta.
func (r *SaleRepo) CreateDeliveryNote(ctx context.Context, note *entity.DeliveryNote, items []*entity.SaleItem) error {
	query := `
		INSERT INTO delivery_notes (id, number, client_id, payment_method, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		note.ID, note.Number, note.ClientID, note.PaymentMethod,
		note.Date, note.CreatedAt, note.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert delivery note: %w", err)
	}
	return r.insertItems(ctx, items)
}

// GetDeliveryNote obtiene remisión + líneas; (nil, nil, nil) si no existe.
func (r *SaleRepo) GetDeliveryNote(ctx context.Context, id string) (*entity.DeliveryNote, []*entity.SaleItem, error) {
	query := `
		SELECT id, number, client_id, payment_method, date, created_at, created_by
		FROM delivery_notes WHERE id = $1`
	var n entity.DeliveryNote
	err := r.q.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Number, &n.ClientID, &n.PaymentMethod,
		&n.Date, &n.CreatedAt, &n.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get delivery note: %w", err)
	}
	items, err := r.listItems(ctx, entity.SaleDocDeliveryNote, id)
	if err != nil {
		return nil, nil, err
	}
	return &n, items, nil
}

// DeleteDeliveryNote borra en dos pasos: líneas y luego cabecera. Llamar
// dentro de una tx. No repone stock.
func (r *SaleRepo) DeleteDeliveryNote(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM sale_items WHERE document_kind = $1 AND document_id = $2`,
		entity.SaleDocDeliveryNote, id,
	); err != nil {
		return fmt.Errorf("delete delivery note items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM delivery_notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete delivery note: %w", err)
	}
	return nil
}

// CreateInvoice persiste la factura y sus líneas. El constraint único de
// origin_code convierte la doble conversión en ErrDuplicate.
func (r *SaleRepo) CreateInvoice(ctx context.Context, invoice *entity.Invoice, items []*entity.SaleItem) error {
	query := `
		INSERT INTO invoices (id, number, origin_code, client_id, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.Number, invoice.OriginCode, invoice.ClientID,
		invoice.Date, invoice.CreatedAt, invoice.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return r.insertItems(ctx, items)
}

// GetInvoice obtiene factura + líneas; (nil, nil, nil) si no existe.
func (r *SaleRepo) GetInvoice(ctx context.Context, id string) (*entity.Invoice, []*entity.SaleItem, error) {
	query := `
		SELECT id, number, origin_code, client_id, date, created_at, created_by
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Number, &inv.OriginCode, &inv.ClientID,
		&inv.Date, &inv.CreatedAt, &inv.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := r.listItems(ctx, entity.SaleDocInvoice, id)
	if err != nil {
		return nil, nil, err
	}
	return &inv, items, nil
}

// GetInvoiceByOrigin busca la factura por su código de origen; nil sin error
// si la remisión no se ha convertido todavía.
func (r *SaleRepo) GetInvoiceByOrigin(ctx context.Context, originCode string) (*entity.Invoice, error) {
	query := `
		SELECT id, number, origin_code, client_id, date, created_at, created_by
		FROM invoices WHERE origin_code = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, originCode).Scan(
		&inv.ID, &inv.Number, &inv.OriginCode, &inv.ClientID,
		&inv.Date, &inv.CreatedAt, &inv.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by origin: %w", err)
	}
	return &inv, nil
}

// CreateProforma persiste la proforma y sus líneas.
func (r *SaleRepo) CreateProforma(ctx context.Context, proforma *entity.Proforma, items []*entity.SaleItem) error {
	query := `
		INSERT INTO proformas (id, number, client_id, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		proforma.ID, proforma.Number, proforma.ClientID,
		proforma.Date, proforma.CreatedAt, proforma.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert proforma: %w", err)
	}
	return r.insertItems(ctx, items)
}

// GetProforma obtiene proforma + líneas; (nil, nil, nil) si no existe.
func (r *SaleRepo) GetProforma(ctx context.Context, id string) (*entity.Proforma, []*entity.SaleItem, error) {
	query := `
		SELECT id, number, client_id, date, created_at, created_by
		FROM proformas WHERE id = $1`
	var p entity.Proforma
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Number, &p.ClientID, &p.Date, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get proforma: %w", err)
	}
	items, err := r.listItems(ctx, entity.SaleDocProforma, id)
	if err != nil {
		return nil, nil, err
	}
	return &p, items, nil
}

// ListByClient lista remisiones de un cliente, más recientes primero.
func (r *SaleRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.DeliveryNote, error) {
	query := `
		SELECT id, number, client_id, payment_method, date, created_at, created_by
		FROM delivery_notes WHERE client_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	defer rows.Close()

	var notes []*entity.DeliveryNote
	for rows.Next() {
		var n entity.DeliveryNote
		if err := rows.Scan(
			&n.ID, &n.Number, &n.ClientID, &n.PaymentMethod,
			&n.Date, &n.CreatedAt, &n.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan delivery note: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}
