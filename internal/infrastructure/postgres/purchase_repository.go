package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo diario de compras sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste cabecera y líneas. Llamar dentro de una tx para que el
// asiento quede completo o no quede.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase, items []*entity.PurchaseItem) error {
	query := `
		INSERT INTO purchases (id, number, supplier_id, type, payment_method, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		purchase.ID, purchase.Number, purchase.SupplierID, purchase.Type,
		purchase.PaymentMethod, purchase.Date, purchase.CreatedAt, purchase.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, item := range items {
		itemQuery := `
			INSERT INTO purchase_items (id, purchase_id, product_id, lot_id, name, quantity, buy_price, sell_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.PurchaseID, item.ProductID, item.LotID,
			item.Name, item.Quantity, item.BuyPrice, item.SellPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene cabecera + líneas; (nil, nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, []*entity.PurchaseItem, error) {
	query := `
		SELECT id, number, supplier_id, type, payment_method, date, created_at, created_by
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Number, &p.SupplierID, &p.Type, &p.PaymentMethod,
		&p.Date, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get purchase: %w", err)
	}

	itemsQuery := `
		SELECT id, purchase_id, product_id, lot_id, name, quantity, buy_price, sell_price
		FROM purchase_items WHERE purchase_id = $1`
	rows, err := r.q.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get purchase items: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseItem
	for rows.Next() {
		var item entity.PurchaseItem
		if err := rows.Scan(
			&item.ID, &item.PurchaseID, &item.ProductID, &item.LotID,
			&item.Name, &item.Quantity, &item.BuyPrice, &item.SellPrice,
		); err != nil {
			return nil, nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, &item)
	}
	return &p, items, rows.Err()
}

// ListBySupplier lista compras de un proveedor, más recientes primero.
func (r *PurchaseRepo) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, number, supplier_id, type, payment_method, date, created_at, created_by
		FROM purchases WHERE supplier_id = $1
		ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.Number, &p.SupplierID, &p.Type, &p.PaymentMethod,
			&p.Date, &p.CreatedAt, &p.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}

// Delete borra explícitamente en dos pasos: primero las líneas, luego la
// cabecera. Llamar dentro de una tx; no hay hooks implícitos.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}
