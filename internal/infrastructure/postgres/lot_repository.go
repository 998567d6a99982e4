package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con
// pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, code, product_id, supplier_id, buy_price, sell_price, quantity, is_active, date, created_at, updated_at`

// Create persiste un lote nuevo.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.Code, lot.ProductID, lot.SupplierID,
		lot.BuyPrice, lot.SellPrice, lot.Quantity, lot.IsActive,
		lot.Date, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID; nil sin error si no existe.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return lot, nil
}

// Update persiste todos los campos mutables del lote.
func (r *LotRepo) Update(ctx context.Context, lot *entity.Lot) error {
	query := `
		UPDATE lots
		SET code = $2, buy_price = $3, sell_price = $4, quantity = $5,
		    is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		lot.ID, lot.Code, lot.BuyPrice, lot.SellPrice, lot.Quantity,
		lot.IsActive, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update lot: no rows")
	}
	return nil
}

// Delete elimina el lote. El ajuste al producto lo hace el caso de uso en la
// misma transacción.
func (r *LotRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	return nil
}

// ListByProduct lista los lotes de un producto: activos primero, luego por
// fecha de adquisición.
func (r *LotRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots WHERE product_id = $1
		ORDER BY is_active DESC, date ASC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// DeductIfAvailable descuenta qty en un único UPDATE condicional: solo si el
// lote está activo y la cantidad alcanza. Si el remanente llega a 0 el mismo
// statement retira el lote (is_active = false). Sin fila afectada (lote
// inexistente, inactivo o corto) devuelve ok=false: la carrera
// check-then-act de dos ventas concurrentes se resuelve aquí, nunca en una
// lectura previa.
func (r *LotRepo) DeductIfAvailable(ctx context.Context, id string, qty int64) (int64, bool, error) {
	query := `
		UPDATE lots
		SET quantity = quantity - $2,
		    is_active = (quantity - $2) > 0,
		    updated_at = now()
		WHERE id = $1 AND is_active AND quantity >= $2
		RETURNING quantity`
	var newQuantity int64
	err := r.q.QueryRow(ctx, query, id, qty).Scan(&newQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("deduct lot: %w", err)
	}
	return newQuantity, true, nil
}

// AddQuantity incrementa la cantidad del lote. No reactiva lotes retirados.
func (r *LotRepo) AddQuantity(ctx context.Context, id string, qty int64) error {
	query := `UPDATE lots SET quantity = quantity + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("add lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("add lot quantity: no rows")
	}
	return nil
}

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(
		&l.ID, &l.Code, &l.ProductID, &l.SupplierID,
		&l.BuyPrice, &l.SellPrice, &l.Quantity, &l.IsActive,
		&l.Date, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
