package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para los lotes. Es el único
// lugar donde se muta stock a nivel de lote.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	Update(ctx context.Context, lot *entity.Lot) error
	Delete(ctx context.Context, id string) error
	// ListByProduct devuelve los lotes de un producto (activos primero, luego
	// por fecha) leyendo el último estado confirmado, sin capa de cache.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error)

	// DeductIfAvailable descuenta qty del lote SOLO si está activo y tiene
	// cantidad suficiente, en un único UPDATE condicional (compare-and-swap);
	// si el resultado llega a 0 el mismo statement desactiva el lote.
	// ok=false significa que el lote no existe, está inactivo o no alcanza:
	// dos ventas concurrentes sobre el mismo lote nunca lo dejan en negativo.
	DeductIfAvailable(ctx context.Context, id string, qty int64) (newQuantity int64, ok bool, err error)

	// AddQuantity incrementa el lote (compras sobre lote existente,
	// devoluciones de cliente). No reactiva lotes agotados: la reactivación
	// es un update explícito.
	AddQuantity(ctx context.Context, id string, qty int64) error
}
