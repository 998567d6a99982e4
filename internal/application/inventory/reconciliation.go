package inventory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// LotRequest es la petición de descuento de una línea de venta.
type LotRequest struct {
	LotID    string
	Quantity int64
}

// LotDeduction es el resultado auditable de descontar una línea.
type LotDeduction struct {
	LotID            string
	ProductID        string
	QuantityDeducted int64
	PreviousQuantity int64
	NewQuantity      int64
}

// StockReconciliation son los procedimientos transversales que mantienen el
// total cacheado del producto consistente con los lotes y garantizan que una
// venta no descuente más de lo disponible.
//
// Check y Apply van separados a propósito: el caller puede mostrar una
// confirmación entre la verificación y el commit. Apply NO re-verifica con una
// lectura previa: cada descuento es un UPDATE condicional (compare-and-swap),
// así dos ventas concurrentes sobre el mismo lote nunca pasan ambas.
type StockReconciliation struct {
	lotRepo     repository.LotRepository
	productRepo repository.ProductRepository
}

// NewStockReconciliation construye el servicio.
func NewStockReconciliation(lotRepo repository.LotRepository, productRepo repository.ProductRepository) *StockReconciliation {
	return &StockReconciliation{lotRepo: lotRepo, productRepo: productRepo}
}

// CheckAvailability verifica cada línea contra su lote y acumula TODOS los
// faltantes (lote inexistente, inactivo o sin cantidad suficiente) para que el
// usuario los vea de una vez. Retorna *domain.InsufficientStockError si hay
// alguno, nil si todo alcanza.
func (s *StockReconciliation) CheckAvailability(ctx context.Context, lines []LotRequest) error {
	var shortfalls []domain.StockShortfall
	for _, line := range lines {
		lot, err := s.lotRepo.GetByID(ctx, line.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			shortfalls = append(shortfalls, domain.StockShortfall{
				LotID:     line.LotID,
				Available: 0,
				Required:  line.Quantity,
			})
			continue
		}
		available := lot.ActiveQuantity()
		if available < line.Quantity {
			shortfalls = append(shortfalls, domain.StockShortfall{
				LotID:       line.LotID,
				ProductName: s.productName(ctx, lot.ProductID),
				Available:   available,
				Required:    line.Quantity,
			})
		}
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Shortfalls: shortfalls}
	}
	return nil
}

// ApplyDeduction descuenta todas las líneas dentro de la transacción del
// caller (repos atados a la tx). Por línea: UPDATE condicional que descuenta
// solo si el lote está activo y alcanza; al llegar a 0 el lote queda inactivo
// (retiro automático, sin reactivación implícita posterior). El total del
// producto se ajusta en la misma tx.
//
// Si alguna línea pierde la carrera se siguen verificando las restantes para
// reportar todos los faltantes, y se retorna InsufficientStockError: el
// Rollback de la tx revierte las líneas ya descontadas, nada queda a medias.
func (s *StockReconciliation) ApplyDeduction(ctx context.Context, repos TxRepos, lines []LotRequest) ([]LotDeduction, error) {
	deductions := make([]LotDeduction, 0, len(lines))
	var shortfalls []domain.StockShortfall

	for _, line := range lines {
		newQty, ok, err := repos.Lots.DeductIfAvailable(ctx, line.LotID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			lot, err := repos.Lots.GetByID(ctx, line.LotID)
			if err != nil {
				return nil, err
			}
			short := domain.StockShortfall{LotID: line.LotID, Required: line.Quantity}
			if lot != nil {
				short.Available = lot.ActiveQuantity()
				short.ProductName = s.productName(ctx, lot.ProductID)
			}
			shortfalls = append(shortfalls, short)
			continue
		}
		lot, err := repos.Lots.GetByID(ctx, line.LotID)
		if err != nil {
			return nil, err
		}
		if err := repos.Products.AdjustQuantity(ctx, lot.ProductID, -line.Quantity); err != nil {
			return nil, err
		}
		deductions = append(deductions, LotDeduction{
			LotID:            line.LotID,
			ProductID:        lot.ProductID,
			QuantityDeducted: line.Quantity,
			PreviousQuantity: newQty + line.Quantity,
			NewQuantity:      newQty,
		})
	}

	if len(shortfalls) > 0 {
		return nil, &domain.InsufficientStockError{Shortfalls: shortfalls}
	}
	return deductions, nil
}

func (s *StockReconciliation) productName(ctx context.Context, productID string) string {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		return ""
	}
	return product.Name
}
