package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/numbering"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CommitPurchaseUseCase confirma compras y devoluciones a proveedor.
//
// Compra: cada línea crea un lote nuevo (un batch = un precio, un proveedor,
// una fecha) y suma al producto; no puede fallar por cantidad, así que no hay
// paso de verificación previa. Devolución: descuenta del lote referenciado con
// el mismo UPDATE condicional de las ventas (no puede dejar el lote en
// negativo). Todo dentro de una transacción junto con el asiento del diario y
// el consecutivo.
type CommitPurchaseUseCase struct {
	txRunner     inventory.TxRunner
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	lotRepo      repository.LotRepository
	purchaseRepo repository.PurchaseRepository
}

// NewCommitPurchaseUseCase construye el caso de uso.
func NewCommitPurchaseUseCase(
	txRunner inventory.TxRunner,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	purchaseRepo repository.PurchaseRepository,
) *CommitPurchaseUseCase {
	return &CommitPurchaseUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		lotRepo:      lotRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CommitPurchase valida y persiste la compra/devolución; devuelve el número
// visible asignado.
func (uc *CommitPurchaseUseCase) CommitPurchase(ctx context.Context, userID string, in dto.CommitPurchaseRequest) (*dto.DocumentNumberResponse, error) {
	products, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	purchase := &entity.Purchase{
		ID:            uuid.New().String(),
		SupplierID:    in.SupplierID,
		Type:          in.Type,
		PaymentMethod: in.PaymentMethod,
		Date:          date,
		CreatedAt:     now,
		CreatedBy:     userID,
	}

	err = uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		items := make([]*entity.PurchaseItem, 0, len(in.Lines))
		for _, line := range in.Lines {
			product := products[line.ProductID]
			lotID := line.LotID

			switch in.Type {
			case entity.PurchaseTypePurchase:
				lot := &entity.Lot{
					ID:         uuid.New().String(),
					Code:       line.LotCode,
					ProductID:  line.ProductID,
					SupplierID: in.SupplierID,
					BuyPrice:   line.BuyPrice,
					SellPrice:  line.SellPrice,
					Quantity:   line.Quantity,
					IsActive:   true,
					Date:       date,
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				if err := repos.Lots.Create(ctx, lot); err != nil {
					return err
				}
				if err := repos.Products.AdjustQuantity(ctx, line.ProductID, line.Quantity); err != nil {
					return err
				}
				lotID = lot.ID

			case entity.PurchaseTypeReturn:
				_, ok, err := repos.Lots.DeductIfAvailable(ctx, line.LotID, line.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					lot, err := repos.Lots.GetByID(ctx, line.LotID)
					short := domain.StockShortfall{LotID: line.LotID, Required: line.Quantity, ProductName: product.Name}
					if err == nil && lot != nil {
						short.Available = lot.ActiveQuantity()
					}
					return &domain.InsufficientStockError{Shortfalls: []domain.StockShortfall{short}}
				}
				if err := repos.Products.AdjustQuantity(ctx, line.ProductID, -line.Quantity); err != nil {
					return err
				}
			}

			items = append(items, &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: purchase.ID,
				ProductID:  line.ProductID,
				LotID:      lotID,
				Name:       product.Name,
				Quantity:   line.Quantity,
				BuyPrice:   line.BuyPrice,
				SellPrice:  line.SellPrice,
			})
		}

		number, err := numbering.NextNumber(ctx, repos.Sequences, numbering.KeyPurchase, now)
		if err != nil {
			return err
		}
		purchase.Number = number
		return repos.Purchases.Create(ctx, purchase, items)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DocumentNumberResponse{TransactionID: purchase.ID, DisplayNumber: purchase.Number}, nil
}

// validate revisa proveedor, tipo y líneas; resuelve los productos de una vez
// para desnormalizar nombres en el diario.
func (uc *CommitPurchaseUseCase) validate(ctx context.Context, in dto.CommitPurchaseRequest) (map[string]*entity.Product, error) {
	if in.SupplierID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.PurchaseTypePurchase && in.Type != entity.PurchaseTypeReturn {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	products := make(map[string]*entity.Product, len(in.Lines))
	for _, line := range in.Lines {
		if line.Quantity <= 0 || line.BuyPrice.LessThan(decimal.Zero) || line.SellPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if in.Type == entity.PurchaseTypeReturn && line.LotID == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := products[line.ProductID]; seen {
			continue
		}
		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		products[line.ProductID] = product
	}
	return products, nil
}

// ListBySupplier lista las compras de un proveedor, paginadas.
func (uc *CommitPurchaseUseCase) ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.Purchase, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return uc.purchaseRepo.ListBySupplier(ctx, supplierID, limit, offset)
}

// DeletePurchase elimina un asiento de compra: líneas y luego cabecera en una
// transacción explícita. No toca stock; revertir lotes es una operación del
// libro de lotes.
func (uc *CommitPurchaseUseCase) DeletePurchase(ctx context.Context, id string) error {
	purchase, _, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if purchase == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		return repos.Purchases.Delete(ctx, id)
	})
}
