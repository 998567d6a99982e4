package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domaininv "github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// LotLedgerUseCase es el único lugar donde se muta stock a nivel de lote.
// Cada mutación de lote lleva su ajuste al total cacheado del producto en la
// MISMA transacción, así el invariante
//
//	product.Quantity == Σ lot.Quantity sobre lotes activos
//
// se mantiene después de cualquier secuencia de create/update/delete.
type LotLedgerUseCase struct {
	txRunner     TxRunner
	lotRepo      repository.LotRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewLotLedgerUseCase construye el caso de uso.
func NewLotLedgerUseCase(
	txRunner TxRunner,
	lotRepo repository.LotRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *LotLedgerUseCase {
	return &LotLedgerUseCase{
		txRunner:     txRunner,
		lotRepo:      lotRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateLot inserta un lote nuevo (alta manual de stock) y suma su cantidad al
// producto. Precio o cantidad negativos, o referencias que no resuelven,
// retornan ErrInvalidInput.
func (uc *LotLedgerUseCase) CreateLot(ctx context.Context, in dto.CreateLotRequest) (*entity.Lot, error) {
	if in.Quantity < 0 || in.BuyPrice.LessThan(decimal.Zero) || in.SellPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if product == nil || supplier == nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	lot := &entity.Lot{
		ID:         uuid.New().String(),
		Code:       in.Code,
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		BuyPrice:   in.BuyPrice,
		SellPrice:  in.SellPrice,
		Quantity:   in.Quantity,
		IsActive:   in.Quantity > 0,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Lots.Create(ctx, lot); err != nil {
			return err
		}
		if delta := lot.ActiveQuantity(); delta != 0 {
			return repos.Products.AdjustQuantity(ctx, lot.ProductID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// UpdateLot aplica el patch y ajusta el producto con el delta calculado por la
// precedencia de los cuatro casos (ver domain/inventory.ProductDelta). Lote
// inexistente retorna ErrNotFound.
func (uc *LotLedgerUseCase) UpdateLot(ctx context.Context, id string, in dto.UpdateLotRequest) (*entity.Lot, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.BuyPrice != nil && in.BuyPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.SellPrice != nil && in.SellPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	lot, err := uc.lotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}

	patch := domaininv.LotPatch{
		Code:      in.Code,
		Quantity:  in.Quantity,
		IsActive:  in.IsActive,
		BuyPrice:  in.BuyPrice,
		SellPrice: in.SellPrice,
	}
	delta := domaininv.ProductDelta(lot, patch)
	domaininv.Apply(lot, patch)
	lot.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Lots.Update(ctx, lot); err != nil {
			return err
		}
		if delta != 0 {
			return repos.Products.AdjustQuantity(ctx, lot.ProductID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

// DeleteLot elimina el lote y revierte su contribución al producto (cero si ya
// estaba inactivo).
func (uc *LotLedgerUseCase) DeleteLot(ctx context.Context, id string) error {
	lot, err := uc.lotRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	delta := domaininv.DeletionDelta(lot)

	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Lots.Delete(ctx, id); err != nil {
			return err
		}
		if delta != 0 {
			return repos.Products.AdjustQuantity(ctx, lot.ProductID, delta)
		}
		return nil
	})
}

// ListLotsByProduct lista los lotes de un producto para el selector de ventas.
// Lee estado confirmado directo de la BD, sin cache.
func (uc *LotLedgerUseCase) ListLotsByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.lotRepo.ListByProduct(ctx, productID)
}
