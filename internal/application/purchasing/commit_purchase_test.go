package purchasing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/purchasing"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/testutil"
)

func newPurchaseUseCase(s *testutil.Store) *purchasing.CommitPurchaseUseCase {
	repos := s.Repos()
	return purchasing.NewCommitPurchaseUseCase(
		&testutil.TxRunner{S: s},
		&testutil.SupplierRepo{S: s},
		repos.Products,
		repos.Lots,
		repos.Purchases,
	)
}

func seedPurchaseFixtures(s *testutil.Store) {
	s.Suppliers["sup-1"] = entity.Supplier{ID: "sup-1", Name: "Litografía del Norte"}
	s.Products["prod-1"] = entity.Product{ID: "prod-1", Code: "P-001", Name: "Pendón 2x1", Quantity: 0}
}

func TestCommitPurchase_CreaLotePorLinea(t *testing.T) {
	s := testutil.NewStore()
	seedPurchaseFixtures(s)
	uc := newPurchaseUseCase(s)

	resp, err := uc.CommitPurchase(context.Background(), "user-1", dto.CommitPurchaseRequest{
		SupplierID:    "sup-1",
		Type:          entity.PurchaseTypePurchase,
		PaymentMethod: "crédito",
		Lines: []dto.PurchaseLineRequest{{
			ProductID: "prod-1",
			LotCode:   "L-2026-01",
			Quantity:  40,
			BuyPrice:  decimal.NewFromInt(18000),
			SellPrice: decimal.NewFromInt(35000),
		}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.DisplayNumber, "00001/"))

	// Un lote nuevo con la cantidad y precios de la línea.
	require.Len(t, s.Lots, 1)
	var lot entity.Lot
	for _, l := range s.Lots {
		lot = l
	}
	assert.Equal(t, "L-2026-01", lot.Code)
	assert.Equal(t, "prod-1", lot.ProductID)
	assert.Equal(t, "sup-1", lot.SupplierID)
	assert.Equal(t, int64(40), lot.Quantity)
	assert.True(t, lot.IsActive)

	// El total del producto subió y el diario guardó la línea apuntando al lote.
	assert.Equal(t, int64(40), s.Products["prod-1"].Quantity)
	_, items, err := s.Repos().Purchases.GetByID(context.Background(), resp.TransactionID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, lot.ID, items[0].LotID)
	assert.Equal(t, "Pendón 2x1", items[0].Name, "nombre desnormalizado en el diario")
}

func TestCommitPurchase_DevolucionDescuentaDelLote(t *testing.T) {
	s := testutil.NewStore()
	seedPurchaseFixtures(s)
	s.Lots["lot-1"] = entity.Lot{ID: "lot-1", ProductID: "prod-1", SupplierID: "sup-1", Quantity: 40, IsActive: true}
	s.Products["prod-1"] = entity.Product{ID: "prod-1", Code: "P-001", Name: "Pendón 2x1", Quantity: 40}
	uc := newPurchaseUseCase(s)

	_, err := uc.CommitPurchase(context.Background(), "user-1", dto.CommitPurchaseRequest{
		SupplierID: "sup-1",
		Type:       entity.PurchaseTypeReturn,
		Lines: []dto.PurchaseLineRequest{{
			ProductID: "prod-1",
			LotID:     "lot-1",
			Quantity:  15,
			BuyPrice:  decimal.NewFromInt(18000),
			SellPrice: decimal.NewFromInt(35000),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), s.Lots["lot-1"].Quantity)
	assert.Equal(t, int64(25), s.Products["prod-1"].Quantity)
}

func TestCommitPurchase_DevolucionSinStockFalla(t *testing.T) {
	s := testutil.NewStore()
	seedPurchaseFixtures(s)
	s.Lots["lot-1"] = entity.Lot{ID: "lot-1", ProductID: "prod-1", SupplierID: "sup-1", Quantity: 5, IsActive: true}
	s.Products["prod-1"] = entity.Product{ID: "prod-1", Code: "P-001", Name: "Pendón 2x1", Quantity: 5}
	uc := newPurchaseUseCase(s)

	_, err := uc.CommitPurchase(context.Background(), "user-1", dto.CommitPurchaseRequest{
		SupplierID: "sup-1",
		Type:       entity.PurchaseTypeReturn,
		Lines: []dto.PurchaseLineRequest{{
			ProductID: "prod-1",
			LotID:     "lot-1",
			Quantity:  10,
			BuyPrice:  decimal.NewFromInt(18000),
			SellPrice: decimal.NewFromInt(35000),
		}},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, int64(5), insufficient.Shortfalls[0].Available)
	assert.Equal(t, "Pendón 2x1", insufficient.Shortfalls[0].ProductName)

	// Rollback: nada quedó escrito.
	assert.Equal(t, int64(5), s.Lots["lot-1"].Quantity)
	assert.Empty(t, s.Purchases)
}

func TestCommitPurchase_Validaciones(t *testing.T) {
	s := testutil.NewStore()
	seedPurchaseFixtures(s)
	uc := newPurchaseUseCase(s)
	ctx := context.Background()

	line := dto.PurchaseLineRequest{ProductID: "prod-1", Quantity: 1, BuyPrice: decimal.NewFromInt(1), SellPrice: decimal.NewFromInt(2)}

	_, err := uc.CommitPurchase(ctx, "u", dto.CommitPurchaseRequest{SupplierID: "sup-1", Type: "trueque", Lines: []dto.PurchaseLineRequest{line}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.CommitPurchase(ctx, "u", dto.CommitPurchaseRequest{SupplierID: "sup-fantasma", Type: entity.PurchaseTypePurchase, Lines: []dto.PurchaseLineRequest{line}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Devolución sin lote referenciado.
	_, err = uc.CommitPurchase(ctx, "u", dto.CommitPurchaseRequest{SupplierID: "sup-1", Type: entity.PurchaseTypeReturn, Lines: []dto.PurchaseLineRequest{line}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeletePurchase_NoTocaStock(t *testing.T) {
	s := testutil.NewStore()
	seedPurchaseFixtures(s)
	uc := newPurchaseUseCase(s)
	ctx := context.Background()

	resp, err := uc.CommitPurchase(ctx, "user-1", dto.CommitPurchaseRequest{
		SupplierID: "sup-1",
		Type:       entity.PurchaseTypePurchase,
		Lines: []dto.PurchaseLineRequest{{
			ProductID: "prod-1",
			Quantity:  40,
			BuyPrice:  decimal.NewFromInt(18000),
			SellPrice: decimal.NewFromInt(35000),
		}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeletePurchase(ctx, resp.TransactionID))
	assert.Empty(t, s.Purchases)
	// El lote creado por la compra sigue vivo: el diario es historia, no stock.
	require.Len(t, s.Lots, 1)
	assert.Equal(t, int64(40), s.Products["prod-1"].Quantity)

	assert.ErrorIs(t, uc.DeletePurchase(ctx, "compra-inexistente"), domain.ErrNotFound)
}
