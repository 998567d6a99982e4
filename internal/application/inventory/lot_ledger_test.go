package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/testutil"
)

func ptrInt64(v int64) *int64 { return &v }
func ptrBool(v bool) *bool    { return &v }

func newLedger(s *testutil.Store) *inventory.LotLedgerUseCase {
	repos := s.Repos()
	return inventory.NewLotLedgerUseCase(&testutil.TxRunner{S: s}, repos.Lots, repos.Products, &testutil.SupplierRepo{S: s})
}

func seedLedgerFixtures(s *testutil.Store) {
	s.Products["prod-1"] = entity.Product{ID: "prod-1", Code: "P-001", Name: "Pendón 2x1", Quantity: 0}
	s.Suppliers["sup-1"] = entity.Supplier{ID: "sup-1", Name: "Litografía del Norte"}
}

func createRequest(qty int64) dto.CreateLotRequest {
	return dto.CreateLotRequest{
		Code:       "L-001",
		ProductID:  "prod-1",
		SupplierID: "sup-1",
		BuyPrice:   decimal.NewFromInt(18000),
		SellPrice:  decimal.NewFromInt(35000),
		Quantity:   qty,
	}
}

// El total del producto debe ser siempre la suma de los lotes activos.
func productInvariant(t *testing.T, s *testutil.Store, productID string) {
	t.Helper()
	var sum int64
	for _, lot := range s.Lots {
		if lot.ProductID == productID && lot.IsActive {
			sum += lot.Quantity
		}
	}
	assert.Equal(t, sum, s.Products[productID].Quantity)
}

func TestCreateLot_SumaAlProducto(t *testing.T) {
	s := testutil.NewStore()
	seedLedgerFixtures(s)
	uc := newLedger(s)

	lot, err := uc.CreateLot(context.Background(), createRequest(100))
	require.NoError(t, err)
	assert.True(t, lot.IsActive)
	assert.Equal(t, int64(100), s.Products["prod-1"].Quantity)
	productInvariant(t, s, "prod-1")

	// Un lote de cantidad 0 nace inactivo y no mueve el producto.
	empty, err := uc.CreateLot(context.Background(), createRequest(0))
	require.NoError(t, err)
	assert.False(t, empty.IsActive)
	assert.Equal(t, int64(100), s.Products["prod-1"].Quantity)
	productInvariant(t, s, "prod-1")
}

func TestCreateLot_ReferenciasInvalidas(t *testing.T) {
	s := testutil.NewStore()
	seedLedgerFixtures(s)
	uc := newLedger(s)
	ctx := context.Background()

	bad := createRequest(10)
	bad.ProductID = "prod-fantasma"
	_, err := uc.CreateLot(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = createRequest(-1)
	_, err = uc.CreateLot(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Secuencia completa sobre un lote: 100 → bajar a 60 → desactivar → reactivar
// sin cantidad → borrar. El total del producto acompaña cada paso.
func TestUpdateLot_SecuenciaDeCasos(t *testing.T) {
	s := testutil.NewStore()
	seedLedgerFixtures(s)
	uc := newLedger(s)
	ctx := context.Background()

	lot, err := uc.CreateLot(ctx, createRequest(100))
	require.NoError(t, err)

	_, err = uc.UpdateLot(ctx, lot.ID, dto.UpdateLotRequest{Quantity: ptrInt64(60)})
	require.NoError(t, err)
	assert.Equal(t, int64(60), s.Products["prod-1"].Quantity)
	productInvariant(t, s, "prod-1")

	_, err = uc.UpdateLot(ctx, lot.ID, dto.UpdateLotRequest{IsActive: ptrBool(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Products["prod-1"].Quantity)
	productInvariant(t, s, "prod-1")

	// Reactivar sin cantidad nueva devuelve la anterior al total.
	_, err = uc.UpdateLot(ctx, lot.ID, dto.UpdateLotRequest{IsActive: ptrBool(true)})
	require.NoError(t, err)
	assert.Equal(t, int64(60), s.Products["prod-1"].Quantity)
	productInvariant(t, s, "prod-1")

	require.NoError(t, uc.DeleteLot(ctx, lot.ID))
	assert.Equal(t, int64(0), s.Products["prod-1"].Quantity)
	productInvariant(t, s, "prod-1")
}

func TestUpdateLot_DesactivarConCantidadRetiraLaAnterior(t *testing.T) {
	s := testutil.NewStore()
	seedLedgerFixtures(s)
	uc := newLedger(s)
	ctx := context.Background()

	lot, err := uc.CreateLot(ctx, createRequest(50))
	require.NoError(t, err)

	// Aunque el patch traiga cantidad, al desactivar se retira lo que el lote
	// aportaba; la cantidad queda guardada para una futura reactivación.
	updated, err := uc.UpdateLot(ctx, lot.ID, dto.UpdateLotRequest{IsActive: ptrBool(false), Quantity: ptrInt64(80)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, int64(80), updated.Quantity)
	assert.Equal(t, int64(0), s.Products["prod-1"].Quantity)
	productInvariant(t, s, "prod-1")
}

func TestDeleteLot_InactivoNoMueveElProducto(t *testing.T) {
	s := testutil.NewStore()
	seedLedgerFixtures(s)
	uc := newLedger(s)
	ctx := context.Background()

	lot, err := uc.CreateLot(ctx, createRequest(30))
	require.NoError(t, err)
	_, err = uc.UpdateLot(ctx, lot.ID, dto.UpdateLotRequest{IsActive: ptrBool(false)})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteLot(ctx, lot.ID))
	assert.Equal(t, int64(0), s.Products["prod-1"].Quantity)

	assert.ErrorIs(t, uc.DeleteLot(ctx, lot.ID), domain.ErrNotFound)
}
