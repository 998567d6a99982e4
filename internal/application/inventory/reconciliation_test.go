package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/testutil"
)

func seedLot(s *testutil.Store, id, productID string, qty int64, active bool) {
	s.Lots[id] = entity.Lot{ID: id, ProductID: productID, SupplierID: "sup-1", Quantity: qty, IsActive: active}
}

func seedProduct(s *testutil.Store, id, name string, qty int64) {
	s.Products[id] = entity.Product{ID: id, Code: "P-" + id, Name: name, Quantity: qty}
}

func newRecon(s *testutil.Store) *inventory.StockReconciliation {
	repos := s.Repos()
	return inventory.NewStockReconciliation(repos.Lots, repos.Products)
}

func TestCheckAvailability_AcumulaTodosLosFaltantes(t *testing.T) {
	s := testutil.NewStore()
	seedProduct(s, "prod-1", "Pendón 2x1", 10)
	seedProduct(s, "prod-2", "Vinilo adhesivo", 0)
	seedLot(s, "lot-ok", "prod-1", 10, true)
	seedLot(s, "lot-corto", "prod-1", 3, true)
	seedLot(s, "lot-inactivo", "prod-2", 50, false)

	recon := newRecon(s)
	err := recon.CheckAvailability(context.Background(), []inventory.LotRequest{
		{LotID: "lot-ok", Quantity: 5},
		{LotID: "lot-corto", Quantity: 8},
		{LotID: "lot-inactivo", Quantity: 1},
		{LotID: "lot-fantasma", Quantity: 2},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	// Un solo error con las tres líneas que no alcanzan; la línea buena no figura.
	require.Len(t, insufficient.Shortfalls, 3)

	byLot := make(map[string]domain.StockShortfall)
	for _, sh := range insufficient.Shortfalls {
		byLot[sh.LotID] = sh
	}
	assert.Equal(t, int64(3), byLot["lot-corto"].Available)
	assert.Equal(t, int64(8), byLot["lot-corto"].Required)
	assert.Equal(t, "Pendón 2x1", byLot["lot-corto"].ProductName)
	// Inactivo cuenta como 0 disponible aunque tenga cantidad.
	assert.Equal(t, int64(0), byLot["lot-inactivo"].Available)
	assert.Equal(t, int64(0), byLot["lot-fantasma"].Available)
}

func TestCheckAvailability_TodoAlcanza(t *testing.T) {
	s := testutil.NewStore()
	seedProduct(s, "prod-1", "Pendón", 10)
	seedLot(s, "lot-1", "prod-1", 10, true)

	err := newRecon(s).CheckAvailability(context.Background(), []inventory.LotRequest{
		{LotID: "lot-1", Quantity: 10},
	})
	assert.NoError(t, err)
}

func TestApplyDeduction_DescuentaYAjustaProducto(t *testing.T) {
	s := testutil.NewStore()
	seedProduct(s, "prod-1", "Pendón", 25)
	seedLot(s, "lot-1", "prod-1", 20, true)
	seedLot(s, "lot-2", "prod-1", 5, true)

	recon := newRecon(s)
	deductions, err := recon.ApplyDeduction(context.Background(), s.Repos(), []inventory.LotRequest{
		{LotID: "lot-1", Quantity: 12},
		{LotID: "lot-2", Quantity: 5},
	})
	require.NoError(t, err)
	require.Len(t, deductions, 2)

	assert.Equal(t, int64(8), s.Lots["lot-1"].Quantity)
	assert.True(t, s.Lots["lot-1"].IsActive)
	// El lote que llega a 0 queda retirado en el mismo descuento.
	assert.Equal(t, int64(0), s.Lots["lot-2"].Quantity)
	assert.False(t, s.Lots["lot-2"].IsActive)
	// Total del producto: 25 - 12 - 5.
	assert.Equal(t, int64(8), s.Products["prod-1"].Quantity)

	assert.Equal(t, int64(20), deductions[0].PreviousQuantity)
	assert.Equal(t, int64(8), deductions[0].NewQuantity)
}

// Reproduce la venta de catálogo: lote de 20, se venden 12 y luego 8. El
// segundo descuento agota el lote y lo retira; el total del producto termina
// reflejando solo lo que queda en lotes activos.
func TestApplyDeduction_AgotaLoteEnDosVentas(t *testing.T) {
	s := testutil.NewStore()
	seedProduct(s, "prod-1", "Pendón", 20)
	seedLot(s, "lot-1", "prod-1", 20, true)

	recon := newRecon(s)
	ctx := context.Background()

	_, err := recon.ApplyDeduction(ctx, s.Repos(), []inventory.LotRequest{{LotID: "lot-1", Quantity: 12}})
	require.NoError(t, err)
	assert.Equal(t, int64(8), s.Lots["lot-1"].Quantity)
	assert.True(t, s.Lots["lot-1"].IsActive)

	_, err = recon.ApplyDeduction(ctx, s.Repos(), []inventory.LotRequest{{LotID: "lot-1", Quantity: 8}})
	require.NoError(t, err)
	assert.False(t, s.Lots["lot-1"].IsActive)
	assert.Equal(t, int64(0), s.Products["prod-1"].Quantity)

	// Una tercera venta sobre el lote retirado ya no pasa.
	_, err = recon.ApplyDeduction(ctx, s.Repos(), []inventory.LotRequest{{LotID: "lot-1", Quantity: 1}})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
}

func TestApplyDeduction_CarreraPerdidaReportaFaltante(t *testing.T) {
	s := testutil.NewStore()
	seedProduct(s, "prod-1", "Pendón", 20)
	seedLot(s, "lot-1", "prod-1", 20, true)
	// Simula que otra venta concurrente ganó el update condicional.
	s.FailDeduct["lot-1"] = 1

	recon := newRecon(s)
	_, err := recon.ApplyDeduction(context.Background(), s.Repos(), []inventory.LotRequest{
		{LotID: "lot-1", Quantity: 5},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	// El lote no se tocó: el update condicional falló sin efectos.
	assert.Equal(t, int64(20), s.Lots["lot-1"].Quantity)
	assert.Equal(t, int64(20), s.Products["prod-1"].Quantity)
}
