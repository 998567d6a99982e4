package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
)

func ptrInt64(v int64) *int64 { return &v }
func ptrBool(v bool) *bool    { return &v }

func activeLot(qty int64) *entity.Lot {
	return &entity.Lot{ID: "lot-1", ProductID: "prod-1", Quantity: qty, IsActive: true}
}

func inactiveLot(qty int64) *entity.Lot {
	return &entity.Lot{ID: "lot-1", ProductID: "prod-1", Quantity: qty, IsActive: false}
}

func TestProductDelta_CuatroCasos(t *testing.T) {
	cases := []struct {
		name  string
		lot   *entity.Lot
		patch inventory.LotPatch
		want  int64
	}{
		{
			name:  "activo a inactivo retira toda la cantidad anterior",
			lot:   activeLot(50),
			patch: inventory.LotPatch{IsActive: ptrBool(false)},
			want:  -50,
		},
		{
			// La desactivación tiene precedencia: aunque el patch traiga
			// cantidad, lo que se retira es lo que el lote aportaba.
			name:  "activo a inactivo con cantidad en el patch sigue retirando la anterior",
			lot:   activeLot(50),
			patch: inventory.LotPatch{IsActive: ptrBool(false), Quantity: ptrInt64(80)},
			want:  -50,
		},
		{
			name:  "inactivo a activo con cantidad suma la nueva",
			lot:   inactiveLot(50),
			patch: inventory.LotPatch{IsActive: ptrBool(true), Quantity: ptrInt64(80)},
			want:  80,
		},
		{
			name:  "inactivo a activo sin cantidad suma la anterior",
			lot:   inactiveLot(50),
			patch: inventory.LotPatch{IsActive: ptrBool(true)},
			want:  50,
		},
		{
			name:  "sigue activo con cantidad nueva aplica la diferencia",
			lot:   activeLot(50),
			patch: inventory.LotPatch{Quantity: ptrInt64(30)},
			want:  -20,
		},
		{
			name:  "sigue activo subiendo cantidad aplica diferencia positiva",
			lot:   activeLot(50),
			patch: inventory.LotPatch{Quantity: ptrInt64(75)},
			want:  25,
		},
		{
			name:  "sigue inactivo aunque cambie la cantidad no mueve el producto",
			lot:   inactiveLot(50),
			patch: inventory.LotPatch{Quantity: ptrInt64(99)},
			want:  0,
		},
		{
			name:  "patch solo de precios no mueve el producto",
			lot:   activeLot(50),
			patch: inventory.LotPatch{},
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.ProductDelta(tc.lot, tc.patch))
		})
	}
}

// Secuencia: crear lote de 100, bajar a 60, desactivar, reactivar sin
// cantidad. El total del producto debe terminar igual que la suma de lotes
// activos en cada paso.
func TestProductDelta_SecuenciaMantieneInvariante(t *testing.T) {
	lot := activeLot(100)
	productTotal := lot.ActiveQuantity() // tras el alta: 100

	step := func(patch inventory.LotPatch) {
		productTotal += inventory.ProductDelta(lot, patch)
		inventory.Apply(lot, patch)
	}

	step(inventory.LotPatch{Quantity: ptrInt64(60)})
	assert.Equal(t, int64(60), productTotal)
	assert.Equal(t, lot.ActiveQuantity(), productTotal)

	step(inventory.LotPatch{IsActive: ptrBool(false)})
	assert.Equal(t, int64(0), productTotal)
	assert.Equal(t, lot.ActiveQuantity(), productTotal)

	step(inventory.LotPatch{IsActive: ptrBool(true)})
	assert.Equal(t, int64(60), productTotal)
	assert.Equal(t, lot.ActiveQuantity(), productTotal)
}

func TestDeletionDelta(t *testing.T) {
	assert.Equal(t, int64(-40), inventory.DeletionDelta(activeLot(40)),
		"borrar un lote activo revierte su aporte")
	assert.Equal(t, int64(0), inventory.DeletionDelta(inactiveLot(40)),
		"borrar un lote inactivo no mueve el producto")
}

func TestApply_CamposNilNoCambian(t *testing.T) {
	lot := activeLot(10)
	lot.Code = "L-001"

	inventory.Apply(lot, inventory.LotPatch{Quantity: ptrInt64(25)})

	assert.Equal(t, "L-001", lot.Code)
	assert.Equal(t, int64(25), lot.Quantity)
	assert.True(t, lot.IsActive)
}
