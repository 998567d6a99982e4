package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// LotPatch son los campos modificables de un lote en un update. Los punteros
// distinguen "no viene en el patch" de "viene con valor cero".
type LotPatch struct {
	Code      *string
	Quantity  *int64
	IsActive  *bool
	BuyPrice  *decimal.Decimal
	SellPrice *decimal.Decimal
}

// ProductDelta calcula cuánto debe ajustarse el total cacheado del producto al
// aplicar patch sobre el lote actual. Los cuatro casos, en orden de precedencia:
//
//  1. activo → inactivo: -cantidadAnterior (se retira todo lo que aportaba,
//     sin importar si el patch también trae cantidad)
//  2. inactivo → activo con cantidad en el patch: +cantidadNueva (se reactiva
//     con exactamente esa cantidad, no con la vieja)
//  3. inactivo → activo sin cantidad: +cantidadAnterior
//  4. sigue activo y el patch trae cantidad: cantidadNueva - cantidadAnterior
//
// En cualquier otro caso el delta es 0: un lote inactivo aporta 0 al total,
// cambiarle la cantidad no mueve el producto.
func ProductDelta(lot *entity.Lot, patch LotPatch) int64 {
	wasActive := lot.IsActive
	isActive := wasActive
	if patch.IsActive != nil {
		isActive = *patch.IsActive
	}

	switch {
	case wasActive && !isActive:
		return -lot.Quantity
	case !wasActive && isActive && patch.Quantity != nil:
		return *patch.Quantity
	case !wasActive && isActive:
		return lot.Quantity
	case isActive && patch.Quantity != nil:
		return *patch.Quantity - lot.Quantity
	default:
		return 0
	}
}

// DeletionDelta calcula el ajuste al producto al borrar un lote: se revierte su
// contribución, que es cero si ya estaba inactivo.
func DeletionDelta(lot *entity.Lot) int64 {
	return -lot.ActiveQuantity()
}

// Apply aplica el patch sobre el lote en memoria. El delta del producto lo
// aplica el caller en la misma transacción.
func Apply(lot *entity.Lot, patch LotPatch) {
	if patch.Code != nil {
		lot.Code = *patch.Code
	}
	if patch.Quantity != nil {
		lot.Quantity = *patch.Quantity
	}
	if patch.IsActive != nil {
		lot.IsActive = *patch.IsActive
	}
	if patch.BuyPrice != nil {
		lot.BuyPrice = *patch.BuyPrice
	}
	if patch.SellPrice != nil {
		lot.SellPrice = *patch.SellPrice
	}
}
