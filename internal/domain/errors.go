package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// StockShortfall describe el faltante de una línea de venta: cuánto hay
// disponible en el lote y cuánto se pidió.
type StockShortfall struct {
	LotID       string `json:"lot_id"`
	ProductName string `json:"product_name"`
	Available   int64  `json:"available"`
	Required    int64  `json:"required"`
}

// InsufficientStockError agrupa TODOS los faltantes de una venta, no solo el
// primero, para que el caller pueda mostrarlos de una vez.
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s: disponible %d, pedido %d", s.ProductName, s.Available, s.Required))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// IsInsufficientStock extrae el error tipado si err lo contiene.
func IsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
