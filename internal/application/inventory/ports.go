package inventory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRepos son los repositorios atados a UNA transacción de BD. Todo lo que un
// commit escribe (lotes, totales de producto, diario, contador) pasa por aquí
// para que sea una sola unidad atómica con Commit/Rollback.
type TxRepos struct {
	Lots      repository.LotRepository
	Products  repository.ProductRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	Payments  repository.PaymentRepository
	Sequences repository.SequenceRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de lotes.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
