package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// PurchaseRepository define el puerto del diario de compras.
// El borrado es explícito en dos pasos (líneas y luego cabecera) dentro de la
// transacción del caller, no un hook implícito.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase, items []*entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, []*entity.PurchaseItem, error)
	ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.Purchase, error)
	Delete(ctx context.Context, id string) error
}

// SaleRepository define el puerto del diario de ventas: remisiones, facturas y
// proformas comparten la tabla de líneas (sale_items) discriminada por kind.
type SaleRepository interface {
	CreateDeliveryNote(ctx context.Context, note *entity.DeliveryNote, items []*entity.SaleItem) error
	GetDeliveryNote(ctx context.Context, id string) (*entity.DeliveryNote, []*entity.SaleItem, error)
	DeleteDeliveryNote(ctx context.Context, id string) error

	CreateInvoice(ctx context.Context, invoice *entity.Invoice, items []*entity.SaleItem) error
	GetInvoice(ctx context.Context, id string) (*entity.Invoice, []*entity.SaleItem, error)
	// GetInvoiceByOrigin busca la factura derivada de una remisión por su
	// código de origen ("BON-<id>"); nil sin error si no existe todavía.
	GetInvoiceByOrigin(ctx context.Context, originCode string) (*entity.Invoice, error)

	CreateProforma(ctx context.Context, proforma *entity.Proforma, items []*entity.SaleItem) error
	GetProforma(ctx context.Context, id string) (*entity.Proforma, []*entity.SaleItem, error)

	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.DeliveryNote, error)
}
