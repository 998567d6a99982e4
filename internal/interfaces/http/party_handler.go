package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/purchasing"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/application/settlement"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// PartyHandler maneja clientes y proveedores: CRUD, pagos, saldos derivados y
// gasto por período.
type PartyHandler struct {
	clientUC   *usecase.ClientUseCase
	supplierUC *usecase.SupplierUseCase
	paymentUC  *usecase.PaymentUseCase
	settleUC   *settlement.SettlementUseCase
	saleUC     *sales.CommitSaleUseCase
	purchaseUC *purchasing.CommitPurchaseUseCase
}

// NewPartyHandler construye el handler.
func NewPartyHandler(
	clientUC *usecase.ClientUseCase,
	supplierUC *usecase.SupplierUseCase,
	paymentUC *usecase.PaymentUseCase,
	settleUC *settlement.SettlementUseCase,
	saleUC *sales.CommitSaleUseCase,
	purchaseUC *purchasing.CommitPurchaseUseCase,
) *PartyHandler {
	return &PartyHandler{
		clientUC:   clientUC,
		supplierUC: supplierUC,
		paymentUC:  paymentUC,
		settleUC:   settleUC,
		saleUC:     saleUC,
		purchaseUC: purchaseUC,
	}
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateClient crea un cliente.
func (h *PartyHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.clientUC.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetClient obtiene un cliente por ID.
func (h *PartyHandler) GetClient(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.clientUC.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateClient actualiza un cliente.
func (h *PartyHandler) UpdateClient(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.clientUC.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteClient elimina un cliente.
func (h *PartyHandler) DeleteClient(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.clientUC.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListClients godoc
// @Summary      Listar clientes con columnas de saldo (una consulta agrupada)
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PartyWithBalance
// @Router       /api/clients [get]
func (h *PartyHandler) ListClients(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.settleUC.ClientsWithBalances(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListClientSales lista las remisiones del cliente.
func (h *PartyHandler) ListClientSales(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.saleUC.ListByClient(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplier crea un proveedor.
func (h *PartyHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.supplierUC.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSupplier obtiene un proveedor por ID.
func (h *PartyHandler) GetSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.supplierUC.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateSupplier actualiza un proveedor.
func (h *PartyHandler) UpdateSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.supplierUC.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier elimina un proveedor.
func (h *PartyHandler) DeleteSupplier(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.supplierUC.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSuppliers lista proveedores con columnas de saldo.
func (h *PartyHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.settleUC.SuppliersWithBalances(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSupplierPurchases lista las compras del proveedor.
func (h *PartyHandler) ListSupplierPurchases(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.purchaseUC.ListBySupplier(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ── Pagos y saldos ────────────────────────────────────────────────────────────

// Las rutas de pagos y saldos se registran bajo /clients y /suppliers con el
// mismo handler; el kind llega fijado desde el router.

// RecordPayment registra un abono (cliente) o pago (proveedor).
func (h *PartyHandler) RecordPayment(kind entity.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return missingID(c)
		}
		var in dto.PaymentRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		out, err := h.paymentUC.Record(c.Context(), kind, id, GetUserID(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// ListPayments lista los pagos del tercero, paginados.
func (h *PartyHandler) ListPayments(kind entity.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return missingID(c)
		}
		var page dto.PageRequest
		if err := c.QueryParser(&page); err != nil {
			return badBody(c)
		}
		page.DefaultPage()
		out, err := h.paymentUC.ListByParty(c.Context(), kind, id, page.Limit, page.Offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// Balance devuelve el saldo derivado del tercero (transado, pagado, deuda).
func (h *PartyHandler) Balance(kind entity.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return missingID(c)
		}
		out, err := h.settleUC.PartyBalance(c.Context(), kind, id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// PeriodSpend suma los pagos del tercero en [from, to], extremos inclusive.
func (h *PartyHandler) PeriodSpend(kind entity.PartyKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return missingID(c)
		}
		from, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, formato AAAA-MM-DD"})
		}
		to, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, formato AAAA-MM-DD"})
		}
		// El extremo final cubre el día completo: los pagos llevan timestamp.
		toEnd := to.Add(24*time.Hour - time.Nanosecond)
		out, err := h.settleUC.PeriodSpend(c.Context(), kind, id, from, toEnd)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}
