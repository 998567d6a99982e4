package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/numbering"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
)

// SaleHandler maneja ventas: confirmación de remisión, conversión a factura,
// proformas y previsualización de consecutivos.
type SaleHandler struct {
	commitUC   *sales.CommitSaleUseCase
	convertUC  *sales.ConvertInvoiceUseCase
	proformaUC *sales.ProformaUseCase
	numbers    *numbering.Service
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	commitUC *sales.CommitSaleUseCase,
	convertUC *sales.ConvertInvoiceUseCase,
	proformaUC *sales.ProformaUseCase,
	numbers *numbering.Service,
) *SaleHandler {
	return &SaleHandler{
		commitUC:   commitUC,
		convertUC:  convertUC,
		proformaUC: proformaUC,
		numbers:    numbers,
	}
}

// Claves de contador expuestas para previsualización.
var peekKeys = map[string]string{
	"purchase":      numbering.KeyPurchase,
	"delivery_note": numbering.KeyDeliveryNote,
	"invoice":       numbering.KeyInvoice,
	"proforma":      numbering.KeyProforma,
}

// Commit godoc
// @Summary      Confirmar venta (remisión)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitSaleRequest  true  "Venta"
// @Success      201   {object}  dto.CommitSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente o conflicto de concurrencia"
// @Router       /api/sales [post]
func (h *SaleHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.commitUC.CommitSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar remisión del diario (no repone stock)
// @Tags         sales
// @Security     Bearer
// @Param        id  path  string  true  "ID de la remisión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.commitUC.DeleteSale(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Convert godoc
// @Summary      Convertir remisión en factura (idempotente)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la remisión"
// @Success      200  {object}  dto.InvoiceResponse  "factura ya existente"
// @Success      201  {object}  dto.InvoiceResponse  "factura creada"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/invoice [post]
func (h *SaleHandler) Convert(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, created, err := h.convertUC.Convert(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// CreateProforma godoc
// @Summary      Crear proforma (sin efecto de stock ni saldo)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProformaRequest  true  "Proforma"
// @Success      201   {object}  dto.DocumentNumberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/proformas [post]
func (h *SaleHandler) CreateProforma(c *fiber.Ctx) error {
	var in dto.ProformaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.proformaUC.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PeekNumber godoc
// @Summary      Previsualizar el próximo número de documento (sin consumirlo)
// @Tags         sequences
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "purchase | delivery_note | invoice | proforma"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sequences/{kind}/next [get]
func (h *SaleHandler) PeekNumber(c *fiber.Ctx) error {
	key, ok := peekKeys[c.Params("kind")]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de documento desconocido"})
	}
	number, err := h.numbers.Peek(c.Context(), key)
	if err != nil {
		return respondError(c, err)
	}
	// Provisional: el número definitivo se asigna al confirmar el documento.
	return c.JSON(fiber.Map{"next_number": number})
}
