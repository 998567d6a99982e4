package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// LotHandler maneja el libro de lotes (protegido).
type LotHandler struct {
	uc *inventory.LotLedgerUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *inventory.LotLedgerUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lote (alta manual de stock)
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Datos del lote"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lot, err := h.uc.CreateLot(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLotResponse(lot))
}

// Update godoc
// @Summary      Actualizar lote (el producto se ajusta con el delta derivado)
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.UpdateLotRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.LotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [put]
func (h *LotHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lot, err := h.uc.UpdateLot(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLotResponse(lot))
}

// Delete godoc
// @Summary      Eliminar lote (revierte su aporte al producto)
// @Tags         lots
// @Security     Bearer
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [delete]
func (h *LotHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeleteLot(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByProduct godoc
// @Summary      Listar lotes de un producto
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/lots [get]
func (h *LotHandler) ListByProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return missingID(c)
	}
	lots, err := h.uc.ListLotsByProduct(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotResponse(lot))
	}
	return c.JSON(out)
}

func toLotResponse(lot *entity.Lot) dto.LotResponse {
	return dto.LotResponse{
		ID:         lot.ID,
		Code:       lot.Code,
		ProductID:  lot.ProductID,
		SupplierID: lot.SupplierID,
		BuyPrice:   lot.BuyPrice,
		SellPrice:  lot.SellPrice,
		Quantity:   lot.Quantity,
		IsActive:   lot.IsActive,
		Date:       lot.Date,
	}
}
