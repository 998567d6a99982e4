package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/purchasing"
)

// PurchaseHandler maneja compras y devoluciones a proveedor.
type PurchaseHandler struct {
	uc *purchasing.CommitPurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.CommitPurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Commit godoc
// @Summary      Confirmar compra o devolución a proveedor
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitPurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.DocumentNumberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "devolución mayor que el stock del lote"
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CommitPurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar asiento de compra (no toca stock)
// @Tags         purchases
// @Security     Bearer
// @Param        id  path  string  true  "ID de la compra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.DeletePurchase(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
