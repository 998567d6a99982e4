package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/documents"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// PDFHandler sirve la representación gráfica de los documentos de venta.
type PDFHandler struct {
	uc *documents.PDFUseCase
}

// NewPDFHandler construye el handler.
func NewPDFHandler(uc *documents.PDFUseCase) *PDFHandler {
	return &PDFHandler{uc: uc}
}

// Tipos de documento expuestos en la URL.
var pdfKinds = map[string]string{
	"delivery-notes": entity.SaleDocDeliveryNote,
	"invoices":       entity.SaleDocInvoice,
	"proformas":      entity.SaleDocProforma,
}

// Render godoc
// @Summary      Descargar el PDF de un documento de venta
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        kind  path  string  true  "delivery-notes | invoices | proformas"
// @Param        id    path  string  true  "ID del documento"
// @Success      200   {file}  binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id}/pdf [get]
func (h *PDFHandler) Render(c *fiber.Ctx) error {
	kind, ok := pdfKinds[c.Params("kind")]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de documento desconocido"})
	}
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	pdfBytes, err := h.uc.Render(c.Context(), kind, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="documento.pdf"`)
	return c.Send(pdfBytes)
}
