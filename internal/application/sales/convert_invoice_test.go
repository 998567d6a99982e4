package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/testutil"
)

func seedDeliveryNote(s *testutil.Store, noteID string) {
	s.Clients["cli-1"] = entity.Client{ID: "cli-1", Name: "Almacén El Centro"}
	s.Notes[noteID] = entity.DeliveryNote{
		ID:       noteID,
		Number:   "00007/2026",
		ClientID: "cli-1",
		Date:     time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	}
	s.SaleItems = append(s.SaleItems,
		entity.SaleItem{
			ID: "item-1", DocumentKind: entity.SaleDocDeliveryNote, DocumentID: noteID,
			Kind: entity.LineProduct, LotID: "lot-1", Name: "Pendón 2x1",
			Quantity: 3, Price: decimal.NewFromInt(35000),
		},
		entity.SaleItem{
			ID: "item-2", DocumentKind: entity.SaleDocDeliveryNote, DocumentID: noteID,
			Kind: entity.LineService, Name: "Instalación",
			Quantity: 1, Price: decimal.NewFromInt(20000),
		},
	)
}

func TestConvert_CreaFacturaConLineasCopiadas(t *testing.T) {
	s := testutil.NewStore()
	seedDeliveryNote(s, "note-1")
	uc := sales.NewConvertInvoiceUseCase(&testutil.TxRunner{S: s}, s.Repos().Sales)

	resp, created, err := uc.Convert(context.Background(), "user-1", "note-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "BON-note-1", resp.OriginCode)
	assert.Equal(t, "cli-1", resp.ClientID)
	assert.NotEmpty(t, resp.Number)

	// Las líneas de la factura son copias: mismo contenido, otro documento.
	invoice, items, err := s.Repos().Sales.GetInvoice(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, invoice)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, entity.SaleDocInvoice, item.DocumentKind)
		assert.Equal(t, resp.ID, item.DocumentID)
	}
	// La remisión conserva sus líneas originales.
	_, noteItems, err := s.Repos().Sales.GetDeliveryNote(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Len(t, noteItems, 2)
}

func TestConvert_EsIdempotente(t *testing.T) {
	s := testutil.NewStore()
	seedDeliveryNote(s, "note-1")
	uc := sales.NewConvertInvoiceUseCase(&testutil.TxRunner{S: s}, s.Repos().Sales)
	ctx := context.Background()

	first, created, err := uc.Convert(ctx, "user-1", "note-1")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := uc.Convert(ctx, "user-1", "note-1")
	require.NoError(t, err)
	assert.False(t, created, "la segunda conversión no crea nada")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Number, second.Number)
	assert.Len(t, s.Invoices, 1)
}

func TestConvert_RemisionInexistente(t *testing.T) {
	s := testutil.NewStore()
	uc := sales.NewConvertInvoiceUseCase(&testutil.TxRunner{S: s}, s.Repos().Sales)

	_, _, err := uc.Convert(context.Background(), "user-1", "nota-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOriginCode(t *testing.T) {
	assert.Equal(t, "BON-abc", sales.OriginCode("abc"))
}
