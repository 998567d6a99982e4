package sales_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/sales"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/testutil"
)

func newCommitUseCase(s *testutil.Store) *sales.CommitSaleUseCase {
	repos := s.Repos()
	recon := inventory.NewStockReconciliation(repos.Lots, repos.Products)
	return sales.NewCommitSaleUseCase(&testutil.TxRunner{S: s}, recon, &testutil.ClientRepo{S: s}, repos.Sales)
}

func seedSaleFixtures(s *testutil.Store) {
	s.Clients["cli-1"] = entity.Client{ID: "cli-1", Name: "Almacén El Centro"}
	s.Products["prod-1"] = entity.Product{ID: "prod-1", Code: "P-001", Name: "Pendón 2x1", Quantity: 20}
	s.Lots["lot-1"] = entity.Lot{ID: "lot-1", ProductID: "prod-1", SupplierID: "sup-1", Quantity: 20, IsActive: true,
		SellPrice: decimal.NewFromInt(35000)}
}

func productLine(lotID string, qty int64) dto.SaleLineRequest {
	return dto.SaleLineRequest{
		Kind:     string(entity.LineProduct),
		LotID:    lotID,
		Name:     "Pendón 2x1",
		Quantity: qty,
		Price:    decimal.NewFromInt(35000),
	}
}

func TestCommitSale_DescuentaYNumera(t *testing.T) {
	s := testutil.NewStore()
	seedSaleFixtures(s)
	uc := newCommitUseCase(s)

	resp, err := uc.CommitSale(context.Background(), "user-1", dto.CommitSaleRequest{
		ClientID:      "cli-1",
		PaymentMethod: "contado",
		Lines: []dto.SaleLineRequest{
			productLine("lot-1", 12),
			{Kind: string(entity.LineService), Name: "Diseño de arte", Quantity: 1, Price: decimal.NewFromInt(50000)},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.DisplayNumber, "00001/"), "primer consecutivo del año: %s", resp.DisplayNumber)
	require.Len(t, resp.LotDeductions, 1, "solo la línea de producto descuenta lote")
	assert.Equal(t, int64(12), resp.LotDeductions[0].QuantityDeducted)
	assert.Equal(t, int64(8), resp.LotDeductions[0].NewQuantity)

	assert.Equal(t, int64(8), s.Lots["lot-1"].Quantity)
	assert.Equal(t, int64(8), s.Products["prod-1"].Quantity)

	// La remisión quedó en el diario con sus dos líneas.
	note, items, err := s.Repos().Sales.GetDeliveryNote(context.Background(), resp.TransactionID)
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, resp.DisplayNumber, note.Number)
	assert.Len(t, items, 2)
}

func TestCommitSale_FaltanteNoEscribeNada(t *testing.T) {
	s := testutil.NewStore()
	seedSaleFixtures(s)
	uc := newCommitUseCase(s)

	_, err := uc.CommitSale(context.Background(), "user-1", dto.CommitSaleRequest{
		ClientID: "cli-1",
		Lines:    []dto.SaleLineRequest{productLine("lot-1", 99)},
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 1)
	assert.Equal(t, int64(20), insufficient.Shortfalls[0].Available)
	assert.Equal(t, int64(99), insufficient.Shortfalls[0].Required)

	assert.Equal(t, int64(20), s.Lots["lot-1"].Quantity, "sin descuento parcial")
	assert.Empty(t, s.Notes, "no se creó remisión")
}

func TestCommitSale_CarreraPerdidaReintentaUnaVez(t *testing.T) {
	s := testutil.NewStore()
	seedSaleFixtures(s)
	// El primer intento pierde el update condicional; el reintento gana.
	s.FailDeduct["lot-1"] = 1
	uc := newCommitUseCase(s)

	resp, err := uc.CommitSale(context.Background(), "user-1", dto.CommitSaleRequest{
		ClientID: "cli-1",
		Lines:    []dto.SaleLineRequest{productLine("lot-1", 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), s.Lots["lot-1"].Quantity)
	assert.NotEmpty(t, resp.DisplayNumber)
}

func TestCommitSale_CarreraPersistenteDevuelveConflicto(t *testing.T) {
	s := testutil.NewStore()
	seedSaleFixtures(s)
	// Ambos intentos pierden la carrera: un solo reintento y luego conflicto.
	s.FailDeduct["lot-1"] = 2
	uc := newCommitUseCase(s)

	_, err := uc.CommitSale(context.Background(), "user-1", dto.CommitSaleRequest{
		ClientID: "cli-1",
		Lines:    []dto.SaleLineRequest{productLine("lot-1", 5)},
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(20), s.Lots["lot-1"].Quantity, "el rollback dejó todo como estaba")
	assert.Empty(t, s.Notes)
}

func TestCommitSale_Validaciones(t *testing.T) {
	s := testutil.NewStore()
	seedSaleFixtures(s)
	uc := newCommitUseCase(s)
	ctx := context.Background()

	_, err := uc.CommitSale(ctx, "user-1", dto.CommitSaleRequest{ClientID: "", Lines: []dto.SaleLineRequest{productLine("lot-1", 1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cliente requerido")

	_, err = uc.CommitSale(ctx, "user-1", dto.CommitSaleRequest{ClientID: "cli-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "al menos una línea")

	_, err = uc.CommitSale(ctx, "user-1", dto.CommitSaleRequest{ClientID: "cli-inexistente", Lines: []dto.SaleLineRequest{productLine("lot-1", 1)}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Línea product sin lote.
	_, err = uc.CommitSale(ctx, "user-1", dto.CommitSaleRequest{
		ClientID: "cli-1",
		Lines:    []dto.SaleLineRequest{{Kind: string(entity.LineProduct), Name: "Pendón", Quantity: 1, Price: decimal.NewFromInt(100)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteSale_NoReponeStock(t *testing.T) {
	s := testutil.NewStore()
	seedSaleFixtures(s)
	uc := newCommitUseCase(s)
	ctx := context.Background()

	resp, err := uc.CommitSale(ctx, "user-1", dto.CommitSaleRequest{
		ClientID: "cli-1",
		Lines:    []dto.SaleLineRequest{productLine("lot-1", 12)},
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteSale(ctx, resp.TransactionID))

	assert.Empty(t, s.Notes, "la remisión salió del diario")
	assert.Empty(t, s.SaleItems, "sus líneas también")
	// Borrar del diario no devuelve mercancía al lote.
	assert.Equal(t, int64(8), s.Lots["lot-1"].Quantity)
	assert.Equal(t, int64(8), s.Products["prod-1"].Quantity)

	assert.ErrorIs(t, uc.DeleteSale(ctx, "nota-inexistente"), domain.ErrNotFound)
}
