package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/settlement"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/testutil"
)

func newSettlementUseCase(s *testutil.Store) *settlement.SettlementUseCase {
	return settlement.NewSettlementUseCase(
		&testutil.SettlementRepo{S: s},
		&testutil.ClientRepo{S: s},
		&testutil.SupplierRepo{S: s},
	)
}

// Carga el escenario de referencia: dos remisiones de 1000 y 500, un abono de
// 600. La deuda debe quedar en 900.
func seedClientLedger(s *testutil.Store) {
	s.Clients["cli-1"] = entity.Client{ID: "cli-1", Name: "Almacén El Centro", TaxID: "900123456"}

	s.Notes["note-1"] = entity.DeliveryNote{ID: "note-1", Number: "00001/2026", ClientID: "cli-1"}
	s.Notes["note-2"] = entity.DeliveryNote{ID: "note-2", Number: "00002/2026", ClientID: "cli-1"}
	s.SaleItems = append(s.SaleItems,
		entity.SaleItem{ID: "i1", DocumentKind: entity.SaleDocDeliveryNote, DocumentID: "note-1",
			Kind: entity.LineProduct, Name: "Pendón", Quantity: 2, Price: decimal.NewFromInt(500)},
		entity.SaleItem{ID: "i2", DocumentKind: entity.SaleDocDeliveryNote, DocumentID: "note-2",
			Kind: entity.LineService, Name: "Diseño", Quantity: 1, Price: decimal.NewFromInt(500)},
	)

	s.Payments = append(s.Payments, entity.Payment{
		ID: "pay-1", PartyKind: entity.PartyClient, PartyID: "cli-1",
		Amount: decimal.NewFromInt(600),
		Date:   time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC),
	})
}

func TestPartyBalance_DeudaEsTransadoMenosPagado(t *testing.T) {
	s := testutil.NewStore()
	seedClientLedger(s)
	uc := newSettlementUseCase(s)

	b, err := uc.PartyBalance(context.Background(), entity.PartyClient, "cli-1")
	require.NoError(t, err)
	assert.True(t, b.TotalTransacted.Equal(decimal.NewFromInt(1500)), "transado: %s", b.TotalTransacted)
	assert.True(t, b.TotalPaid.Equal(decimal.NewFromInt(600)))
	assert.True(t, b.Debt.Equal(decimal.NewFromInt(900)))
}

func TestPartyBalance_SinMovimientosEsCero(t *testing.T) {
	s := testutil.NewStore()
	s.Clients["cli-nuevo"] = entity.Client{ID: "cli-nuevo", Name: "Cliente Nuevo"}
	uc := newSettlementUseCase(s)

	b, err := uc.PartyBalance(context.Background(), entity.PartyClient, "cli-nuevo")
	require.NoError(t, err)
	assert.True(t, b.Debt.IsZero(), "sin diario ni pagos la deuda es 0, no error")
}

func TestPartyBalance_ProveedorConDevolucionResta(t *testing.T) {
	s := testutil.NewStore()
	s.Suppliers["sup-1"] = entity.Supplier{ID: "sup-1", Name: "Litografía del Norte"}
	s.Purchases["buy-1"] = entity.Purchase{ID: "buy-1", SupplierID: "sup-1", Type: entity.PurchaseTypePurchase}
	s.PurchaseItems["buy-1"] = []entity.PurchaseItem{
		{ID: "b1", PurchaseID: "buy-1", ProductID: "prod-1", Quantity: 10, BuyPrice: decimal.NewFromInt(100)},
	}
	s.Purchases["ret-1"] = entity.Purchase{ID: "ret-1", SupplierID: "sup-1", Type: entity.PurchaseTypeReturn}
	s.PurchaseItems["ret-1"] = []entity.PurchaseItem{
		{ID: "r1", PurchaseID: "ret-1", ProductID: "prod-1", Quantity: 3, BuyPrice: decimal.NewFromInt(100)},
	}
	uc := newSettlementUseCase(s)

	b, err := uc.PartyBalance(context.Background(), entity.PartySupplier, "sup-1")
	require.NoError(t, err)
	// 1000 de compra menos 300 de devolución.
	assert.True(t, b.TotalTransacted.Equal(decimal.NewFromInt(700)), "transado: %s", b.TotalTransacted)
	assert.True(t, b.Debt.Equal(decimal.NewFromInt(700)))
}

func TestPartyBalance_Validaciones(t *testing.T) {
	uc := newSettlementUseCase(testutil.NewStore())

	_, err := uc.PartyBalance(context.Background(), entity.PartyKind("otro"), "cli-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.PartyBalance(context.Background(), entity.PartyClient, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPeriodSpend_SoloPagosDentroDelRango(t *testing.T) {
	s := testutil.NewStore()
	s.Clients["cli-1"] = entity.Client{ID: "cli-1", Name: "Almacén El Centro"}
	pay := func(id string, day int, amount int64) entity.Payment {
		return entity.Payment{
			ID: id, PartyKind: entity.PartyClient, PartyID: "cli-1",
			Amount: decimal.NewFromInt(amount),
			Date:   time.Date(2026, 5, day, 12, 0, 0, 0, time.UTC),
		}
	}
	s.Payments = append(s.Payments, pay("p1", 1, 100), pay("p2", 15, 200), pay("p3", 31, 400))
	uc := newSettlementUseCase(s)

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC)

	resp, err := uc.PeriodSpend(context.Background(), entity.PartyClient, "cli-1", from, to)
	require.NoError(t, err)
	// Extremos inclusive: entran los pagos del 1 y del 31.
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(700)), "gasto: %s", resp.Amount)

	resp, err = uc.PeriodSpend(context.Background(), entity.PartyClient, "cli-1",
		time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 30, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(200)))

	// Rango invertido es entrada inválida, no rango vacío.
	_, err = uc.PeriodSpend(context.Background(), entity.PartyClient, "cli-1", to, from)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClientsWithBalances_CompletaCeros(t *testing.T) {
	s := testutil.NewStore()
	seedClientLedger(s)
	s.Clients["cli-2"] = entity.Client{ID: "cli-2", Name: "Cliente Sin Movimientos"}
	uc := newSettlementUseCase(s)

	rows, err := uc.ClientsWithBalances(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := make(map[string]decimal.Decimal)
	for _, row := range rows {
		byID[row.ID] = row.Debt
	}
	assert.True(t, byID["cli-1"].Equal(decimal.NewFromInt(900)))
	// El cliente sin movimientos aparece en la página con saldo 0.
	assert.True(t, byID["cli-2"].IsZero())
}
