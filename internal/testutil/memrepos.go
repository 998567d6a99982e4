// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para tests de casos de uso, incluyendo un TxRunner con
// rollback por snapshot que imita la atomicidad de una transacción real.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Store es el estado compartido de los repos en memoria. Los mapas guardan
// valores (no punteros) para que el snapshot de una tx sea una copia real.
type Store struct {
	mu sync.Mutex

	Lots          map[string]entity.Lot
	Products      map[string]entity.Product
	Categories    map[string]entity.Category
	Clients       map[string]entity.Client
	Suppliers     map[string]entity.Supplier
	Purchases     map[string]entity.Purchase
	PurchaseItems map[string][]entity.PurchaseItem
	Notes         map[string]entity.DeliveryNote
	Invoices      map[string]entity.Invoice
	Proformas     map[string]entity.Proforma
	SaleItems     []entity.SaleItem
	Payments      []entity.Payment
	Counters      map[string]int64

	// FailDeduct simula carreras perdidas: los próximos N DeductIfAvailable
	// sobre ese lote devuelven ok=false aunque el stock alcance.
	FailDeduct map[string]int
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		Lots:           make(map[string]entity.Lot),
		Products:       make(map[string]entity.Product),
		Categories:     make(map[string]entity.Category),
		Clients:        make(map[string]entity.Client),
		Suppliers:      make(map[string]entity.Supplier),
		Purchases:      make(map[string]entity.Purchase),
		PurchaseItems:  make(map[string][]entity.PurchaseItem),
		Notes:          make(map[string]entity.DeliveryNote),
		Invoices:       make(map[string]entity.Invoice),
		Proformas:      make(map[string]entity.Proforma),
		Counters:       make(map[string]int64),
		FailDeduct:     make(map[string]int),
	}
}

func (s *Store) snapshot() *Store {
	clone := NewStore()
	for k, v := range s.Lots {
		clone.Lots[k] = v
	}
	for k, v := range s.Products {
		clone.Products[k] = v
	}
	for k, v := range s.Categories {
		clone.Categories[k] = v
	}
	for k, v := range s.Clients {
		clone.Clients[k] = v
	}
	for k, v := range s.Suppliers {
		clone.Suppliers[k] = v
	}
	for k, v := range s.Purchases {
		clone.Purchases[k] = v
	}
	for k, v := range s.PurchaseItems {
		clone.PurchaseItems[k] = append([]entity.PurchaseItem(nil), v...)
	}
	for k, v := range s.Notes {
		clone.Notes[k] = v
	}
	for k, v := range s.Invoices {
		clone.Invoices[k] = v
	}
	for k, v := range s.Proformas {
		clone.Proformas[k] = v
	}
	clone.SaleItems = append([]entity.SaleItem(nil), s.SaleItems...)
	clone.Payments = append([]entity.Payment(nil), s.Payments...)
	for k, v := range s.Counters {
		clone.Counters[k] = v
	}
	return clone
}

func (s *Store) restore(snap *Store) {
	s.Lots = snap.Lots
	s.Products = snap.Products
	s.Categories = snap.Categories
	s.Clients = snap.Clients
	s.Suppliers = snap.Suppliers
	s.Purchases = snap.Purchases
	s.PurchaseItems = snap.PurchaseItems
	s.Notes = snap.Notes
	s.Invoices = snap.Invoices
	s.Proformas = snap.Proformas
	s.SaleItems = snap.SaleItems
	s.Payments = snap.Payments
	s.Counters = snap.Counters
}

// Repos devuelve el juego completo de repos sobre el store.
func (s *Store) Repos() inventory.TxRepos {
	return inventory.TxRepos{
		Lots:      &LotRepo{s: s},
		Products:  &ProductRepo{s: s},
		Purchases: &PurchaseRepo{s: s},
		Sales:     &SaleRepo{s: s},
		Payments:  &PaymentRepo{s: s},
		Sequences: &SequenceRepo{s: s},
	}
}

// TxRunner corre el callback sobre el store; si falla, restaura el snapshot
// (equivalente al rollback de la tx real).
type TxRunner struct {
	S *Store
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con repos sobre el store, restaurando el estado previo si fn
// retorna error.
func (r *TxRunner) Run(_ context.Context, fn func(repos inventory.TxRepos) error) error {
	r.S.mu.Lock()
	defer r.S.mu.Unlock()
	snap := r.S.snapshot()
	if err := fn(r.S.Repos()); err != nil {
		r.S.restore(snap)
		return err
	}
	return nil
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

// LotRepo implementación en memoria de repository.LotRepository.
type LotRepo struct{ s *Store }

var _ repository.LotRepository = (*LotRepo)(nil)

func (r *LotRepo) Create(_ context.Context, lot *entity.Lot) error {
	r.s.Lots[lot.ID] = *lot
	return nil
}

func (r *LotRepo) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	lot, ok := r.s.Lots[id]
	if !ok {
		return nil, nil
	}
	return &lot, nil
}

func (r *LotRepo) Update(_ context.Context, lot *entity.Lot) error {
	if _, ok := r.s.Lots[lot.ID]; !ok {
		return fmt.Errorf("update lot: no rows")
	}
	r.s.Lots[lot.ID] = *lot
	return nil
}

func (r *LotRepo) Delete(_ context.Context, id string) error {
	delete(r.s.Lots, id)
	return nil
}

func (r *LotRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, lot := range r.s.Lots {
		if lot.ProductID == productID {
			l := lot
			out = append(out, &l)
		}
	}
	return out, nil
}

func (r *LotRepo) DeductIfAvailable(_ context.Context, id string, qty int64) (int64, bool, error) {
	if r.s.FailDeduct[id] > 0 {
		r.s.FailDeduct[id]--
		return 0, false, nil
	}
	lot, ok := r.s.Lots[id]
	if !ok || !lot.IsActive || lot.Quantity < qty {
		return 0, false, nil
	}
	lot.Quantity -= qty
	lot.IsActive = lot.Quantity > 0
	r.s.Lots[id] = lot
	return lot.Quantity, true, nil
}

func (r *LotRepo) AddQuantity(_ context.Context, id string, qty int64) error {
	lot, ok := r.s.Lots[id]
	if !ok {
		return fmt.Errorf("add lot quantity: no rows")
	}
	lot.Quantity += qty
	r.s.Lots[id] = lot
	return nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.s.Products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.Products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.Code == code {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	existing, ok := r.s.Products[p.ID]
	if !ok {
		return fmt.Errorf("update product: no rows")
	}
	// Quantity no se toca en update, igual que el repo real.
	quantity := existing.Quantity
	updated := *p
	updated.Quantity = quantity
	r.s.Products[p.ID] = updated
	return nil
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.Products {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	delete(r.s.Products, id)
	return nil
}

func (r *ProductRepo) AdjustQuantity(_ context.Context, id string, delta int64) error {
	p, ok := r.s.Products[id]
	if !ok {
		return fmt.Errorf("adjust product quantity: no rows")
	}
	p.Quantity += delta
	r.s.Products[id] = p
	return nil
}

// ── Terceros ──────────────────────────────────────────────────────────────────

// ClientRepo implementación en memoria de repository.ClientRepository.
type ClientRepo struct{ S *Store }

var _ repository.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.S.Clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	c, ok := r.S.Clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.S.Clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.S.Clients {
		cp := c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	delete(r.S.Clients, id)
	return nil
}

// SupplierRepo implementación en memoria de repository.SupplierRepository.
type SupplierRepo struct{ S *Store }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.S.Suppliers[s.ID] = *s
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.S.Suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	r.S.Suppliers[s.ID] = *s
	return nil
}

func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.S.Suppliers {
		cp := s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	delete(r.S.Suppliers, id)
	return nil
}

// ── Diario de compras ─────────────────────────────────────────────────────────

// PurchaseRepo implementación en memoria de repository.PurchaseRepository.
type PurchaseRepo struct{ s *Store }

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase, items []*entity.PurchaseItem) error {
	r.s.Purchases[p.ID] = *p
	for _, item := range items {
		r.s.PurchaseItems[p.ID] = append(r.s.PurchaseItems[p.ID], *item)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, []*entity.PurchaseItem, error) {
	p, ok := r.s.Purchases[id]
	if !ok {
		return nil, nil, nil
	}
	var items []*entity.PurchaseItem
	for _, item := range r.s.PurchaseItems[id] {
		cp := item
		items = append(items, &cp)
	}
	return &p, items, nil
}

func (r *PurchaseRepo) ListBySupplier(_ context.Context, supplierID string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.s.Purchases {
		if p.SupplierID == supplierID {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *PurchaseRepo) Delete(_ context.Context, id string) error {
	delete(r.s.PurchaseItems, id)
	delete(r.s.Purchases, id)
	return nil
}

// ── Diario de ventas ──────────────────────────────────────────────────────────

// SaleRepo implementación en memoria de repository.SaleRepository.
type SaleRepo struct{ s *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) appendItems(items []*entity.SaleItem) {
	for _, item := range items {
		r.s.SaleItems = append(r.s.SaleItems, *item)
	}
}

func (r *SaleRepo) itemsFor(kind, id string) []*entity.SaleItem {
	var out []*entity.SaleItem
	for _, item := range r.s.SaleItems {
		if item.DocumentKind == kind && item.DocumentID == id {
			cp := item
			out = append(out, &cp)
		}
	}
	return out
}

func (r *SaleRepo) CreateDeliveryNote(_ context.Context, note *entity.DeliveryNote, items []*entity.SaleItem) error {
	r.s.Notes[note.ID] = *note
	r.appendItems(items)
	return nil
}

func (r *SaleRepo) GetDeliveryNote(_ context.Context, id string) (*entity.DeliveryNote, []*entity.SaleItem, error) {
	n, ok := r.s.Notes[id]
	if !ok {
		return nil, nil, nil
	}
	return &n, r.itemsFor(entity.SaleDocDeliveryNote, id), nil
}

func (r *SaleRepo) DeleteDeliveryNote(_ context.Context, id string) error {
	kept := r.s.SaleItems[:0]
	for _, item := range r.s.SaleItems {
		if !(item.DocumentKind == entity.SaleDocDeliveryNote && item.DocumentID == id) {
			kept = append(kept, item)
		}
	}
	r.s.SaleItems = kept
	delete(r.s.Notes, id)
	return nil
}

func (r *SaleRepo) CreateInvoice(_ context.Context, invoice *entity.Invoice, items []*entity.SaleItem) error {
	for _, existing := range r.s.Invoices {
		if existing.OriginCode == invoice.OriginCode {
			return domain.ErrDuplicate
		}
	}
	r.s.Invoices[invoice.ID] = *invoice
	r.appendItems(items)
	return nil
}

func (r *SaleRepo) GetInvoice(_ context.Context, id string) (*entity.Invoice, []*entity.SaleItem, error) {
	inv, ok := r.s.Invoices[id]
	if !ok {
		return nil, nil, nil
	}
	return &inv, r.itemsFor(entity.SaleDocInvoice, id), nil
}

func (r *SaleRepo) GetInvoiceByOrigin(_ context.Context, originCode string) (*entity.Invoice, error) {
	for _, inv := range r.s.Invoices {
		if inv.OriginCode == originCode {
			cp := inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) CreateProforma(_ context.Context, proforma *entity.Proforma, items []*entity.SaleItem) error {
	r.s.Proformas[proforma.ID] = *proforma
	r.appendItems(items)
	return nil
}

func (r *SaleRepo) GetProforma(_ context.Context, id string) (*entity.Proforma, []*entity.SaleItem, error) {
	p, ok := r.s.Proformas[id]
	if !ok {
		return nil, nil, nil
	}
	return &p, r.itemsFor(entity.SaleDocProforma, id), nil
}

func (r *SaleRepo) ListByClient(_ context.Context, clientID string, limit, offset int) ([]*entity.DeliveryNote, error) {
	var out []*entity.DeliveryNote
	for _, n := range r.s.Notes {
		if n.ClientID == clientID {
			cp := n
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

// PaymentRepo implementación en memoria de repository.PaymentRepository.
type PaymentRepo struct{ s *Store }

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if !p.PartyKind.Valid() {
		return domain.ErrInvalidInput
	}
	r.s.Payments = append(r.s.Payments, *p)
	return nil
}

func (r *PaymentRepo) ListByParty(_ context.Context, kind entity.PartyKind, partyID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.Payments {
		if p.PartyKind == kind && p.PartyID == partyID {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Contadores ────────────────────────────────────────────────────────────────

// SequenceRepo implementación en memoria de repository.SequenceRepository.
type SequenceRepo struct{ s *Store }

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

func counterKey(key string, year int) string {
	return fmt.Sprintf("%s|%d", key, year)
}

func (r *SequenceRepo) Next(_ context.Context, key string, year int) (int64, error) {
	k := counterKey(key, year)
	r.s.Counters[k]++
	return r.s.Counters[k], nil
}

func (r *SequenceRepo) Peek(_ context.Context, key string, year int) (int64, error) {
	return r.s.Counters[counterKey(key, year)] + 1, nil
}

// ── Liquidación ───────────────────────────────────────────────────────────────

// SettlementRepo implementación en memoria de repository.SettlementRepository:
// replica la agregación del repo SQL sobre los mapas del store.
type SettlementRepo struct{ S *Store }

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

func (r *SettlementRepo) clientTransacted(clientID string) decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.S.SaleItems {
		if item.DocumentKind != entity.SaleDocDeliveryNote {
			continue
		}
		note, ok := r.S.Notes[item.DocumentID]
		if !ok || note.ClientID != clientID {
			continue
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}

func (r *SettlementRepo) supplierTransacted(supplierID string) decimal.Decimal {
	total := decimal.Zero
	for purchaseID, items := range r.S.PurchaseItems {
		purchase, ok := r.S.Purchases[purchaseID]
		if !ok || purchase.SupplierID != supplierID {
			continue
		}
		sign := decimal.NewFromInt(1)
		if purchase.Type == entity.PurchaseTypeReturn {
			sign = decimal.NewFromInt(-1)
		}
		for _, item := range items {
			total = total.Add(sign.Mul(item.BuyPrice.Mul(decimal.NewFromInt(item.Quantity))))
		}
	}
	return total
}

func (r *SettlementRepo) totalPaid(kind entity.PartyKind, partyID string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.S.Payments {
		if p.PartyKind == kind && p.PartyID == partyID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

func (r *SettlementRepo) PartyBalance(_ context.Context, kind entity.PartyKind, partyID string) (*repository.Balance, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	var transacted decimal.Decimal
	if kind == entity.PartyClient {
		transacted = r.clientTransacted(partyID)
	} else {
		transacted = r.supplierTransacted(partyID)
	}
	paid := r.totalPaid(kind, partyID)
	return &repository.Balance{
		PartyID:         partyID,
		TotalTransacted: transacted,
		TotalPaid:       paid,
		Debt:            transacted.Sub(paid),
	}, nil
}

func (r *SettlementRepo) BalancesFor(ctx context.Context, kind entity.PartyKind, partyIDs []string) (map[string]*repository.Balance, error) {
	out := make(map[string]*repository.Balance, len(partyIDs))
	for _, id := range partyIDs {
		b, err := r.PartyBalance(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		if !b.TotalTransacted.IsZero() || !b.TotalPaid.IsZero() {
			out[id] = b
		}
	}
	return out, nil
}

func (r *SettlementRepo) PeriodSpend(_ context.Context, kind entity.PartyKind, partyID string, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.S.Payments {
		if p.PartyKind != kind || p.PartyID != partyID {
			continue
		}
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		total = total.Add(p.Amount)
	}
	return total, nil
}
