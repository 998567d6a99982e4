package entity

import "time"

// PartyKind distingue clientes de proveedores en consultas de saldo y pagos.
type PartyKind string

const (
	PartyClient   PartyKind = "client"
	PartySupplier PartyKind = "supplier"
)

// Valid reporta si el kind es uno de los dos soportados.
func (k PartyKind) Valid() bool {
	return k == PartyClient || k == PartySupplier
}

// Client es un cliente de la agencia.
type Client struct {
	ID        string
	Name      string
	TaxID     string // NIT / CC
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier es un proveedor de mercancía.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
