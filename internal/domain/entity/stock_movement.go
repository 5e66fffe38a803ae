package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento del libro de stock.
type MovementKind string

// Tipos de movimiento persistidos (valores exactos en BD).
const (
	MovementPurchase    MovementKind = "PURCHASE"
	MovementSale        MovementKind = "SALE"
	MovementAdjustment  MovementKind = "ADJUSTMENT"
	MovementTransferIn  MovementKind = "TRANSFER_IN"
	MovementTransferOut MovementKind = "TRANSFER_OUT"
	MovementReturn      MovementKind = "RETURN"
	MovementDamage      MovementKind = "DAMAGE"
	MovementInitial     MovementKind = "INITIAL"
)

// Tipos de referencia que enlazan un movimiento con su documento de origen.
const (
	ReferencePurchaseOrder = "purchase_order"
	ReferenceSale          = "sale"
)

// StockMovement es una entrada inmutable del libro de stock de una variante.
// Invariante: NewStock == PreviousStock + delta(Kind, Quantity).
type StockMovement struct {
	ID            string
	VariantID     string
	Kind          MovementKind
	Quantity      int // no negativo excepto ADJUSTMENT, que lleva el delta con signo
	PreviousStock int
	NewStock      int
	Reason        string
	Notes         string
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	CreatedBy     string // vacío = sin usuario
	CreatedAt     time.Time

	Variant *Variant // solo lectura (join para mostrar)
}

// Delta devuelve el cambio aplicado al stock.
func (m *StockMovement) Delta() int {
	return m.NewStock - m.PreviousStock
}
