package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus estado del ciclo de vida de una orden de compra (OC).
type PurchaseOrderStatus string

// Estados persistidos (valores exactos en BD).
const (
	StatusDraft     PurchaseOrderStatus = "DRAFT"
	StatusSent      PurchaseOrderStatus = "SENT"
	StatusConfirmed PurchaseOrderStatus = "CONFIRMED"
	StatusPartial   PurchaseOrderStatus = "PARTIAL"
	StatusReceived  PurchaseOrderStatus = "RECEIVED"
	StatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// PurchaseOrder documento de compra a un proveedor.
type PurchaseOrder struct {
	ID           string
	OrderNumber  string // OC-YYYY-NNNN
	SupplierID   string
	Status       PurchaseOrderStatus
	Subtotal     decimal.Decimal
	Total        decimal.Decimal
	ExpectedDate *time.Time
	ReceivedDate *time.Time
	Notes        string
	InvoiceRef   string // factura del proveedor
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []PurchaseOrderItem
	Supplier     *Supplier // solo lectura (join)
}

// RecomputeTotals recalcula subtotales de ítems y totales de la orden.
func (o *PurchaseOrder) RecomputeTotals() {
	subtotal := decimal.Zero
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].UnitCost.Mul(decimal.NewFromInt(int64(o.Items[i].Quantity)))
		subtotal = subtotal.Add(o.Items[i].Subtotal)
	}
	o.Subtotal = subtotal
	o.Total = subtotal
}

// ItemByID busca un ítem de la orden.
func (o *PurchaseOrder) ItemByID(itemID string) *PurchaseOrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// TargetKind tipo de destino de una línea de OC.
type TargetKind string

const (
	TargetVariant      TargetKind = "variant"
	TargetInput        TargetKind = "input"
	TargetInputVariant TargetKind = "input_variant"
)

// LineTarget destino de una línea: exactamente una variante, un insumo o una variante de insumo.
type LineTarget struct {
	Kind TargetKind
	ID   string
}

// VariantTarget línea de variante vendible.
func VariantTarget(id string) LineTarget { return LineTarget{Kind: TargetVariant, ID: id} }

// InputTarget línea de insumo.
func InputTarget(id string) LineTarget { return LineTarget{Kind: TargetInput, ID: id} }

// InputVariantTarget línea de variante de insumo.
func InputVariantTarget(id string) LineTarget { return LineTarget{Kind: TargetInputVariant, ID: id} }

// Valid indica si el destino tiene un tipo conocido y un ID.
func (t LineTarget) Valid() bool {
	switch t.Kind {
	case TargetVariant, TargetInput, TargetInputVariant:
		return t.ID != ""
	}
	return false
}

// PurchaseOrderItem línea ordenada de una OC.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	Target           LineTarget
	Description      string
	Quantity         int
	UnitCost         decimal.Decimal
	Subtotal         decimal.Decimal
	QuantityReceived int

	Variant      *Variant      // solo lectura (join)
	Input        *Input        // solo lectura (join)
	InputVariant *InputVariant // solo lectura (join)
}

// Pending cantidad aún por recibir.
func (i *PurchaseOrderItem) Pending() int {
	if i.QuantityReceived >= i.Quantity {
		return 0
	}
	return i.Quantity - i.QuantityReceived
}
