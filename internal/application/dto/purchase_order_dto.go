package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderRequest body de creación y edición de una orden de compra.
type PurchaseOrderRequest struct {
	SupplierID   string                     `json:"supplier_id" validate:"required"`
	ExpectedDate *time.Time                 `json:"expected_date,omitempty"`
	Notes        string                     `json:"notes" validate:"max=2000"`
	InvoiceRef   string                     `json:"invoice_ref" validate:"max=100"`
	Items        []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseOrderItemRequest línea de la orden: exactamente uno de variant_id, input_id o input_variant_id.
type PurchaseOrderItemRequest struct {
	VariantID      string          `json:"variant_id,omitempty"`
	InputID        string          `json:"input_id,omitempty"`
	InputVariantID string          `json:"input_variant_id,omitempty"`
	Description    string          `json:"description" validate:"max=255"`
	Quantity       int             `json:"quantity" validate:"gt=0"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
}

// TransitionRequest body de PATCH /api/purchase-orders/:id/status.
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT SENT CONFIRMED PARTIAL RECEIVED CANCELLED"`
}

// ReceiveRequest body de POST /api/purchase-orders/:id/receive.
type ReceiveRequest struct {
	Items []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReceiveItemRequest cantidad recibida de un ítem.
type ReceiveItemRequest struct {
	ItemID           string `json:"item_id" validate:"required"`
	QuantityReceived int    `json:"quantity_received" validate:"gte=0"`
}

// SupplierResponse proveedor de la orden.
type SupplierResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PurchaseOrderItemResponse línea de la orden con su destino.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	TargetType       string          `json:"target_type"` // variant | input | input_variant
	TargetID         string          `json:"target_id"`
	TargetName       string          `json:"target_name,omitempty"`
	Description      string          `json:"description,omitempty"`
	Quantity         int             `json:"quantity"`
	QuantityReceived int             `json:"quantity_received"`
	Pending          int             `json:"pending"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden de compra.
type PurchaseOrderResponse struct {
	ID             string                      `json:"id"`
	OrderNumber    string                      `json:"order_number"`
	Status         string                      `json:"status"`
	AllowedTargets []string                    `json:"allowed_transitions"`
	Supplier       *SupplierResponse           `json:"supplier,omitempty"`
	SupplierID     string                      `json:"supplier_id"`
	Subtotal       decimal.Decimal             `json:"subtotal"`
	Total          decimal.Decimal             `json:"total"`
	ExpectedDate   *time.Time                  `json:"expected_date,omitempty"`
	ReceivedDate   *time.Time                  `json:"received_date,omitempty"`
	Notes          string                      `json:"notes,omitempty"`
	InvoiceRef     string                      `json:"invoice_ref,omitempty"`
	CreatedBy      string                      `json:"created_by,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	Items          []PurchaseOrderItemResponse `json:"items,omitempty"`
}
