package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/inventory/movements.
// Para ADJUSTMENT, quantity es el delta con signo.
type RecordMovementRequest struct {
	VariantID     string           `json:"variant_id" validate:"required"`
	Type          string           `json:"type" validate:"required"`
	Quantity      int              `json:"quantity"`
	Reason        string           `json:"reason" validate:"max=255"`
	Notes         string           `json:"notes" validate:"max=1000"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty" validate:"max=50"`
	ReferenceID   string           `json:"reference_id,omitempty" validate:"max=100"`
}

// VariantResponse variante con nombres de producto, color y talla.
type VariantResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	ColorName   string `json:"color_name,omitempty"`
	SizeName    string `json:"size_name,omitempty"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	Active      bool   `json:"active"`
}

// StockMovementResponse entrada del libro de stock.
type StockMovementResponse struct {
	ID            string           `json:"id"`
	VariantID     string           `json:"variant_id"`
	Type          string           `json:"type"`
	Quantity      int              `json:"quantity"`
	PreviousStock int              `json:"previous_stock"`
	NewStock      int              `json:"new_stock"`
	Reason        string           `json:"reason,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	CreatedBy     string           `json:"created_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	Variant       *VariantResponse `json:"variant,omitempty"`
}

// BulkAdjustmentRequest body para POST /api/inventory/adjustments/bulk.
type BulkAdjustmentRequest struct {
	Reason string               `json:"reason" validate:"max=255"`
	Items  []BulkAdjustmentItem `json:"items" validate:"required,min=1,max=2000,dive"`
}

// BulkAdjustmentItem stock contado de una variante.
type BulkAdjustmentItem struct {
	VariantID string `json:"variant_id" validate:"required"`
	NewStock  int    `json:"new_stock"`
	Reason    string `json:"reason" validate:"max=255"`
}

// BulkAdjustmentResult resultado por ítem.
type BulkAdjustmentResult struct {
	VariantID     string `json:"variant_id"`
	Status        string `json:"status"` // ADJUSTED | UNCHANGED | FAILED
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	MovementID    string `json:"movement_id,omitempty"`
	Code          string `json:"code,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BulkAdjustmentResponse resumen y resultados en el orden de entrada.
type BulkAdjustmentResponse struct {
	Adjusted  int                    `json:"adjusted"`
	Unchanged int                    `json:"unchanged"`
	Failed    int                    `json:"failed"`
	Results   []BulkAdjustmentResult `json:"results"`
}

// LowStockItemResponse variante a reponer.
type LowStockItemResponse struct {
	Variant      VariantResponse `json:"variant"`
	Deficit      int             `json:"deficit"`
	SuggestedQty int             `json:"suggested_qty"` // (MinStock * 1.5) - Stock
	Priority     int             `json:"priority"`      // 1 = más urgente
}

// InputBatchResponse lote de insumo.
type InputBatchResponse struct {
	ID              string          `json:"id"`
	InputID         string          `json:"input_id"`
	PurchaseOrderID string          `json:"purchase_order_id,omitempty"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	PurchaseDate    time.Time       `json:"purchase_date"`
	Active          bool            `json:"active"`
}
