package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Input es un insumo (materia prima) consumido en producción.
// Stock es el agregado; si el insumo tiene variantes, es la suma de las variantes activas.
type Input struct {
	ID        string
	Name      string
	Unit      string
	Stock     decimal.Decimal
	UnitCost  decimal.Decimal // costo promedio ponderado
	Active    bool
	UpdatedAt time.Time
}

// InputVariant es una variante de color/talla de un insumo con stock propio.
type InputVariant struct {
	ID        string
	InputID   string
	ColorName string
	SizeName  string
	Stock     decimal.Decimal
	Active    bool
	UpdatedAt time.Time
}

// InputBatch es un lote de insumo con costo trazable.
type InputBatch struct {
	ID              string
	InputID         string
	PurchaseOrderID string
	InitialQuantity decimal.Decimal
	CurrentQuantity decimal.Decimal
	UnitCost        decimal.Decimal
	TotalCost       decimal.Decimal
	PurchaseDate    time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Add suma cantidad recibida al lote.
func (b *InputBatch) Add(qty decimal.Decimal, unitCost decimal.Decimal, now time.Time) {
	b.CurrentQuantity = b.CurrentQuantity.Add(qty)
	b.TotalCost = b.TotalCost.Add(qty.Mul(unitCost))
	b.UpdatedAt = now
}

// Tipos de movimiento de lotes e insumos.
const (
	InputMovementEntry = "ENTRADA"
	InputMovementExit  = "SALIDA"
)

// InputBatchMovement registra un cambio en un lote de insumo.
type InputBatchMovement struct {
	ID              string
	BatchID         string
	InputID         string
	Kind            string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	PurchaseOrderID string
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
}

// InputVariantMovement registra un cambio de stock en una variante de insumo.
type InputVariantMovement struct {
	ID              string
	InputVariantID  string
	Kind            string
	Quantity        decimal.Decimal
	PreviousStock   decimal.Decimal
	NewStock        decimal.Decimal
	PurchaseOrderID string
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
}
