package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BatchTracker registra entradas de insumos: stock agregado, lote con costo y movimiento de lote.
// Reutiliza el lote activo más reciente del insumo en vez de abrir un lote por recepción.
type BatchTracker struct {
	batches repository.InputBatchRepository
	now     func() time.Time
}

// NewBatchTracker construye el tracker.
func NewBatchTracker(batches repository.InputBatchRepository) *BatchTracker {
	return &BatchTracker{batches: batches, now: time.Now}
}

// InputReceipt entrada de un insumo proveniente de una OC.
type InputReceipt struct {
	InputID         string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	PurchaseOrderID string
	Notes           string
	UserID          string
}

// InputVariantReceipt entrada de una variante de insumo (color/talla).
type InputVariantReceipt struct {
	InputVariantID  string
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	PurchaseOrderID string
	Notes           string
	UserID          string
}

// ReceiveInputInTx suma la cantidad al insumo, abre o extiende su lote activo y escribe
// exactamente un movimiento ENTRADA de lote.
func (t *BatchTracker) ReceiveInputInTx(ctx context.Context, repos repository.TxRepositories, in InputReceipt) (*entity.InputBatch, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: cantidad de insumo debe ser positiva", domain.ErrInvalidInput)
	}
	input, err := repos.Inputs.GetForUpdate(ctx, in.InputID)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, fmt.Errorf("%w: insumo %s", domain.ErrSupplierOrInputNotFound, in.InputID)
	}
	now := t.now()

	cost := inventory.WeightedAverageCost(input.Stock, input.UnitCost, in.Quantity, in.UnitCost)
	if err := repos.Inputs.UpdateStock(ctx, input.ID, input.Stock.Add(in.Quantity), cost); err != nil {
		return nil, err
	}

	batch, err := repos.Batches.FindLatestActive(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		batch = &entity.InputBatch{
			ID:              uuid.New().String(),
			InputID:         input.ID,
			PurchaseOrderID: in.PurchaseOrderID,
			InitialQuantity: in.Quantity,
			CurrentQuantity: in.Quantity,
			UnitCost:        in.UnitCost,
			TotalCost:       in.UnitCost.Mul(in.Quantity),
			PurchaseDate:    now,
			Active:          true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repos.Batches.Create(ctx, batch); err != nil {
			return nil, err
		}
	} else {
		batch.Add(in.Quantity, in.UnitCost, now)
		if err := repos.Batches.Update(ctx, batch); err != nil {
			return nil, err
		}
	}

	mov := &entity.InputBatchMovement{
		ID:              uuid.New().String(),
		BatchID:         batch.ID,
		InputID:         input.ID,
		Kind:            entity.InputMovementEntry,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		PurchaseOrderID: in.PurchaseOrderID,
		Notes:           in.Notes,
		CreatedBy:       in.UserID,
		CreatedAt:       now,
	}
	if err := repos.Batches.CreateMovement(ctx, mov); err != nil {
		return nil, err
	}
	return batch, nil
}

// ReceiveInputVariantInTx suma la cantidad a la variante de insumo con snapshots antes/después,
// y recalcula el stock del insumo padre como la suma de sus variantes activas.
func (t *BatchTracker) ReceiveInputVariantInTx(ctx context.Context, repos repository.TxRepositories, in InputVariantReceipt) (*entity.InputVariant, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: cantidad de insumo debe ser positiva", domain.ErrInvalidInput)
	}
	// Orden de bloqueo: insumo padre y luego variante, igual que una línea de insumo.
	ref, err := repos.InputVariants.GetByID(ctx, in.InputVariantID)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, fmt.Errorf("%w: variante de insumo %s", domain.ErrSupplierOrInputNotFound, in.InputVariantID)
	}
	parent, err := repos.Inputs.GetForUpdate(ctx, ref.InputID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("%w: insumo %s", domain.ErrSupplierOrInputNotFound, ref.InputID)
	}
	iv, err := repos.InputVariants.GetForUpdate(ctx, in.InputVariantID)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, fmt.Errorf("%w: variante de insumo %s", domain.ErrSupplierOrInputNotFound, in.InputVariantID)
	}
	now := t.now()

	prev := iv.Stock
	next := prev.Add(in.Quantity)
	if err := repos.InputVariants.UpdateStock(ctx, iv.ID, next); err != nil {
		return nil, err
	}
	if err := repos.InputVariants.CreateMovement(ctx, &entity.InputVariantMovement{
		ID:              uuid.New().String(),
		InputVariantID:  iv.ID,
		Kind:            entity.InputMovementEntry,
		Quantity:        in.Quantity,
		PreviousStock:   prev,
		NewStock:        next,
		PurchaseOrderID: in.PurchaseOrderID,
		Notes:           in.Notes,
		CreatedBy:       in.UserID,
		CreatedAt:       now,
	}); err != nil {
		return nil, err
	}

	total, err := repos.InputVariants.SumActiveStock(ctx, parent.ID)
	if err != nil {
		return nil, err
	}
	cost := inventory.WeightedAverageCost(parent.Stock, parent.UnitCost, in.Quantity, in.UnitCost)
	if err := repos.Inputs.UpdateStock(ctx, parent.ID, total, cost); err != nil {
		return nil, err
	}

	iv.Stock = next
	iv.UpdatedAt = now
	return iv, nil
}

// Batches lista los lotes de un insumo, del más reciente al más antiguo.
func (t *BatchTracker) Batches(ctx context.Context, inputID string, limit, offset int) ([]*entity.InputBatch, error) {
	return t.batches.ListByInput(ctx, inputID, limit, offset)
}
