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

// StockLedger es el único camino para modificar Variant.Stock: cada cambio escribe el nuevo
// stock y su movimiento inmutable en la misma transacción.
type StockLedger struct {
	txRunner  TxRunner
	variants  repository.VariantRepository
	movements repository.StockMovementRepository
	now       func() time.Time
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(
	txRunner TxRunner,
	variants repository.VariantRepository,
	movements repository.StockMovementRepository,
) *StockLedger {
	return &StockLedger{
		txRunner:  txRunner,
		variants:  variants,
		movements: movements,
		now:       time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// Para ADJUSTMENT, Quantity es el delta con signo (objetivo - actual).
type MovementInput struct {
	VariantID     string
	Kind          entity.MovementKind
	Quantity      int
	Reason        string
	Notes         string
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	UserID        string
}

// RecordMovement valida la variante y el tipo, abre una transacción, bloquea la fila de la variante
// (SELECT FOR UPDATE), aplica la política de movimientos, persiste stock + movimiento y hace Commit.
func (l *StockLedger) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if !inventory.ValidKind(input.Kind) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMovementKind, input.Kind)
	}
	variant, err := l.variants.GetByID(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVariantNotFound, input.VariantID)
	}

	var mov *entity.StockMovement
	err = l.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		mov, err = l.RecordMovementInTx(ctx, repos, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Lectura para mostrar: variante con producto/color/talla ya actualizada.
	if v, err := l.variants.GetByID(ctx, input.VariantID); err == nil && v != nil {
		mov.Variant = v
	}
	return mov, nil
}

// RecordMovementInTx registra el movimiento usando los repositorios de la transacción del caller.
// Lo usa la recepción de órdenes de compra para que toda la recepción sea atómica.
func (l *StockLedger) RecordMovementInTx(ctx context.Context, repos repository.TxRepositories, input MovementInput) (*entity.StockMovement, error) {
	variant, err := repos.Variants.GetForUpdate(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVariantNotFound, input.VariantID)
	}
	_, next, err := inventory.Apply(variant.ID, variant.Stock, input.Kind, input.Quantity)
	if err != nil {
		return nil, err
	}

	if err := repos.Variants.UpdateStock(ctx, variant.ID, next); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		VariantID:     variant.ID,
		Kind:          input.Kind,
		Quantity:      input.Quantity,
		PreviousStock: variant.Stock,
		NewStock:      next,
		Reason:        input.Reason,
		Notes:         input.Notes,
		UnitCost:      input.UnitCost,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		CreatedBy:     input.UserID,
		CreatedAt:     l.now(),
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// AdjustTo lleva el stock de la variante al objetivo con un movimiento ADJUSTMENT, calculando
// el delta dentro de la transacción. Si el stock ya es el objetivo no escribe nada y devuelve mov nil.
func (l *StockLedger) AdjustTo(ctx context.Context, variantID string, target int, reason, userID string) (mov *entity.StockMovement, previous int, err error) {
	err = l.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		variant, err := repos.Variants.GetForUpdate(ctx, variantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return fmt.Errorf("%w: %s", domain.ErrVariantNotFound, variantID)
		}
		previous = variant.Stock
		if target == variant.Stock {
			return nil
		}
		mov, err = l.RecordMovementInTx(ctx, repos, MovementInput{
			VariantID: variantID,
			Kind:      entity.MovementAdjustment,
			Quantity:  target - variant.Stock,
			Reason:    reason,
			UserID:    userID,
		})
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	if mov != nil {
		if v, err := l.variants.GetByID(ctx, variantID); err == nil && v != nil {
			mov.Variant = v
		}
	}
	return mov, previous, nil
}

// History lista los movimientos de una variante, del más reciente al más antiguo.
func (l *StockLedger) History(ctx context.Context, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	variant, err := l.variants.GetByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVariantNotFound, variantID)
	}
	return l.movements.ListByVariant(ctx, variantID, limit, offset)
}
