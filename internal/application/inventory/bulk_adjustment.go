package inventory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// Estados del resultado por ítem de un ajuste masivo.
const (
	AdjustmentApplied   = "ADJUSTED"
	AdjustmentUnchanged = "UNCHANGED"
	AdjustmentFailed    = "FAILED"
)

// AdjustmentItem fila de un conteo físico: stock objetivo de una variante.
type AdjustmentItem struct {
	VariantID string
	NewStock  int
	Reason    string
}

// AdjustmentResult resultado de un ítem. Err queda en el resultado, nunca se propaga.
type AdjustmentResult struct {
	VariantID     string
	Status        string
	PreviousStock int
	NewStock      int
	Movement      *entity.StockMovement
	Err           error
}

// BulkAdjustmentUseCase concilia un conteo de stock: cada ítem se procesa de forma independiente
// (sin transacción compartida); el fallo de uno no afecta a los demás.
type BulkAdjustmentUseCase struct {
	ledger  *StockLedger
	workers int
	log     *logger.Logger
}

// NewBulkAdjustmentUseCase construye el procesador. workers <= 0 procesa en serie.
func NewBulkAdjustmentUseCase(ledger *StockLedger, workers int, log *logger.Logger) *BulkAdjustmentUseCase {
	if workers <= 0 {
		workers = 1
	}
	return &BulkAdjustmentUseCase{ledger: ledger, workers: workers, log: log}
}

// Apply procesa los ítems en paralelo (hasta workers a la vez) y devuelve un resultado por ítem,
// en el mismo orden de entrada. Los ítems de una misma variante se aplican en serie y en orden.
func (uc *BulkAdjustmentUseCase) Apply(ctx context.Context, items []AdjustmentItem, userID string) []AdjustmentResult {
	results := make([]AdjustmentResult, len(items))

	groups := make(map[string][]int)
	var order []string
	for i, it := range items {
		if _, ok := groups[it.VariantID]; !ok {
			order = append(order, it.VariantID)
		}
		groups[it.VariantID] = append(groups[it.VariantID], i)
	}

	var g errgroup.Group
	g.SetLimit(uc.workers)
	for _, variantID := range order {
		idxs := groups[variantID]
		g.Go(func() error {
			for _, i := range idxs {
				results[i] = uc.applyOne(ctx, items[i], userID)
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Status == AdjustmentFailed {
			failed++
			uc.log.Warn().Str("variant_id", r.VariantID).Err(r.Err).Msg("ajuste masivo: ítem rechazado")
		}
	}
	uc.log.Info().Int("items", len(items)).Int("failed", failed).Str("user_id", userID).Msg("ajuste masivo procesado")
	return results
}

func (uc *BulkAdjustmentUseCase) applyOne(ctx context.Context, item AdjustmentItem, userID string) AdjustmentResult {
	res := AdjustmentResult{VariantID: item.VariantID, NewStock: item.NewStock}

	reason := item.Reason
	if reason == "" {
		reason = "Ajuste por conteo de inventario"
	}
	mov, previous, err := uc.ledger.AdjustTo(ctx, item.VariantID, item.NewStock, reason, userID)
	if err != nil {
		res.Status, res.Err = AdjustmentFailed, err
		return res
	}
	res.PreviousStock = previous
	if mov == nil {
		res.Status = AdjustmentUnchanged
		return res
	}
	res.Status = AdjustmentApplied
	res.NewStock = mov.NewStock
	res.Movement = mov
	return res
}
