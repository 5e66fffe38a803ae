package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	domainpo "github.com/jhoicas/retail-backoffice/internal/domain/purchasing"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// ReceiveLine cantidad recibida de un ítem de la orden.
type ReceiveLine struct {
	ItemID           string
	QuantityReceived int
}

// ReceivingUseCase aplica recepciones (parciales o totales) contra una OC: incrementa stock de
// variantes vía el libro de stock, de insumos vía el tracker de lotes y recalcula el estado.
// Toda la recepción corre en una transacción que bloquea la orden: si una línea falla, no se
// aplica ninguna, y dos recepciones de la misma orden no leen cantidades recibidas viejas.
type ReceivingUseCase struct {
	txRunner appinventory.TxRunner
	ledger   *appinventory.StockLedger
	batches  *appinventory.BatchTracker
	orders   repository.PurchaseOrderRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewReceivingUseCase construye el procesador de recepciones.
func NewReceivingUseCase(
	txRunner appinventory.TxRunner,
	ledger *appinventory.StockLedger,
	batches *appinventory.BatchTracker,
	orders repository.PurchaseOrderRepository,
	log *logger.Logger,
) *ReceivingUseCase {
	return &ReceivingUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		batches:  batches,
		orders:   orders,
		log:      log,
		now:      time.Now,
	}
}

// Receive registra la recepción y devuelve la orden recargada.
// Líneas con ítems ajenos a la orden se ignoran; líneas en cero no generan movimientos.
func (uc *ReceivingUseCase) Receive(ctx context.Context, orderID string, lines []ReceiveLine, userID string) (*entity.PurchaseOrder, error) {
	var (
		number  string
		applied int
		from    entity.PurchaseOrderStatus
		to      entity.PurchaseOrderStatus
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		order, err := repos.PurchaseOrders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		}
		if !domainpo.IsReceivable(order.Status) {
			return fmt.Errorf("%w: orden %s en estado %s", domain.ErrOrderNotReceivable, orderID, order.Status)
		}
		number, from = order.OrderNumber, order.Status

		for _, line := range lines {
			item := order.ItemByID(line.ItemID)
			if item == nil {
				continue
			}
			if line.QuantityReceived < 0 {
				return fmt.Errorf("%w: cantidad recibida negativa en ítem %s", domain.ErrInvalidInput, line.ItemID)
			}
			if line.QuantityReceived == 0 {
				continue
			}
			newReceived := item.QuantityReceived + line.QuantityReceived
			if newReceived > item.Quantity {
				return &domain.OverReceiptError{
					OrderID:         order.ID,
					ItemID:          item.ID,
					Ordered:         item.Quantity,
					AlreadyReceived: item.QuantityReceived,
					Attempted:       line.QuantityReceived,
				}
			}
			if err := repos.PurchaseOrders.UpdateItemReceived(ctx, item.ID, newReceived); err != nil {
				return err
			}
			item.QuantityReceived = newReceived
			if err := uc.dispatch(ctx, repos, order, item, line.QuantityReceived, userID); err != nil {
				return err
			}
			applied++
		}

		reloaded, err := repos.PurchaseOrders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		to = domainpo.DeriveReceivingStatus(reloaded.Status, reloaded.Items)
		if to == reloaded.Status {
			return nil
		}
		if err := domainpo.Transition(reloaded, to, uc.now); err != nil {
			return err
		}
		return repos.PurchaseOrders.UpdateStatus(ctx, reloaded.ID, reloaded.Status, reloaded.ReceivedDate)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("order_number", number).
		Int("lines_applied", applied).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("user_id", userID).
		Msg("recepción de orden de compra aplicada")

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	return order, nil
}

// dispatch aplica la cantidad recibida según el destino de la línea.
func (uc *ReceivingUseCase) dispatch(ctx context.Context, repos repository.TxRepositories, order *entity.PurchaseOrder, item *entity.PurchaseOrderItem, qty int, userID string) error {
	note := fmt.Sprintf("Recepción de OC %s", order.OrderNumber)
	switch item.Target.Kind {
	case entity.TargetVariant:
		unitCost := item.UnitCost
		_, err := uc.ledger.RecordMovementInTx(ctx, repos, appinventory.MovementInput{
			VariantID:     item.Target.ID,
			Kind:          entity.MovementPurchase,
			Quantity:      qty,
			Reason:        note,
			UnitCost:      &unitCost,
			ReferenceType: entity.ReferencePurchaseOrder,
			ReferenceID:   order.ID,
			UserID:        userID,
		})
		return err
	case entity.TargetInput:
		_, err := uc.batches.ReceiveInputInTx(ctx, repos, appinventory.InputReceipt{
			InputID:         item.Target.ID,
			Quantity:        decimal.NewFromInt(int64(qty)),
			UnitCost:        item.UnitCost,
			PurchaseOrderID: order.ID,
			Notes:           note,
			UserID:          userID,
		})
		return err
	case entity.TargetInputVariant:
		_, err := uc.batches.ReceiveInputVariantInTx(ctx, repos, appinventory.InputVariantReceipt{
			InputVariantID:  item.Target.ID,
			Quantity:        decimal.NewFromInt(int64(qty)),
			UnitCost:        item.UnitCost,
			PurchaseOrderID: order.ID,
			Notes:           note,
			UserID:          userID,
		})
		return err
	}
	return fmt.Errorf("%w: ítem %s sin destino", domain.ErrInvalidInput, item.ID)
}
