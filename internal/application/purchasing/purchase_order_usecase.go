package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	domainpo "github.com/jhoicas/retail-backoffice/internal/domain/purchasing"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// PurchaseOrderUseCase ciclo de vida de órdenes de compra: creación con numeración OC-YYYY-NNNN,
// edición y borrado en DRAFT/CANCELLED y transiciones de estado según la tabla.
type PurchaseOrderUseCase struct {
	txRunner appinventory.TxRunner
	orders   repository.PurchaseOrderRepository
	retries  int
	log      *logger.Logger
	now      func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso. retries es el número de reintentos ante
// colisión del número de orden (violación de unicidad).
func NewPurchaseOrderUseCase(txRunner appinventory.TxRunner, orders repository.PurchaseOrderRepository, retries int, log *logger.Logger) *PurchaseOrderUseCase {
	if retries < 0 {
		retries = 0
	}
	return &PurchaseOrderUseCase{txRunner: txRunner, orders: orders, retries: retries, log: log, now: time.Now}
}

// ItemInput línea de una orden. Target debe apuntar a exactamente un destino.
type ItemInput struct {
	Target      entity.LineTarget
	Description string
	Quantity    int
	UnitCost    decimal.Decimal
}

// OrderInput datos de creación o edición completa de una orden.
type OrderInput struct {
	SupplierID   string
	ExpectedDate *time.Time
	Notes        string
	InvoiceRef   string
	Items        []ItemInput
	UserID       string
}

// Create valida proveedor y destinos, genera el número y persiste la orden en DRAFT.
// La numeración se serializa por prefijo dentro de la transacción; ante colisión se reintenta.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in OrderInput) (*entity.PurchaseOrder, error) {
	var order *entity.PurchaseOrder
	var err error
	for attempt := 0; attempt <= uc.retries; attempt++ {
		order, err = uc.createOnce(ctx, in)
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
		uc.log.Warn().Int("attempt", attempt+1).Msg("número de orden duplicado, reintentando")
	}
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Int("items", len(order.Items)).
		Msg("orden de compra creada")
	return uc.GetByID(ctx, order.ID)
}

func (uc *PurchaseOrderUseCase) createOnce(ctx context.Context, in OrderInput) (*entity.PurchaseOrder, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		items, err := buildItems(ctx, repos, in)
		if err != nil {
			return err
		}
		now := uc.now()
		prefix := domainpo.OrderNumberPrefix(now.Year())
		if err := repos.PurchaseOrders.LockOrderNumbers(ctx, prefix); err != nil {
			return err
		}
		last, err := repos.PurchaseOrders.LastOrderNumber(ctx, prefix)
		if err != nil {
			return err
		}
		order = &entity.PurchaseOrder{
			ID:           uuid.New().String(),
			OrderNumber:  domainpo.NextOrderNumber(now.Year(), last),
			SupplierID:   in.SupplierID,
			Status:       entity.StatusDraft,
			ExpectedDate: in.ExpectedDate,
			Notes:        in.Notes,
			InvoiceRef:   in.InvoiceRef,
			CreatedBy:    in.UserID,
			CreatedAt:    now,
			UpdatedAt:    now,
			Items:        items,
		}
		for i := range order.Items {
			order.Items[i].PurchaseOrderID = order.ID
		}
		order.RecomputeTotals()
		return repos.PurchaseOrders.Create(ctx, order)
	})
	return order, err
}

// Update reemplaza cabecera e ítems de una orden en DRAFT o CANCELLED y recalcula totales.
func (uc *PurchaseOrderUseCase) Update(ctx context.Context, id string, in OrderInput) (*entity.PurchaseOrder, error) {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		order, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
		}
		if !domainpo.IsEditable(order.Status) {
			return fmt.Errorf("%w: orden %s en estado %s", domain.ErrOrderNotEditable, id, order.Status)
		}
		items, err := buildItems(ctx, repos, in)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].PurchaseOrderID = order.ID
		}
		order.SupplierID = in.SupplierID
		order.ExpectedDate = in.ExpectedDate
		order.Notes = in.Notes
		order.InvoiceRef = in.InvoiceRef
		order.Items = items
		order.UpdatedAt = uc.now()
		order.RecomputeTotals()
		if err := repos.PurchaseOrders.ReplaceItems(ctx, order.ID, order.Items); err != nil {
			return err
		}
		return repos.PurchaseOrders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina una orden en DRAFT o CANCELLED junto con sus ítems.
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		order, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
		}
		if !domainpo.IsDeletable(order.Status) {
			return fmt.Errorf("%w: orden %s en estado %s", domain.ErrOrderNotDeletable, id, order.Status)
		}
		return repos.PurchaseOrders.Delete(ctx, id)
	})
}

// Transition cambia el estado de la orden según la tabla de transiciones.
func (uc *PurchaseOrderUseCase) Transition(ctx context.Context, id string, target entity.PurchaseOrderStatus) (*entity.PurchaseOrder, error) {
	if !domainpo.ValidStatus(target) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, target)
	}
	var from entity.PurchaseOrderStatus
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		order, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
		}
		from = order.Status
		if err := domainpo.Transition(order, target, uc.now); err != nil {
			return err
		}
		return repos.PurchaseOrders.UpdateStatus(ctx, order.ID, order.Status, order.ReceivedDate)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", id).Str("from", string(from)).Str("to", string(target)).Msg("estado de orden actualizado")
	return uc.GetByID(ctx, id)
}

// GetByID carga la orden con ítems y referencias.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return order, nil
}

// List lista órdenes con filtros opcionales de estado y proveedor.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, filter repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	if filter.Status != "" && !domainpo.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, filter.Status)
	}
	return uc.orders.List(ctx, filter)
}

// buildItems valida proveedor y cada línea y construye los ítems con subtotal.
func buildItems(ctx context.Context, repos repository.TxRepositories, in OrderInput) ([]entity.PurchaseOrderItem, error) {
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: proveedor e ítems son obligatorios", domain.ErrInvalidInput)
	}
	supplier, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrSupplierOrInputNotFound, in.SupplierID)
	}

	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	for i, line := range in.Items {
		if !line.Target.Valid() {
			return nil, fmt.Errorf("%w: línea %d sin destino válido", domain.ErrInvalidInput, i+1)
		}
		if line.Quantity <= 0 || line.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d con cantidad o costo inválido", domain.ErrInvalidInput, i+1)
		}
		if err := checkTarget(ctx, repos, line.Target); err != nil {
			return nil, err
		}
		items = append(items, entity.PurchaseOrderItem{
			ID:          uuid.New().String(),
			Target:      line.Target,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
		})
	}
	return items, nil
}

func checkTarget(ctx context.Context, repos repository.TxRepositories, target entity.LineTarget) error {
	switch target.Kind {
	case entity.TargetVariant:
		v, err := repos.Variants.GetByID(ctx, target.ID)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: %s", domain.ErrVariantNotFound, target.ID)
		}
	case entity.TargetInput:
		in, err := repos.Inputs.GetByID(ctx, target.ID)
		if err != nil {
			return err
		}
		if in == nil {
			return fmt.Errorf("%w: insumo %s", domain.ErrSupplierOrInputNotFound, target.ID)
		}
	case entity.TargetInputVariant:
		iv, err := repos.InputVariants.GetByID(ctx, target.ID)
		if err != nil {
			return err
		}
		if iv == nil {
			return fmt.Errorf("%w: variante de insumo %s", domain.ErrSupplierOrInputNotFound, target.ID)
		}
	}
	return nil
}
