package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// PurchaseOrderFilter filtros de listado.
type PurchaseOrderFilter struct {
	Status     entity.PurchaseOrderStatus
	SupplierID string
	Limit      int
	Offset     int
}

// PurchaseOrderRepository puerto de persistencia para órdenes de compra y sus ítems.
type PurchaseOrderRepository interface {
	// Create inserta la orden y sus ítems. ErrDuplicate si el número ya existe.
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID carga la orden con ítems y referencias; nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera hasta el fin de la transacción y carga la orden
	// con ítems leídos después del bloqueo. nil, nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, filter PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)
	// Update persiste cabecera y totales (no ítems).
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	ReplaceItems(ctx context.Context, orderID string, items []entity.PurchaseOrderItem) error
	UpdateItemReceived(ctx context.Context, itemID string, quantityReceived int) error
	UpdateStatus(ctx context.Context, id string, status entity.PurchaseOrderStatus, receivedDate *time.Time) error
	Delete(ctx context.Context, id string) error
	// LockOrderNumbers serializa la numeración de un prefijo hasta el fin de la transacción.
	LockOrderNumbers(ctx context.Context, prefix string) error
	// LastOrderNumber último número con el prefijo, vacío si no hay.
	LastOrderNumber(ctx context.Context, prefix string) (string, error)
}
