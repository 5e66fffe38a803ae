package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct{ s *Store }

func (r *PurchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.orders {
		if existing.OrderNumber == o.OrderNumber {
			return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, o.OrderNumber)
		}
	}
	header := *o
	header.Items = nil
	header.Supplier = nil
	r.s.data.orders[o.ID] = header
	for _, it := range o.Items {
		it.PurchaseOrderID = o.ID
		r.s.data.items = append(r.s.data.items, stripItem(it))
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, nil
	}
	return r.load(o), nil
}

// GetForUpdate equivale a GetByID: Store.Run ya serializa las transacciones.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

// load adjunta ítems y referencias. Requiere r.s.mu tomado.
func (r *PurchaseOrderRepo) load(o entity.PurchaseOrder) *entity.PurchaseOrder {
	if sup, ok := r.s.data.suppliers[o.SupplierID]; ok {
		o.Supplier = &sup
	}
	o.Items = nil
	for _, it := range r.s.data.items {
		if it.PurchaseOrderID != o.ID {
			continue
		}
		switch it.Target.Kind {
		case entity.TargetVariant:
			if v, ok := r.s.data.variants[it.Target.ID]; ok {
				it.Variant = &v
			}
		case entity.TargetInput:
			if in, ok := r.s.data.inputs[it.Target.ID]; ok {
				it.Input = &in
			}
		case entity.TargetInputVariant:
			if iv, ok := r.s.data.inputVariants[it.Target.ID]; ok {
				it.InputVariant = &iv
			}
		}
		o.Items = append(o.Items, it)
	}
	return &o
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.PurchaseOrder
	for _, o := range r.s.data.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.SupplierID != "" && o.SupplierID != f.SupplierID {
			continue
		}
		list = append(list, r.load(o))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].OrderNumber > list[j].OrderNumber })
	return page(list, f.Limit, f.Offset), nil
}

func (r *PurchaseOrderRepo) Update(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.orders[o.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, o.ID)
	}
	cur.SupplierID = o.SupplierID
	cur.ExpectedDate = o.ExpectedDate
	cur.Notes = o.Notes
	cur.InvoiceRef = o.InvoiceRef
	cur.Subtotal = o.Subtotal
	cur.Total = o.Total
	cur.UpdatedAt = o.UpdatedAt
	r.s.data.orders[o.ID] = cur
	return nil
}

func (r *PurchaseOrderRepo) ReplaceItems(_ context.Context, orderID string, items []entity.PurchaseOrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.data.items[:0:0]
	for _, it := range r.s.data.items {
		if it.PurchaseOrderID != orderID {
			kept = append(kept, it)
		}
	}
	for _, it := range items {
		it.PurchaseOrderID = orderID
		kept = append(kept, stripItem(it))
	}
	r.s.data.items = kept
	return nil
}

func (r *PurchaseOrderRepo) UpdateItemReceived(_ context.Context, itemID string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.items {
		if r.s.data.items[i].ID == itemID {
			r.s.data.items[i].QuantityReceived = qty
			return nil
		}
	}
	return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, id string, status entity.PurchaseOrderStatus, receivedDate *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	o.Status = status
	if receivedDate != nil {
		o.ReceivedDate = receivedDate
	}
	r.s.data.orders[id] = o
	return nil
}

func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.orders, id)
	kept := r.s.data.items[:0:0]
	for _, it := range r.s.data.items {
		if it.PurchaseOrderID != id {
			kept = append(kept, it)
		}
	}
	r.s.data.items = kept
	return nil
}

// LockOrderNumbers no hace nada: Store.Run ya serializa las transacciones.
func (r *PurchaseOrderRepo) LockOrderNumbers(context.Context, string) error { return nil }

func (r *PurchaseOrderRepo) LastOrderNumber(_ context.Context, prefix string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	last := ""
	for _, o := range r.s.data.orders {
		if !strings.HasPrefix(o.OrderNumber, prefix) {
			continue
		}
		// Secuencias de más de 4 dígitos ordenan por longitud primero.
		if len(o.OrderNumber) > len(last) || (len(o.OrderNumber) == len(last) && o.OrderNumber > last) {
			last = o.OrderNumber
		}
	}
	return last, nil
}

func stripItem(it entity.PurchaseOrderItem) entity.PurchaseOrderItem {
	it.Variant = nil
	it.Input = nil
	it.InputVariant = nil
	return it
}
