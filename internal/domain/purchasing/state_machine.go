// Package purchasing contiene las reglas del ciclo de vida de las órdenes de compra:
// tabla de transiciones, numeración OC-YYYY-NNNN y estado derivado de las recepciones.
package purchasing

import (
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// transitions estados destino permitidos por estado origen. RECEIVED y CANCELLED son terminales.
var transitions = map[entity.PurchaseOrderStatus]map[entity.PurchaseOrderStatus]bool{
	entity.StatusDraft:     {entity.StatusSent: true, entity.StatusCancelled: true},
	entity.StatusSent:      {entity.StatusConfirmed: true, entity.StatusCancelled: true},
	entity.StatusConfirmed: {entity.StatusPartial: true, entity.StatusReceived: true, entity.StatusCancelled: true},
	entity.StatusPartial:   {entity.StatusReceived: true, entity.StatusCancelled: true},
}

// ValidStatus indica si el estado pertenece al enum persistido.
func ValidStatus(s entity.PurchaseOrderStatus) bool {
	switch s {
	case entity.StatusDraft, entity.StatusSent, entity.StatusConfirmed,
		entity.StatusPartial, entity.StatusReceived, entity.StatusCancelled:
		return true
	}
	return false
}

// CanTransition indica si from -> to está en la tabla.
func CanTransition(from, to entity.PurchaseOrderStatus) bool {
	return transitions[from][to]
}

// AllowedTargets devuelve los destinos permitidos desde un estado (vacío si es terminal).
func AllowedTargets(from entity.PurchaseOrderStatus) []entity.PurchaseOrderStatus {
	order := []entity.PurchaseOrderStatus{
		entity.StatusDraft, entity.StatusSent, entity.StatusConfirmed,
		entity.StatusPartial, entity.StatusReceived, entity.StatusCancelled,
	}
	var out []entity.PurchaseOrderStatus
	for _, s := range order {
		if transitions[from][s] {
			out = append(out, s)
		}
	}
	return out
}

// IsTerminal RECEIVED o CANCELLED.
func IsTerminal(s entity.PurchaseOrderStatus) bool {
	return s == entity.StatusReceived || s == entity.StatusCancelled
}

// Transition aplica el cambio de estado sobre la orden. Pasar a RECEIVED sella ReceivedDate.
func Transition(order *entity.PurchaseOrder, to entity.PurchaseOrderStatus, now func() time.Time) error {
	if !CanTransition(order.Status, to) {
		return &domain.TransitionError{OrderID: order.ID, From: string(order.Status), To: string(to)}
	}
	order.Status = to
	ts := now()
	order.UpdatedAt = ts
	if to == entity.StatusReceived {
		order.ReceivedDate = &ts
	}
	return nil
}

// IsEditable solo DRAFT y CANCELLED admiten edición completa.
func IsEditable(s entity.PurchaseOrderStatus) bool {
	return s == entity.StatusDraft || s == entity.StatusCancelled
}

// IsDeletable solo DRAFT y CANCELLED admiten borrado.
func IsDeletable(s entity.PurchaseOrderStatus) bool {
	return s == entity.StatusDraft || s == entity.StatusCancelled
}

// IsReceivable solo CONFIRMED y PARTIAL admiten recepciones.
func IsReceivable(s entity.PurchaseOrderStatus) bool {
	return s == entity.StatusConfirmed || s == entity.StatusPartial
}

// DeriveReceivingStatus calcula el estado tras una recepción a partir de los ítems:
// RECEIVED si todos están completos, PARTIAL si alguno tiene algo recibido, si no el actual.
func DeriveReceivingStatus(current entity.PurchaseOrderStatus, items []entity.PurchaseOrderItem) entity.PurchaseOrderStatus {
	if len(items) == 0 {
		return current
	}
	all, some := true, false
	for _, it := range items {
		if it.QuantityReceived < it.Quantity {
			all = false
		}
		if it.QuantityReceived > 0 {
			some = true
		}
	}
	switch {
	case all:
		return entity.StatusReceived
	case some:
		return entity.StatusPartial
	}
	return current
}
