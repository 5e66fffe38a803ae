package inventory

import (
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// Delta traduce (tipo, cantidad) al cambio con signo que se aplica al stock.
// ADJUSTMENT recibe el delta ya calculado (objetivo - actual) y lo devuelve tal cual.
// Una cantidad en cero no es un movimiento.
func Delta(kind entity.MovementKind, quantity int) (int, error) {
	if !ValidKind(kind) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidMovementKind, kind)
	}
	if quantity == 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser distinta de cero", domain.ErrInvalidInput)
	}
	switch kind {
	case entity.MovementPurchase, entity.MovementTransferIn, entity.MovementReturn, entity.MovementInitial:
		if quantity < 0 {
			return 0, fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, kind)
		}
		return quantity, nil
	case entity.MovementSale, entity.MovementTransferOut, entity.MovementDamage:
		if quantity < 0 {
			return 0, fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, kind)
		}
		return -quantity, nil
	}
	return quantity, nil
}

// Apply valida el movimiento contra el stock actual y devuelve el delta y el stock resultante.
func Apply(variantID string, current int, kind entity.MovementKind, quantity int) (delta, next int, err error) {
	delta, err = Delta(kind, quantity)
	if err != nil {
		return 0, 0, err
	}
	next = current + delta
	if next < 0 {
		cause := domain.ErrInsufficientStock
		if kind == entity.MovementAdjustment {
			cause = domain.ErrNegativeStockAdjustment
		}
		return 0, 0, &domain.StockError{Err: cause, VariantID: variantID, Current: current, Delta: delta}
	}
	return delta, next, nil
}

// ValidKind indica si el tipo pertenece al conjunto cerrado de movimientos.
func ValidKind(kind entity.MovementKind) bool {
	switch kind {
	case entity.MovementPurchase, entity.MovementSale, entity.MovementAdjustment,
		entity.MovementTransferIn, entity.MovementTransferOut, entity.MovementReturn,
		entity.MovementDamage, entity.MovementInitial:
		return true
	}
	return false
}
