package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Inventario
	ErrVariantNotFound         = errors.New("variante no encontrada")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrNegativeStockAdjustment = errors.New("el ajuste dejaría el stock en negativo")
	ErrInvalidMovementKind     = errors.New("tipo de movimiento inválido")
	ErrSupplierOrInputNotFound = errors.New("proveedor o insumo no encontrado")

	// Órdenes de compra
	ErrOrderNotFound      = errors.New("orden de compra no encontrada")
	ErrIllegalTransition  = errors.New("transición de estado no permitida")
	ErrOrderNotEditable   = errors.New("la orden de compra no se puede editar en su estado actual")
	ErrOrderNotDeletable  = errors.New("la orden de compra no se puede eliminar en su estado actual")
	ErrOrderNotReceivable = errors.New("la orden de compra no admite recepciones en su estado actual")
	ErrOverReceipt        = errors.New("la cantidad recibida supera la cantidad ordenada")
)

// StockError describe un movimiento rechazado porque dejaría el stock en negativo.
// Err es ErrInsufficientStock o ErrNegativeStockAdjustment.
type StockError struct {
	Err       error
	VariantID string
	Current   int
	Delta     int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: variante %s, stock actual %d, delta %d", e.Err, e.VariantID, e.Current, e.Delta)
}

func (e *StockError) Unwrap() error { return e.Err }

// TransitionError describe un cambio de estado rechazado por la tabla de transiciones.
type TransitionError struct {
	OrderID string
	From    string
	To      string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: orden %s de %s a %s", ErrIllegalTransition, e.OrderID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// OverReceiptError describe una recepción que excede lo ordenado en un ítem.
type OverReceiptError struct {
	OrderID         string
	ItemID          string
	Ordered         int
	AlreadyReceived int
	Attempted       int
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("%s: orden %s, ítem %s, ordenado %d, recibido %d, intento %d",
		ErrOverReceipt, e.OrderID, e.ItemID, e.Ordered, e.AlreadyReceived, e.Attempted)
}

func (e *OverReceiptError) Unwrap() error { return ErrOverReceipt }

// ErrorCode devuelve el código estable de un error de dominio para respuestas y resultados por ítem.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrVariantNotFound):
		return "VARIANT_NOT_FOUND"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrNegativeStockAdjustment):
		return "NEGATIVE_STOCK_ADJUSTMENT"
	case errors.Is(err, ErrInvalidMovementKind):
		return "INVALID_MOVEMENT_KIND"
	case errors.Is(err, ErrSupplierOrInputNotFound):
		return "SUPPLIER_OR_INPUT_NOT_FOUND"
	case errors.Is(err, ErrOrderNotFound):
		return "ORDER_NOT_FOUND"
	case errors.Is(err, ErrIllegalTransition):
		return "ILLEGAL_TRANSITION"
	case errors.Is(err, ErrOrderNotEditable):
		return "ORDER_NOT_EDITABLE"
	case errors.Is(err, ErrOrderNotDeletable):
		return "ORDER_NOT_DELETABLE"
	case errors.Is(err, ErrOrderNotReceivable):
		return "ORDER_NOT_RECEIVABLE"
	case errors.Is(err, ErrOverReceipt):
		return "OVER_RECEIPT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	}
	return "INTERNAL"
}
