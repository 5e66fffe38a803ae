package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// VariantRepository puerto de persistencia para variantes vendibles.
// Solo el libro de stock llama UpdateStock.
type VariantRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Variant, error)
	UpdateStock(ctx context.Context, id string, newStock int) error
	ListLowStock(ctx context.Context, limit, offset int) ([]*entity.Variant, error)
}
