package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// StockMovementRepository libro de movimientos: solo inserción y lectura.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.StockMovement, error)
}
