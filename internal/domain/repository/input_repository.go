package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InputRepository puerto de persistencia para insumos.
type InputRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Input, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Input, error)
	UpdateStock(ctx context.Context, id string, stock, unitCost decimal.Decimal) error
}

// InputVariantRepository puerto de persistencia para variantes de insumo y su historial.
type InputVariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InputVariant, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InputVariant, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	// SumActiveStock suma el stock de las variantes activas de un insumo.
	SumActiveStock(ctx context.Context, inputID string) (decimal.Decimal, error)
	CreateMovement(ctx context.Context, movement *entity.InputVariantMovement) error
}

// InputBatchRepository puerto de persistencia para lotes de insumo y sus movimientos.
type InputBatchRepository interface {
	// FindLatestActive devuelve el lote activo más reciente del insumo, o nil si no hay.
	FindLatestActive(ctx context.Context, inputID string) (*entity.InputBatch, error)
	Create(ctx context.Context, batch *entity.InputBatch) error
	Update(ctx context.Context, batch *entity.InputBatch) error
	ListByInput(ctx context.Context, inputID string, limit, offset int) ([]*entity.InputBatch, error)
	CreateMovement(ctx context.Context, movement *entity.InputBatchMovement) error
}
