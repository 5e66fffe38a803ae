package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// LowStockItem variante en o bajo su stock mínimo con la cantidad sugerida de reposición.
type LowStockItem struct {
	Variant      *entity.Variant
	Deficit      int // MinStock - Stock
	SuggestedQty int // ideal (MinStock * 1.5) - Stock
	Priority     int // 1 = más urgente
}

// LowStockUseCase genera la lista de reposición de variantes vendibles.
type LowStockUseCase struct {
	variants repository.VariantRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(variants repository.VariantRepository) *LowStockUseCase {
	return &LowStockUseCase{variants: variants}
}

// List devuelve las variantes activas en o bajo su mínimo, ordenadas por déficit descendente.
func (uc *LowStockUseCase) List(ctx context.Context, limit, offset int) ([]LowStockItem, error) {
	variants, err := uc.variants.ListLowStock(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]LowStockItem, 0, len(variants))
	for _, v := range variants {
		if !v.Active || !v.IsLowStock() {
			continue
		}
		ideal := (v.MinStock*3 + 1) / 2
		suggested := ideal - v.Stock
		if suggested < 0 {
			suggested = 0
		}
		items = append(items, LowStockItem{
			Variant:      v,
			Deficit:      v.MinStock - v.Stock,
			SuggestedQty: suggested,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Deficit != items[j].Deficit {
			return items[i].Deficit > items[j].Deficit
		}
		return items[i].Variant.SKU < items[j].Variant.SKU
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}
