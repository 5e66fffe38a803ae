package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
)

func TestLowStock_OrdenaPorDeficit(t *testing.T) {
	store := memory.NewStore()
	store.AddVariant(entity.Variant{ID: "a", SKU: "A", Stock: 4, MinStock: 5, Active: true})
	store.AddVariant(entity.Variant{ID: "b", SKU: "B", Stock: 0, MinStock: 10, Active: true})
	store.AddVariant(entity.Variant{ID: "c", SKU: "C", Stock: 20, MinStock: 5, Active: true})
	store.AddVariant(entity.Variant{ID: "d", SKU: "D", Stock: 0, MinStock: 3, Active: false})

	uc := appinventory.NewLowStockUseCase(store.Repositories().Variants)
	items, err := uc.List(context.Background(), 50, 0)
	require.NoError(t, err)

	require.Len(t, items, 2, "solo variantes activas en o bajo el mínimo")
	assert.Equal(t, "b", items[0].Variant.ID)
	assert.Equal(t, 10, items[0].Deficit)
	assert.Equal(t, 15, items[0].SuggestedQty)
	assert.Equal(t, 1, items[0].Priority)

	assert.Equal(t, "a", items[1].Variant.ID)
	assert.Equal(t, 1, items[1].Deficit)
	assert.Equal(t, 4, items[1].SuggestedQty, "ideal 8 (5*1.5 redondeado) menos 4")
	assert.Equal(t, 2, items[1].Priority)
}
