package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/inventory"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newLedger(t *testing.T, variants ...entity.Variant) (*appinventory.StockLedger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, v := range variants {
		store.AddVariant(v)
	}
	repos := store.Repositories()
	return appinventory.NewStockLedger(store, repos.Variants, repos.Movements), store
}

func variant(id string, stock int) entity.Variant {
	return entity.Variant{ID: id, SKU: "SKU-" + id, Stock: stock, MinStock: 2, Active: true, ProductName: "Camiseta", ColorName: "Negro", SizeName: "M"}
}

func stockOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	v, err := store.Repositories().Variants.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, v)
	return v.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_ConsistenciaDelLibro(t *testing.T) {
	ledger, store := newLedger(t, variant("v1", 10))
	ctx := context.Background()

	steps := []struct {
		kind entity.MovementKind
		qty  int
	}{
		{entity.MovementPurchase, 5},
		{entity.MovementSale, 3},
		{entity.MovementReturn, 1},
		{entity.MovementDamage, 2},
		{entity.MovementAdjustment, -4},
		{entity.MovementTransferIn, 6},
		{entity.MovementTransferOut, 1},
	}
	for _, st := range steps {
		mov, err := ledger.RecordMovement(ctx, appinventory.MovementInput{VariantID: "v1", Kind: st.kind, Quantity: st.qty, UserID: "u1"})
		require.NoError(t, err, "kind %s", st.kind)

		want, _ := inventory.Delta(st.kind, st.qty)
		assert.Equal(t, want, mov.NewStock-mov.PreviousStock, "delta de %s", st.kind)
		assert.Equal(t, mov.NewStock, stockOf(t, store, "v1"), "el stock de la variante es el NewStock del movimiento")
		require.NotNil(t, mov.Variant, "el movimiento devuelve la variante para mostrar")
		assert.Equal(t, "Camiseta", mov.Variant.ProductName)
	}

	// stock final = base + suma de deltas
	sum := 10
	for _, m := range store.Movements() {
		sum += m.Delta()
	}
	assert.Equal(t, sum, stockOf(t, store, "v1"))
	assert.Len(t, store.Movements(), len(steps))
}

func TestRecordMovement_SalidaMayorAlStock(t *testing.T) {
	ctx := context.Background()
	for _, kind := range []entity.MovementKind{entity.MovementSale, entity.MovementTransferOut, entity.MovementDamage} {
		ledger, store := newLedger(t, variant("v1", 3))
		_, err := ledger.RecordMovement(ctx, appinventory.MovementInput{VariantID: "v1", Kind: kind, Quantity: 4})

		assert.ErrorIs(t, err, domain.ErrInsufficientStock, "kind %s", kind)
		assert.Equal(t, 3, stockOf(t, store, "v1"), "el stock no cambia")
		assert.Empty(t, store.Movements(), "no se escribe movimiento")
	}
}

func TestRecordMovement_VarianteInexistente(t *testing.T) {
	ledger, _ := newLedger(t)
	_, err := ledger.RecordMovement(context.Background(), appinventory.MovementInput{VariantID: "nope", Kind: entity.MovementPurchase, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
	assert.Contains(t, err.Error(), "nope", "el error identifica la variante")
}

func TestRecordMovement_TipoInvalido(t *testing.T) {
	ledger, store := newLedger(t, variant("v1", 3))
	_, err := ledger.RecordMovement(context.Background(), appinventory.MovementInput{VariantID: "v1", Kind: "LOAN", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementKind)
	assert.Equal(t, 3, stockOf(t, store, "v1"))
}

func TestRecordMovement_CantidadCeroSeRechaza(t *testing.T) {
	ledger, store := newLedger(t, variant("v1", 3))
	for _, kind := range []entity.MovementKind{entity.MovementPurchase, entity.MovementSale, entity.MovementAdjustment} {
		_, err := ledger.RecordMovement(context.Background(), appinventory.MovementInput{VariantID: "v1", Kind: kind, Quantity: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "kind %s", kind)
	}
	assert.Equal(t, 3, stockOf(t, store, "v1"))
	assert.Empty(t, store.Movements(), "no se escriben movimientos vacíos")
}

func TestRecordMovement_FalloAlInsertarMovimientoRevierteStock(t *testing.T) {
	ledger, store := newLedger(t, variant("v1", 5))
	boom := errors.New("insert falló")
	store.FailNextMovement(boom)

	_, err := ledger.RecordMovement(context.Background(), appinventory.MovementInput{VariantID: "v1", Kind: entity.MovementPurchase, Quantity: 7})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 5, stockOf(t, store, "v1"), "stock y movimiento son todo o nada")
	assert.Empty(t, store.Movements())
}

func TestRecordMovement_ConservaMetadatos(t *testing.T) {
	ledger, _ := newLedger(t, variant("v1", 0))
	mov, err := ledger.RecordMovement(context.Background(), appinventory.MovementInput{
		VariantID:     "v1",
		Kind:          entity.MovementInitial,
		Quantity:      12,
		Reason:        "Carga inicial",
		Notes:         "conteo de apertura",
		ReferenceType: entity.ReferenceSale,
		ReferenceID:   "s-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, 0, mov.PreviousStock)
	assert.Equal(t, 12, mov.NewStock)
	assert.Equal(t, "Carga inicial", mov.Reason)
	assert.Equal(t, "s-1", mov.ReferenceID)
	assert.Empty(t, mov.CreatedBy, "usuario ausente se tolera")
	assert.False(t, mov.CreatedAt.IsZero())
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	ledger, _ := newLedger(t, variant("v1", 0), variant("v2", 0))
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_, err := ledger.RecordMovement(ctx, appinventory.MovementInput{VariantID: "v1", Kind: entity.MovementPurchase, Quantity: i})
		require.NoError(t, err)
	}
	_, err := ledger.RecordMovement(ctx, appinventory.MovementInput{VariantID: "v2", Kind: entity.MovementPurchase, Quantity: 9})
	require.NoError(t, err)

	list, err := ledger.History(ctx, "v1", 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].Quantity)
	assert.Equal(t, 2, list[1].Quantity)

	_, err = ledger.History(ctx, "zzz", 10, 0)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}
