package purchasing_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/application/purchasing"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

func TestCreate_NumeracionYTotales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prefix := fmt.Sprintf("OC-%d-", time.Now().Year())

	first, err := f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)
	second, err := f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)

	assert.Equal(t, prefix+"0001", first.OrderNumber)
	assert.Equal(t, prefix+"0002", second.OrderNumber)
	assert.Equal(t, entity.StatusDraft, first.Status)
	assert.True(t, first.Subtotal.Equal(decimal.NewFromInt(190000)), "10*15000 + 5*8000")
	assert.True(t, first.Total.Equal(first.Subtotal))
	require.Len(t, first.Items, 2)
	require.NotNil(t, first.Supplier)
	assert.Equal(t, "Textiles del Norte", first.Supplier.Name)

	v := itemFor(first, entity.TargetVariant)
	require.NotNil(t, v)
	require.NotNil(t, v.Variant, "el ítem carga la variante destino")
	assert.Equal(t, "CAM-NEG-M", v.Variant.SKU)
	assert.Zero(t, v.QuantityReceived)
}

// memory.Store serializa las transacciones, así que aquí se verifica la numeración bajo
// concurrencia del caso de uso; el bloqueo advisory y el reintento se cubren aparte.
func TestCreate_ConcurrenteSinDuplicadosNiHuecos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const n = 20

	numbers := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := f.orders.Create(ctx, f.orderInput())
			if assert.NoError(t, err) {
				numbers[i] = o.OrderNumber
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, num := range numbers {
		assert.False(t, seen[num], "número repetido %s", num)
		seen[num] = true
	}
	prefix := fmt.Sprintf("OC-%d-", time.Now().Year())
	for i := 1; i <= n; i++ {
		assert.True(t, seen[fmt.Sprintf("%s%04d", prefix, i)], "falta la secuencia %d", i)
	}
}

// duplicateOnce hace fallar los primeros Create con ErrDuplicate, como una colisión de
// order_number entre transacciones concurrentes.
type duplicateOnce struct {
	repository.PurchaseOrderRepository
	fails *int
}

func (d duplicateOnce) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	if *d.fails > 0 {
		*d.fails--
		return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, o.OrderNumber)
	}
	return d.PurchaseOrderRepository.Create(ctx, o)
}

type duplicateRunner struct {
	store *memory.Store
	fails int
	runs  int
}

func (r *duplicateRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	r.runs++
	return r.store.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		repos.PurchaseOrders = duplicateOnce{PurchaseOrderRepository: repos.PurchaseOrders, fails: &r.fails}
		return fn(ctx, repos)
	})
}

func TestCreate_ReintentaAnteNumeroDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	runner := &duplicateRunner{store: f.store, fails: 2}
	uc := purchasing.NewPurchaseOrderUseCase(runner, f.store.Repositories().PurchaseOrders, 3, logger.Nop())

	order, err := uc.Create(ctx, f.orderInput())
	require.NoError(t, err)
	assert.Equal(t, 3, runner.runs, "dos colisiones y un intento exitoso")
	assert.Equal(t, fmt.Sprintf("OC-%d-0001", time.Now().Year()), order.OrderNumber)

	all, err := f.orders.List(ctx, repository.PurchaseOrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1, "los intentos fallidos se revierten")
}

func TestCreate_SinReintentosDevuelveDuplicado(t *testing.T) {
	f := newFixture(t)
	runner := &duplicateRunner{store: f.store, fails: 1}
	uc := purchasing.NewPurchaseOrderUseCase(runner, f.store.Repositories().PurchaseOrders, 0, logger.Nop())

	_, err := uc.Create(context.Background(), f.orderInput())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, runner.runs)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.orderInput()
	in.SupplierID = "otro"
	_, err := f.orders.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrSupplierOrInputNotFound)

	in = f.orderInput()
	in.Items[0].Target = entity.VariantTarget("fantasma")
	_, err = f.orders.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)

	in = f.orderInput()
	in.Items[1].Target = entity.LineTarget{}
	_, err = f.orders.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = f.orderInput()
	in.Items[0].Quantity = 0
	_, err = f.orders.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = f.orderInput()
	in.Items = nil
	_, err = f.orders.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.orders.List(ctx, repository.PurchaseOrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "ninguna orden inválida se persiste")
}

func TestUpdate_SoloDraftOCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)

	in := f.orderInput()
	in.Notes = "urgente"
	in.Items = in.Items[:1]
	in.Items[0].Quantity = 4
	updated, err := f.orders.Update(ctx, order.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "urgente", updated.Notes)
	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, order.OrderNumber, updated.OrderNumber, "el número no cambia al editar")

	_, err = f.orders.Transition(ctx, order.ID, entity.StatusSent)
	require.NoError(t, err)
	_, err = f.orders.Update(ctx, order.ID, in)
	assert.ErrorIs(t, err, domain.ErrOrderNotEditable)

	_, err = f.orders.Update(ctx, "nope", in)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)
	require.NoError(t, f.orders.Delete(ctx, draft.ID))
	_, err = f.orders.GetByID(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	cancelled, err := f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)
	_, err = f.orders.Transition(ctx, cancelled.ID, entity.StatusCancelled)
	require.NoError(t, err)
	assert.NoError(t, f.orders.Delete(ctx, cancelled.ID))

	confirmed := f.confirmedOrder(t)
	assert.ErrorIs(t, f.orders.Delete(ctx, confirmed.ID), domain.ErrOrderNotDeletable)
}

func TestTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)

	_, err = f.orders.Transition(ctx, order.ID, entity.StatusReceived)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "DRAFT", te.From)
	assert.Equal(t, "RECEIVED", te.To)

	_, err = f.orders.Transition(ctx, order.ID, "ARCHIVED")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sent, err := f.orders.Transition(ctx, order.ID, entity.StatusSent)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, sent.Status)

	cancelled, err := f.orders.Transition(ctx, order.ID, entity.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)

	_, err = f.orders.Transition(ctx, order.ID, entity.StatusDraft)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "CANCELLED es terminal")
}

func TestList_Filtros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)
	_, err = f.orders.Create(ctx, f.orderInput())
	require.NoError(t, err)
	_, err = f.orders.Transition(ctx, a.ID, entity.StatusSent)
	require.NoError(t, err)

	sent, err := f.orders.List(ctx, repository.PurchaseOrderFilter{Status: entity.StatusSent})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, a.ID, sent[0].ID)

	all, err := f.orders.List(ctx, repository.PurchaseOrderFilter{SupplierID: "sup-1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.orders.List(ctx, repository.PurchaseOrderFilter{Status: "OPEN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ItemDeVarianteDeInsumo(t *testing.T) {
	f := newFixture(t)
	f.store.AddInputVariant(entity.InputVariant{ID: "iv-1", InputID: "in-1", ColorName: "Azul", Active: true})

	in := f.orderInput()
	in.Items = []purchasing.ItemInput{{Target: entity.InputVariantTarget("iv-1"), Quantity: 3, UnitCost: decimal.NewFromInt(100)}}
	order, err := f.orders.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.NotNil(t, order.Items[0].InputVariant)
	assert.Equal(t, "Azul", order.Items[0].InputVariant.ColorName)
}
