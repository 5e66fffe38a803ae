package purchasing_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/application/purchasing"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

type fixture struct {
	store     *memory.Store
	orders    *purchasing.PurchaseOrderUseCase
	receiving *purchasing.ReceivingUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddSupplier(entity.Supplier{ID: "sup-1", Name: "Textiles del Norte", Active: true})
	store.AddVariant(entity.Variant{ID: "v1", SKU: "CAM-NEG-M", Stock: 2, MinStock: 5, Active: true, ProductName: "Camiseta"})
	store.AddVariant(entity.Variant{ID: "v2", SKU: "CAM-BLA-S", Stock: 0, MinStock: 5, Active: true, ProductName: "Camiseta"})
	store.AddInput(entity.Input{ID: "in-1", Name: "Tela algodón", Unit: "m", Active: true})

	repos := store.Repositories()
	log := logger.Nop()
	ledger := appinventory.NewStockLedger(store, repos.Variants, repos.Movements)
	tracker := appinventory.NewBatchTracker(repos.Batches)
	return &fixture{
		store:     store,
		orders:    purchasing.NewPurchaseOrderUseCase(store, repos.PurchaseOrders, 3, log),
		receiving: purchasing.NewReceivingUseCase(store, ledger, tracker, repos.PurchaseOrders, log),
	}
}

func (f *fixture) orderInput() purchasing.OrderInput {
	return purchasing.OrderInput{
		SupplierID: "sup-1",
		UserID:     "u1",
		Items: []purchasing.ItemInput{
			{Target: entity.VariantTarget("v1"), Description: "Camiseta negra M", Quantity: 10, UnitCost: decimal.NewFromInt(15000)},
			{Target: entity.InputTarget("in-1"), Description: "Tela", Quantity: 5, UnitCost: decimal.NewFromInt(8000)},
		},
	}
}

// confirmedOrder crea una orden y la lleva a CONFIRMED.
func (f *fixture) confirmedOrder(t *testing.T) *entity.PurchaseOrder {
	t.Helper()
	return f.confirm(t, f.orderInput())
}

// confirm crea la orden in y la lleva a CONFIRMED.
func (f *fixture) confirm(t *testing.T, in purchasing.OrderInput) *entity.PurchaseOrder {
	t.Helper()
	ctx := context.Background()
	order, err := f.orders.Create(ctx, in)
	require.NoError(t, err)
	_, err = f.orders.Transition(ctx, order.ID, entity.StatusSent)
	require.NoError(t, err)
	order, err = f.orders.Transition(ctx, order.ID, entity.StatusConfirmed)
	require.NoError(t, err)
	return order
}

func (f *fixture) variantStock(t *testing.T, id string) int {
	t.Helper()
	v, err := f.store.Repositories().Variants.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v.Stock
}

func itemFor(order *entity.PurchaseOrder, kind entity.TargetKind) *entity.PurchaseOrderItem {
	for i := range order.Items {
		if order.Items[i].Target.Kind == kind {
			return &order.Items[i]
		}
	}
	return nil
}

// rowLockRunner corre cada transacción sin la serialización global de memory.Store y solo
// bloquea la fila de la orden en GetForUpdate hasta el fin de la transacción, como
// PostgreSQL en READ COMMITTED. No revierte escrituras: sirve para carreras entre lecturas.
type rowLockRunner struct {
	store *memory.Store
	mu    sync.Mutex
	rows  map[string]*sync.Mutex
}

func newRowLockRunner(store *memory.Store) *rowLockRunner {
	return &rowLockRunner{store: store, rows: make(map[string]*sync.Mutex)}
}

func (r *rowLockRunner) row(id string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		m = &sync.Mutex{}
		r.rows[id] = m
	}
	return m
}

func (r *rowLockRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	repos := r.store.Repositories()
	orders := &lockingOrders{PurchaseOrderRepository: repos.PurchaseOrders, runner: r}
	repos.PurchaseOrders = orders
	defer orders.release()
	return fn(ctx, repos)
}

type lockingOrders struct {
	repository.PurchaseOrderRepository
	runner *rowLockRunner
	held   []*sync.Mutex
}

func (o *lockingOrders) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	m := o.runner.row(id)
	m.Lock()
	o.held = append(o.held, m)
	return o.PurchaseOrderRepository.GetForUpdate(ctx, id)
}

func (o *lockingOrders) release() {
	for _, m := range o.held {
		m.Unlock()
	}
}

// withRowLocks reconstruye los casos de uso sobre rowLockRunner.
func (f *fixture) withRowLocks() {
	runner := newRowLockRunner(f.store)
	repos := f.store.Repositories()
	log := logger.Nop()
	ledger := appinventory.NewStockLedger(runner, repos.Variants, repos.Movements)
	tracker := appinventory.NewBatchTracker(repos.Batches)
	f.orders = purchasing.NewPurchaseOrderUseCase(runner, repos.PurchaseOrders, 3, log)
	f.receiving = purchasing.NewReceivingUseCase(runner, ledger, tracker, repos.PurchaseOrders, log)
}
