// Package memory implementa todos los puertos de repositorio en memoria, con un TxRunner que
// descarta las escrituras de una transacción fallida. Las transacciones se serializan entre sí;
// las lecturas fuera de transacción ven el estado vigente.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

type state struct {
	variants              map[string]entity.Variant
	movements             []entity.StockMovement
	suppliers             map[string]entity.Supplier
	inputs                map[string]entity.Input
	inputVariants         map[string]entity.InputVariant
	inputVariantMovements []entity.InputVariantMovement
	batches               []entity.InputBatch
	batchMovements        []entity.InputBatchMovement
	orders                map[string]entity.PurchaseOrder
	items                 []entity.PurchaseOrderItem
	products              map[string]string // nombre -> id
}

func newState() *state {
	return &state{
		variants:      make(map[string]entity.Variant),
		suppliers:     make(map[string]entity.Supplier),
		inputs:        make(map[string]entity.Input),
		inputVariants: make(map[string]entity.InputVariant),
		orders:        make(map[string]entity.PurchaseOrder),
		products:      make(map[string]string),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.variants {
		c.variants[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.inputs {
		c.inputs[k] = v
	}
	for k, v := range s.inputVariants {
		c.inputVariants[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	c.inputVariantMovements = append([]entity.InputVariantMovement(nil), s.inputVariantMovements...)
	c.batches = append([]entity.InputBatch(nil), s.batches...)
	c.batchMovements = append([]entity.InputBatchMovement(nil), s.batchMovements...)
	c.items = append([]entity.PurchaseOrderItem(nil), s.items...)
	return c
}

// Store almacén en memoria.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *state

	failMovement error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repositories devuelve los repositorios del almacén.
func (s *Store) Repositories() repository.TxRepositories {
	return repository.TxRepositories{
		Variants:       &VariantRepo{s: s},
		Movements:      &MovementRepo{s: s},
		Suppliers:      &SupplierRepo{s: s},
		Inputs:         &InputRepo{s: s},
		InputVariants:  &InputVariantRepo{s: s},
		Batches:        &BatchRepo{s: s},
		PurchaseOrders: &PurchaseOrderRepo{s: s},
		Catalog:        &CatalogRepo{s: s},
	}
}

// Run ejecuta fn como transacción: si devuelve error se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(ctx, s.Repositories()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// FailNextMovement hace fallar el próximo insert de movimiento de stock con err.
func (s *Store) FailNextMovement(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMovement = err
}

// AddVariant siembra una variante.
func (s *Store) AddVariant(v entity.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.variants[v.ID] = v
}

// AddSupplier siembra un proveedor.
func (s *Store) AddSupplier(sup entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.suppliers[sup.ID] = sup
}

// AddInput siembra un insumo.
func (s *Store) AddInput(in entity.Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.inputs[in.ID] = in
}

// AddInputVariant siembra una variante de insumo.
func (s *Store) AddInputVariant(iv entity.InputVariant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.inputVariants[iv.ID] = iv
}

// AddOrder siembra una orden con sus ítems tal cual (sin validar estado).
func (s *Store) AddOrder(o entity.PurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := o.Items
	o.Items = nil
	s.data.orders[o.ID] = o
	for _, it := range items {
		it.PurchaseOrderID = o.ID
		s.data.items = append(s.data.items, it)
	}
}

// Movements devuelve una copia del libro de stock en orden de inserción.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockMovement(nil), s.data.movements...)
}

// BatchMovements devuelve una copia de los movimientos de lotes.
func (s *Store) BatchMovements() []entity.InputBatchMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.InputBatchMovement(nil), s.data.batchMovements...)
}

// InputVariantMovements devuelve una copia de los movimientos de variantes de insumo.
func (s *Store) InputVariantMovements() []entity.InputVariantMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.InputVariantMovement(nil), s.data.inputVariantMovements...)
}

// Batches devuelve los lotes de un insumo en orden de creación.
func (s *Store) Batches(inputID string) []entity.InputBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.InputBatch
	for _, b := range s.data.batches {
		if b.InputID == inputID {
			out = append(out, b)
		}
	}
	return out
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
