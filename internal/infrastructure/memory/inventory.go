package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var (
	_ repository.VariantRepository       = (*VariantRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.InputRepository         = (*InputRepo)(nil)
	_ repository.InputVariantRepository  = (*InputVariantRepo)(nil)
	_ repository.InputBatchRepository    = (*BatchRepo)(nil)
)

// VariantRepo variantes en memoria.
type VariantRepo struct{ s *Store }

func (r *VariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.variants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	return r.GetByID(ctx, id)
}

func (r *VariantRepo) UpdateStock(_ context.Context, id string, newStock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.data.variants[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrVariantNotFound, id)
	}
	v.Stock = newStock
	r.s.data.variants[id] = v
	return nil
}

func (r *VariantRepo) ListLowStock(_ context.Context, limit, offset int) ([]*entity.Variant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Variant
	for _, v := range r.s.data.variants {
		if v.Active && v.Stock <= v.MinStock {
			v := v
			list = append(list, &v)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		di, dj := list[i].MinStock-list[i].Stock, list[j].MinStock-list[j].Stock
		if di != dj {
			return di > dj
		}
		return list[i].SKU < list[j].SKU
	})
	return page(list, limit, offset), nil
}

// MovementRepo libro de stock en memoria.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failMovement; err != nil {
		r.s.failMovement = nil
		return err
	}
	r.s.data.movements = append(r.s.data.movements, *m)
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.data.movements {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ListByVariant(_ context.Context, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockMovement
	for i := len(r.s.data.movements) - 1; i >= 0; i-- {
		if m := r.s.data.movements[i]; m.VariantID == variantID {
			list = append(list, &m)
		}
	}
	return page(list, limit, offset), nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.data.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

// InputRepo insumos en memoria.
type InputRepo struct{ s *Store }

func (r *InputRepo) GetByID(_ context.Context, id string) (*entity.Input, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.data.inputs[id]
	if !ok {
		return nil, nil
	}
	return &in, nil
}

func (r *InputRepo) GetForUpdate(ctx context.Context, id string) (*entity.Input, error) {
	return r.GetByID(ctx, id)
}

func (r *InputRepo) UpdateStock(_ context.Context, id string, stock, unitCost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	in, ok := r.s.data.inputs[id]
	if !ok {
		return fmt.Errorf("%w: insumo %s", domain.ErrSupplierOrInputNotFound, id)
	}
	in.Stock = stock
	in.UnitCost = unitCost
	r.s.data.inputs[id] = in
	return nil
}

// InputVariantRepo variantes de insumo en memoria.
type InputVariantRepo struct{ s *Store }

func (r *InputVariantRepo) GetByID(_ context.Context, id string) (*entity.InputVariant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	iv, ok := r.s.data.inputVariants[id]
	if !ok {
		return nil, nil
	}
	return &iv, nil
}

func (r *InputVariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.InputVariant, error) {
	return r.GetByID(ctx, id)
}

func (r *InputVariantRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	iv, ok := r.s.data.inputVariants[id]
	if !ok {
		return fmt.Errorf("%w: variante de insumo %s", domain.ErrSupplierOrInputNotFound, id)
	}
	iv.Stock = stock
	r.s.data.inputVariants[id] = iv
	return nil
}

func (r *InputVariantRepo) SumActiveStock(_ context.Context, inputID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, iv := range r.s.data.inputVariants {
		if iv.InputID == inputID && iv.Active {
			total = total.Add(iv.Stock)
		}
	}
	return total, nil
}

func (r *InputVariantRepo) CreateMovement(_ context.Context, m *entity.InputVariantMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.inputVariantMovements = append(r.s.data.inputVariantMovements, *m)
	return nil
}

// BatchRepo lotes de insumo en memoria.
type BatchRepo struct{ s *Store }

func (r *BatchRepo) FindLatestActive(_ context.Context, inputID string) (*entity.InputBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := len(r.s.data.batches) - 1; i >= 0; i-- {
		if b := r.s.data.batches[i]; b.InputID == inputID && b.Active {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) Create(_ context.Context, b *entity.InputBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.batches = append(r.s.data.batches, *b)
	return nil
}

func (r *BatchRepo) Update(_ context.Context, b *entity.InputBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.data.batches {
		if r.s.data.batches[i].ID == b.ID {
			r.s.data.batches[i] = *b
			return nil
		}
	}
	return fmt.Errorf("%w: lote %s", domain.ErrNotFound, b.ID)
}

func (r *BatchRepo) ListByInput(_ context.Context, inputID string, limit, offset int) ([]*entity.InputBatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InputBatch
	for i := len(r.s.data.batches) - 1; i >= 0; i-- {
		if b := r.s.data.batches[i]; b.InputID == inputID {
			list = append(list, &b)
		}
	}
	return page(list, limit, offset), nil
}

func (r *BatchRepo) CreateMovement(_ context.Context, m *entity.InputBatchMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.batchMovements = append(r.s.data.batchMovements, *m)
	return nil
}
