package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var (
	_ repository.InputRepository        = (*InputRepo)(nil)
	_ repository.InputVariantRepository = (*InputVariantRepo)(nil)
	_ repository.InputBatchRepository   = (*InputBatchRepo)(nil)
)

// InputRepo insumos sobre PostgreSQL.
type InputRepo struct {
	q Querier
}

// NewInputRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputRepository(q Querier) *InputRepo {
	return &InputRepo{q: q}
}

func (r *InputRepo) get(ctx context.Context, id, suffix string) (*entity.Input, error) {
	var in entity.Input
	err := r.q.QueryRow(ctx,
		`SELECT id, name, unit, stock, unit_cost, active, updated_at FROM inputs WHERE id = $1`+suffix, id,
	).Scan(&in.ID, &in.Name, &in.Unit, &in.Stock, &in.UnitCost, &in.Active, &in.UpdatedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get input: %w", err)
	}
	return &in, nil
}

// GetByID obtiene un insumo; nil, nil si no existe.
func (r *InputRepo) GetByID(ctx context.Context, id string) (*entity.Input, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene el insumo y bloquea su fila.
func (r *InputRepo) GetForUpdate(ctx context.Context, id string) (*entity.Input, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// UpdateStock escribe stock agregado y costo promedio.
func (r *InputRepo) UpdateStock(ctx context.Context, id string, stock, unitCost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inputs SET stock = $2, unit_cost = $3, updated_at = now() WHERE id = $1`,
		id, stock, unitCost,
	)
	if err != nil {
		return fmt.Errorf("update input stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: insumo %s", domain.ErrSupplierOrInputNotFound, id)
	}
	return nil
}

// InputVariantRepo variantes de insumo sobre PostgreSQL.
type InputVariantRepo struct {
	q Querier
}

// NewInputVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputVariantRepository(q Querier) *InputVariantRepo {
	return &InputVariantRepo{q: q}
}

func (r *InputVariantRepo) get(ctx context.Context, id, suffix string) (*entity.InputVariant, error) {
	var iv entity.InputVariant
	err := r.q.QueryRow(ctx,
		`SELECT id, input_id, color_name, size_name, stock, active, updated_at FROM input_variants WHERE id = $1`+suffix, id,
	).Scan(&iv.ID, &iv.InputID, &iv.ColorName, &iv.SizeName, &iv.Stock, &iv.Active, &iv.UpdatedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get input variant: %w", err)
	}
	return &iv, nil
}

// GetByID obtiene una variante de insumo; nil, nil si no existe.
func (r *InputVariantRepo) GetByID(ctx context.Context, id string) (*entity.InputVariant, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate obtiene la variante de insumo y bloquea su fila.
func (r *InputVariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.InputVariant, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

// UpdateStock escribe el stock de la variante.
func (r *InputVariantRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE input_variants SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update input variant stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: variante de insumo %s", domain.ErrSupplierOrInputNotFound, id)
	}
	return nil
}

// SumActiveStock suma el stock de las variantes activas del insumo.
func (r *InputVariantRepo) SumActiveStock(ctx context.Context, inputID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(stock), 0) FROM input_variants WHERE input_id = $1 AND active`, inputID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum input variant stock: %w", err)
	}
	return total, nil
}

// CreateMovement registra el movimiento con stock anterior y nuevo.
func (r *InputVariantRepo) CreateMovement(ctx context.Context, m *entity.InputVariantMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO input_variant_movements (id, input_variant_id, movement_type, quantity, previous_stock, new_stock,
			purchase_order_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.InputVariantID, m.Kind, m.Quantity, m.PreviousStock, m.NewStock,
		nullIfEmpty(m.PurchaseOrderID), m.Notes, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert input variant movement: %w", err)
	}
	return nil
}

// InputBatchRepo lotes de insumo sobre PostgreSQL.
type InputBatchRepo struct {
	q Querier
}

// NewInputBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputBatchRepository(q Querier) *InputBatchRepo {
	return &InputBatchRepo{q: q}
}

const batchSelect = `
	SELECT id, input_id, purchase_order_id, initial_quantity, current_quantity, unit_cost, total_cost,
	       purchase_date, active, created_at, updated_at
	FROM input_batches`

func scanBatch(row interface{ Scan(dest ...any) error }) (*entity.InputBatch, error) {
	var (
		b    entity.InputBatch
		poID *string
	)
	err := row.Scan(&b.ID, &b.InputID, &poID, &b.InitialQuantity, &b.CurrentQuantity, &b.UnitCost, &b.TotalCost,
		&b.PurchaseDate, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.PurchaseOrderID = derefString(poID)
	return &b, nil
}

// FindLatestActive lote activo más reciente del insumo, bloqueado para la recepción en curso.
func (r *InputBatchRepo) FindLatestActive(ctx context.Context, inputID string) (*entity.InputBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, batchSelect+`
		WHERE input_id = $1 AND active ORDER BY created_at DESC LIMIT 1 FOR UPDATE`, inputID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active batch: %w", err)
	}
	return b, nil
}

// Create inserta un lote nuevo.
func (r *InputBatchRepo) Create(ctx context.Context, b *entity.InputBatch) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO input_batches (id, input_id, purchase_order_id, initial_quantity, current_quantity,
			unit_cost, total_cost, purchase_date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.InputID, nullIfEmpty(b.PurchaseOrderID), b.InitialQuantity, b.CurrentQuantity,
		b.UnitCost, b.TotalCost, b.PurchaseDate, b.Active, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert input batch: %w", err)
	}
	return nil
}

// Update persiste cantidades y costo total del lote.
func (r *InputBatchRepo) Update(ctx context.Context, b *entity.InputBatch) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE input_batches SET current_quantity = $2, total_cost = $3, active = $4, updated_at = $5
		WHERE id = $1`,
		b.ID, b.CurrentQuantity, b.TotalCost, b.Active, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update input batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, b.ID)
	}
	return nil
}

// ListByInput lotes del insumo, del más reciente al más antiguo.
func (r *InputBatchRepo) ListByInput(ctx context.Context, inputID string, limit, offset int) ([]*entity.InputBatch, error) {
	rows, err := r.q.Query(ctx, batchSelect+`
		WHERE input_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, inputID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list input batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.InputBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan input batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// CreateMovement registra la ENTRADA o SALIDA del lote.
func (r *InputBatchRepo) CreateMovement(ctx context.Context, m *entity.InputBatchMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO input_batch_movements (id, batch_id, input_id, movement_type, quantity, unit_cost,
			purchase_order_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.BatchID, m.InputID, m.Kind, m.Quantity, m.UnitCost,
		nullIfEmpty(m.PurchaseOrderID), m.Notes, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert input batch movement: %w", err)
	}
	return nil
}
