package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantSelect = `
	SELECT v.id, v.product_id, v.sku, v.stock, v.min_stock, v.active,
	       p.name, COALESCE(c.name, ''), COALESCE(s.name, ''), v.created_at, v.updated_at
	FROM product_variants v
	JOIN products p ON p.id = v.product_id
	LEFT JOIN colors c ON c.id = v.color_id
	LEFT JOIN sizes s ON s.id = v.size_id`

func scanVariant(row interface{ Scan(dest ...any) error }) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Stock, &v.MinStock, &v.Active,
		&v.ProductName, &v.ColorName, &v.SizeName, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID obtiene una variante con nombres de producto, color y talla.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, variantSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la variante y bloquea su fila (SELECT FOR UPDATE OF v).
func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, variantSelect+` WHERE v.id = $1 FOR UPDATE OF v`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant for update: %w", err)
	}
	return v, nil
}

// UpdateStock escribe el nuevo stock. Solo lo llama el libro de stock.
func (r *VariantRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product_variants SET stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update variant stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrVariantNotFound, id)
	}
	return nil
}

// ListLowStock lista variantes activas en o bajo su mínimo, mayor déficit primero.
func (r *VariantRepo) ListLowStock(ctx context.Context, limit, offset int) ([]*entity.Variant, error) {
	rows, err := r.q.Query(ctx, variantSelect+`
		WHERE v.active AND v.stock <= v.min_stock
		ORDER BY (v.min_stock - v.stock) DESC, v.sku
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
