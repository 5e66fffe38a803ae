package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo altas de catálogo sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// UpsertVariant crea o actualiza la variante por SKU. Las variantes nuevas nacen con stock 0.
func (r *CatalogRepo) UpsertVariant(ctx context.Context, row entity.CatalogVariant) (string, bool, error) {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM product_variants WHERE sku = $1 FOR UPDATE`, row.SKU).Scan(&id)
	switch {
	case err == nil:
		_, err = r.q.Exec(ctx,
			`UPDATE product_variants SET min_stock = $2, active = TRUE, updated_at = now() WHERE id = $1`,
			id, row.MinStock)
		if err != nil {
			return "", false, fmt.Errorf("update variant %s: %w", row.SKU, err)
		}
		return id, false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return "", false, fmt.Errorf("find variant %s: %w", row.SKU, err)
	}

	productID, err := r.ensureNamed(ctx, "products", row.ProductName)
	if err != nil {
		return "", false, err
	}
	colorID, err := r.ensureNamed(ctx, "colors", row.ColorName)
	if err != nil {
		return "", false, err
	}
	sizeID, err := r.ensureNamed(ctx, "sizes", row.SizeName)
	if err != nil {
		return "", false, err
	}

	id = uuid.New().String()
	_, err = r.q.Exec(ctx, `
		INSERT INTO product_variants (id, product_id, color_id, size_id, sku, stock, min_stock, active)
		VALUES ($1, $2, $3, $4, $5, 0, $6, TRUE)`,
		id, productID, nullIfEmpty(colorID), nullIfEmpty(sizeID), row.SKU, row.MinStock)
	if err != nil {
		if isUniqueViolation(err) {
			return "", false, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, row.SKU)
		}
		return "", false, fmt.Errorf("insert variant %s: %w", row.SKU, err)
	}
	return id, true, nil
}

// ensureNamed devuelve el ID de la fila con ese nombre en products, colors o sizes, creándola si falta.
// Un nombre vacío devuelve ID vacío.
func (r *CatalogRepo) ensureNamed(ctx context.Context, table, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	switch table {
	case "products", "colors", "sizes":
	default:
		return "", fmt.Errorf("tabla de catálogo desconocida: %s", table)
	}
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM `+table+` WHERE lower(name) = lower($1) LIMIT 1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("find %s %q: %w", table, name, err)
	}
	id = uuid.New().String()
	if _, err := r.q.Exec(ctx, `INSERT INTO `+table+` (id, name) VALUES ($1, $2)`, id, name); err != nil {
		return "", fmt.Errorf("insert %s %q: %w", table, name, err)
	}
	return id, nil
}

// UpsertSupplier crea o actualiza el proveedor por NIT, o por nombre si no trae NIT.
func (r *CatalogRepo) UpsertSupplier(ctx context.Context, s *entity.Supplier) (bool, error) {
	var id string
	err := r.q.QueryRow(ctx, `
		SELECT id FROM suppliers
		WHERE ($1 <> '' AND tax_id = $1) OR ($1 = '' AND lower(name) = lower($2))
		LIMIT 1 FOR UPDATE`, s.TaxID, s.Name).Scan(&id)
	switch {
	case err == nil:
		s.ID, s.Active = id, true
		_, err = r.q.Exec(ctx,
			`UPDATE suppliers SET name = $2, email = $3, phone = $4, active = TRUE WHERE id = $1`,
			id, s.Name, s.Email, s.Phone)
		if err != nil {
			return false, fmt.Errorf("update supplier %s: %w", s.Name, err)
		}
		return false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("find supplier %s: %w", s.Name, err)
	}

	s.ID, s.Active = uuid.New().String(), true
	_, err = r.q.Exec(ctx,
		`INSERT INTO suppliers (id, name, tax_id, email, phone, active) VALUES ($1, $2, $3, $4, $5, TRUE)`,
		s.ID, s.Name, s.TaxID, s.Email, s.Phone)
	if err != nil {
		return false, fmt.Errorf("insert supplier %s: %w", s.Name, err)
	}
	return true, nil
}
