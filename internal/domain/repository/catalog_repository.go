package repository

import (
	"context"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// CatalogRepository alta y actualización del catálogo (variantes y proveedores) desde cargas masivas.
type CatalogRepository interface {
	// UpsertVariant crea producto, color, talla y variante con stock 0 si el SKU no existe; si existe
	// actualiza el mínimo y la reactiva. Nunca toca el stock.
	UpsertVariant(ctx context.Context, row entity.CatalogVariant) (id string, created bool, err error)
	// UpsertSupplier busca por NIT (o por nombre si no trae NIT) y crea o actualiza. Asigna s.ID.
	UpsertSupplier(ctx context.Context, s *entity.Supplier) (created bool, err error)
}
