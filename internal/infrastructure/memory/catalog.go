package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo altas de catálogo en memoria.
type CatalogRepo struct{ s *Store }

func (r *CatalogRepo) UpsertVariant(_ context.Context, row entity.CatalogVariant) (string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.data.variants {
		if v.SKU == row.SKU {
			v.MinStock = row.MinStock
			v.Active = true
			r.s.data.variants[id] = v
			return id, false, nil
		}
	}
	key := strings.ToLower(row.ProductName)
	productID, ok := r.s.data.products[key]
	if !ok {
		productID = uuid.New().String()
		r.s.data.products[key] = productID
	}
	id := uuid.New().String()
	r.s.data.variants[id] = entity.Variant{
		ID:          id,
		ProductID:   productID,
		SKU:         row.SKU,
		MinStock:    row.MinStock,
		Active:      true,
		ProductName: row.ProductName,
		ColorName:   row.ColorName,
		SizeName:    row.SizeName,
	}
	return id, true, nil
}

func (r *CatalogRepo) UpsertSupplier(_ context.Context, s *entity.Supplier) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, cur := range r.s.data.suppliers {
		if (s.TaxID != "" && cur.TaxID == s.TaxID) || (s.TaxID == "" && strings.EqualFold(cur.Name, s.Name)) {
			s.ID = id
			s.Active = true
			r.s.data.suppliers[id] = *s
			return false, nil
		}
	}
	s.ID = uuid.New().String()
	s.Active = true
	r.s.data.suppliers[s.ID] = *s
	return true, nil
}
