package entity

import "time"

// Variant es un SKU vendible (producto × color × talla) con su propio stock.
// Stock solo se modifica a través del libro de movimientos.
type Variant struct {
	ID          string
	ProductID   string
	SKU         string
	Stock       int
	MinStock    int
	Active      bool
	ProductName string // solo lectura (join)
	ColorName   string // solo lectura (join)
	SizeName    string // solo lectura (join)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo.
func (v *Variant) IsLowStock() bool {
	return v.Stock <= v.MinStock
}

// CatalogVariant fila de carga de catálogo: identifica la variante por SKU y trae el stock inicial.
type CatalogVariant struct {
	Line         int // línea del archivo de origen (0 si no aplica)
	SKU          string
	ProductName  string
	ColorName    string
	SizeName     string
	MinStock     int
	InitialStock int
}
