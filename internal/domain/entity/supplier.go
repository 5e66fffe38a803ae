package entity

// Supplier proveedor de una orden de compra (solo lectura en este servicio).
type Supplier struct {
	ID     string
	Name   string
	TaxID  string
	Email  string
	Phone  string
	Active bool
}

// CatalogSupplier fila de carga de proveedores.
type CatalogSupplier struct {
	Line  int
	Name  string
	TaxID string
	Email string
	Phone string
}
