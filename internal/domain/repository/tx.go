package repository

// TxRepositories repositorios atados a una misma transacción.
type TxRepositories struct {
	Variants       VariantRepository
	Movements      StockMovementRepository
	Suppliers      SupplierRepository
	Inputs         InputRepository
	InputVariants  InputVariantRepository
	Batches        InputBatchRepository
	PurchaseOrders PurchaseOrderRepository
	Catalog        CatalogRepository
}
