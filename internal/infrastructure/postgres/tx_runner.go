package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La consistencia del stock la dan los SELECT FOR UPDATE de cada repositorio.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories arma todos los repositorios sobre el mismo Querier (pool o tx).
func Repositories(q Querier) repository.TxRepositories {
	return repository.TxRepositories{
		Variants:       NewVariantRepository(q),
		Movements:      NewStockMovementRepository(q),
		Suppliers:      NewSupplierRepository(q),
		Inputs:         NewInputRepository(q),
		InputVariants:  NewInputVariantRepository(q),
		Batches:        NewInputBatchRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
		Catalog:        NewCatalogRepository(q),
	}
}
