// seed carga el catálogo inicial (proveedores y variantes) desde CSV exportados de la hoja de cálculo.
// Las variantes nuevas entran con su stock inicial como movimiento INITIAL del libro de stock.
//
// Uso: go run ./cmd/seed -variantes catalogo.csv [-proveedores proveedores.csv] [-usuario <id>]
// Usa la misma configuración de base de datos que la API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/catalog"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-backoffice/pkg/config"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

func main() {
	variantsPath := flag.String("variantes", "", "CSV de variantes: sku, producto, color, talla, stock_minimo, stock_inicial")
	suppliersPath := flag.String("proveedores", "", "CSV de proveedores: nombre, nit, email, telefono")
	userID := flag.String("usuario", "", "usuario que figura en los movimientos INITIAL")
	flag.Parse()

	if *variantsPath == "" && *suppliersPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	repos := postgres.Repositories(pool)
	txRunner := postgres.NewTxRunner(pool)
	ledger := inventory.NewStockLedger(txRunner, repos.Variants, repos.Movements)
	importer := inventory.NewCatalogImporter(txRunner, ledger, log)

	failed := 0
	if *suppliersPath != "" {
		rows, err := readFile(*suppliersPath, catalog.ReadSuppliers)
		if err != nil {
			log.Fatal().Err(err).Str("file", *suppliersPath).Msg("leer proveedores")
		}
		sum := importer.ImportSuppliers(ctx, rows)
		failed += len(sum.Errors)
		fmt.Printf("Proveedores: %d creados, %d actualizados, %d rechazados\n", sum.Created, sum.Updated, len(sum.Errors))
	}
	if *variantsPath != "" {
		rows, err := readFile(*variantsPath, catalog.ReadVariants)
		if err != nil {
			log.Fatal().Err(err).Str("file", *variantsPath).Msg("leer variantes")
		}
		sum := importer.ImportVariants(ctx, rows, *userID)
		failed += len(sum.Errors)
		fmt.Printf("Variantes: %d creadas, %d actualizadas, %d rechazadas\n", sum.Created, sum.Updated, len(sum.Errors))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}
