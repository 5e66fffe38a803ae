package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// RowError fila rechazada en una carga de catálogo.
type RowError struct {
	Line int
	Key  string // SKU o nombre del proveedor
	Err  error
}

// ImportSummary resultado de una carga de catálogo.
type ImportSummary struct {
	Created int
	Updated int
	Errors  []RowError
}

// CatalogImporter carga variantes y proveedores desde archivos. Cada fila es una transacción:
// una fila inválida no impide cargar las demás. El stock inicial de variantes nuevas entra al
// libro como movimiento INITIAL.
type CatalogImporter struct {
	txRunner TxRunner
	ledger   *StockLedger
	log      *logger.Logger
}

// NewCatalogImporter construye el importador.
func NewCatalogImporter(txRunner TxRunner, ledger *StockLedger, log *logger.Logger) *CatalogImporter {
	return &CatalogImporter{txRunner: txRunner, ledger: ledger, log: log}
}

// ImportVariants crea o actualiza las variantes por SKU.
// El stock inicial solo se aplica a variantes creadas en esta carga.
func (im *CatalogImporter) ImportVariants(ctx context.Context, rows []entity.CatalogVariant, userID string) ImportSummary {
	var sum ImportSummary
	for _, row := range rows {
		row.SKU = strings.TrimSpace(row.SKU)
		row.ProductName = strings.TrimSpace(row.ProductName)
		if err := validateCatalogVariant(row); err != nil {
			sum.Errors = append(sum.Errors, RowError{Line: row.Line, Key: row.SKU, Err: err})
			continue
		}
		var created bool
		err := im.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
			id, isNew, err := repos.Catalog.UpsertVariant(ctx, row)
			if err != nil {
				return err
			}
			created = isNew
			if !isNew || row.InitialStock == 0 {
				return nil
			}
			_, err = im.ledger.RecordMovementInTx(ctx, repos, MovementInput{
				VariantID: id,
				Kind:      entity.MovementInitial,
				Quantity:  row.InitialStock,
				Reason:    "Carga inicial de catálogo",
				UserID:    userID,
			})
			return err
		})
		switch {
		case err != nil:
			sum.Errors = append(sum.Errors, RowError{Line: row.Line, Key: row.SKU, Err: err})
		case created:
			sum.Created++
		default:
			sum.Updated++
		}
	}
	im.logSummary("variantes", len(rows), sum)
	return sum
}

// ImportSuppliers crea o actualiza proveedores por NIT (o nombre).
func (im *CatalogImporter) ImportSuppliers(ctx context.Context, rows []entity.CatalogSupplier) ImportSummary {
	var sum ImportSummary
	for _, row := range rows {
		s := entity.Supplier{
			Name:  strings.TrimSpace(row.Name),
			TaxID: strings.TrimSpace(row.TaxID),
			Email: strings.TrimSpace(row.Email),
			Phone: strings.TrimSpace(row.Phone),
		}
		if s.Name == "" {
			sum.Errors = append(sum.Errors, RowError{Line: row.Line, Key: s.TaxID, Err: fmt.Errorf("%w: nombre obligatorio", domain.ErrInvalidInput)})
			continue
		}
		var created bool
		err := im.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
			var err error
			created, err = repos.Catalog.UpsertSupplier(ctx, &s)
			return err
		})
		switch {
		case err != nil:
			sum.Errors = append(sum.Errors, RowError{Line: row.Line, Key: s.Name, Err: err})
		case created:
			sum.Created++
		default:
			sum.Updated++
		}
	}
	im.logSummary("proveedores", len(rows), sum)
	return sum
}

func validateCatalogVariant(row entity.CatalogVariant) error {
	switch {
	case row.SKU == "":
		return fmt.Errorf("%w: sku obligatorio", domain.ErrInvalidInput)
	case row.ProductName == "":
		return fmt.Errorf("%w: producto obligatorio", domain.ErrInvalidInput)
	case row.MinStock < 0 || row.InitialStock < 0:
		return fmt.Errorf("%w: stock negativo", domain.ErrInvalidInput)
	}
	return nil
}

func (im *CatalogImporter) logSummary(what string, total int, sum ImportSummary) {
	for _, e := range sum.Errors {
		im.log.Warn().Int("line", e.Line).Str("key", e.Key).Err(e.Err).Msg("carga de " + what + ": fila rechazada")
	}
	im.log.Info().
		Int("rows", total).
		Int("created", sum.Created).
		Int("updated", sum.Updated).
		Int("failed", len(sum.Errors)).
		Msg("carga de " + what + " procesada")
}
