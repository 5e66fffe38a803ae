// Package catalog lee archivos CSV de carga de catálogo (variantes y proveedores).
// Acepta UTF-8 (con o sin BOM) o ISO-8859-1, separador "," o ";" y encabezados en cualquier orden.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// Errores de lectura.
var (
	ErrEmptyFile     = errors.New("archivo vacío")
	ErrMissingColumn = errors.New("falta columna obligatoria")
)

// Columnas reconocidas.
const (
	ColSKU          = "sku"
	ColProduct      = "producto"
	ColColor        = "color"
	ColSize         = "talla"
	ColMinStock     = "stock_minimo"
	ColInitialStock = "stock_inicial"

	ColName  = "nombre"
	ColTaxID = "nit"
	ColEmail = "email"
	ColPhone = "telefono"
)

// table filas de datos con su número de línea y el índice de columnas por encabezado.
type table struct {
	header map[string]int
	rows   [][]string
	lines  []int
}

func (t *table) get(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) require(cols ...string) error {
	for _, c := range cols {
		if _, ok := t.header[c]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return nil
}

// ReadVariants lee filas sku;producto;color;talla;stock_minimo;stock_inicial.
// stock_minimo y stock_inicial vacíos valen 0.
func ReadVariants(r io.Reader) ([]entity.CatalogVariant, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(ColSKU, ColProduct); err != nil {
		return nil, err
	}
	out := make([]entity.CatalogVariant, 0, len(t.rows))
	for i, row := range t.rows {
		line := t.lines[i]
		minStock, err := intField(t.get(row, ColMinStock))
		if err != nil {
			return nil, fmt.Errorf("línea %d: %s: %w", line, ColMinStock, err)
		}
		initial, err := intField(t.get(row, ColInitialStock))
		if err != nil {
			return nil, fmt.Errorf("línea %d: %s: %w", line, ColInitialStock, err)
		}
		out = append(out, entity.CatalogVariant{
			Line:         line,
			SKU:          t.get(row, ColSKU),
			ProductName:  t.get(row, ColProduct),
			ColorName:    t.get(row, ColColor),
			SizeName:     t.get(row, ColSize),
			MinStock:     minStock,
			InitialStock: initial,
		})
	}
	return out, nil
}

// ReadSuppliers lee filas nombre;nit;email;telefono.
func ReadSuppliers(r io.Reader) ([]entity.CatalogSupplier, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(ColName); err != nil {
		return nil, err
	}
	out := make([]entity.CatalogSupplier, 0, len(t.rows))
	for i, row := range t.rows {
		out = append(out, entity.CatalogSupplier{
			Line:  t.lines[i],
			Name:  t.get(row, ColName),
			TaxID: t.get(row, ColTaxID),
			Email: t.get(row, ColEmail),
			Phone: t.get(row, ColPhone),
		})
	}
	return out, nil
}

func readTable(r io.Reader) (*table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyFile
	}
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		// Exportaciones de Excel en Windows
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = detectDelimiter(raw)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	t := &table{header: make(map[string]int, len(records[0]))}
	for i, h := range records[0] {
		t.header[normalizeHeader(h)] = i
	}
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, i+2)
	}
	return t, nil
}

// detectDelimiter elige ";" si la primera línea tiene más ";" que ",".
func detectDelimiter(raw []byte) rune {
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.Count(first, []byte{';'}) > bytes.Count(first, []byte{','}) {
		return ';'
	}
	return ','
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "é", "e", "í", "i", "á", "a", "ó", "o", "ú", "u").Replace(h)
	return h
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func intField(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("valor %q no es entero", s)
	}
	return n, nil
}
