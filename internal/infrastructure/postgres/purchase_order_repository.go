package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra e ítems sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta cabecera e ítems. Devuelve ErrDuplicate si el número ya existe.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, order_number, supplier_id, status, subtotal, total, expected_date,
			received_date, notes, invoice_ref, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID, o.OrderNumber, o.SupplierID, string(o.Status), o.Subtotal, o.Total, o.ExpectedDate,
		o.ReceivedDate, o.Notes, o.InvoiceRef, nullIfEmpty(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de orden %s", domain.ErrDuplicate, o.OrderNumber)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.insertItems(ctx, o.ID, o.Items)
}

func (r *PurchaseOrderRepo) insertItems(ctx context.Context, orderID string, items []entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, position, variant_id, input_id, input_variant_id,
			description, quantity, unit_cost, subtotal, quantity_received)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for i, it := range items {
		variantID, inputID, inputVariantID := targetColumns(it.Target)
		_, err := r.q.Exec(ctx, query,
			it.ID, orderID, i+1, variantID, inputID, inputVariantID,
			it.Description, it.Quantity, it.UnitCost, it.Subtotal, it.QuantityReceived,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// targetColumns reparte el destino de la línea en las tres FKs excluyentes.
func targetColumns(t entity.LineTarget) (variantID, inputID, inputVariantID any) {
	switch t.Kind {
	case entity.TargetVariant:
		return t.ID, nil, nil
	case entity.TargetInput:
		return nil, t.ID, nil
	case entity.TargetInputVariant:
		return nil, nil, t.ID
	}
	return nil, nil, nil
}

const orderSelect = `
	SELECT o.id, o.order_number, o.supplier_id, o.status, o.subtotal, o.total, o.expected_date, o.received_date,
	       o.notes, o.invoice_ref, o.created_by, o.created_at, o.updated_at,
	       s.name, s.tax_id, s.email, s.phone, s.active
	FROM purchase_orders o
	JOIN suppliers s ON s.id = o.supplier_id`

func scanOrder(row interface{ Scan(dest ...any) error }) (*entity.PurchaseOrder, error) {
	var (
		o         entity.PurchaseOrder
		sup       entity.Supplier
		status    string
		createdBy *string
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.SupplierID, &status, &o.Subtotal, &o.Total, &o.ExpectedDate, &o.ReceivedDate,
		&o.Notes, &o.InvoiceRef, &createdBy, &o.CreatedAt, &o.UpdatedAt,
		&sup.Name, &sup.TaxID, &sup.Email, &sup.Phone, &sup.Active)
	if err != nil {
		return nil, err
	}
	o.Status = entity.PurchaseOrderStatus(status)
	o.CreatedBy = derefString(createdBy)
	sup.ID = o.SupplierID
	o.Supplier = &sup
	return &o, nil
}

// GetByID carga cabecera, proveedor e ítems con sus destinos. nil, nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE OF o). Los ítems se leen en una
// sentencia posterior, así que ven lo confirmado por quien tenía el bloqueo.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, id, " FOR UPDATE OF o")
}

func (r *PurchaseOrderRepo) get(ctx context.Context, id, suffix string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`+suffix, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.items(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *PurchaseOrderRepo) items(ctx context.Context, orderID string) ([]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.purchase_order_id, i.variant_id, i.input_id, i.input_variant_id, i.description,
		       i.quantity, i.unit_cost, i.subtotal, i.quantity_received,
		       v.sku, v.stock, v.min_stock, p.name, c.name, sz.name,
		       inp.name, inp.unit, inp.stock, inp.unit_cost,
		       iv.input_id, iv.color_name, iv.size_name, iv.stock
		FROM purchase_order_items i
		LEFT JOIN product_variants v ON v.id = i.variant_id
		LEFT JOIN products p ON p.id = v.product_id
		LEFT JOIN colors c ON c.id = v.color_id
		LEFT JOIN sizes sz ON sz.id = v.size_id
		LEFT JOIN inputs inp ON inp.id = i.input_id
		LEFT JOIN input_variants iv ON iv.id = i.input_variant_id
		WHERE i.purchase_order_id = $1
		ORDER BY i.position`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()

	var list []entity.PurchaseOrderItem
	for rows.Next() {
		var (
			it                                 entity.PurchaseOrderItem
			variantID, inputID, inputVariantID *string
			sku, productName, color, size      *string
			vStock, vMin                       *int
			inName, inUnit                     *string
			inStock, inCost, ivStock           *decimal.Decimal
			ivInputID, ivColor, ivSize         *string
		)
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &variantID, &inputID, &inputVariantID, &it.Description,
			&it.Quantity, &it.UnitCost, &it.Subtotal, &it.QuantityReceived,
			&sku, &vStock, &vMin, &productName, &color, &size,
			&inName, &inUnit, &inStock, &inCost,
			&ivInputID, &ivColor, &ivSize, &ivStock); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		switch {
		case variantID != nil:
			it.Target = entity.VariantTarget(*variantID)
			if sku != nil {
				it.Variant = &entity.Variant{
					ID: *variantID, SKU: *sku, Stock: *vStock, MinStock: *vMin,
					ProductName: derefString(productName), ColorName: derefString(color), SizeName: derefString(size),
				}
			}
		case inputID != nil:
			it.Target = entity.InputTarget(*inputID)
			if inName != nil {
				it.Input = &entity.Input{ID: *inputID, Name: *inName, Unit: derefString(inUnit), Stock: *inStock, UnitCost: *inCost}
			}
		case inputVariantID != nil:
			it.Target = entity.InputVariantTarget(*inputVariantID)
			if ivInputID != nil {
				it.InputVariant = &entity.InputVariant{
					ID: *inputVariantID, InputID: *ivInputID, ColorName: derefString(ivColor), SizeName: derefString(ivSize), Stock: *ivStock,
				}
			}
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// List lista cabeceras con proveedor (sin ítems), más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, fmt.Sprintf("o.supplier_id = $%d", len(args)))
	}
	query := orderSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY o.created_at DESC, o.order_number DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return []*entity.PurchaseOrder{}, nil
		}
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update persiste cabecera y totales.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET supplier_id = $2, expected_date = $3, notes = $4, invoice_ref = $5,
			subtotal = $6, total = $7, updated_at = $8
		WHERE id = $1`,
		o.ID, o.SupplierID, o.ExpectedDate, o.Notes, o.InvoiceRef, o.Subtotal, o.Total, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, o.ID)
	}
	return nil
}

// ReplaceItems borra los ítems de la orden e inserta los nuevos.
func (r *PurchaseOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []entity.PurchaseOrderItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete purchase order items: %w", err)
	}
	return r.insertItems(ctx, orderID, items)
}

// UpdateItemReceived fija la cantidad recibida acumulada de un ítem.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, qty int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`, itemID, qty)
	if err != nil {
		return fmt.Errorf("update item received: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	return nil
}

// UpdateStatus cambia el estado; receivedDate nil conserva la fecha existente.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.PurchaseOrderStatus, receivedDate *time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, received_date = COALESCE($3, received_date), updated_at = now()
		WHERE id = $1`,
		id, string(status), receivedDate,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return nil
}

// Delete elimina la orden; los ítems caen por ON DELETE CASCADE.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

// LockOrderNumbers toma un advisory lock de transacción sobre el prefijo OC-YYYY-.
func (r *PurchaseOrderRepo) LockOrderNumbers(ctx context.Context, prefix string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix); err != nil {
		return fmt.Errorf("lock order numbers: %w", err)
	}
	return nil
}

// LastOrderNumber último número emitido con el prefijo. Ordena por longitud para pasar de 9999.
func (r *PurchaseOrderRepo) LastOrderNumber(ctx context.Context, prefix string) (string, error) {
	var last string
	err := r.q.QueryRow(ctx, `
		SELECT order_number FROM purchase_orders
		WHERE order_number LIKE $1 || '%'
		ORDER BY length(order_number) DESC, order_number DESC
		LIMIT 1`, prefix,
	).Scan(&last)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("last order number: %w", err)
	}
	return last, nil
}
