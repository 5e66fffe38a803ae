package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de stock sobre PostgreSQL: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra el movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, variant_id, movement_type, quantity, previous_stock, new_stock,
			reason, notes, unit_cost, reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.VariantID, string(m.Kind), m.Quantity, m.PreviousStock, m.NewStock,
		m.Reason, m.Notes, m.UnitCost, nullIfEmpty(m.ReferenceType), nullIfEmpty(m.ReferenceID),
		nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT id, variant_id, movement_type, quantity, previous_stock, new_stock, reason, notes,
	       unit_cost, reference_type, reference_id, created_by, created_at
	FROM stock_movements`

func scanMovement(row interface{ Scan(dest ...any) error }) (*entity.StockMovement, error) {
	var (
		m                         entity.StockMovement
		kind                      string
		refType, refID, createdBy *string
	)
	err := row.Scan(&m.ID, &m.VariantID, &kind, &m.Quantity, &m.PreviousStock, &m.NewStock,
		&m.Reason, &m.Notes, &m.UnitCost, &refType, &refID, &createdBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	m.ReferenceType = derefString(refType)
	m.ReferenceID = derefString(refID)
	m.CreatedBy = derefString(createdBy)
	return &m, nil
}

// GetByID obtiene un movimiento; nil, nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, movementSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByVariant historial de una variante, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, movementSelect+`
		WHERE variant_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
		variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
