package purchasing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/purchasing"
)

var allStatuses = []entity.PurchaseOrderStatus{
	entity.StatusDraft, entity.StatusSent, entity.StatusConfirmed,
	entity.StatusPartial, entity.StatusReceived, entity.StatusCancelled,
}

func TestCanTransition_Tabla(t *testing.T) {
	allowed := map[entity.PurchaseOrderStatus][]entity.PurchaseOrderStatus{
		entity.StatusDraft:     {entity.StatusSent, entity.StatusCancelled},
		entity.StatusSent:      {entity.StatusConfirmed, entity.StatusCancelled},
		entity.StatusConfirmed: {entity.StatusPartial, entity.StatusReceived, entity.StatusCancelled},
		entity.StatusPartial:   {entity.StatusReceived, entity.StatusCancelled},
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			assert.Equal(t, want, purchasing.CanTransition(from, to), "%s -> %s", from, to)
		}
		assert.Equal(t, allowed[from], purchasing.AllowedTargets(from), "destinos desde %s", from)
	}
}

func TestTransition_DraftAPartialFalla(t *testing.T) {
	order := &entity.PurchaseOrder{ID: "po-1", Status: entity.StatusDraft}
	err := purchasing.Transition(order, entity.StatusPartial, time.Now)

	require.ErrorIs(t, err, domain.ErrIllegalTransition)
	var te *domain.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "po-1", te.OrderID)
	assert.Equal(t, "DRAFT", te.From)
	assert.Equal(t, "PARTIAL", te.To)
	assert.Equal(t, entity.StatusDraft, order.Status, "el estado no cambia")
}

func TestTransition_TerminalesNoSalen(t *testing.T) {
	for _, from := range []entity.PurchaseOrderStatus{entity.StatusReceived, entity.StatusCancelled} {
		assert.True(t, purchasing.IsTerminal(from))
		for _, to := range allStatuses {
			order := &entity.PurchaseOrder{Status: from}
			assert.ErrorIs(t, purchasing.Transition(order, to, time.Now), domain.ErrIllegalTransition)
		}
	}
}

func TestTransition_RecibidaSellaFecha(t *testing.T) {
	fixed := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	order := &entity.PurchaseOrder{Status: entity.StatusConfirmed}
	require.NoError(t, purchasing.Transition(order, entity.StatusReceived, func() time.Time { return fixed }))

	assert.Equal(t, entity.StatusReceived, order.Status)
	require.NotNil(t, order.ReceivedDate)
	assert.Equal(t, fixed, *order.ReceivedDate)
}

func TestEditableYBorrable(t *testing.T) {
	for _, s := range allStatuses {
		want := s == entity.StatusDraft || s == entity.StatusCancelled
		assert.Equal(t, want, purchasing.IsEditable(s), "editable %s", s)
		assert.Equal(t, want, purchasing.IsDeletable(s), "borrable %s", s)
		assert.Equal(t, s == entity.StatusConfirmed || s == entity.StatusPartial, purchasing.IsReceivable(s), "recibible %s", s)
	}
	assert.False(t, purchasing.ValidStatus("ARCHIVED"))
}

func TestDeriveReceivingStatus(t *testing.T) {
	items := func(pairs ...[2]int) []entity.PurchaseOrderItem {
		out := make([]entity.PurchaseOrderItem, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, entity.PurchaseOrderItem{Quantity: p[0], QuantityReceived: p[1]})
		}
		return out
	}
	assert.Equal(t, entity.StatusConfirmed, purchasing.DeriveReceivingStatus(entity.StatusConfirmed, items([2]int{10, 0}, [2]int{5, 0})))
	assert.Equal(t, entity.StatusPartial, purchasing.DeriveReceivingStatus(entity.StatusConfirmed, items([2]int{10, 4}, [2]int{5, 0})))
	assert.Equal(t, entity.StatusReceived, purchasing.DeriveReceivingStatus(entity.StatusPartial, items([2]int{10, 10}, [2]int{5, 5})))
	assert.Equal(t, entity.StatusConfirmed, purchasing.DeriveReceivingStatus(entity.StatusConfirmed, nil))
}
