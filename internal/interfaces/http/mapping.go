package http

import (
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	domainpo "github.com/jhoicas/retail-backoffice/internal/domain/purchasing"
)

func toVariantResponse(v *entity.Variant) *dto.VariantResponse {
	if v == nil {
		return nil
	}
	return &dto.VariantResponse{
		ID:          v.ID,
		ProductID:   v.ProductID,
		SKU:         v.SKU,
		ProductName: v.ProductName,
		ColorName:   v.ColorName,
		SizeName:    v.SizeName,
		Stock:       v.Stock,
		MinStock:    v.MinStock,
		Active:      v.Active,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:            m.ID,
		VariantID:     m.VariantID,
		Type:          string(m.Kind),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Notes:         m.Notes,
		UnitCost:      m.UnitCost,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
		Variant:       toVariantResponse(m.Variant),
	}
}

func toBulkResponse(results []appinventory.AdjustmentResult) dto.BulkAdjustmentResponse {
	out := dto.BulkAdjustmentResponse{Results: make([]dto.BulkAdjustmentResult, 0, len(results))}
	for _, r := range results {
		item := dto.BulkAdjustmentResult{
			VariantID:     r.VariantID,
			Status:        r.Status,
			PreviousStock: r.PreviousStock,
			NewStock:      r.NewStock,
		}
		switch r.Status {
		case appinventory.AdjustmentApplied:
			out.Adjusted++
			item.MovementID = r.Movement.ID
		case appinventory.AdjustmentUnchanged:
			out.Unchanged++
		case appinventory.AdjustmentFailed:
			out.Failed++
			item.Code = domain.ErrorCode(r.Err)
			item.Error = r.Err.Error()
		}
		out.Results = append(out.Results, item)
	}
	return out
}

func toLowStockResponse(items []appinventory.LowStockItem) []dto.LowStockItemResponse {
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemResponse{
			Variant:      *toVariantResponse(it.Variant),
			Deficit:      it.Deficit,
			SuggestedQty: it.SuggestedQty,
			Priority:     it.Priority,
		})
	}
	return out
}

func toBatchResponse(b *entity.InputBatch) dto.InputBatchResponse {
	return dto.InputBatchResponse{
		ID:              b.ID,
		InputID:         b.InputID,
		PurchaseOrderID: b.PurchaseOrderID,
		InitialQuantity: b.InitialQuantity,
		CurrentQuantity: b.CurrentQuantity,
		UnitCost:        b.UnitCost,
		TotalCost:       b.TotalCost,
		PurchaseDate:    b.PurchaseDate,
		Active:          b.Active,
	}
}

func toOrderResponse(o *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	resp := dto.PurchaseOrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         string(o.Status),
		AllowedTargets: []string{},
		SupplierID:     o.SupplierID,
		Subtotal:       o.Subtotal,
		Total:          o.Total,
		ExpectedDate:   o.ExpectedDate,
		ReceivedDate:   o.ReceivedDate,
		Notes:          o.Notes,
		InvoiceRef:     o.InvoiceRef,
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	for _, s := range domainpo.AllowedTargets(o.Status) {
		resp.AllowedTargets = append(resp.AllowedTargets, string(s))
	}
	if o.Supplier != nil {
		resp.Supplier = &dto.SupplierResponse{
			ID: o.Supplier.ID, Name: o.Supplier.Name, TaxID: o.Supplier.TaxID, Email: o.Supplier.Email, Phone: o.Supplier.Phone,
		}
	}
	for i := range o.Items {
		it := &o.Items[i]
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			TargetType:       string(it.Target.Kind),
			TargetID:         it.Target.ID,
			TargetName:       targetName(it),
			Description:      it.Description,
			Quantity:         it.Quantity,
			QuantityReceived: it.QuantityReceived,
			Pending:          it.Pending(),
			UnitCost:         it.UnitCost,
			Subtotal:         it.Subtotal,
		})
	}
	return resp
}

func targetName(it *entity.PurchaseOrderItem) string {
	switch {
	case it.Variant != nil:
		return it.Variant.ProductName + " " + it.Variant.SKU
	case it.Input != nil:
		return it.Input.Name
	case it.InputVariant != nil:
		return it.InputVariant.ColorName + " " + it.InputVariant.SizeName
	}
	return ""
}

// lineTarget exige exactamente un destino; si no, devuelve un destino vacío (inválido).
func lineTarget(in dto.PurchaseOrderItemRequest) entity.LineTarget {
	var targets []entity.LineTarget
	if in.VariantID != "" {
		targets = append(targets, entity.VariantTarget(in.VariantID))
	}
	if in.InputID != "" {
		targets = append(targets, entity.InputTarget(in.InputID))
	}
	if in.InputVariantID != "" {
		targets = append(targets, entity.InputVariantTarget(in.InputVariantID))
	}
	if len(targets) != 1 {
		return entity.LineTarget{}
	}
	return targets[0]
}
