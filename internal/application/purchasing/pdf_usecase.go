package purchasing

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// PurchaseOrderPDFGenerator genera el documento imprimible de una orden de compra.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, order *entity.PurchaseOrder) ([]byte, error)
}

// PDFUseCase carga la orden con sus referencias y delega la generación del PDF.
type PDFUseCase struct {
	orders    repository.PurchaseOrderRepository
	generator PurchaseOrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(orders repository.PurchaseOrderRepository, generator PurchaseOrderPDFGenerator) *PDFUseCase {
	return &PDFUseCase{orders: orders, generator: generator}
}

// Generate devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *PDFUseCase) Generate(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	doc, err := uc.generator.GeneratePurchaseOrderPDF(ctx, order)
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf de orden %s: %w", order.OrderNumber, err)
	}
	return doc, order.OrderNumber + ".pdf", nil
}
