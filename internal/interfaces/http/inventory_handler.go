package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// InventoryHandler maneja el libro de stock, ajustes masivos, reposición y lotes de insumos (protegido).
type InventoryHandler struct {
	ledger   *appinventory.StockLedger
	bulk     *appinventory.BulkAdjustmentUseCase
	lowStock *appinventory.LowStockUseCase
	batches  *appinventory.BatchTracker
	log      *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *appinventory.StockLedger,
	bulk *appinventory.BulkAdjustmentUseCase,
	lowStock *appinventory.LowStockUseCase,
	batches *appinventory.BatchTracker,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, bulk: bulk, lowStock: lowStock, batches: batches, log: log}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica el movimiento sobre la variante y lo registra en el libro. Para ADJUSTMENT, quantity es el delta con signo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordMovementRequest  true  "variant_id, type, quantity"
// @Success      201   {object}  dto.Response{data=dto.StockMovementResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	mov, err := h.ledger.RecordMovement(c.UserContext(), appinventory.MovementInput{
		VariantID:     in.VariantID,
		Kind:          entity.MovementKind(in.Type),
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		Notes:         in.Notes,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusCreated, toMovementResponse(mov), "movimiento registrado")
}

// History godoc
// @Summary      Historial de movimientos de una variante
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la variante"
// @Param        limit   query  int     false  "Máximo de resultados (default 20, máx. 200)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.Response{data=[]dto.StockMovementResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/variants/{id}/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	p := page(c)
	list, err := h.ledger.History(c.UserContext(), c.Params("id"), p.Limit, p.Offset)
	if err != nil {
		return handleError(c, h.log, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return respond(c, fiber.StatusOK, out, "")
}

// BulkAdjust godoc
// @Summary      Ajuste masivo por conteo físico
// @Description  Cada ítem se aplica de forma independiente; los fallos se reportan por ítem sin afectar al resto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BulkAdjustmentRequest  true  "items con variant_id y new_stock"
// @Success      200   {object}  dto.Response{data=dto.BulkAdjustmentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/bulk [post]
func (h *InventoryHandler) BulkAdjust(c *fiber.Ctx) error {
	var in dto.BulkAdjustmentRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	items := make([]appinventory.AdjustmentItem, 0, len(in.Items))
	for _, it := range in.Items {
		reason := it.Reason
		if reason == "" {
			reason = in.Reason
		}
		items = append(items, appinventory.AdjustmentItem{VariantID: it.VariantID, NewStock: it.NewStock, Reason: reason})
	}
	results := h.bulk.Apply(c.UserContext(), items, GetUserID(c))
	return respond(c, fiber.StatusOK, toBulkResponse(results), "ajuste procesado")
}

// LowStock godoc
// @Summary      Variantes en o bajo su stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados (default 20, máx. 200)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.Response{data=[]dto.LowStockItemResponse}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	p := page(c)
	list, err := h.lowStock.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, toLowStockResponse(list), "")
}

// Batches godoc
// @Summary      Lotes de un insumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del insumo"
// @Param        limit   query  int     false  "Máximo de resultados"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.Response{data=[]dto.InputBatchResponse}
// @Router       /api/inventory/inputs/{id}/batches [get]
func (h *InventoryHandler) Batches(c *fiber.Ctx) error {
	p := page(c)
	list, err := h.batches.Batches(c.UserContext(), c.Params("id"), p.Limit, p.Offset)
	if err != nil {
		return handleError(c, h.log, err)
	}
	out := make([]dto.InputBatchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBatchResponse(b))
	}
	return respond(c, fiber.StatusOK, out, "")
}
