package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/application/purchasing"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// PurchaseOrderHandler maneja órdenes de compra: CRUD, estados, recepción y PDF (protegido).
type PurchaseOrderHandler struct {
	orders    *purchasing.PurchaseOrderUseCase
	receiving *purchasing.ReceivingUseCase
	pdf       *purchasing.PDFUseCase
	log       *logger.Logger
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(
	orders *purchasing.PurchaseOrderUseCase,
	receiving *purchasing.ReceivingUseCase,
	pdf *purchasing.PDFUseCase,
	log *logger.Logger,
) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orders: orders, receiving: receiving, pdf: pdf, log: log}
}

func orderInput(in dto.PurchaseOrderRequest, userID string) purchasing.OrderInput {
	out := purchasing.OrderInput{
		SupplierID:   in.SupplierID,
		ExpectedDate: in.ExpectedDate,
		Notes:        in.Notes,
		InvoiceRef:   in.InvoiceRef,
		UserID:       userID,
		Items:        make([]purchasing.ItemInput, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		out.Items = append(out.Items, purchasing.ItemInput{
			Target:      lineTarget(it),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
		})
	}
	return out
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Crea la orden en DRAFT con número OC-YYYY-NNNN. Cada ítem lleva exactamente uno de variant_id, input_id o input_variant_id.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PurchaseOrderRequest  true  "supplier_id e items"
// @Success      201   {object}  dto.Response{data=dto.PurchaseOrderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.PurchaseOrderRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	order, err := h.orders.Create(c.UserContext(), orderInput(in, GetUserID(c)))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusCreated, toOrderResponse(order), "orden creada")
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "DRAFT | SENT | CONFIRMED | PARTIAL | RECEIVED | CANCELLED"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        limit        query  int     false  "Máximo de resultados (default 20, máx. 200)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.Response{data=[]dto.PurchaseOrderResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	p := page(c)
	list, err := h.orders.List(c.UserContext(), repository.PurchaseOrderFilter{
		Status:     entity.PurchaseOrderStatus(c.Query("status")),
		SupplierID: c.Query("supplier_id"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return handleError(c, h.log, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return respond(c, fiber.StatusOK, out, "")
}

// GetByID godoc
// @Summary      Obtener orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.Response{data=dto.PurchaseOrderResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, toOrderResponse(order), "")
}

// Update godoc
// @Summary      Editar orden de compra
// @Description  Reemplaza cabecera e ítems. Solo en DRAFT o CANCELLED.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la orden"
// @Param        body  body      dto.PurchaseOrderRequest  true  "supplier_id e items"
// @Success      200   {object}  dto.Response{data=dto.PurchaseOrderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *fiber.Ctx) error {
	var in dto.PurchaseOrderRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	order, err := h.orders.Update(c.UserContext(), c.Params("id"), orderInput(in, GetUserID(c)))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, toOrderResponse(order), "orden actualizada")
}

// Delete godoc
// @Summary      Eliminar orden de compra
// @Description  Solo en DRAFT o CANCELLED.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, nil, "orden eliminada")
}

// Transition godoc
// @Summary      Cambiar estado de la orden
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID de la orden"
// @Param        body  body      dto.TransitionRequest  true  "estado destino"
// @Success      200   {object}  dto.Response{data=dto.PurchaseOrderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *PurchaseOrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	order, err := h.orders.Transition(c.UserContext(), c.Params("id"), entity.PurchaseOrderStatus(in.Status))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, toOrderResponse(order), "estado actualizado")
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Description  Suma cantidades recibidas por ítem. Todo o nada: si una línea excede lo pendiente no se aplica ninguna.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID de la orden"
// @Param        body  body      dto.ReceiveRequest  true  "item_id y quantity_received"
// @Success      200   {object}  dto.Response{data=dto.PurchaseOrderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if valid, err := parseBody(c, &in); !valid {
		return err
	}
	lines := make([]purchasing.ReceiveLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, purchasing.ReceiveLine{ItemID: it.ItemID, QuantityReceived: it.QuantityReceived})
	}
	order, err := h.receiving.Receive(c.UserContext(), c.Params("id"), lines, GetUserID(c))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return respond(c, fiber.StatusOK, toOrderResponse(order), "recepción registrada")
}

// PDF godoc
// @Summary      Descargar PDF de la orden
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/pdf [get]
func (h *PurchaseOrderHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.pdf.Generate(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(doc)
}
