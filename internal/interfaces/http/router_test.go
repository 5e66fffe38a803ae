package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/application/purchasing"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/retail-backoffice/internal/interfaces/http"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

type testAPI struct {
	app   *fiber.App
	store *memory.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	store.AddSupplier(entity.Supplier{ID: "sup-1", Name: "Textiles del Norte", Active: true})
	store.AddVariant(entity.Variant{ID: "v1", SKU: "CAM-NEG-M", Stock: 10, MinStock: 5, Active: true, ProductName: "Camiseta"})
	store.AddVariant(entity.Variant{ID: "v2", SKU: "CAM-BLA-S", Stock: 1, MinStock: 6, Active: true, ProductName: "Camiseta"})
	store.AddInput(entity.Input{ID: "in-1", Name: "Tela algodón", Unit: "m", Active: true})

	repos := store.Repositories()
	log := logger.Nop()
	ledger := appinventory.NewStockLedger(store, repos.Variants, repos.Movements)
	tracker := appinventory.NewBatchTracker(repos.Batches)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:        ledger,
		BulkAdjust:    appinventory.NewBulkAdjustmentUseCase(ledger, 4, log),
		LowStock:      appinventory.NewLowStockUseCase(repos.Variants),
		Batches:       tracker,
		PurchaseOrder: purchasing.NewPurchaseOrderUseCase(store, repos.PurchaseOrders, 3, log),
		Receiving:     purchasing.NewReceivingUseCase(store, ledger, tracker, repos.PurchaseOrders, log),
		OrderPDF:      purchasing.NewPDFUseCase(repos.PurchaseOrders, pdf.NewMarotoPDFGenerator("Retail Backoffice")),
		JWTSecret:     testJWTSecret,
		Log:           log,
	})
	return &testAPI{app: app, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, role string, body any) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", bearer(t, testUserID, role))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if resp.Header.Get("Content-Type") != "application/pdf" {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func (a *testAPI) stock(t *testing.T, id string) int {
	t.Helper()
	v, err := a.store.Repositories().Variants.GetByID(context.Background(), id)
	require.NoError(t, err)
	return v.Stock
}

func TestRecordMovement_HTTP(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodPost, "/api/inventory/movements", "bodeguero", map[string]any{
		"variant_id": "v1", "type": "SALE", "quantity": 4, "reason": "venta mostrador",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	var mov map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &mov))
	assert.EqualValues(t, 10, mov["previous_stock"])
	assert.EqualValues(t, 6, mov["new_stock"])
	assert.Equal(t, testUserID, mov["created_by"])
	assert.Equal(t, 6, api.stock(t, "v1"))
}

func TestRecordMovement_HTTP_Errores(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name   string
		role   string
		body   map[string]any
		status int
		code   string
	}{
		{"rol sin escritura", "vendedor", map[string]any{"variant_id": "v1", "type": "SALE", "quantity": 1}, http.StatusForbidden, "FORBIDDEN"},
		{"cuerpo incompleto", "admin", map[string]any{"type": "SALE", "quantity": 1}, http.StatusBadRequest, "VALIDATION"},
		{"stock insuficiente", "admin", map[string]any{"variant_id": "v1", "type": "SALE", "quantity": 11}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"variante inexistente", "admin", map[string]any{"variant_id": "nope", "type": "SALE", "quantity": 1}, http.StatusNotFound, "VARIANT_NOT_FOUND"},
		{"tipo inválido", "admin", map[string]any{"variant_id": "v1", "type": "GIFT", "quantity": 1}, http.StatusBadRequest, "INVALID_MOVEMENT_KIND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := api.do(t, http.MethodPost, "/api/inventory/movements", tc.role, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Code)
		})
	}
	assert.Equal(t, 10, api.stock(t, "v1"))
}

func TestHistory_HTTP(t *testing.T) {
	api := newTestAPI(t)
	for i := 0; i < 3; i++ {
		resp, _ := api.do(t, http.MethodPost, "/api/inventory/movements", "admin", map[string]any{
			"variant_id": "v1", "type": "PURCHASE", "quantity": 1,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, env := api.do(t, http.MethodGet, "/api/inventory/variants/v1/movements?limit=2", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)

	resp, env = api.do(t, http.MethodGet, "/api/inventory/variants/nope/movements", "vendedor", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "VARIANT_NOT_FOUND", env.Code)
}

func TestBulkAdjust_HTTP(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodPost, "/api/inventory/adjustments/bulk", "bodeguero", map[string]any{
		"reason": "conteo mensual",
		"items": []map[string]any{
			{"variant_id": "v1", "new_stock": 7},
			{"variant_id": "nope", "new_stock": 3},
			{"variant_id": "v2", "new_stock": 1},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Adjusted  int `json:"adjusted"`
		Unchanged int `json:"unchanged"`
		Failed    int `json:"failed"`
		Results   []struct {
			VariantID string `json:"variant_id"`
			Status    string `json:"status"`
			Code      string `json:"code"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 1, out.Adjusted)
	assert.Equal(t, 1, out.Unchanged)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Results, 3)
	assert.Equal(t, "v1", out.Results[0].VariantID)
	assert.Equal(t, appinventory.AdjustmentApplied, out.Results[0].Status)
	assert.Equal(t, "VARIANT_NOT_FOUND", out.Results[1].Code)
	assert.Equal(t, appinventory.AdjustmentUnchanged, out.Results[2].Status)
	assert.Equal(t, 7, api.stock(t, "v1"))

	resp, env = api.do(t, http.MethodPost, "/api/inventory/adjustments/bulk", "bodeguero", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestLowStock_HTTP(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodGet, "/api/inventory/low-stock", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		Variant struct {
			ID string `json:"id"`
		} `json:"variant"`
		Deficit      int `json:"deficit"`
		SuggestedQty int `json:"suggested_qty"`
		Priority     int `json:"priority"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "v2", list[0].Variant.ID)
	assert.Equal(t, 5, list[0].Deficit)
	assert.Equal(t, 8, list[0].SuggestedQty)
	assert.Equal(t, 1, list[0].Priority)
}

func orderBody() map[string]any {
	return map[string]any{
		"supplier_id": "sup-1",
		"notes":       "entrega en bodega principal",
		"items": []map[string]any{
			{"variant_id": "v1", "description": "Camiseta negra M", "quantity": 10, "unit_cost": 15000},
			{"input_id": "in-1", "description": "Tela", "quantity": 5, "unit_cost": 8000},
		},
	}
}

type orderView struct {
	ID                 string   `json:"id"`
	OrderNumber        string   `json:"order_number"`
	Status             string   `json:"status"`
	AllowedTransitions []string `json:"allowed_transitions"`
	Total              string   `json:"total"`
	Items              []struct {
		ID               string `json:"id"`
		TargetType       string `json:"target_type"`
		Quantity         int    `json:"quantity"`
		QuantityReceived int    `json:"quantity_received"`
		Pending          int    `json:"pending"`
	} `json:"items"`
}

func decodeOrder(t *testing.T, env envelope) orderView {
	t.Helper()
	var o orderView
	require.NoError(t, json.Unmarshal(env.Data, &o))
	return o
}

func TestPurchaseOrder_HTTP_CicloCompleto(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodPost, "/api/purchase-orders", "admin", orderBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	order := decodeOrder(t, env)
	assert.Equal(t, fmt.Sprintf("OC-%d-0001", time.Now().Year()), order.OrderNumber)
	assert.Equal(t, "DRAFT", order.Status)
	assert.ElementsMatch(t, []string{"SENT", "CANCELLED"}, order.AllowedTransitions)
	assert.Equal(t, "190000", order.Total)
	require.Len(t, order.Items, 2)

	for _, status := range []string{"SENT", "CONFIRMED"} {
		resp, env = api.do(t, http.MethodPatch, "/api/purchase-orders/"+order.ID+"/status", "admin", map[string]any{"status": status})
		require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	}

	var variantItem string
	for _, it := range order.Items {
		if it.TargetType == "variant" {
			variantItem = it.ID
		}
	}
	resp, env = api.do(t, http.MethodPost, "/api/purchase-orders/"+order.ID+"/receive", "bodeguero", map[string]any{
		"items": []map[string]any{{"item_id": variantItem, "quantity_received": 4}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	assert.Equal(t, "PARTIAL", decodeOrder(t, env).Status)
	assert.Equal(t, 14, api.stock(t, "v1"))

	resp, env = api.do(t, http.MethodPost, "/api/purchase-orders/"+order.ID+"/receive", "bodeguero", map[string]any{
		"items": []map[string]any{{"item_id": variantItem, "quantity_received": 7}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "OVER_RECEIPT", env.Code)
	assert.Equal(t, 14, api.stock(t, "v1"))

	resp, env = api.do(t, http.MethodGet, "/api/purchase-orders?status=PARTIAL", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []orderView
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)

	resp, env = api.do(t, http.MethodDelete, "/api/purchase-orders/"+order.ID, "admin", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ORDER_NOT_DELETABLE", env.Code)
}

func TestPurchaseOrder_HTTP_Validaciones(t *testing.T) {
	api := newTestAPI(t)

	body := orderBody()
	body["items"] = []map[string]any{{"variant_id": "v1", "input_id": "in-1", "quantity": 1, "unit_cost": 10}}
	resp, env := api.do(t, http.MethodPost, "/api/purchase-orders", "admin", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)

	body = orderBody()
	body["supplier_id"] = "nope"
	resp, env = api.do(t, http.MethodPost, "/api/purchase-orders", "admin", body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SUPPLIER_OR_INPUT_NOT_FOUND", env.Code)

	resp, env = api.do(t, http.MethodPost, "/api/purchase-orders", "vendedor", orderBody())
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", env.Code)

	resp, env = api.do(t, http.MethodGet, "/api/purchase-orders/nope", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ORDER_NOT_FOUND", env.Code)

	resp, env = api.do(t, http.MethodGet, "/api/purchase-orders?status=LOST", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestPurchaseOrder_HTTP_TransicionIlegalYEdicion(t *testing.T) {
	api := newTestAPI(t)
	_, env := api.do(t, http.MethodPost, "/api/purchase-orders", "admin", orderBody())
	order := decodeOrder(t, env)

	resp, env := api.do(t, http.MethodPatch, "/api/purchase-orders/"+order.ID+"/status", "admin", map[string]any{"status": "RECEIVED"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ILLEGAL_TRANSITION", env.Code)

	resp, env = api.do(t, http.MethodPatch, "/api/purchase-orders/"+order.ID+"/status", "admin", map[string]any{"status": "LOST"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Code)

	body := orderBody()
	body["items"] = []map[string]any{{"variant_id": "v2", "quantity": 3, "unit_cost": 1000}}
	resp, env = api.do(t, http.MethodPut, "/api/purchase-orders/"+order.ID, "admin", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	updated := decodeOrder(t, env)
	assert.Equal(t, order.OrderNumber, updated.OrderNumber)
	assert.Equal(t, "3000", updated.Total)
	require.Len(t, updated.Items, 1)

	resp, _ = api.do(t, http.MethodDelete, "/api/purchase-orders/"+order.ID, "admin", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = api.do(t, http.MethodGet, "/api/purchase-orders/"+order.ID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchaseOrder_HTTP_PDF(t *testing.T) {
	api := newTestAPI(t)
	_, env := api.do(t, http.MethodPost, "/api/purchase-orders", "admin", orderBody())
	order := decodeOrder(t, env)

	req := httptest.NewRequest(http.MethodGet, "/api/purchase-orders/"+order.ID+"/pdf", nil)
	req.Header.Set("Authorization", bearer(t, testUserID, "vendedor"))
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), order.OrderNumber+".pdf")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestBatches_HTTP(t *testing.T) {
	api := newTestAPI(t)
	_, env := api.do(t, http.MethodPost, "/api/purchase-orders", "admin", orderBody())
	order := decodeOrder(t, env)
	for _, status := range []string{"SENT", "CONFIRMED"} {
		api.do(t, http.MethodPatch, "/api/purchase-orders/"+order.ID+"/status", "admin", map[string]any{"status": status})
	}
	var inputItem string
	for _, it := range order.Items {
		if it.TargetType == "input" {
			inputItem = it.ID
		}
	}
	resp, env := api.do(t, http.MethodPost, "/api/purchase-orders/"+order.ID+"/receive", "bodeguero", map[string]any{
		"items": []map[string]any{{"item_id": inputItem, "quantity_received": 5}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	resp, env = api.do(t, http.MethodGet, "/api/inventory/inputs/in-1/batches", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var batches []struct {
		PurchaseOrderID string `json:"purchase_order_id"`
		CurrentQuantity string `json:"current_quantity"`
		Active          bool   `json:"active"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &batches))
	require.Len(t, batches, 1)
	assert.Equal(t, order.ID, batches[0].PurchaseOrderID)
	assert.Equal(t, "5", batches[0].CurrentQuantity)
	assert.True(t, batches[0].Active)
}
