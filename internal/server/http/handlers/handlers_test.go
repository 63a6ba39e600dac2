package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/server/http/dto"
	testhelpers "github.com/avelora/shopfront/internal/test"
	facadestubs "github.com/avelora/shopfront/internal/test/facade"
	"github.com/avelora/shopfront/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, target string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func orderBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.CreateOrderRequest{
		Items: []dto.OrderItemPayload{{ProductID: "p-1", ProductName: "hoodie", Quantity: 2, UnitPrice: 10, Size: "M"}},
		Total: 20,
		Customer: dto.CustomerPayload{
			Name:    testhelpers.RandomASCIIString(5, 12),
			Phone:   "+100000000",
			Address: "Somewhere 1",
		},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}

func TestOrderHandlerCreate(t *testing.T) {
	facade := facadestubs.OrderFacadeStub{CreateFn: func(_ context.Context, draft usecase.OrderDraft) (*model.Order, string, error) {
		if len(draft.Items) != 1 || draft.Items[0].ProductID != "p-1" {
			t.Fatalf("unexpected draft passed to facade: %+v", draft)
		}
		return &model.Order{ID: "o-1", DisplayID: 7, Status: model.OrderStatusPending, TotalAmount: 20}, "https://t.example/?text=Order", nil
	}}
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade).Create, orderBody(t), map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var decoded dto.CreateOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Order.DisplayID != 7 || decoded.Order.Status != "Pending" {
		t.Fatalf("unexpected order in response: %+v", decoded.Order)
	}
	if decoded.Handoff == "" {
		t.Fatal("expected handoff link in response")
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade facadestubs.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest},
		{name: "empty order", body: []byte(`{"items":[]}`), facade: facadestubs.OrderFacadeStub{CreateFn: func(context.Context, usecase.OrderDraft) (*model.Order, string, error) {
			return nil, "", domainErrors.ErrEmptyOrder
		}}, status: http.StatusUnprocessableEntity},
		{name: "invalid quantity", body: []byte(`{"items":[{"product_id":"p-1","quantity":0}]}`), facade: facadestubs.OrderFacadeStub{CreateFn: func(context.Context, usecase.OrderDraft) (*model.Order, string, error) {
			return nil, "", domainErrors.ErrInvalidQuantity
		}}, status: http.StatusUnprocessableEntity},
		{name: "not purchasable", body: []byte(`{"items":[{"product_id":"p-1","quantity":1}]}`), facade: facadestubs.OrderFacadeStub{CreateFn: func(context.Context, usecase.OrderDraft) (*model.Order, string, error) {
			return nil, "", domainErrors.ErrNotPurchasable
		}}, status: http.StatusConflict},
		{name: "internal", body: []byte(`{"items":[{"product_id":"p-1","quantity":1}]}`), facade: facadestubs.OrderFacadeStub{CreateFn: func(context.Context, usecase.OrderDraft) (*model.Order, string, error) {
			return nil, "", errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(tt.facade).Create, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestOrderHandlerList(t *testing.T) {
	orders := []model.Order{{ID: "o-1", Status: model.OrderStatusPending}, {ID: "o-2", Status: model.OrderStatusDelivered}}
	facade := facadestubs.OrderFacadeStub{OrdersFn: func(context.Context) ([]model.Order, error) {
		return orders, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != len(orders) {
		t.Fatalf("expected %d orders, got %d", len(orders), len(decoded))
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	facade := facadestubs.OrderFacadeStub{OrdersFn: func(context.Context) ([]model.Order, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade).List, nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	facade := facadestubs.OrderFacadeStub{OrderFn: func(_ context.Context, id string) (*model.Order, error) {
		if id != "o-1" {
			t.Fatalf("unexpected id %q", id)
		}
		return &model.Order{ID: id, Status: model.OrderStatusInTransit}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/o-1", NewOrderHandler(facade).Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.Status != "InTransit" {
		t.Fatalf("unexpected status %q", decoded.Status)
	}
}

func TestOrderHandlerGetNotFound(t *testing.T) {
	facade := facadestubs.OrderFacadeStub{OrderFn: func(context.Context, string) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/missing", NewOrderHandler(facade).Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerTransition(t *testing.T) {
	facade := facadestubs.OrderFacadeStub{TransitionFn: func(_ context.Context, id string, target model.OrderStatus) (*usecase.TransitionResult, error) {
		if target != model.OrderStatusDelivered {
			t.Fatalf("unexpected target %v", target)
		}
		return &usecase.TransitionResult{
			OrderID:        id,
			From:           model.OrderStatusPending,
			To:             target,
			ItemsAttempted: 2,
			ItemsAdjusted:  1,
			SalesRecorded:  2,
			ItemErrors:     []error{errors.New("size M unavailable")},
		}, nil
	}}
	body := []byte(`{"status":"delivered"}`)
	resp := performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/o-1/status", NewOrderHandler(facade).Transition, body, map[string]string{"Content-Type": "application/json"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.TransitionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if decoded.From != "Pending" || decoded.To != "Delivered" {
		t.Fatalf("unexpected transition %+v", decoded)
	}
	if decoded.ItemsAdjusted != 1 || len(decoded.Errors) != 1 {
		t.Fatalf("expected partial failure to be reported, got %+v", decoded)
	}
}

func TestOrderHandlerTransitionFailures(t *testing.T) {
	tests := []struct {
		name   string
		facade facadestubs.OrderFacadeStub
		body   []byte
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "unknown status", body: []byte(`{"status":"Shipped"}`), status: http.StatusUnprocessableEntity},
		{name: "order missing", body: []byte(`{"status":"InTransit"}`), facade: facadestubs.OrderFacadeStub{TransitionFn: func(context.Context, string, model.OrderStatus) (*usecase.TransitionResult, error) {
			return nil, domainErrors.ErrNotFound
		}}, status: http.StatusNotFound},
		{name: "internal", body: []byte(`{"status":"InTransit"}`), facade: facadestubs.OrderFacadeStub{TransitionFn: func(context.Context, string, model.OrderStatus) (*usecase.TransitionResult, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/o-1/status", NewOrderHandler(tt.facade).Transition, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestProductHandlerList(t *testing.T) {
	products := []model.Product{
		{ID: "p-1", Name: "hoodie", Price: 10, Inventory: []model.SizeStock{{Size: "M", Quantity: 3}}},
		{ID: "p-2", Name: "cap", Price: 5, IsImported: true},
	}
	facade := facadestubs.CatalogFacadeStub{ProductsFn: func(context.Context) ([]model.Product, error) {
		return products, nil
	}}
	resp := performRequest(t, http.MethodGet, "/products", "/products", NewProductHandler(facade).List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 products, got %d", len(decoded))
	}
	if decoded[0].TotalStock != 3 || !decoded[0].Purchasable {
		t.Fatalf("unexpected first product %+v", decoded[0])
	}
	if !decoded[1].Purchasable {
		t.Fatal("imported product must stay purchasable without stock")
	}
}

func TestProductHandlerGetNotFound(t *testing.T) {
	facade := facadestubs.CatalogFacadeStub{ProductFn: func(context.Context, string) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/missing", NewProductHandler(facade).Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestSalesHandlerReport(t *testing.T) {
	sales := []model.Sale{{ID: 1, ProductID: "p-1", Quantity: 2, Size: "M", UnitPrice: 10, CostPrice: 4}}
	facade := facadestubs.SalesFacadeStub{ReportFn: func(context.Context) ([]model.Sale, error) {
		return sales, nil
	}}
	resp := performRequest(t, http.MethodGet, "/sales", "/sales", NewSalesHandler(facade).Report, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.SaleResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 sale, got %d", len(decoded))
	}
	if decoded[0].Margin != 6 {
		t.Fatalf("expected unit margin 6, got %v", decoded[0].Margin)
	}
}

func TestSalesHandlerReportEmpty(t *testing.T) {
	facade := facadestubs.SalesFacadeStub{ReportFn: func(context.Context) ([]model.Sale, error) {
		return nil, nil
	}}
	resp := performRequest(t, http.MethodGet, "/sales", "/sales", NewSalesHandler(facade).Report, nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}
}
