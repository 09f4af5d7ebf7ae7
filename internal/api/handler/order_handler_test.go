package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
)

type stubOrderService struct {
	assignedFn func(ctx context.Context, agentID string) ([]domain.Order, error)
	getFn      func(ctx context.Context, orderID string) (*domain.Order, error)
	startFn    func(ctx context.Context, orderID string) error
	completeFn func(ctx context.Context, orderID string) error
}

func (s *stubOrderService) AssignedOrders(ctx context.Context, agentID string) ([]domain.Order, error) {
	return s.assignedFn(ctx, agentID)
}

func (s *stubOrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.getFn(ctx, orderID)
}

func (s *stubOrderService) Start(ctx context.Context, orderID string) error {
	return s.startFn(ctx, orderID)
}

func (s *stubOrderService) Complete(ctx context.Context, orderID string) error {
	return s.completeFn(ctx, orderID)
}

func newOrderContext(e *echo.Echo, method, target, paramName, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(paramName)
	c.SetParamValues(paramValue)
	return c, rec
}

func TestOrderHandler_Assigned_ReturnsOrders(t *testing.T) {
	e := echo.New()
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubOrderService{
		assignedFn: func(ctx context.Context, agentID string) ([]domain.Order, error) {
			if agentID != "68a1f3" {
				t.Fatalf("unexpected agent id: %s", agentID)
			}
			return []domain.Order{
				{ID: "o1", OrderNumber: "ORD001", AssignedAgentID: agentID, Status: domain.StatusPending, CreatedAt: created},
				{ID: "o2", OrderNumber: "ORD002", AssignedAgentID: agentID, Status: domain.StatusInProgress, CreatedAt: created},
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodGet, "/api/orders/assigned/68a1f3", "agent_id", "68a1f3")
	if err := handler.Assigned(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(resp))
	}
	if resp[0]["order_number"] != "ORD001" || resp[1]["status"] != "in_progress" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp[0]["started_at"]; ok {
		t.Fatalf("started_at must be omitted before the order starts")
	}
}

func TestOrderHandler_Assigned_EmptyIsJSONArray(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		assignedFn: func(ctx context.Context, agentID string) ([]domain.Order, error) {
			return nil, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodGet, "/api/orders/assigned/ghost", "agent_id", "ghost")
	if err := handler.Assigned(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestOrderHandler_Get_Success(t *testing.T) {
	e := echo.New()
	started := time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)
	stub := &stubOrderService{
		getFn: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return &domain.Order{
				ID:          orderID,
				OrderNumber: "ORD001",
				Status:      domain.StatusInProgress,
				StartedAt:   &started,
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodGet, "/api/orders/o1", "order_id", "o1")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "o1" || resp["status"] != "in_progress" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["started_at"]; !ok {
		t.Fatalf("started_at missing from in_progress order")
	}
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		getFn: func(ctx context.Context, orderID string) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodGet, "/api/orders/missing", "order_id", "missing")
	_ = handler.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrderHandler_Start_Success(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		startFn: func(ctx context.Context, orderID string) error {
			if orderID != "o1" {
				t.Fatalf("unexpected order id: %s", orderID)
			}
			return nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodPut, "/api/orders/o1/start", "order_id", "o1")
	if err := handler.Start(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Order started successfully" {
		t.Fatalf("unexpected message: %+v", resp)
	}
}

func TestOrderHandler_Start_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		startFn: func(ctx context.Context, orderID string) error {
			return domain.ErrOrderNotFound
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodPut, "/api/orders/missing/start", "order_id", "missing")
	_ = handler.Start(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestOrderHandler_Start_WrongState(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		startFn: func(ctx context.Context, orderID string) error {
			return domain.ErrInvalidTransition
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodPut, "/api/orders/o1/start", "order_id", "o1")
	_ = handler.Start(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestOrderHandler_Complete_Success(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		completeFn: func(ctx context.Context, orderID string) error {
			return nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodPut, "/api/orders/o1/complete", "order_id", "o1")
	if err := handler.Complete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Order completed successfully" {
		t.Fatalf("unexpected message: %+v", resp)
	}
}

func TestOrderHandler_Complete_WrongState(t *testing.T) {
	e := echo.New()
	stub := &stubOrderService{
		completeFn: func(ctx context.Context, orderID string) error {
			return domain.ErrInvalidTransition
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newOrderContext(e, http.MethodPut, "/api/orders/o1/complete", "order_id", "o1")
	_ = handler.Complete(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
