package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"github.com/schedularhq/schedular-api/pkg/apperror"
)

func sampleRequest() *OrderRequest {
	return &OrderRequest{
		Customer: entity.Customer{FirstName: "Maria", LastName: "Santos", SameAsDelivery: true},
		Items: []entity.LineItem{
			{ID: 1, SKU: "DT-1001", Name: "Oak Dining Table", Qty: 1, PriceCents: 199900},
		},
		Payment:  entity.PaymentSelection{Method: enum.PaymentMethodCard},
		Subtotal: 199900,
		Total:    199900,
	}
}

func TestCreateOrder(t *testing.T) {
	var gotAuth string
	var gotBody OrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(OrderResponse{OrderID: "ord_42", OrderNumber: 1042, Status: "pending"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	resp, err := client.CreateOrder(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if resp.OrderID != "ord_42" || resp.OrderNumber != 1042 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotBody.Subtotal != 199900 || len(gotBody.Items) != 1 {
		t.Errorf("payload not sent intact: %+v", gotBody)
	}
}

func TestCreateOrderServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"duplicate order"}`, http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	_, err := client.CreateOrder(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	appErr := apperror.GetAppError(err)
	if appErr == nil {
		t.Fatalf("expected an AppError, got %T", err)
	}
	if appErr.Kind != apperror.KindSubmission {
		t.Errorf("kind = %q, want submission", appErr.Kind)
	}
	if appErr.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", appErr.Code)
	}
}

func TestCreateOrderNetworkFailure(t *testing.T) {
	// A closed server makes the transport fail outright.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "", 2*time.Second)
	_, err := client.CreateOrder(context.Background(), sampleRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Kind != apperror.KindSubmission {
		t.Fatalf("expected a submission error, got %v", err)
	}
	if appErr.Code != http.StatusBadGateway {
		t.Errorf("network failures map to 502, got %d", appErr.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	_, err := client.GetOrder(context.Background(), "ord_missing")
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Code != http.StatusNotFound {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestCancelOrder(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)
	if err := client.CancelOrder(context.Background(), "ord_42"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if gotPath != "/api/v1/orders/ord_42/cancel" {
		t.Errorf("path = %q", gotPath)
	}
}
