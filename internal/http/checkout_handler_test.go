package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Precipitate-AI/epic/internal/checkout"
)

// --- Mock ---

type CheckoutServiceMock struct {
	result *checkout.Result
	err    error
	called bool
}

func (m *CheckoutServiceMock) Checkout(ctx context.Context, req *checkout.Request) (*checkout.Result, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

const validBody = `{
	"cartItems": [
		{"id": "p1-Color:Sand", "productId": "p1", "name": "Muslin Onesie",
		 "price": 320000, "quantity": 2, "image": "/images/muslin-onesie.jpg",
		 "selectedVariants": {"Color": "Sand"}}
	],
	"customerDetails": {
		"customerName": "Ayu Lestari", "customerEmail": "ayu@example.com",
		"customerPhone": "+628123456789", "shippingAddress": "Jl. Melati No. 5",
		"city": "Bandung", "province": "West Java", "postalCode": "40111"
	}
}`

func TestCheckout_Created(t *testing.T) {
	mock := &CheckoutServiceMock{result: &checkout.Result{
		OrderID:     "EPIC-1-abc",
		Token:       "tok",
		RedirectURL: "https://pay.example/tok",
	}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validBody))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("expected %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response CheckoutResponseDTO
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.OrderID != "EPIC-1-abc" {
		t.Errorf("expected order_id 'EPIC-1-abc', got '%s'", response.OrderID)
	}
	if response.RedirectURL != "https://pay.example/tok" {
		t.Errorf("unexpected redirect_url: %s", response.RedirectURL)
	}
}

func TestCheckout_InvalidJSON(t *testing.T) {
	mock := &CheckoutServiceMock{}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader("{broken"))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if mock.called {
		t.Error("service must not be called for malformed JSON")
	}
}

func TestCheckout_ValidationErrorListsViolations(t *testing.T) {
	mock := &CheckoutServiceMock{err: &checkout.ValidationError{
		Violations: []checkout.Violation{
			{Field: "cartItems", Message: "must contain at least one item"},
			{Field: "customerDetails.customerEmail", Message: "must be a valid email address"},
		},
	}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validBody))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response struct {
		Error   string               `json:"error"`
		Code    string               `json:"code"`
		Details []checkout.Violation `json:"details"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "validation_failed" {
		t.Errorf("expected code 'validation_failed', got '%s'", response.Code)
	}
	if len(response.Details) != 2 {
		t.Errorf("expected 2 violations in details, got %d", len(response.Details))
	}
}

func TestCheckout_PriceMismatchIsConflict(t *testing.T) {
	mock := &CheckoutServiceMock{err: &checkout.PriceMismatchError{ProductID: "p1", Name: "Muslin Onesie"}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validBody))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, recorder.Code)
	}
}

func TestCheckout_GatewayErrorExposesOrderID(t *testing.T) {
	mock := &CheckoutServiceMock{err: &checkout.GatewayError{OrderID: "EPIC-9-z"}}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validBody))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusBadGateway {
		t.Errorf("expected %d, got %d", http.StatusBadGateway, recorder.Code)
	}

	var response struct {
		Details map[string]string `json:"details"`
	}
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Details["order_id"] != "EPIC-9-z" {
		t.Errorf("expected order_id in details, got %v", response.Details)
	}
}

func TestCheckout_UnexpectedErrorIs500(t *testing.T) {
	mock := &CheckoutServiceMock{err: context.DeadlineExceeded}
	handler := NewCheckoutHandler(mock, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/checkout", strings.NewReader(validBody))

	handler.Checkout(recorder, request)

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, recorder.Code)
	}
	// Internals must not leak to the caller
	if strings.Contains(recorder.Body.String(), "deadline") {
		t.Error("internal error details leaked to the response body")
	}
}
