package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sessionRequest() *SessionRequest {
	return &SessionRequest{
		TransactionDetails: TransactionDetails{
			OrderID:     "EPIC-1700000000000-abc12345",
			GrossAmount: 640000,
		},
		ItemDetails: []SessionItem{
			{ID: "p1-Color:Sand", Name: "Muslin Onesie", Price: 320000, Quantity: 2},
		},
		CustomerDetails: SessionCustomer{
			FirstName: "Ayu Lestari",
			Email:     "ayu@example.com",
			Phone:     "+628123456789",
			ShippingAddress: ShippingAddress{
				Address:    "Jl. Melati No. 5",
				City:       "Bandung",
				PostalCode: "40111",
			},
		},
	}
}

func TestCreateSession_Success(t *testing.T) {
	var gotPath string
	var gotBody SessionRequest
	var gotAuthOK bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, _, ok := r.BasicAuth()
		gotAuthOK = ok && user == "server-key-123"
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Session{
			Token:       "tok-99",
			RedirectURL: "https://pay.example/redirect/tok-99",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "server-key-123", 5*time.Second)
	session, err := client.CreateSession(context.Background(), sessionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/snap/v1/transactions" {
		t.Errorf("expected path /snap/v1/transactions, got %s", gotPath)
	}
	if !gotAuthOK {
		t.Error("expected basic auth with the server key")
	}
	if gotBody.TransactionDetails.OrderID != "EPIC-1700000000000-abc12345" {
		t.Errorf("unexpected order_id: %s", gotBody.TransactionDetails.OrderID)
	}
	if gotBody.TransactionDetails.GrossAmount != 640000 {
		t.Errorf("unexpected gross_amount: %d", gotBody.TransactionDetails.GrossAmount)
	}
	if session.Token != "tok-99" {
		t.Errorf("expected token 'tok-99', got '%s'", session.Token)
	}
	if session.RedirectURL != "https://pay.example/redirect/tok-99" {
		t.Errorf("unexpected redirect_url: %s", session.RedirectURL)
	}
}

func TestCreateSession_GatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_messages":["unauthorized"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", 5*time.Second)
	_, err := client.CreateSession(context.Background(), sessionRequest())
	if err == nil {
		t.Fatal("expected error for rejected session request")
	}
}

func TestCreateSession_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", 20*time.Millisecond)
	_, err := client.CreateSession(context.Background(), sessionRequest())
	if err == nil {
		t.Fatal("expected timeout error")
	}
}
