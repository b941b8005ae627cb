package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/4shenafi/alx-travel-app-0x02/internal/config"
)

func newChapaAgainst(srv *httptest.Server) *ChapaProvider {
	p := NewChapaProvider(config.ChapaConfig{
		BaseURL:   srv.URL,
		SecretKey: "test-secret",
	})
	p.SetHTTPClient(srv.Client())
	return p
}

func TestChapaInitializeTransaction(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Hosted Link","data":{"reference":"chapa-ref-9","checkout_url":"https://checkout.chapa.co/pay/xyz"}}`))
	}))
	defer srv.Close()

	p := newChapaAgainst(srv)
	res, err := p.InitializeTransaction(context.Background(), InitializeRequest{
		AmountCents: 45099,
		Currency:    "ETB",
		Email:       "guest@example.com",
		FirstName:   "Abel",
		LastName:    "Tesfaye",
		TxRef:       "our-ref-1",
		CallbackURL: "https://api.example.com/api/payments/verify/",
		Title:       "Payment for Cozy Cottage",
	})
	if err != nil {
		t.Fatalf("InitializeTransaction: %v", err)
	}

	if gotAuth != "Bearer test-secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotPayload["amount"] != "450.99" {
		t.Errorf("amount = %v, want decimal string 450.99", gotPayload["amount"])
	}
	if gotPayload["tx_ref"] != "our-ref-1" {
		t.Errorf("tx_ref = %v", gotPayload["tx_ref"])
	}
	cust, _ := gotPayload["customization"].(map[string]any)
	if cust["title"] != "Payment for Cozy Cottage" {
		t.Errorf("customization title = %v", cust["title"])
	}

	if res.TransactionID != "chapa-ref-9" {
		t.Errorf("transaction id = %q", res.TransactionID)
	}
	if res.CheckoutURL != "https://checkout.chapa.co/pay/xyz" {
		t.Errorf("checkout url = %q", res.CheckoutURL)
	}
	if len(res.Raw) == 0 {
		t.Error("raw body not kept")
	}
}

func TestChapaInitializeNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid API Key"}`))
	}))
	defer srv.Close()

	p := newChapaAgainst(srv)
	_, err := p.InitializeTransaction(context.Background(), InitializeRequest{TxRef: "r"})

	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *GatewayError", err)
	}
	if ge.Op != "initialize" || ge.StatusCode != http.StatusUnauthorized {
		t.Errorf("gateway error = %+v", ge)
	}
	if ge.Detail() != `{"message":"Invalid API Key"}` {
		t.Errorf("detail = %q", ge.Detail())
	}
}

func TestChapaInitializeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	srv.Close() // connection refused from here on

	p := NewChapaProvider(config.ChapaConfig{BaseURL: srv.URL, SecretKey: "k"})
	p.SetHTTPClient(client)

	_, err := p.InitializeTransaction(context.Background(), InitializeRequest{TxRef: "r"})
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *GatewayError", err)
	}
	if ge.StatusCode != 0 || ge.Err == nil {
		t.Errorf("gateway error = %+v, want wrapped transport error", ge)
	}
}

func TestChapaVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/transaction/verify/chapa-ref-9" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Payment details","data":{"status":"success","payment_method":"telebirr"}}`))
	}))
	defer srv.Close()

	p := newChapaAgainst(srv)
	res, err := p.VerifyTransaction(context.Background(), "chapa-ref-9")
	if err != nil {
		t.Fatalf("VerifyTransaction: %v", err)
	}
	if res.Status != "success" {
		t.Errorf("status = %q", res.Status)
	}
	if res.PaymentMethod != "telebirr" {
		t.Errorf("payment method = %q", res.PaymentMethod)
	}
}

func TestChapaVerifyFailedTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failed","message":"Transaction reference not found","data":{"status":"failed"}}`))
	}))
	defer srv.Close()

	p := newChapaAgainst(srv)
	res, err := p.VerifyTransaction(context.Background(), "nope")
	if err != nil {
		t.Fatalf("VerifyTransaction: %v", err)
	}
	if res.Status != "failed" {
		t.Errorf("status = %q", res.Status)
	}
	if res.Message != "Transaction reference not found" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestChapaVerifyNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream error"))
	}))
	defer srv.Close()

	p := newChapaAgainst(srv)
	_, err := p.VerifyTransaction(context.Background(), "x")
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *GatewayError", err)
	}
	if ge.Op != "verify" || ge.StatusCode != http.StatusBadGateway {
		t.Errorf("gateway error = %+v", ge)
	}
}
