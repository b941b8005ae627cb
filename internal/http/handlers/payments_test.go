package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/4shenafi/alx-travel-app-0x02/internal/http/middleware"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/bookings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/payments"
)

type fakeProvider struct {
	initRes   payments.InitializeResult
	initErr   error
	verifyRes payments.VerifyResult
	verifyErr error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) InitializeTransaction(_ context.Context, _ payments.InitializeRequest) (payments.InitializeResult, error) {
	return p.initRes, p.initErr
}

func (p *fakeProvider) VerifyTransaction(_ context.Context, _ string) (payments.VerifyResult, error) {
	return p.verifyRes, p.verifyErr
}

type noopNotifier struct{}

func (noopNotifier) EnqueuePaymentResult(_, _ string) bool { return true }

const (
	guestID    = "user-guest"
	strangerID = "user-stranger"
	bookingID  = "booking-1"
)

func paymentsFixtures() *payments.MemStore {
	store := payments.NewMemStore()
	store.Listings["listing-1"] = listings.Listing{
		ID:            "listing-1",
		Title:         "Beach House",
		Location:      "Mombasa",
		PricePerNight: 2000000,
		Currency:      "ETB",
		OwnerID:       strangerID,
	}
	store.Bookings[bookingID] = bookings.Booking{
		ID:        bookingID,
		ListingID: "listing-1",
		UserID:    guestID,
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
		Guests:    3,
	}
	return store
}

func newPaymentsRouter(store *payments.MemStore, provider payments.Provider, asUser string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := payments.NewService(store, provider, noopNotifier{}, logger, "https://api.test")
	h := NewPaymentsHandler(svc)

	r := gin.New()
	r.Use(middleware.ErrorHandler(logger))
	if asUser != "" {
		r.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, middleware.ContextUser{ID: asUser, Email: "guest@example.com"})
		})
	}
	api := r.Group("/api")
	api.POST("/payments/initiate/", h.Initiate)
	api.POST("/payments/verify/", h.Verify)
	api.GET("/payments/user/", h.ListMine)
	api.GET("/payments/:reference/", h.Get)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func initiateBody() map[string]any {
	return map[string]any{
		"booking_id":   bookingID,
		"amount":       "60000.00",
		"email":        "guest@example.com",
		"first_name":   "Abel",
		"last_name":    "Tesfaye",
		"phone_number": "0911121314",
	}
}

func TestInitiatePaymentCreated(t *testing.T) {
	store := paymentsFixtures()
	provider := &fakeProvider{initRes: payments.InitializeResult{
		TransactionID: "chapa-tx-1",
		CheckoutURL:   "https://checkout.chapa.co/pay/abc",
	}}
	r := newPaymentsRouter(store, provider, guestID)

	w, out := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", initiateBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if out["status"] != "pending" {
		t.Errorf("status field = %v", out["status"])
	}
	if out["checkout_url"] != "https://checkout.chapa.co/pay/abc" {
		t.Errorf("checkout_url = %v", out["checkout_url"])
	}
	if out["payment_reference"] == "" || out["payment_reference"] == nil {
		t.Error("payment_reference missing")
	}
}

func TestInitiatePaymentValidation(t *testing.T) {
	r := newPaymentsRouter(paymentsFixtures(), &fakeProvider{}, guestID)

	body := initiateBody()
	delete(body, "email")
	w, out := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	fields, _ := out["fields"].(map[string]any)
	if _, ok := fields["email"]; !ok {
		t.Errorf("fields = %v, want email error", out["fields"])
	}
}

func TestInitiatePaymentBadAmount(t *testing.T) {
	r := newPaymentsRouter(paymentsFixtures(), &fakeProvider{}, guestID)

	body := initiateBody()
	body["amount"] = "12.345"
	w, out := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	fields, _ := out["fields"].(map[string]any)
	if _, ok := fields["amount"]; !ok {
		t.Errorf("fields = %v, want amount error", out["fields"])
	}
}

func TestInitiatePaymentDuplicate(t *testing.T) {
	store := paymentsFixtures()
	provider := &fakeProvider{initRes: payments.InitializeResult{TransactionID: "tx", CheckoutURL: "u"}}
	r := newPaymentsRouter(store, provider, guestID)

	if w, _ := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", initiateBody()); w.Code != http.StatusCreated {
		t.Fatalf("first initiate: %d", w.Code)
	}
	w, out := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", initiateBody())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", w.Code)
	}
	if out["error"] != "Payment already exists for this booking" {
		t.Errorf("error = %v", out["error"])
	}
}

func TestInitiatePaymentForeignBookingIs404(t *testing.T) {
	r := newPaymentsRouter(paymentsFixtures(), &fakeProvider{}, strangerID)

	w, out := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", initiateBody())
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if out["error"] != "Booking not found" {
		t.Errorf("error = %v", out["error"])
	}
}

func TestInitiatePaymentGatewayDown(t *testing.T) {
	store := paymentsFixtures()
	provider := &fakeProvider{initErr: &payments.GatewayError{
		Op: "initialize", StatusCode: 401, Body: `{"message":"Invalid API Key"}`,
	}}
	r := newPaymentsRouter(store, provider, guestID)

	w, out := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", initiateBody())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if out["details"] != `{"message":"Invalid API Key"}` {
		t.Errorf("details = %v", out["details"])
	}
}

func TestInitiatePaymentUnauthenticated(t *testing.T) {
	r := newPaymentsRouter(paymentsFixtures(), &fakeProvider{}, "")

	w, _ := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", initiateBody())
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func initiated(t *testing.T, store *payments.MemStore, provider *fakeProvider, r *gin.Engine) string {
	t.Helper()
	provider.initRes = payments.InitializeResult{TransactionID: "chapa-tx-1", CheckoutURL: "u"}
	w, out := doJSON(t, r, http.MethodPost, "/api/payments/initiate/", initiateBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("initiate: %d %s", w.Code, w.Body.String())
	}
	ref, _ := out["payment_reference"].(string)
	return ref
}

func TestVerifyPaymentCompleted(t *testing.T) {
	store := paymentsFixtures()
	provider := &fakeProvider{}
	r := newPaymentsRouter(store, provider, guestID)
	ref := initiated(t, store, provider, r)

	provider.verifyRes = payments.VerifyResult{Status: "success", PaymentMethod: "telebirr"}
	w, out := doJSON(t, r, http.MethodPost, "/api/payments/verify/", map[string]any{"payment_reference": ref})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if out["status"] != "completed" {
		t.Errorf("status field = %v", out["status"])
	}
}

func TestVerifyPaymentFailedIs400(t *testing.T) {
	store := paymentsFixtures()
	provider := &fakeProvider{}
	r := newPaymentsRouter(store, provider, guestID)
	ref := initiated(t, store, provider, r)

	provider.verifyRes = payments.VerifyResult{Status: "failed", Message: "Insufficient funds"}
	w, out := doJSON(t, r, http.MethodPost, "/api/payments/verify/", map[string]any{"payment_reference": ref})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if out["status"] != "failed" {
		t.Errorf("status field = %v", out["status"])
	}
}

func TestVerifyPaymentUnknownReference(t *testing.T) {
	r := newPaymentsRouter(paymentsFixtures(), &fakeProvider{}, guestID)

	w, out := doJSON(t, r, http.MethodPost, "/api/payments/verify/", map[string]any{"payment_reference": "missing"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if out["error"] != "Payment not found" {
		t.Errorf("error = %v", out["error"])
	}
}

func TestGetPaymentOwnership(t *testing.T) {
	store := paymentsFixtures()
	provider := &fakeProvider{}
	owner := newPaymentsRouter(store, provider, guestID)
	ref := initiated(t, store, provider, owner)

	w, out := doJSON(t, owner, http.MethodGet, "/api/payments/"+ref+"/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner status = %d", w.Code)
	}
	if out["payment_reference"] != ref {
		t.Errorf("payment_reference = %v", out["payment_reference"])
	}

	stranger := newPaymentsRouter(store, provider, strangerID)
	if w, _ := doJSON(t, stranger, http.MethodGet, "/api/payments/"+ref+"/", nil); w.Code != http.StatusForbidden {
		t.Fatalf("stranger status = %d, want 403", w.Code)
	}
}

func TestListMinePayments(t *testing.T) {
	store := paymentsFixtures()
	provider := &fakeProvider{}
	r := newPaymentsRouter(store, provider, guestID)
	initiated(t, store, provider, r)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/user/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d payments, want 1", len(out))
	}

	stranger := newPaymentsRouter(store, provider, strangerID)
	req = httptest.NewRequest(http.MethodGet, "/api/payments/user/", nil)
	w = httptest.NewRecorder()
	stranger.ServeHTTP(w, req)
	var none []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &none); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("stranger sees %d payments, want 0", len(none))
	}
}
