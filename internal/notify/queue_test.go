package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/4shenafi/alx-travel-app-0x02/internal/mailer"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/payments"
)

type mapSource map[string]Details

func (m mapSource) PaymentDetails(_ context.Context, ref string) (Details, error) {
	d, ok := m[ref]
	if !ok {
		return Details{}, errors.New("payment not found")
	}
	return d, nil
}

func testDetails() Details {
	return Details{
		UserEmail:     "guest@example.com",
		UserName:      "Abel Tesfaye",
		ListingTitle:  "Cozy Cottage",
		ListingLoc:    "Addis Ababa",
		StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		Guests:        2,
		AmountCents:   4800000,
		Currency:      "ETB",
		Reference:     "ref-1",
		TransactionID: "chapa-tx-1",
	}
}

func TestQueueDeliversConfirmationEmail(t *testing.T) {
	mock := &mailer.Mock{}
	q := NewQueue(8, 2, mapSource{"ref-1": testDetails()}, mock, "noreply@alxtravel.local", "ALX Travel", nil)

	q.Start(context.Background())
	if !q.EnqueuePaymentResult("ref-1", payments.OutcomeConfirmation) {
		t.Fatal("enqueue rejected")
	}
	q.Stop()

	sent := mock.Sent()
	if len(sent) != 1 {
		t.Fatalf("got %d emails, want 1", len(sent))
	}
	e := sent[0]
	if e.To[0] != "guest@example.com" {
		t.Errorf("to = %v", e.To)
	}
	if e.Subject != "Payment Confirmation - Booking for Cozy Cottage" {
		t.Errorf("subject = %q", e.Subject)
	}
	for _, want := range []string{
		"Dear Abel Tesfaye",
		"Property: Cozy Cottage",
		"Amount Paid: 48000.00 ETB",
		"Payment Reference: ref-1",
		"Transaction ID: chapa-tx-1",
	} {
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("body missing %q\n%s", want, e.TextBody)
		}
	}
}

func TestQueueDeliversFailureEmail(t *testing.T) {
	d := testDetails()
	d.FailureReason = "Insufficient funds"
	mock := &mailer.Mock{}
	q := NewQueue(8, 1, mapSource{"ref-1": d}, mock, "noreply@alxtravel.local", "ALX Travel", nil)

	q.Start(context.Background())
	q.EnqueuePaymentResult("ref-1", payments.OutcomeFailure)
	q.Stop()

	sent := mock.Sent()
	if len(sent) != 1 {
		t.Fatalf("got %d emails, want 1", len(sent))
	}
	e := sent[0]
	if e.Subject != "Payment Failed - Booking for Cozy Cottage" {
		t.Errorf("subject = %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "Failure Reason: Insufficient funds") {
		t.Errorf("body missing failure reason\n%s", e.TextBody)
	}
}

func TestQueueFailureEmailDefaultsReason(t *testing.T) {
	mock := &mailer.Mock{}
	q := NewQueue(8, 1, mapSource{"ref-1": testDetails()}, mock, "noreply@alxtravel.local", "ALX Travel", nil)

	q.Start(context.Background())
	q.EnqueuePaymentResult("ref-1", payments.OutcomeFailure)
	q.Stop()

	sent := mock.Sent()
	if len(sent) != 1 {
		t.Fatalf("got %d emails, want 1", len(sent))
	}
	if !strings.Contains(sent[0].TextBody, "Failure Reason: Unknown") {
		t.Errorf("body missing default reason\n%s", sent[0].TextBody)
	}
}

func TestQueueFullEnqueueReturnsFalse(t *testing.T) {
	// Workers never started, so the single slot stays occupied.
	q := NewQueue(1, 1, mapSource{}, &mailer.Mock{}, "f", "n", nil)

	if !q.EnqueuePaymentResult("ref-1", payments.OutcomeConfirmation) {
		t.Fatal("first enqueue should fit")
	}
	if q.EnqueuePaymentResult("ref-2", payments.OutcomeConfirmation) {
		t.Fatal("second enqueue should be rejected, queue full")
	}
}

func TestQueueStopDrainsAcceptedJobs(t *testing.T) {
	src := mapSource{}
	for _, ref := range []string{"r1", "r2", "r3", "r4"} {
		d := testDetails()
		d.Reference = ref
		src[ref] = d
	}
	mock := &mailer.Mock{}
	q := NewQueue(16, 2, src, mock, "f", "n", nil)

	q.Start(context.Background())
	for ref := range src {
		if !q.EnqueuePaymentResult(ref, payments.OutcomeConfirmation) {
			t.Fatalf("enqueue %s rejected", ref)
		}
	}
	q.Stop()

	if got := len(mock.Sent()); got != len(src) {
		t.Fatalf("delivered %d emails, want %d", got, len(src))
	}
}

func TestQueueLookupFailureDropsJob(t *testing.T) {
	mock := &mailer.Mock{}
	q := NewQueue(4, 1, mapSource{}, mock, "f", "n", nil)

	q.Start(context.Background())
	q.EnqueuePaymentResult("missing", payments.OutcomeConfirmation)
	q.Stop()

	if got := len(mock.Sent()); got != 0 {
		t.Fatalf("delivered %d emails, want 0", got)
	}
}

func TestQueueSendFailureIsSwallowed(t *testing.T) {
	mock := &mailer.Mock{Err: errors.New("relay down")}
	q := NewQueue(4, 1, mapSource{"ref-1": testDetails()}, mock, "f", "n", nil)

	q.Start(context.Background())
	q.EnqueuePaymentResult("ref-1", payments.OutcomeConfirmation)
	q.Stop()
	// No panic, no retry loop; nothing delivered.
	if got := len(mock.Sent()); got != 0 {
		t.Fatalf("delivered %d emails, want 0", got)
	}
}
