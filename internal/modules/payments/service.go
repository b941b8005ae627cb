package payments

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/4shenafi/alx-travel-app-0x02/internal/metrics"
)

// Notifier is the async dispatch hook. Enqueue must not block; it reports
// whether the job was accepted.
type Notifier interface {
	EnqueuePaymentResult(paymentReference, outcome string) bool
}

const (
	OutcomeConfirmation = "confirmation"
	OutcomeFailure      = "failure"
)

// Service drives the payment lifecycle: pending -> completed | failed.
// Identity is always passed in explicitly; there is no ambient current user.
type Service struct {
	store    Store
	provider Provider
	notifier Notifier
	logger   *slog.Logger
	baseURL  string
}

func NewService(store Store, provider Provider, notifier Notifier, logger *slog.Logger, baseURL string) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, provider: provider, notifier: notifier, logger: logger, baseURL: baseURL}
}

type InitiateInput struct {
	ActorUserID string
	BookingID   string
	AmountCents int64
	Currency    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

type InitiateResult struct {
	Reference   string
	CheckoutURL string
	Status      string
}

func (s *Service) Initiate(ctx context.Context, in InitiateInput) (InitiateResult, error) {
	booking, err := s.store.GetBooking(ctx, in.BookingID)
	if err != nil {
		return InitiateResult{}, err
	}
	// A booking owned by someone else is reported as absent, not forbidden.
	if booking.UserID != in.ActorUserID {
		return InitiateResult{}, ErrBookingNotFound
	}

	listing, err := s.store.GetListing(ctx, booking.ListingID)
	if err != nil {
		return InitiateResult{}, err
	}

	// Phase 1: conditional insert of the pending row. The unique booking_id
	// index rejects a concurrent duplicate initiation.
	now := time.Now()
	p := Payment{
		ID:          uuid.NewString(),
		Reference:   uuid.NewString(),
		BookingID:   booking.ID,
		AmountCents: in.AmountCents,
		Currency:    in.Currency,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreatePayment(ctx, &p); err != nil {
		return InitiateResult{}, err
	}

	// Phase 2: gateway call, outside any transaction.
	res, perr := s.provider.InitializeTransaction(ctx, InitializeRequest{
		AmountCents: in.AmountCents,
		Currency:    in.Currency,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		TxRef:       p.Reference,
		CallbackURL: s.baseURL + "/api/payments/verify/",
		ReturnURL:   s.baseURL + "/api/payments/success/",
		Title:       "Payment for " + listing.Title,
		Description: "Booking payment for " + listing.Location,
	})

	// Phase 3: finalize. A gateway failure is absorbed into the ledger as a
	// failed attempt; the row stays persisted.
	if perr != nil {
		reason := perr.Error()
		if ge, ok := perr.(*GatewayError); ok {
			reason = ge.Detail()
		}
		if err := s.store.MarkFailed(ctx, p.ID, reason); err != nil {
			s.logger.ErrorContext(ctx, "payment mark failed errored", "payment_reference", p.Reference, "err", err)
		}
		metrics.PaymentsFailed.Inc()
		s.logger.WarnContext(ctx, "payment initiation rejected by gateway", "payment_reference", p.Reference, "err", perr)
		return InitiateResult{}, perr
	}

	s.recordEvent(ctx, p.ID, "initialize", res.Raw)

	if err := s.store.MarkInitialized(ctx, p.ID, res.TransactionID, res.CheckoutURL); err != nil {
		return InitiateResult{}, err
	}

	metrics.PaymentsInitiated.Inc()
	s.logger.InfoContext(ctx, "payment initiated", "payment_reference", p.Reference, "booking_id", booking.ID)

	return InitiateResult{
		Reference:   p.Reference,
		CheckoutURL: res.CheckoutURL,
		Status:      StatusPending,
	}, nil
}

type VerifyResultOut struct {
	Reference string
	Status    string
	Message   string
	Completed bool
	// AlreadyFinal is set when the payment was in a terminal state before
	// this call; the gateway is not consulted and nothing is re-sent.
	AlreadyFinal bool
}

func (s *Service) Verify(ctx context.Context, reference string) (VerifyResultOut, error) {
	p, err := s.store.GetByReference(ctx, reference)
	if err != nil {
		return VerifyResultOut{}, err
	}

	// Terminal states are immutable; verifying twice must not re-send a
	// notification.
	if IsTerminal(p.Status) {
		return VerifyResultOut{
			Reference:    p.Reference,
			Status:       p.Status,
			Message:      "Payment already finalized",
			Completed:    p.Status == StatusCompleted,
			AlreadyFinal: true,
		}, nil
	}

	if p.ChapaTxID == nil || *p.ChapaTxID == "" {
		return VerifyResultOut{}, ErrNotInitialized
	}

	// A gateway error here leaves the payment untouched and retryable.
	res, err := s.provider.VerifyTransaction(ctx, *p.ChapaTxID)
	if err != nil {
		return VerifyResultOut{}, err
	}

	s.recordEvent(ctx, p.ID, "verify", res.Raw)

	if res.Status == "success" {
		method := res.PaymentMethod
		if method == "" {
			method = "Unknown"
		}
		if err := s.store.MarkCompleted(ctx, p.ID, method, time.Now()); err != nil {
			return VerifyResultOut{}, err
		}
		metrics.PaymentsCompleted.Inc()
		s.enqueue(ctx, p.Reference, OutcomeConfirmation)
		s.logger.InfoContext(ctx, "payment completed", "payment_reference", p.Reference, "payment_method", method)
		return VerifyResultOut{
			Reference: p.Reference,
			Status:    StatusCompleted,
			Message:   "Payment verified and completed successfully",
			Completed: true,
		}, nil
	}

	reason := res.Message
	if reason == "" {
		reason = "Payment failed"
	}
	if err := s.store.MarkFailed(ctx, p.ID, reason); err != nil {
		return VerifyResultOut{}, err
	}
	metrics.PaymentsFailed.Inc()
	s.enqueue(ctx, p.Reference, OutcomeFailure)
	s.logger.InfoContext(ctx, "payment failed on verification", "payment_reference", p.Reference, "reason", reason)
	return VerifyResultOut{
		Reference: p.Reference,
		Status:    StatusFailed,
		Message:   "Payment verification failed",
		Completed: false,
	}, nil
}

// Get returns a payment if the requesting user owns its booking.
func (s *Service) Get(ctx context.Context, reference, actorUserID string) (Payment, error) {
	p, err := s.store.GetByReference(ctx, reference)
	if err != nil {
		return Payment{}, err
	}
	booking, err := s.store.GetBooking(ctx, p.BookingID)
	if err != nil {
		return Payment{}, err
	}
	if booking.UserID != actorUserID {
		return Payment{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Payment, error) {
	return s.store.ListByUser(ctx, userID)
}

// enqueue is fire-and-forget: a full queue is logged, never surfaced.
func (s *Service) enqueue(ctx context.Context, reference, outcome string) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.EnqueuePaymentResult(reference, outcome) {
		s.logger.WarnContext(ctx, "notification queue full, job dropped", "payment_reference", reference, "outcome", outcome)
	}
}

func (s *Service) recordEvent(ctx context.Context, paymentID, op string, raw []byte) {
	if len(raw) == 0 {
		return
	}
	ev := GatewayEvent{
		ID:          uuid.NewString(),
		PaymentID:   paymentID,
		Operation:   op,
		PayloadJSON: datatypes.JSON(raw),
		ReceivedAt:  time.Now(),
	}
	if err := s.store.RecordGatewayEvent(ctx, &ev); err != nil {
		s.logger.ErrorContext(ctx, "gateway event persist failed", "payment_id", paymentID, "op", op, "err", err)
	}
}
