package payments

import (
	"context"
	"time"

	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/bookings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
)

// Store is the durable ledger behind the payment state machine. All state
// transitions touch a single payment row; the unique index on booking_id is
// the correctness backstop against concurrent duplicate initiations.
type Store interface {
	GetBooking(ctx context.Context, id string) (bookings.Booking, error)
	GetListing(ctx context.Context, id string) (listings.Listing, error)

	// CreatePayment atomically inserts a pending payment; a second payment
	// for the same booking fails with ErrPaymentExists.
	CreatePayment(ctx context.Context, p *Payment) error
	GetByReference(ctx context.Context, reference string) (Payment, error)
	ListByUser(ctx context.Context, userID string) ([]Payment, error)

	MarkInitialized(ctx context.Context, id, transactionID, checkoutURL string) error
	MarkCompleted(ctx context.Context, id, paymentMethod string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error

	RecordGatewayEvent(ctx context.Context, ev *GatewayEvent) error
}
