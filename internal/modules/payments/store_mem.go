package payments

import (
	"context"
	"sync"
	"time"

	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/bookings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
)

// MemStore is an in-memory Store used by tests. It enforces the same
// one-payment-per-booking and unique-reference invariants as the MySQL repo.
type MemStore struct {
	mu        sync.Mutex
	Bookings  map[string]bookings.Booking
	Listings  map[string]listings.Listing
	Payments  map[string]Payment // keyed by payment id
	byBooking map[string]string  // booking id -> payment id
	byRef     map[string]string  // reference -> payment id
	Events    []GatewayEvent
}

func NewMemStore() *MemStore {
	return &MemStore{
		Bookings:  make(map[string]bookings.Booking),
		Listings:  make(map[string]listings.Listing),
		Payments:  make(map[string]Payment),
		byBooking: make(map[string]string),
		byRef:     make(map[string]string),
	}
}

func (s *MemStore) GetBooking(_ context.Context, id string) (bookings.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Bookings[id]
	if !ok {
		return bookings.Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (s *MemStore) GetListing(_ context.Context, id string) (listings.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.Listings[id]
	if !ok {
		return listings.Listing{}, ErrListingNotFound
	}
	return l, nil
}

func (s *MemStore) CreatePayment(_ context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byBooking[p.BookingID]; ok {
		return ErrPaymentExists
	}
	if _, ok := s.byRef[p.Reference]; ok {
		return ErrPaymentExists
	}
	s.Payments[p.ID] = *p
	s.byBooking[p.BookingID] = p.ID
	s.byRef[p.Reference] = p.ID
	return nil
}

func (s *MemStore) GetByReference(_ context.Context, reference string) (Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byRef[reference]
	if !ok {
		return Payment{}, ErrPaymentNotFound
	}
	return s.Payments[id], nil
}

func (s *MemStore) ListByUser(_ context.Context, userID string) ([]Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Payment
	for _, p := range s.Payments {
		if b, ok := s.Bookings[p.BookingID]; ok && b.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) MarkInitialized(_ context.Context, id, transactionID, checkoutURL string) error {
	return s.mutate(id, func(p *Payment) {
		p.ChapaTxID = &transactionID
		p.ChapaCheckoutURL = &checkoutURL
	})
}

func (s *MemStore) MarkCompleted(_ context.Context, id, paymentMethod string, at time.Time) error {
	return s.mutate(id, func(p *Payment) {
		p.Status = StatusCompleted
		p.PaymentMethod = &paymentMethod
		p.CompletedAt = &at
	})
}

func (s *MemStore) MarkFailed(_ context.Context, id, reason string) error {
	return s.mutate(id, func(p *Payment) {
		p.Status = StatusFailed
		p.FailureReason = &reason
	})
}

func (s *MemStore) mutate(id string, fn func(*Payment)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Payments[id]
	if !ok {
		return ErrPaymentNotFound
	}
	fn(&p)
	p.UpdatedAt = time.Now()
	s.Payments[id] = p
	return nil
}

func (s *MemStore) RecordGatewayEvent(_ context.Context, ev *GatewayEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, *ev)
	return nil
}
