package payments

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/bookings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
)

// Repo is the MySQL-backed Store.
type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetBooking(ctx context.Context, id string) (bookings.Booking, error) {
	var b bookings.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bookings.Booking{}, ErrBookingNotFound
		}
		return bookings.Booking{}, err
	}
	return b, nil
}

func (r *Repo) GetListing(ctx context.Context, id string) (listings.Listing, error) {
	var l listings.Listing
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return listings.Listing{}, ErrListingNotFound
		}
		return listings.Listing{}, err
	}
	return l, nil
}

func (r *Repo) CreatePayment(ctx context.Context, p *Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDup(err) {
			return ErrPaymentExists
		}
		return err
	}
	return nil
}

func (r *Repo) GetByReference(ctx context.Context, reference string) (Payment, error) {
	var p Payment
	if err := r.db.WithContext(ctx).First(&p, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}
		return Payment{}, err
	}
	return p, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Payment, error) {
	var out []Payment
	err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("bookings.user_id = ?", userID).
		Order("payments.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *Repo) MarkInitialized(ctx context.Context, id, transactionID, checkoutURL string) error {
	return r.update(ctx, id, map[string]any{
		"chapa_transaction_id": transactionID,
		"chapa_checkout_url":   checkoutURL,
	})
}

func (r *Repo) MarkCompleted(ctx context.Context, id, paymentMethod string, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"status":         StatusCompleted,
		"payment_method": paymentMethod,
		"completed_at":   at,
	})
}

func (r *Repo) MarkFailed(ctx context.Context, id, reason string) error {
	return r.update(ctx, id, map[string]any{
		"status":         StatusFailed,
		"failure_reason": reason,
	})
}

func (r *Repo) update(ctx context.Context, id string, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	return r.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repo) RecordGatewayEvent(ctx context.Context, ev *GatewayEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
