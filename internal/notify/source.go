package notify

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/bookings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/payments"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/users"
)

// Details is everything a payment outcome email needs, loaded by the worker
// at delivery time.
type Details struct {
	UserEmail     string
	UserName      string
	ListingTitle  string
	ListingLoc    string
	StartDate     time.Time
	EndDate       time.Time
	Guests        int
	AmountCents   int64
	Currency      string
	Reference     string
	TransactionID string
	FailureReason string
}

type Source interface {
	PaymentDetails(ctx context.Context, paymentReference string) (Details, error)
}

// DBSource loads email details from the relational store.
type DBSource struct{ db *gorm.DB }

func NewDBSource(db *gorm.DB) *DBSource { return &DBSource{db: db} }

func (s *DBSource) PaymentDetails(ctx context.Context, paymentReference string) (Details, error) {
	var p payments.Payment
	if err := s.db.WithContext(ctx).First(&p, "reference = ?", paymentReference).Error; err != nil {
		return Details{}, err
	}
	var b bookings.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", p.BookingID).Error; err != nil {
		return Details{}, err
	}
	var l listings.Listing
	if err := s.db.WithContext(ctx).First(&l, "id = ?", b.ListingID).Error; err != nil {
		return Details{}, err
	}
	var u users.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", b.UserID).Error; err != nil {
		return Details{}, err
	}

	d := Details{
		UserEmail:    u.Email,
		UserName:     u.FullName(),
		ListingTitle: l.Title,
		ListingLoc:   l.Location,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		Guests:       b.Guests,
		AmountCents:  p.AmountCents,
		Currency:     p.Currency,
		Reference:    p.Reference,
	}
	if p.ChapaTxID != nil {
		d.TransactionID = *p.ChapaTxID
	}
	if p.FailureReason != nil {
		d.FailureReason = *p.FailureReason
	}
	return d, nil
}
