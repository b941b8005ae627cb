package bookings

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Create inserts a booking. The unique (listing, user, start, end) index is
// the backstop against duplicates; a duplicate-key error comes back as
// ErrDuplicateBooking.
func (r *Repo) Create(ctx context.Context, b *Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isDup(err) {
			return ErrDuplicateBooking
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return b, err
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
