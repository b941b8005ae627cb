package bookings

import "errors"

var ErrDuplicateBooking = errors.New("booking already exists for this listing, user and date range")
