package payments

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	// StatusCancelled is reserved for administrative cancellation; no code
	// path transitions into it yet.
	StatusCancelled = "cancelled"
)

// IsTerminal reports whether no further transition is defined for status.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed || status == StatusCancelled
}

// Payment is the ledger record for a booking's payment. One payment per
// booking, enforced by the unique index on booking_id.
type Payment struct {
	ID               string     `gorm:"type:char(36);primaryKey" json:"-"`
	Reference        string     `gorm:"type:char(36);not null;uniqueIndex:ux_payments_reference" json:"payment_reference"`
	BookingID        string     `gorm:"type:char(36);not null;uniqueIndex:ux_payments_booking_id" json:"booking_id"`
	AmountCents      int64      `gorm:"not null" json:"amount_cents"`
	Currency         string     `gorm:"type:char(3);not null" json:"currency"`
	Status           string     `gorm:"type:varchar(20);not null" json:"status"`
	ChapaTxID        *string    `gorm:"column:chapa_transaction_id;type:varchar(255)" json:"chapa_transaction_id,omitempty"`
	ChapaCheckoutURL *string    `gorm:"type:varchar(512)" json:"chapa_checkout_url,omitempty"`
	PaymentMethod    *string    `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	FailureReason    *string    `gorm:"type:text" json:"failure_reason,omitempty"`
	CreatedAt        time.Time  `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"type:datetime(3);not null" json:"updated_at"`
	CompletedAt      *time.Time `gorm:"type:datetime(3)" json:"completed_at,omitempty"`
}

func (Payment) TableName() string { return "payments" }

// GatewayEvent keeps the raw provider response of every initialize/verify
// round trip for diagnosis.
type GatewayEvent struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	PaymentID   string         `gorm:"type:char(36);not null;index:ix_gateway_events_payment_id"`
	Operation   string         `gorm:"type:varchar(32);not null"` // initialize|verify
	PayloadJSON datatypes.JSON `gorm:"type:json"`
	ReceivedAt  time.Time      `gorm:"type:datetime(3);not null"`
}

func (GatewayEvent) TableName() string { return "gateway_events" }
