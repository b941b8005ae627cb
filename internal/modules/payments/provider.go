package payments

import "context"

type InitializeRequest struct {
	AmountCents int64
	Currency    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
	TxRef       string // our payment reference, used as the provider-facing transaction reference
	CallbackURL string
	ReturnURL   string
	Title       string
	Description string
}

type InitializeResult struct {
	TransactionID string // the provider's own id for the transaction
	CheckoutURL   string
	Raw           []byte // raw response body, persisted for audit
}

type VerifyResult struct {
	Status        string // provider-defined; "success" means paid
	PaymentMethod string
	Message       string // provider message, used as failure_reason on non-success
	Raw           []byte
}

// Provider is the narrow adapter over the payment gateway's two operations.
// Both calls are single-attempt and block for the remote round trip.
type Provider interface {
	Name() string
	InitializeTransaction(ctx context.Context, req InitializeRequest) (InitializeResult, error)
	VerifyTransaction(ctx context.Context, transactionID string) (VerifyResult, error)
}
