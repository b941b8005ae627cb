package notify

import (
	"fmt"

	"github.com/4shenafi/alx-travel-app-0x02/internal/mailer"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/payments"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/money"
)

const dateLayout = "2006-01-02"

func composeEmail(d Details, outcome, from, fromName string) mailer.Email {
	e := mailer.Email{
		FromName: fromName,
		From:     from,
		To:       []string{d.UserEmail},
	}

	if outcome == payments.OutcomeConfirmation {
		e.Subject = fmt.Sprintf("Payment Confirmation - Booking for %s", d.ListingTitle)
		e.TextBody = fmt.Sprintf(`Dear %s,

Your payment has been successfully processed!

Booking Details:
- Property: %s
- Location: %s
- Check-in: %s
- Check-out: %s
- Guests: %d
- Amount Paid: %s
- Payment Reference: %s
- Transaction ID: %s

Thank you for choosing ALX Travel!

Best regards,
ALX Travel Team
`,
			d.UserName, d.ListingTitle, d.ListingLoc,
			d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout), d.Guests,
			money.FormatWithCurrency(d.AmountCents, d.Currency),
			d.Reference, d.TransactionID)
		return e
	}

	reason := d.FailureReason
	if reason == "" {
		reason = "Unknown"
	}
	e.Subject = fmt.Sprintf("Payment Failed - Booking for %s", d.ListingTitle)
	e.TextBody = fmt.Sprintf(`Dear %s,

Unfortunately, your payment could not be processed.

Booking Details:
- Property: %s
- Location: %s
- Check-in: %s
- Check-out: %s
- Guests: %d
- Amount: %s
- Payment Reference: %s
- Failure Reason: %s

Please try again or contact our support team for assistance.

Best regards,
ALX Travel Team
`,
		d.UserName, d.ListingTitle, d.ListingLoc,
		d.StartDate.Format(dateLayout), d.EndDate.Format(dateLayout), d.Guests,
		money.FormatWithCurrency(d.AmountCents, d.Currency),
		d.Reference, reason)
	return e
}
