package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/4shenafi/alx-travel-app-0x02/internal/http/middleware"
	"github.com/4shenafi/alx-travel-app-0x02/internal/http/validation"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/payments"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/apperr"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/money"
)

type PaymentsHandler struct {
	Svc *payments.Service
}

func NewPaymentsHandler(svc *payments.Service) *PaymentsHandler { return &PaymentsHandler{Svc: svc} }

type initiatePaymentRequest struct {
	BookingID   string `json:"booking_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,len=3"`
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	PhoneNumber string `json:"phone_number" binding:"required,max=20"`
}

func (h *PaymentsHandler) Initiate(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Authentication required"))
		return
	}

	var in initiatePaymentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", validation.FromBindError(err, &in)))
		return
	}

	amountCents, err := money.ParseAmount(in.Amount)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", map[string]string{"amount": "Enter a valid positive amount."}))
		return
	}

	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = "ETB"
	}

	res, err := h.Svc.Initiate(c.Request.Context(), payments.InitiateInput{
		ActorUserID: u.ID,
		BookingID:   in.BookingID,
		AmountCents: amountCents,
		Currency:    currency,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
	})
	if err != nil {
		failPayment(c, err, "Failed to initiate payment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment_reference": res.Reference,
		"checkout_url":      res.CheckoutURL,
		"status":            res.Status,
		"message":           "Payment initiated successfully",
	})
}

type verifyPaymentRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
}

func (h *PaymentsHandler) Verify(c *gin.Context) {
	var in verifyPaymentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", validation.FromBindError(err, &in)))
		return
	}

	res, err := h.Svc.Verify(c.Request.Context(), in.PaymentReference)
	if err != nil {
		failPayment(c, err, "Failed to verify payment")
		return
	}

	status := http.StatusOK
	if !res.Completed {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"payment_reference": res.Reference,
		"status":            res.Status,
		"message":           res.Message,
	})
}

func (h *PaymentsHandler) Get(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Authentication required"))
		return
	}

	p, err := h.Svc.Get(c.Request.Context(), c.Param("reference"), u.ID)
	if err != nil {
		failPayment(c, err, "Failed to load payment")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentsHandler) ListMine(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Authentication required"))
		return
	}

	out, err := h.Svc.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if out == nil {
		out = []payments.Payment{}
	}
	c.JSON(http.StatusOK, out)
}

// Success is the gateway's return URL target after a hosted checkout.
func (h *PaymentsHandler) Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment processed. You can verify its status via /api/payments/verify/.",
	})
}

// failPayment maps payment domain errors onto the API error contract.
func failPayment(c *gin.Context, err error, gatewayMsg string) {
	var ge *payments.GatewayError
	switch {
	case errors.Is(err, payments.ErrBookingNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Booking not found"))
	case errors.Is(err, payments.ErrPaymentNotFound):
		middleware.Fail(c, apperr.NotFoundErr("Payment not found"))
	case errors.Is(err, payments.ErrPaymentExists):
		middleware.Fail(c, apperr.ConflictErr("Payment already exists for this booking"))
	case errors.Is(err, payments.ErrForbidden):
		middleware.Fail(c, apperr.ForbiddenErr("Permission denied"))
	case errors.Is(err, payments.ErrNotInitialized):
		middleware.Fail(c, apperr.InvalidErr("Payment was never initialized with the gateway", nil))
	case errors.As(err, &ge):
		middleware.Fail(c, apperr.GatewayErr(gatewayMsg, ge.Detail(), ge))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}
