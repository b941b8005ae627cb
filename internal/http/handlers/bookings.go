package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/http/middleware"
	"github.com/4shenafi/alx-travel-app-0x02/internal/http/validation"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/bookings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/apperr"
)

const dateLayout = "2006-01-02"

type BookingsHandler struct {
	Repo     *bookings.Repo
	Listings *listings.Repo
}

func NewBookingsHandler(repo *bookings.Repo, lr *listings.Repo) *BookingsHandler {
	return &BookingsHandler{Repo: repo, Listings: lr}
}

type createBookingRequest struct {
	ListingID string `json:"listing" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Guests    int    `json:"guests" binding:"required,min=1"`
}

func (h *BookingsHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Authentication required"))
		return
	}

	var in createBookingRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", validation.FromBindError(err, &in)))
		return
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", map[string]string{"start_date": "Enter a date as YYYY-MM-DD."}))
		return
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", map[string]string{"end_date": "Enter a date as YYYY-MM-DD."}))
		return
	}
	if !end.After(start) {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", map[string]string{"end_date": "End date must be after start date."}))
		return
	}

	if _, err := h.Listings.GetByID(c.Request.Context(), in.ListingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.InvalidErr("Validation failed", map[string]string{"listing": "Listing does not exist."}))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	b := bookings.Booking{
		ID:        uuid.NewString(),
		ListingID: in.ListingID,
		UserID:    u.ID,
		StartDate: start,
		EndDate:   end,
		Guests:    in.Guests,
		CreatedAt: time.Now(),
	}
	if err := h.Repo.Create(c.Request.Context(), &b); err != nil {
		if errors.Is(err, bookings.ErrDuplicateBooking) {
			middleware.Fail(c, apperr.ConflictErr("Booking already exists for these dates"))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, b)
}
