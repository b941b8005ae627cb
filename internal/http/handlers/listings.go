package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/http/middleware"
	"github.com/4shenafi/alx-travel-app-0x02/internal/http/validation"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/apperr"
	"github.com/4shenafi/alx-travel-app-0x02/internal/shared/money"
)

type ListingsHandler struct {
	Repo *listings.Repo
}

func NewListingsHandler(repo *listings.Repo) *ListingsHandler { return &ListingsHandler{Repo: repo} }

func (h *ListingsHandler) List(c *gin.Context) {
	out, err := h.Repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if out == nil {
		out = []listings.Listing{}
	}
	c.JSON(http.StatusOK, out)
}

func (h *ListingsHandler) Get(c *gin.Context) {
	l, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Listing not found"))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, l)
}

type createListingRequest struct {
	Title         string `json:"title" binding:"required,max=255"`
	Description   string `json:"description" binding:"required"`
	Location      string `json:"location" binding:"required,max=255"`
	PricePerNight string `json:"price_per_night" binding:"required"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
}

func (h *ListingsHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Authentication required"))
		return
	}

	var in createListingRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", validation.FromBindError(err, &in)))
		return
	}

	priceCents, err := money.ParseAmount(in.PricePerNight)
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", map[string]string{"price_per_night": "Enter a valid positive amount."}))
		return
	}

	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = "ETB"
	}

	l := listings.Listing{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Location:      strings.TrimSpace(in.Location),
		PricePerNight: priceCents,
		Currency:      currency,
		OwnerID:       u.ID,
		CreatedAt:     time.Now(),
	}
	if err := h.Repo.Create(c.Request.Context(), &l); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, l)
}

func (h *ListingsHandler) ListReviews(c *gin.Context) {
	listingID := c.Param("id")
	if _, err := h.Repo.GetByID(c.Request.Context(), listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Listing not found"))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	out, err := h.Repo.ListReviews(c.Request.Context(), listingID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if out == nil {
		out = []listings.Review{}
	}
	c.JSON(http.StatusOK, out)
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty"`
}

func (h *ListingsHandler) CreateReview(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Authentication required"))
		return
	}

	listingID := c.Param("id")
	if _, err := h.Repo.GetByID(c.Request.Context(), listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Listing not found"))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var in createReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Validation failed", validation.FromBindError(err, &in)))
		return
	}

	rv := listings.Review{
		ID:        uuid.NewString(),
		ListingID: listingID,
		UserID:    u.ID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now(),
	}
	if err := h.Repo.CreateReview(c.Request.Context(), &rv); err != nil {
		if errors.Is(err, listings.ErrDuplicateReview) {
			middleware.Fail(c, apperr.ConflictErr("You have already reviewed this listing"))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, rv)
}
