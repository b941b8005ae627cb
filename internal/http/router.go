package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/4shenafi/alx-travel-app-0x02/internal/http/handlers"
	"github.com/4shenafi/alx-travel-app-0x02/internal/http/middleware"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/bookings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/listings"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/payments"
	"github.com/4shenafi/alx-travel-app-0x02/internal/modules/users"
)

// NewRouter assembles the middleware chain and the /api surface.
func NewRouter(logger *slog.Logger, db *gorm.DB, paySvc *payments.Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	// ErrorHandler must wrap Recovery: it renders after the inner chain
	// returns, which is how a recovered panic becomes a 500 response.
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Recovery(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	usersRepo := users.NewRepo(db)
	listingsH := handlers.NewListingsHandler(listings.NewRepo(db))
	bookingsH := handlers.NewBookingsHandler(bookings.NewRepo(db), listings.NewRepo(db))
	paymentsH := handlers.NewPaymentsHandler(paySvc)
	authH := handlers.NewAuthHandler(usersRepo)

	api := r.Group("/api")
	{
		api.POST("/auth/register/", authH.Register)
		api.POST("/auth/login/", authH.Login)

		api.GET("/listings/", listingsH.List)
		api.GET("/listings/:id/", listingsH.Get)
		api.GET("/listings/:id/reviews/", listingsH.ListReviews)

		// Verification is callable by the gateway callback, so it is public.
		api.POST("/payments/verify/", paymentsH.Verify)
		api.GET("/payments/success/", paymentsH.Success)

		authed := api.Group("", middleware.RequireAuth(usersRepo))
		{
			authed.POST("/listings/", listingsH.Create)
			authed.POST("/listings/:id/reviews/", listingsH.CreateReview)
			authed.POST("/bookings/", bookingsH.Create)
			authed.POST("/payments/initiate/", paymentsH.Initiate)
			authed.GET("/payments/user/", paymentsH.ListMine)
			authed.GET("/payments/:reference/", paymentsH.Get)
		}
	}

	return r
}
