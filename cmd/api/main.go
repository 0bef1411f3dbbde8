package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/gateway/chapa"
	"staybook/internal/middleware"
	"staybook/internal/modules/auth"
	"staybook/internal/modules/booking"
	"staybook/internal/modules/listing"
	"staybook/internal/modules/payment"
	"staybook/internal/modules/review"
	jwtsvc "staybook/internal/pkg/jwt"
	"staybook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	gateway := chapa.New(cfg.ChapaBaseURL, cfg.ChapaSecretKey, cfg.GatewayTimeout)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	listingHandler := listing.NewHandler(listing.NewService(listingRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, listingRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, listingRepo))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, userRepo, gateway, payment.Options{
		Currency:    cfg.ChapaCurrency,
		CallbackURL: cfg.CallbackURL,
		ReturnURL:   cfg.ReturnURL,
	}))

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("/")
		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(j))
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))

		authHandler.RegisterRoutes(public)
		listingHandler.RegisterRoutes(public, protected)
		bookingHandler.RegisterRoutes(optional, protected)
		reviewHandler.RegisterRoutes(public, protected)
		paymentHandler.RegisterRoutes(public, protected)
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
