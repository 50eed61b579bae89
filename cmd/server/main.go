package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"stayspot/internal/api"
	"stayspot/internal/auth"
	"stayspot/internal/config"
	"stayspot/internal/repository"
	"stayspot/internal/service"
)

func main() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	spotRepo := repository.NewSpotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	sender := service.NewSenderService()
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpireMin)*time.Minute)
	spotSvc := service.NewSpotService(spotRepo)
	bookingSvc := service.NewBookingService(bookingRepo, spotRepo, userRepo, sender)
	reviewSvc := service.NewReviewService(reviewRepo, spotRepo)
	jobSvc := service.NewJobService(maintenanceRepo)

	authHandler := api.NewAuthHandler(authSvc)
	spotHandler := api.NewSpotHandler(spotSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	reviewHandler := api.NewReviewHandler(reviewSvc)

	requireAuth := auth.RequireUser(cfg.JWTSecret)

	r := mux.NewRouter()
	apiRouter := r.PathPrefix("/api").Subrouter()

	// Session endpoints
	apiRouter.HandleFunc("/users", authHandler.Signup).Methods("POST")
	apiRouter.HandleFunc("/session", authHandler.Login).Methods("POST")
	apiRouter.HandleFunc("/session", requireAuth(authHandler.CurrentUser)).Methods("GET")

	// Spots ("/spots/current" must be registered before "/spots/{id}")
	apiRouter.HandleFunc("/spots", spotHandler.ListSpots).Methods("GET")
	apiRouter.HandleFunc("/spots/current", requireAuth(spotHandler.ListOwnSpots)).Methods("GET")
	apiRouter.HandleFunc("/spots/{id}", spotHandler.GetSpot).Methods("GET")
	apiRouter.HandleFunc("/spots", requireAuth(spotHandler.CreateSpot)).Methods("POST")
	apiRouter.HandleFunc("/spots/{id}", requireAuth(spotHandler.UpdateSpot)).Methods("PUT")
	apiRouter.HandleFunc("/spots/{id}", requireAuth(spotHandler.DeleteSpot)).Methods("DELETE")
	apiRouter.HandleFunc("/spots/{id}/images", requireAuth(spotHandler.AddSpotImage)).Methods("POST")

	// Reviews
	apiRouter.HandleFunc("/spots/{id}/reviews", reviewHandler.ListSpotReviews).Methods("GET")
	apiRouter.HandleFunc("/spots/{id}/reviews", requireAuth(reviewHandler.CreateReview)).Methods("POST")

	// Bookings
	apiRouter.HandleFunc("/spots/{id}/bookings", requireAuth(bookingHandler.ListSpotBookings)).Methods("GET")
	apiRouter.HandleFunc("/spots/{id}/bookings", requireAuth(bookingHandler.CreateBooking)).Methods("POST")

	c := cron.New()
	if _, err := c.AddFunc(cfg.AggregateResyncCron, func() {
		if err := jobSvc.ResyncSpotAggregates(); err != nil {
			log.Printf("Aggregate resync failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to register aggregate resync job: %v", err)
	}
	c.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
	)
	server := handlers.LoggingHandler(os.Stdout, api.RequestID(cors(r)))

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, server))
}
