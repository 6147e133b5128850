package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/IsaacLanzoni/projeto-belezza/internal/config"
	"github.com/IsaacLanzoni/projeto-belezza/internal/email"
	"github.com/IsaacLanzoni/projeto-belezza/internal/handler"
	appointmentHandler "github.com/IsaacLanzoni/projeto-belezza/internal/handler/appointment"
	authHandler "github.com/IsaacLanzoni/projeto-belezza/internal/handler/auth"
	availabilityHandler "github.com/IsaacLanzoni/projeto-belezza/internal/handler/availability"
	catalogHandler "github.com/IsaacLanzoni/projeto-belezza/internal/handler/catalog"
	scheduleHandler "github.com/IsaacLanzoni/projeto-belezza/internal/handler/schedule"
	"github.com/IsaacLanzoni/projeto-belezza/internal/middleware"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository/postgres"
	"github.com/IsaacLanzoni/projeto-belezza/internal/router"
	authService "github.com/IsaacLanzoni/projeto-belezza/internal/service/auth"
	availabilityService "github.com/IsaacLanzoni/projeto-belezza/internal/service/availability"
	bookingService "github.com/IsaacLanzoni/projeto-belezza/internal/service/booking"
	catalogService "github.com/IsaacLanzoni/projeto-belezza/internal/service/catalog"
	scheduleService "github.com/IsaacLanzoni/projeto-belezza/internal/service/schedule"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/auth"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/metrics"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	professionalRepo := postgres.NewProfessionalRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	m := metrics.NewMetrics("belezza", "api")

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authSvc := authService.NewService(userRepo, professionalRepo, security.NewBcryptHasher(0), jwtSvc)
	catalogSvc := catalogService.NewService(professionalRepo, serviceRepo)
	scheduleSvc := scheduleService.NewService(scheduleRepo, scheduleService.Config{
		GranularityMinutes: cfg.Booking.GranularityMinutes,
		CacheTTL:           cfg.Booking.ScheduleCacheTTL,
	})
	availabilitySvc := availabilityService.NewService(scheduleSvc, appointmentRepo, availabilityService.Config{
		HorizonDays:         cfg.Booking.HorizonDays,
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
	}, m)
	mailer := email.NewService(cfg.SMTP)
	bookingSvc := bookingService.NewService(
		appointmentRepo,
		professionalRepo,
		serviceRepo,
		userRepo,
		outboxRepo,
		availabilitySvc,
		mailer,
		m,
	)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	appointmentH := appointmentHandler.NewHandler(bookingSvc)
	scheduleH := scheduleHandler.NewHandler(scheduleSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		authH,
		catalogH,
		availabilityH,
		appointmentH,
		scheduleH,
		h,
		router.RouterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			RateBurst:         cfg.RateLimit.Burst,
			CORSConfig:        corsConfig,
			MetricsPrefix:     "belezza_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
