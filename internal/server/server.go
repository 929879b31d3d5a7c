package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/probashi-portal/apiserver/config"
	"github.com/probashi-portal/apiserver/internal/db"
	"github.com/probashi-portal/apiserver/internal/events"
	"github.com/probashi-portal/apiserver/internal/handlers"
	"github.com/probashi-portal/apiserver/internal/i18n"
	"github.com/probashi-portal/apiserver/internal/payments"
	"github.com/probashi-portal/apiserver/internal/services"
	"github.com/probashi-portal/apiserver/internal/storage"
	"github.com/probashi-portal/apiserver/internal/store"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  *events.Publisher
	logger     zerolog.Logger
}

// New constructs a Server with all portal dependencies wired.
func New(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.JWT.Secret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	translator, err := i18n.New()
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	objectStore, err := newObjectStorage(ctx, cfg.Storage, logger)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	publisher, err := newPublisher(ctx, cfg.Events)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	var gateway payments.Gateway
	if strings.TrimSpace(cfg.Payments.StripeSecretKey) != "" {
		stripeGateway, err := payments.NewStripeGateway(cfg.Payments.StripeSecretKey)
		if err != nil {
			_ = dbConn.Close()
			return nil, err
		}
		gateway = stripeGateway
	}

	userRepo := store.NewUserRepository(dbConn)
	profileRepo := store.NewProfileRepository(dbConn)
	jobRepo := store.NewJobRepository(dbConn)
	courseRepo := store.NewCourseRepository(dbConn)
	applicationRepo := store.NewApplicationRepository(dbConn)
	enrollmentRepo := store.NewEnrollmentRepository(dbConn)
	paymentRepo := store.NewPaymentRepository(dbConn)
	feedbackRepo := store.NewFeedbackRepository(dbConn)
	cvRepo := store.NewCVDocumentRepository(dbConn)

	userService := services.NewUserService(userRepo)
	profileService := services.NewProfileService(profileRepo)
	jobService := services.NewJobService(jobRepo)
	courseService := services.NewCourseService(courseRepo)
	applicationService := services.NewApplicationService(applicationRepo, publisher, logger)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo)
	paymentService := services.NewPaymentService(
		paymentRepo, gateway, publisher, logger,
		cfg.Payments.CoursePrice, cfg.Payments.Currency,
	)
	feedbackService := services.NewFeedbackService(feedbackRepo)
	cvService := services.NewCVService(cvRepo, objectStore, logger)

	guard := handlers.NewGuard(jwtSecret, profileService, nil)

	authHandler := handlers.NewAuthHandler(userService, profileService, guard, translator, jwtSecret)
	profileHandler := handlers.NewProfileHandler(profileService)
	jobHandler := handlers.NewJobHandler(jobService)
	courseHandler := handlers.NewCourseHandler(courseService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, translator)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService, translator)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	cvHandler := handlers.NewCVHandler(cvService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(logger),
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authHandler, guard)
	})
	router.Route("/api/jobs", func(r chi.Router) {
		handlers.JobRouter(r, jobHandler, guard)
	})
	router.Route("/api/courses", func(r chi.Router) {
		r.Use(guard.RequireAuth, guard.RequireProfile)
		handlers.CourseRouter(r, courseHandler, guard)
	})
	router.Route("/api/applications", func(r chi.Router) {
		r.Use(guard.RequireAuth, guard.RequireProfile)
		handlers.ApplicationRouter(r, applicationHandler, guard)
	})
	router.Route("/api/enrollments", func(r chi.Router) {
		r.Use(guard.RequireAuth, guard.RequireProfile)
		handlers.EnrollmentRouter(r, enrollmentHandler)
	})
	router.Route("/api/payments", func(r chi.Router) {
		r.Use(guard.RequireAuth, guard.RequireProfile)
		handlers.PaymentRouter(r, paymentHandler)
	})
	router.Route("/api/feedback", func(r chi.Router) {
		r.Use(guard.RequireAuth, guard.RequireProfile)
		handlers.FeedbackRouter(r, feedbackHandler, guard)
	})
	router.Route("/api/cv", func(r chi.Router) {
		r.Use(guard.RequireAuth, guard.RequireProfile)
		handlers.CVRouter(r, cvHandler)
	})
	router.Route("/api/profiles", func(r chi.Router) {
		r.Use(guard.RequireAuth, guard.RequireProfile)
		handlers.ProfileRouter(r, profileHandler)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

// newObjectStorage selects the CV archive backend. Backend "none"
// disables archiving; rendered CVs stream to the caller only.
func newObjectStorage(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (*storage.Storage, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return nil, nil
	case "minio":
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		wrapped := storage.NewStorage(client)
		if err := wrapped.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return wrapped, nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		wrapped := storage.NewStorage(client)
		if err := wrapped.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return wrapped, nil
	default:
		logger.Warn().Str("backend", cfg.Backend).Msg("unknown storage backend, cv archive disabled")
		return nil, nil
	}
}

// newPublisher selects the event broker backend. Backend "none" keeps a
// nil publisher, which drops every event.
func newPublisher(ctx context.Context, cfg config.EventsConfig) (*events.Publisher, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return nil, nil
	case "rabbitmq":
		backend, err := events.NewRabbitMQBackend(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend), nil
	case "pubsub":
		backend, err := events.NewPubSubBackend(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return events.NewPublisher(backend), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}
