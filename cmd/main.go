package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/aeterna-motors/booking-api/internal/handlers"
	"github.com/aeterna-motors/booking-api/internal/jwt"
	"github.com/aeterna-motors/booking-api/internal/kafka"
	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/middlewares"
	"github.com/aeterna-motors/booking-api/internal/repositories"
	"github.com/aeterna-motors/booking-api/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// insecureDefaultJWTSecret is substituted when JWT_SECRET_KEY is unset.
// Running with it is a configuration error and is logged as such.
const insecureDefaultJWTSecret = "insecure-default-change-me"

// @title Aeterna booking API
// @version 1.0.0
// @description Backend for the Aeterna hypercar site: signup/login and car-booking submission with unique reference codes
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		kafkaBrokers, kafkaTopic,
		logLevel, jwtSecret, jwtExpHour,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		kafkaBrokers, kafkaTopic,
		logLevel,
		jwtSecret, jwtExpHour,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// all application, database, Kafka, logging, and JWT configuration.
func parseConfig(path string) (
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	kafkaBrokers []string, kafkaTopic string,
	logLevel string,
	jwtSecretKey string, jwtExpHour int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "aeterna")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Kafka config; empty broker list disables event publishing
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		kafkaBrokers = strings.Split(brokers, ",")
	}
	kafkaTopic = getEnv("KAFKA_BOOKING_TOPIC", "bookings")

	// JWT config; empty secret triggers the insecure fallback in run
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "")
	if jwtExpHour, err = strconv.Atoi(getEnv("JWT_EXP_HOUR", "168")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Kafka producer, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	kafkaBrokers []string, kafkaTopic string,
	logLevel string,
	jwtSecretKey string, jwtExpHour int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Initialize JWT service
	if jwtSecretKey == "" {
		logger.Log.Error("JWT_SECRET_KEY is not set, falling back to an insecure default; do not run this in production")
		jwtSecretKey = insecureDefaultJWTSecret
	}
	jwtSvc := jwt.New(jwtSecretKey, time.Duration(jwtExpHour)*time.Hour)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	bookingReadRepo := repositories.NewBookingReadRepository(db)
	bookingWriteRepo := repositories.NewBookingWriteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, jwtSvc)

	var bookingOpts []services.BookingServiceOption
	if len(kafkaBrokers) > 0 {
		producer := kafka.NewProducer(kafkaBrokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts, services.WithEventPublisher(producer, kafkaTopic))
		logger.Log.Infof("Kafka producer initialized for topic %s", kafkaTopic)
	}
	bookingService := services.NewBookingService(bookingReadRepo, bookingWriteRepo, bookingOpts...)

	// Initialize handlers
	signupHandler := handlers.NewSignupHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	meHandler := handlers.NewMeHandler(authService)
	createBookingHandler := handlers.NewCreateBookingHandler(bookingService, jwtSvc)
	listBookingsHandler := handlers.NewListBookingsHandler(bookingService)
	getBookingHandler := handlers.NewGetBookingHandler(bookingService)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes; booking submission accepts an optional bearer token
	r.Post("/api/auth/signup", signupHandler)
	r.Post("/api/auth/login", loginHandler)
	r.Post("/api/bookings", createBookingHandler)
	r.Get("/api/health", healthHandler)

	// Protected routes with JWT middleware
	authMiddleware := middlewares.AuthMiddleware(jwtSvc)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/auth/me", meHandler)
		r.Get("/api/bookings", listBookingsHandler)
		r.Get("/api/bookings/{id}", getBookingHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
