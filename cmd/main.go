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
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/resumatch/backend/internal/db"
	"github.com/resumatch/backend/internal/email"
	"github.com/resumatch/backend/internal/events"
	"github.com/resumatch/backend/internal/handlers"
	"github.com/resumatch/backend/internal/jwt"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/middlewares"
	"github.com/resumatch/backend/internal/relay"
	"github.com/resumatch/backend/internal/repositories"
	"github.com/resumatch/backend/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/resumatch/backend/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds all process-wide settings, read-only after startup.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	JWTSecretKey   string
	JWTExpSecond   int
	OAuthExpSecond int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	WebhookURL   string
	MaxRequests  int
	UploadDir    string
	RelayTimeout int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	PublicBaseURL string
	FrontendURL   string

	KafkaBroker string
	KafkaTopic  string

	RateLimitMax    int
	RateLimitWindow int
}

// @title resumatch backend API
// @version 1.0.0
// @description Backend for user accounts, testimonials and resume evaluation relays
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
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

// parseConfig loads environment variables from a file and returns the full
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getEnvInt := func(key string, defaultValue int) (int, error) {
		return strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "database")
	if cfg.PgPort, err = getEnvInt("POSTGRES_PORT", 5432); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = getEnvInt("POSTGRES_MAX_OPEN_CONNS", 16); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = getEnvInt("POSTGRES_MAX_IDLE_CONNS", 8); err != nil {
		return
	}

	// Redis config (IP rate limiter)
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getEnvInt("REDIS_PORT", 6379); err != nil {
		return
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return
	}

	// JWT config: password logins get short-lived tokens, OAuth logins a day
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getEnvInt("JWT_EXP_SECOND", 3600); err != nil {
		return
	}
	if cfg.OAuthExpSecond, err = getEnvInt("JWT_OAUTH_EXP_SECOND", 86400); err != nil {
		return
	}

	// Google OAuth config
	cfg.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", "")
	cfg.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", "")
	cfg.GoogleRedirectURL = getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/auth/google/callback")

	// Webhook relay config
	cfg.WebhookURL = getEnv("N8N_WEBHOOK_URL", "")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	if cfg.MaxRequests, err = getEnvInt("N8N_MAX_REQUESTS", 2); err != nil {
		return
	}
	if cfg.RelayTimeout, err = getEnvInt("N8N_TIMEOUT_SECOND", 60); err != nil {
		return
	}

	// SMTP config
	cfg.SMTPHost = getEnv("SMTP_HOST", "localhost")
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.EmailFrom = getEnv("EMAIL_FROM", "Resumatch <noreply@resumatch.io>")
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return
	}

	// Link targets
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:8080")
	cfg.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// Kafka config, optional
	cfg.KafkaBroker = getEnv("KAFKA_BROKER", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "submission.created")

	// IP rate limit: 100 requests per 15 minutes by default
	if cfg.RateLimitMax, err = getEnvInt("RATE_LIMIT_MAX", 100); err != nil {
		return
	}
	if cfg.RateLimitWindow, err = getEnvInt("RATE_LIMIT_WINDOW_SECOND", 900); err != nil {
		return
	}

	return cfg, nil
}

// run initializes the logger, database, Redis, and HTTP server. It sets up
// routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)
	logger.Log.Infof("Connecting to PostgreSQL: %s:%d/%s", cfg.PgHost, cfg.PgPort, cfg.PgDB)

	pg, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer pg.Close()
	pg.SetMaxOpenConns(cfg.PgMaxOpenConns)
	pg.SetMaxIdleConns(cfg.PgMaxIdleConns)
	if err := pg.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Apply schema migrations
	if err := db.Migrate(pg.DB); err != nil {
		logger.Log.Fatal("migration failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Initialize JWT services: one for password logins, one for OAuth
	loginJWT := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)
	oauthJWT := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.OAuthExpSecond)*time.Second),
	)

	// Initialize collaborators
	mailer := email.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom, cfg.PublicBaseURL)
	relayClient := relay.New(cfg.WebhookURL, relay.WithTimeout(time.Duration(cfg.RelayTimeout)*time.Second))

	var publisher services.SubmissionPublisher
	if cfg.KafkaBroker != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(pg)
	userWriteRepo := repositories.NewUserWriteRepository(pg)
	testimonialReadRepo := repositories.NewTestimonialReadRepository(pg)
	testimonialWriteRepo := repositories.NewTestimonialWriteRepository(pg)
	submissionReadRepo := repositories.NewSubmissionReadRepository(pg)
	submissionWriteRepo := repositories.NewSubmissionWriteRepository(pg)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, loginJWT, oauthJWT, mailer)
	userService := services.NewUserService(userReadRepo, userWriteRepo)
	testimonialService := services.NewTestimonialService(testimonialReadRepo, testimonialWriteRepo)
	submissionService := services.NewSubmissionService(submissionReadRepo, submissionWriteRepo, relayClient, publisher, cfg.MaxRequests)

	// Initialize handlers
	googleHandler := handlers.NewGoogleHandler(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, authService, cfg.FrontendURL)

	// Setup router
	authMiddleware := middlewares.AuthMiddleware(loginJWT)
	optionalAuthMiddleware := middlewares.OptionalAuthMiddleware(loginJWT)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.RateLimitMiddleware(rdb, cfg.RateLimitMax, time.Duration(cfg.RateLimitWindow)*time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handlers.NewSignupHandler(authService))
			r.Post("/login", handlers.NewLoginHandler(authService))
			r.Get("/verify-email", handlers.NewVerifyEmailHandler(authService))
			r.Post("/forgot-password", handlers.NewForgotPasswordHandler(authService))
			r.Post("/reset-password", handlers.NewResetPasswordHandler(authService))
			r.Get("/login/google", googleHandler.Login)
			r.Get("/register/google", googleHandler.Register)
			r.Get("/google/callback", googleHandler.Callback)
			r.Post("/logout", handlers.NewLogoutHandler())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Get("/me", handlers.NewMeHandler(userService))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", handlers.NewListUsersHandler(userService))
			r.Get("/{id}", handlers.NewGetUserHandler(userService))
			r.Put("/{id}", handlers.NewUpdateUserHandler(userService))
			r.Delete("/{id}", handlers.NewDeleteUserHandler(userService))
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", handlers.NewListTestimonialsHandler(testimonialService, false))
			r.Get("/approved", handlers.NewListTestimonialsHandler(testimonialService, true))

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Get("/has-testimonial", handlers.NewHasTestimonialHandler(testimonialService))
				r.Put("/{id}", handlers.NewUpdateTestimonialHandler(testimonialService))
				r.Delete("/{id}", handlers.NewDeleteTestimonialHandler(testimonialService))
			})

			r.With(optionalAuthMiddleware).Post("/", handlers.NewCreateTestimonialHandler(testimonialService))
			r.Get("/{id}", handlers.NewGetTestimonialHandler(testimonialService))
		})

		r.Route("/n8n", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", handlers.NewWebhookHandler(submissionService, cfg.UploadDir))
			r.Get("/responses", handlers.NewListResponsesHandler(submissionService))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
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
