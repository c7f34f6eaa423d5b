package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pqr-api/internal/auth"
	"pqr-api/internal/config"
	"pqr-api/internal/database"
	"pqr-api/internal/http/handler"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/ratelimit"
	"pqr-api/internal/repo"
	"pqr-api/internal/service"
	"pqr-api/internal/telemetry"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the PQR API HTTP server with all middlewares and observability`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.New(cfg.OTELServiceName, "info")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	log.Info(ctx, "starting pqr api",
		zap.String("version", "1.0.0"),
		zap.String("service", cfg.OTELServiceName),
	)

	// Run database migrations
	log.Info(ctx, "running database migrations")
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info(ctx, "migrations completed successfully")

	// Initialize telemetry strictly as opt-in
	var tracerProvider *sdktrace.TracerProvider
	var meterProvider *sdkmetric.MeterProvider
	var metrics *telemetry.Metrics

	if cfg.OTELEnabled {
		log.Info(ctx, "initializing telemetry", zap.String("endpoint", cfg.OTELExporterEndpoint))

		tp, err := telemetry.InitTracer(ctx, cfg.OTELServiceName, cfg.OTELExporterEndpoint, cfg.OTELSamplingRatio)
		if err != nil {
			log.Warn(ctx, "failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			tracerProvider = tp
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
					log.Error(shutdownCtx, "failed to shutdown tracer provider", zap.Error(err))
				}
			}()
		}

		mp, m, err := telemetry.InitMetrics(ctx, cfg.OTELServiceName, cfg.OTELExporterEndpoint)
		if err != nil {
			log.Warn(ctx, "failed to initialize metrics, continuing without metrics", zap.Error(err))
		} else {
			meterProvider = mp
			metrics = m
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := meterProvider.Shutdown(shutdownCtx); err != nil {
					log.Error(shutdownCtx, "failed to shutdown meter provider", zap.Error(err))
				}
			}()
		}

		log.Info(ctx, "telemetry initialized", zap.Bool("tracing", tracerProvider != nil), zap.Bool("metrics", metrics != nil))
	} else {
		log.Info(ctx, "telemetry disabled (opt-in only)")
	}

	// Connect to database
	log.Info(ctx, "connecting to database")
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Info(ctx, "database connected")

	// Connect to Redis
	log.Info(ctx, "connecting to redis")
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info(ctx, "redis connected")

	// Initialize JWT token manager
	if len(cfg.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes, got %d", len(cfg.JWTSecret))
	}
	tokenTTL := time.Duration(cfg.JWTTTLMinutes) * time.Minute
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, tokenTTL)
	log.Info(ctx, "JWT authentication initialized",
		zap.String("issuer", cfg.JWTIssuer),
		zap.Duration("ttl", tokenTTL),
	)

	// Initialize repositories
	idempotencyRepo := repo.NewIdempotencyRepo(pool)
	pacienteRepo := repo.NewPacienteRepo(pool)
	usuarioRepo := repo.NewUsuarioRepo(pool)
	motivoRepo := repo.NewMotivoRepo(pool)
	casoRepo := repo.NewCasoRepo(pool)
	interaccionRepo := repo.NewInteraccionRepo(pool)
	alertaRepo := repo.NewAlertaRepo(pool)
	metricasRepo := repo.NewMetricasRepo(pool)
	ubicacionRepo := repo.NewUbicacionRepo(pool)

	// Initialize services
	authService := service.NewAuthService(usuarioRepo, tokens, log)
	casoService := service.NewCasoService(casoRepo, pacienteRepo, motivoRepo, usuarioRepo, interaccionRepo, alertaRepo, log)
	embeddedService := service.NewEmbeddedService(casoService, casoRepo, pacienteRepo, usuarioRepo, interaccionRepo, alertaRepo, log)
	pacienteService := service.NewPacienteService(pacienteRepo, casoRepo, log)
	motivoService := service.NewMotivoService(motivoRepo, log)
	usuarioService := service.NewUsuarioService(usuarioRepo, log)
	interaccionService := service.NewInteraccionService(interaccionRepo, casoRepo, log)
	alertaService := service.NewAlertaService(alertaRepo, casoRepo, cfg.SLADias, log)
	metricasService := service.NewMetricasService(metricasRepo, log)
	reporteService := service.NewReporteService(metricasRepo, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	casoHandler := handler.NewCasoHandler(casoService)
	embeddedHandler := handler.NewEmbeddedHandler(embeddedService)
	pacienteHandler := handler.NewPacienteHandler(pacienteService)
	motivoHandler := handler.NewMotivoHandler(motivoService)
	usuarioHandler := handler.NewUsuarioHandler(usuarioService)
	interaccionHandler := handler.NewInteraccionHandler(interaccionService)
	alertaHandler := handler.NewAlertaHandler(alertaService)
	metricasHandler := handler.NewMetricasHandler(metricasService)
	ubicacionHandler := handler.NewUbicacionHandler(ubicacionRepo)
	reporteHandler := handler.NewReporteHandler(reporteService)

	// Initialize rate limiter
	var rateLimitCounter metric.Int64Counter
	if metrics != nil {
		rateLimitCounter = metrics.RateLimitRejections
	}
	rateLimiter := ratelimit.NewRedisRateLimiter(redisClient, rateLimitCounter)

	// Build router
	r := buildRouter(RouterDeps{
		Cfg:                cfg,
		Log:                log,
		Tokens:             tokens,
		UsuarioRepo:        usuarioRepo,
		IdempotencyRepo:    idempotencyRepo,
		RateLimiter:        rateLimiter,
		Metrics:            metrics,
		Pool:               pool,
		AuthHandler:        authHandler,
		CasoHandler:        casoHandler,
		EmbeddedHandler:    embeddedHandler,
		PacienteHandler:    pacienteHandler,
		MotivoHandler:      motivoHandler,
		UsuarioHandler:     usuarioHandler,
		InteraccionHandler: interaccionHandler,
		AlertaHandler:      alertaHandler,
		MetricasHandler:    metricasHandler,
		UbicacionHandler:   ubicacionHandler,
		ReporteHandler:     reporteHandler,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Expired idempotency keys are swept hourly in the background
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				removed, err := idempotencyRepo.CleanupExpired(sweepCtx)
				if err != nil {
					log.Warn(sweepCtx, "idempotency cleanup failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info(sweepCtx, "idempotency keys cleaned up", zap.Int64("removed", removed))
				}
			}
		}
	}()

	// Start server in goroutine
	go func() {
		log.Info(ctx, "starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info(ctx, "shutdown signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown error", zap.Error(err))
	}

	log.Info(shutdownCtx, "shutdown complete")
	return nil
}
