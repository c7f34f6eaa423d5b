package main

import (
	"context"
	"net/http"
	"time"

	"pqr-api/internal/auth"
	"pqr-api/internal/config"
	"pqr-api/internal/http/docs"
	"pqr-api/internal/http/handler"
	"pqr-api/internal/http/middleware"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/ratelimit"
	"pqr-api/internal/repo"
	"pqr-api/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterDeps holds everything buildRouter needs to assemble the route table.
type RouterDeps struct {
	Cfg             *config.Config
	Log             *logger.Logger
	Tokens          *auth.TokenManager
	UsuarioRepo     *repo.UsuarioRepo
	IdempotencyRepo *repo.IdempotencyRepo
	RateLimiter     *ratelimit.RedisRateLimiter
	Metrics         *telemetry.Metrics
	Pool            *pgxpool.Pool // readiness check

	// Handlers
	AuthHandler        *handler.AuthHandler
	CasoHandler        *handler.CasoHandler
	EmbeddedHandler    *handler.EmbeddedHandler
	PacienteHandler    *handler.PacienteHandler
	MotivoHandler      *handler.MotivoHandler
	UsuarioHandler     *handler.UsuarioHandler
	InteraccionHandler *handler.InteraccionHandler
	AlertaHandler      *handler.AlertaHandler
	MetricasHandler    *handler.MetricasHandler
	UbicacionHandler   *handler.UbicacionHandler
	ReporteHandler     *handler.ReporteHandler
}

// buildRouter wires middlewares and routes into a chi.Router.
func buildRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(deps.Log))
	r.Use(middleware.RecoveryMiddleware(deps.Log))
	r.Use(telemetry.OTelMiddleware(deps.Cfg.OTELServiceName))
	if deps.Metrics != nil {
		r.Use(telemetry.MetricsMiddleware(deps.Metrics))
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/openapi.yaml", docs.OpenAPIHandler().ServeHTTP)
	r.Get("/docs", docs.ScalarDocsHandler("/openapi.yaml").ServeHTTP)

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if deps.Pool == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ready","note":"pool is nil"}`))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := deps.Pool.Ping(ctx); err != nil {
			deps.Log.Error(ctx, "readiness check failed: database unavailable", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"error","message":"database unavailable"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Login is the only unauthenticated auth route
		if deps.AuthHandler != nil {
			r.Post("/auth/login", deps.AuthHandler.Login)
		}

		// Catalogs consumed by the embedded intake view, no credentials needed
		if deps.MotivoHandler != nil {
			r.Get("/motivos", deps.MotivoHandler.List)
		}
		if deps.UbicacionHandler != nil {
			r.Route("/ubicaciones", func(r chi.Router) {
				r.Get("/departamentos", deps.UbicacionHandler.Departamentos)
				r.Get("/ciudades", deps.UbicacionHandler.Ciudades)
			})
		}

		// Embedded intake view, served inside the telephony agent console.
		// Rate limited by client IP since there is no authenticated user.
		if deps.EmbeddedHandler != nil {
			r.Route("/embedded", func(r chi.Router) {
				r.Use(middleware.RateLimitMiddleware(deps.RateLimiter, deps.Cfg.RateLimitEmbeddedPerMin))
				r.Get("/paciente/{identificacion}", deps.EmbeddedHandler.LookupPaciente)
				r.Get("/paciente/{identificacion}/historial", deps.EmbeddedHandler.Historial)
				r.With(middleware.IdempotencyMiddleware(deps.IdempotencyRepo)).Post("/caso", deps.EmbeddedHandler.SubmitCaso)
			})
		}

		// The telephony platform scheduler calls the SLA sweep without credentials
		if deps.AlertaHandler != nil {
			r.With(middleware.RateLimitMiddleware(deps.RateLimiter, deps.Cfg.RateLimitEmbeddedPerMin)).
				Post("/alertas/verificar-sla", deps.AlertaHandler.VerificarSLA)
		}

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.Tokens, deps.UsuarioRepo))
			r.Use(middleware.RateLimitMiddleware(deps.RateLimiter, deps.Cfg.RateLimitPerMin))

			if deps.AuthHandler != nil {
				r.Post("/auth/logout", deps.AuthHandler.Logout)
				r.Get("/auth/me", deps.AuthHandler.Me)
			}

			if deps.CasoHandler != nil {
				r.Route("/casos", func(r chi.Router) {
					r.Get("/", deps.CasoHandler.List)
					r.With(middleware.IdempotencyMiddleware(deps.IdempotencyRepo)).Post("/", deps.CasoHandler.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", deps.CasoHandler.Get)
						r.Put("/", deps.CasoHandler.Update)
					})
				})
			}

			if deps.PacienteHandler != nil {
				r.Route("/pacientes", func(r chi.Router) {
					r.Get("/", deps.PacienteHandler.List)
					r.With(middleware.IdempotencyMiddleware(deps.IdempotencyRepo)).Post("/", deps.PacienteHandler.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", deps.PacienteHandler.Get)
						r.Put("/", deps.PacienteHandler.Update)
						r.Get("/casos", deps.PacienteHandler.Casos)
					})
				})
			}

			if deps.InteraccionHandler != nil {
				r.Route("/interacciones", func(r chi.Router) {
					r.Get("/", deps.InteraccionHandler.List)
					r.Post("/", deps.InteraccionHandler.Create)
				})
			}

			if deps.AlertaHandler != nil {
				r.Get("/alertas", deps.AlertaHandler.List)
				r.Put("/alertas/{id}/marcar-leida", deps.AlertaHandler.MarcarLeida)
			}

			if deps.MetricasHandler != nil {
				r.Route("/metricas", func(r chi.Router) {
					r.Get("/dashboard", deps.MetricasHandler.Dashboard)
					r.Get("/casos-por-hora", deps.MetricasHandler.CasosPorHora)
					r.Get("/casos-por-motivo", deps.MetricasHandler.CasosPorMotivo)
					r.Get("/desempeno-agentes", deps.MetricasHandler.DesempenoAgentes)
					r.Get("/tiempo-resolucion", deps.MetricasHandler.TiempoResolucion)
					r.Get("/tendencia-historica", deps.MetricasHandler.TendenciaHistorica)
				})
			}

			if deps.ReporteHandler != nil {
				r.Post("/reportes/generar", deps.ReporteHandler.Generar)
			}

			// Administrator only
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				if deps.MotivoHandler != nil {
					r.Post("/motivos", deps.MotivoHandler.Create)
					r.Put("/motivos/{id}", deps.MotivoHandler.Update)
				}

				if deps.UsuarioHandler != nil {
					r.Route("/usuarios", func(r chi.Router) {
						r.Get("/", deps.UsuarioHandler.List)
						r.Post("/", deps.UsuarioHandler.Create)
						r.Put("/{id}", deps.UsuarioHandler.Update)
					})
				}
			})
		})
	})

	return r
}
