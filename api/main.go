package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vitalabs/pulse/api/config"
	"github.com/vitalabs/pulse/api/handlers"
	"github.com/vitalabs/pulse/api/metrics"
	"github.com/vitalabs/pulse/utils/pkg/logger"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// shuttingDown is set to true when shutdown signal is received.
	// Readiness probe checks this to immediately return 503.
	shuttingDown atomic.Bool
)

const defaultMetricsAddr = "0.0.0.0:0"

func main() {
	metricsAddrFlag := flag.String("metrics-addr", defaultMetricsAddr, "Address to listen on for prometheus metrics")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	slogger := logger.New(*verboseFlag)
	slogger.Info("starting pulse-api", "version", version, "commit", commit, "date", date)
	handlers.SetBuildInfo(version, commit, date)
	metrics.SetBuildInfo(version, commit, date)

	// Load .env files if they exist
	// godotenv doesn't override existing env vars, so later files don't overwrite earlier ones
	_ = godotenv.Load()           // .env in current working directory
	_ = godotenv.Load("api/.env") // api/.env when running from repo root

	// Initialize Sentry for error tracking (optional - gracefully no-op if DSN not set)
	sentryDSN := os.Getenv("SENTRY_DSN")
	if sentryDSN != "" {
		sentryEnv := os.Getenv("SENTRY_ENVIRONMENT")
		if sentryEnv == "" {
			sentryEnv = "development"
		}
		release := version
		if commit != "none" {
			release = version + "-" + commit
		}
		tracesSampleRate := 0.1
		if sentryEnv == "development" {
			tracesSampleRate = 1.0
		}
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDSN,
			Environment:      sentryEnv,
			Release:          release,
			EnableTracing:    true,
			TracesSampleRate: tracesSampleRate,
		})
		if err != nil {
			slogger.Warn("sentry initialization failed", "error", err)
		} else {
			slogger.Info("sentry initialized", "env", sentryEnv, "release", release)
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Connect to the operational database
	cfg := config.Load()
	pool, err := config.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	h := handlers.New(pool, slogger)

	// Start metrics server
	var metricsServer *http.Server
	if *metricsAddrFlag != "" {
		listener, err := net.Listen("tcp", *metricsAddrFlag)
		if err != nil {
			slogger.Warn("failed to start prometheus metrics server listener", "error", err)
		} else {
			slogger.Info("prometheus metrics server listening", "addr", listener.Addr().String())
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			metricsServer = &http.Server{Handler: mux}
			go func() {
				if err := metricsServer.Serve(listener); err != nil && err != http.ErrServerClosed {
					slogger.Error("metrics server error", "error", err)
				}
			}()
		}
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	// Sentry middleware for error and performance monitoring (before Recoverer to capture panics)
	if sentryDSN != "" {
		sentryHandler := sentryhttp.New(sentryhttp.Options{
			Repanic: true, // Re-panic after capturing so Recoverer can handle it
		})
		r.Use(sentryHandler.Handle)

		// Set transaction name from Chi route pattern
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if txn := sentry.TransactionFromContext(r.Context()); txn != nil {
					if rctx := chi.RouteContext(r.Context()); rctx != nil {
						if pattern := rctx.RoutePattern(); pattern != "" {
							txn.Name = r.Method + " " + pattern
						} else {
							txn.Name = r.Method + " " + r.URL.Path
						}
					}
				}
				next.ServeHTTP(w, r)
			})
		})
	}

	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// CORS configuration - origins from env or allow all
	corsOrigins := []string{"*"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		// Immediately fail if shutting down
		if shuttingDown.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("shutting down"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database connection failed"))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/version", handlers.GetVersion)

	// Reporting endpoints
	r.Route("/metrics", func(r chi.Router) {
		r.Get("/dau", h.GetDAU)
		r.Get("/checkins", h.GetCheckinsPerDay)
		r.Get("/revenue", h.GetRevenuePerDay)
		r.Get("/reservations", h.GetReservationsPerDay)
		r.Get("/kpi-overview", h.GetKPIOverview)
		r.Get("/new-users", h.GetNewUsers)
		r.Get("/active-users", h.GetActiveUsers)
		r.Get("/retention", h.GetRetention)
		r.Get("/revenue-by-region", h.GetRevenueByRegion)
		r.Get("/funnel", h.GetAcquisitionFunnel)
		r.Get("/ltv-cac", h.GetLTVCAC)
		r.Get("/missions", h.GetMissionCompletion)
		r.Get("/streaks", h.GetStreaks)
		r.Get("/marketing-spend", h.GetMarketingSpend)

		r.Route("/partner", func(r chi.Router) {
			r.Get("/status", h.GetPartnerStatus)
			r.Get("/occupancy", h.GetPartnerOccupancy)
			r.Get("/kpis", h.GetPartnerKPIs)
		})

		r.Route("/b2b", func(r chi.Router) {
			r.Get("/engagement", h.GetB2BEngagement)
			r.Get("/cost-per-collaborator", h.GetB2BCostPerActive)
			r.Get("/campaigns", h.GetB2BCampaigns)
			r.Get("/mev-delta", h.GetB2BMEVDelta)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/activity", h.GetUserActivityHistory)
			r.Get("/gamification", h.GetUserGamificationSummary)
		})
	})

	// Entity listing endpoints for dashboard filters
	r.Get("/partners", h.ListPartners)
	r.Get("/b2b/clients", h.ListClients)
	r.Get("/users", h.ListUsers)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slogger.Info("API server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sig := <-shutdown
	slogger.Info("received signal, shutting down gracefully", "signal", sig.String())

	// Immediately mark as shutting down so readiness probe returns 503
	shuttingDown.Store(true)

	// Give existing connections a short time to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slogger.Error("graceful shutdown error", "error", err)
	} else {
		slogger.Info("server stopped gracefully")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			slogger.Error("metrics server shutdown error", "error", err)
		} else {
			slogger.Info("metrics server stopped gracefully")
		}
	}
}
