package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"storefront-backend/lib/configuration"
	"storefront-backend/lib/osutil"
	"storefront-backend/lib/serviceutil"
	"storefront-backend/lib/telemetry"
	"storefront-backend/services/prefetch"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    int  `json:"port"`
	Verbose bool `json:"verbose"`
	// DevMode bypasses the read caches so catalog edits show up
	// immediately.
	DevMode         bool                 `json:"dev_mode"`
	CatalogDatabase configuration.Libsql `json:"catalog_database"`
	SessionDatabase configuration.Libsql `json:"session_database"`
	Prefetch        prefetch.Options     `json:"prefetch"`
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func main() {
	err := godotenv.Load()
	if err == nil {
		slog.Info("loaded .env file")
	}

	config, err := configuration.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	telemetry.InitSlog(config.Verbose)

	ctx := osutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "cmd/server")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	if err == nil {
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)

	err = InitCatalog(router, config)
	if err != nil {
		serviceutil.Fatal("failed to initialize catalog", err)
	}
	err = InitSession(router, config)
	if err != nil {
		serviceutil.Fatal("failed to initialize sessions", err)
	}
	InitPrefetch(router, config)

	port := config.Port
	if port == 0 {
		port = 8080
	}
	go serviceutil.StartHttpServer(port, router)

	<-ctx.Done()
}
