package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/turkmvc/satmad/internal/api"
	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/tracing"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("SATMAD_LOG_LEVEL")),
	}))

	cfg, err := loadServerConfig(logger)
	if err != nil {
		logger.Error("invalid server configuration", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, loadTracingConfig(logger), logger)
	if err != nil {
		logger.Error("tracing init failed", "error", err)
		os.Exit(1)
	}

	srv := api.NewServer(cfg, logger)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")
	srv.Drain()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	tracing.Shutdown(context.Background(), shutdownTracing, logger)

	logger.Info("server stopped")
}

func logLevel(v string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func loadServerConfig(logger *slog.Logger) (api.Config, error) {
	cfg := api.Config{
		Addr:         ":8080",
		Profile:      gravity.Default,
		MaxBodyBytes: api.DefaultMaxBodyBytes,
	}

	if v := os.Getenv("SATMAD_HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}

	if v := os.Getenv("SATMAD_GRAVITY_MODEL"); v != "" {
		p, err := gravity.Lookup(v)
		if err != nil {
			logger.Warn("invalid SATMAD_GRAVITY_MODEL value, using default", "value", v, "default", cfg.Profile.Name)
		} else {
			cfg.Profile = p
		}
	}

	if v := os.Getenv("SATMAD_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			logger.Warn("invalid SATMAD_MAX_BODY_BYTES value, using default", "value", v, "default", cfg.MaxBodyBytes)
		} else {
			cfg.MaxBodyBytes = n
		}
	}

	if v := os.Getenv("SATMAD_TRUST_PROXY"); v != "" {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid SATMAD_TRUST_PROXY value, defaulting to false", "value", v)
		} else {
			cfg.TrustProxy = trust
		}
	}

	if v := os.Getenv("SATMAD_AUTH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.New("SATMAD_AUTH_ENABLED must be a boolean value (true/false/1/0)")
		}
		cfg.AuthEnabled = enabled
	}

	if cfg.AuthEnabled {
		cfg.AuthToken = os.Getenv("SATMAD_AUTH_TOKEN")
		if cfg.AuthToken == "" {
			return cfg, errors.New("SATMAD_AUTH_TOKEN is required when auth is enabled")
		}
	}

	logger.Info("server config",
		"addr", cfg.Addr,
		"gravity", cfg.Profile.Name,
		"max_body_bytes", cfg.MaxBodyBytes,
		"auth_enabled", cfg.AuthEnabled,
		"trust_proxy", cfg.TrustProxy,
	)

	return cfg, nil
}

func loadTracingConfig(logger *slog.Logger) tracing.Config {
	cfg := tracing.Config{
		ServiceName: "tled",
		Exporter:    "stdout",
		SampleRatio: 1,
	}

	if v := os.Getenv("SATMAD_TRACING_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid SATMAD_TRACING_ENABLED value, defaulting to false", "value", v)
		} else {
			cfg.Enabled = enabled
		}
	}

	if v := os.Getenv("SATMAD_TRACING_EXPORTER"); v != "" {
		cfg.Exporter = v
	}

	if v := os.Getenv("SATMAD_TRACING_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}

	if v := os.Getenv("SATMAD_TRACING_SAMPLE_RATIO"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil || ratio < 0 || ratio > 1 {
			logger.Warn("invalid SATMAD_TRACING_SAMPLE_RATIO value, using default", "value", v, "default", cfg.SampleRatio)
		} else {
			cfg.SampleRatio = ratio
		}
	}

	if v := os.Getenv("SATMAD_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}

	return cfg
}
