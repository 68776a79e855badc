package observability

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Observability bundles the logger and metrics registry handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

// New builds the observability stack from config values.
func New(environment, logLevel string) *Observability {
	return &Observability{
		Logger:   NewLogger(environment, logLevel),
		Registry: prometheus.NewRegistry(),
	}
}

// NewLogger builds a JSON slog logger at the configured level.
func NewLogger(environment, logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("service", "roundhouse"),
		slog.String("environment", environment),
	)
}

// MetricsHandler returns the /metrics HTTP handler for the registry.
func (o *Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{})
}
