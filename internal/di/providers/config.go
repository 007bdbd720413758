// Package providers contains dependency injection providers for the Lectio server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/metrics"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Lectio Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"export_dir", cfg.Export.Dir,
	)

	return log, nil
}

// ProvideMetrics provides the Prometheus metrics registry.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}
