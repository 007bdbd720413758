// Package di provides dependency injection configuration for the Lectio server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/di/providers"
	"github.com/lectioapp/lectio-server/internal/export"
	"github.com/lectioapp/lectio-server/internal/heuristics"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/metrics"
	"github.com/lectioapp/lectio-server/internal/pipeline"
	"github.com/lectioapp/lectio-server/internal/rewrite"
	"github.com/lectioapp/lectio-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideExporter)

	// Pipeline layer
	do.Provide(injector, providers.ProvideRules)
	do.Provide(injector, providers.ProvideTranscriptSource)
	do.Provide(injector, providers.ProvideScreenSource)
	do.Provide(injector, providers.ProvideCodeSource)
	do.Provide(injector, providers.ProvidePipeline)

	// Business services
	do.Provide(injector, providers.ProvideRewriter)
	do.Provide(injector, providers.ProvideNotesService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*export.Exporter](injector)

	_ = do.MustInvoke[heuristics.Rules](injector)
	_ = do.MustInvoke[pipeline.TranscriptSource](injector)
	_ = do.MustInvoke[pipeline.ScreenSource](injector)
	_ = do.MustInvoke[pipeline.CodeSource](injector)
	_ = do.MustInvoke[*pipeline.Pipeline](injector)

	_ = do.MustInvoke[rewrite.Rewriter](injector)
	_ = do.MustInvoke[*service.NotesService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
