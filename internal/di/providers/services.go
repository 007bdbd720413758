package providers

import (
	"github.com/samber/do/v2"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/export"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/metrics"
	"github.com/lectioapp/lectio-server/internal/pipeline"
	"github.com/lectioapp/lectio-server/internal/rewrite"
	"github.com/lectioapp/lectio-server/internal/service"
)

// ProvideRewriter provides the style rewriter. Without an API key the
// rewriter is a passthrough and notes keep the compiler's wording.
func ProvideRewriter(i do.Injector) (rewrite.Rewriter, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Rewriter.OpenAIAPIKey == "" {
		log.Info("Style rewriter disabled, no API key configured")
		return rewrite.Noop{}, nil
	}

	llm, err := rewrite.NewLLM(cfg.Rewriter, log)
	if err != nil {
		return nil, err
	}

	log.Info("Style rewriter enabled", "model", cfg.Rewriter.Model)
	return llm, nil
}

// ProvideNotesService provides the notes processing service.
func ProvideNotesService(i do.Injector) (*service.NotesService, error) {
	pipe := do.MustInvoke[*pipeline.Pipeline](i)
	rewriter := do.MustInvoke[rewrite.Rewriter](i)
	exporter := do.MustInvoke[*export.Exporter](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNotesService(pipe, rewriter, exporter, storeHandle.Store, m, log), nil
}
