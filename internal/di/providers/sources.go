package providers

import (
	"github.com/samber/do/v2"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/heuristics"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/pipeline"
	"github.com/lectioapp/lectio-server/internal/source"
)

// ProvideRules provides the shared text and code heuristics.
func ProvideRules(i do.Injector) (heuristics.Rules, error) {
	return heuristics.DefaultRules(), nil
}

// ProvideTranscriptSource provides the YouTube caption fetcher.
func ProvideTranscriptSource(i do.Injector) (pipeline.TranscriptSource, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return source.NewYouTubeTranscripts(cfg.Sources.FetchTimeout, log), nil
}

// ProvideScreenSource provides the frame OCR source, or a no-op source when
// OCR is disabled by configuration.
func ProvideScreenSource(i do.Injector) (pipeline.ScreenSource, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	rules := do.MustInvoke[heuristics.Rules](i)

	if !cfg.Sources.OCREnabled {
		log.Info("Frame OCR disabled by configuration")
		return source.NoopScreens{}, nil
	}

	ocr := source.NewOCRScreens(cfg.Sources, rules, log)
	if !ocr.Enabled() {
		log.Warn("Frame OCR unavailable, continuing with captions only")
	}
	return ocr, nil
}

// ProvideCodeSource provides the code fragment detector.
func ProvideCodeSource(i do.Injector) (pipeline.CodeSource, error) {
	rules := do.MustInvoke[heuristics.Rules](i)
	return source.NewCodeDetector(rules), nil
}

// ProvidePipeline provides the notes synthesis pipeline.
func ProvidePipeline(i do.Injector) (*pipeline.Pipeline, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	rules := do.MustInvoke[heuristics.Rules](i)
	transcripts := do.MustInvoke[pipeline.TranscriptSource](i)
	screens := do.MustInvoke[pipeline.ScreenSource](i)
	codes := do.MustInvoke[pipeline.CodeSource](i)

	return pipeline.New(transcripts, screens, codes, rules, cfg.Pipeline, log), nil
}
