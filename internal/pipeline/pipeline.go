package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/domain"
	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
	"github.com/lectioapp/lectio-server/internal/heuristics"
	"github.com/lectioapp/lectio-server/internal/logger"
)

// TranscriptSource fetches timestamped captions for a video.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) ([]domain.CaptionEntry, error)
}

// ScreenSource extracts timestamped on-screen text for a video. A source that
// cannot run (missing tools, disabled) returns an empty slice, not an error.
type ScreenSource interface {
	Fetch(ctx context.Context, videoID string) ([]domain.ScreenFragment, error)
}

// CodeSource detects code fragments from the fetched captions and screen text.
type CodeSource interface {
	Detect(ctx context.Context, captions []domain.CaptionEntry, screens []domain.ScreenFragment) ([]domain.CodeFragment, error)
}

// Pipeline orchestrates the full synthesis run for one video. Transcript and
// screen-text fetches fan out concurrently; everything downstream is
// deterministic given their results.
type Pipeline struct {
	transcripts TranscriptSource
	screens     ScreenSource
	codes       CodeSource
	segmenter   *Segmenter
	compiler    *Compiler
	window      float64
	log         *logger.Logger
}

// New builds a pipeline from its sources and tuning configuration.
func New(transcripts TranscriptSource, screens ScreenSource, codes CodeSource, rules heuristics.Rules, cfg config.PipelineConfig, log *logger.Logger) *Pipeline {
	return &Pipeline{
		transcripts: transcripts,
		screens:     screens,
		codes:       codes,
		segmenter:   NewSegmenter(rules, cfg.MinWindowsPerTopic, cfg.BoundaryThreshold),
		compiler:    NewCompiler(rules),
		window:      float64(cfg.WindowSeconds),
		log:         log,
	}
}

// Run synthesizes structured topic notes for videoID.
//
// Screen-text and code-detection failures degrade to empty inputs; a
// transcript failure is fatal only when no screen text survives to stand in
// for it. Transcripts that normalize or segment to nothing produce a single
// fallback topic instead of an error.
func (p *Pipeline) Run(ctx context.Context, videoID string) ([]domain.TopicNote, error) {
	var (
		wg          sync.WaitGroup
		captions    []domain.CaptionEntry
		screens     []domain.ScreenFragment
		captionsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		captions, captionsErr = p.transcripts.Fetch(ctx, videoID)
	}()
	go func() {
		defer wg.Done()
		var err error
		screens, err = p.screens.Fetch(ctx, videoID)
		if err != nil {
			p.log.WithError(err).Warn("screen text extraction failed, continuing without it", "video_id", videoID)
			screens = nil
		}
	}()
	wg.Wait()

	if captionsErr != nil {
		if len(screens) == 0 {
			return nil, domainerrors.TranscriptUnavailablef("no captions available for video %s", videoID).WithCause(captionsErr)
		}
		p.log.WithError(captionsErr).Warn("transcript unavailable, deriving notes from screen text", "video_id", videoID)
		captions = captionsFromScreens(screens)
	}
	if len(captions) == 0 && len(screens) == 0 {
		return nil, domainerrors.TranscriptUnavailablef("video %s has no captions or readable screen text", videoID)
	}
	if len(captions) == 0 {
		captions = captionsFromScreens(screens)
	}

	codes, err := p.codes.Detect(ctx, captions, screens)
	if err != nil {
		p.log.WithError(err).Warn("code detection failed, continuing without code sections", "video_id", videoID)
		codes = nil
	}

	windows, err := Normalize(captions, p.window)
	if err != nil {
		p.log.Warn("captions normalized to nothing, emitting fallback topic", "video_id", videoID)
		return []domain.TopicNote{p.fallback(captions, screens, codes)}, nil
	}
	spans, err := p.segmenter.Segment(windows)
	if err != nil {
		return []domain.TopicNote{p.fallback(captions, screens, codes)}, nil
	}

	bundles := Align(spans, windows, screens, codes)
	notes := make([]domain.TopicNote, 0, len(bundles))
	for _, b := range bundles {
		notes = append(notes, p.compiler.Compile(b))
	}
	return notes, nil
}

// fallback compiles a single topic spanning every input, used when the
// transcript is too sparse to window or segment.
func (p *Pipeline) fallback(captions []domain.CaptionEntry, screens []domain.ScreenFragment, codes []domain.CodeFragment) domain.TopicNote {
	start, end := fullExtent(captions, screens, codes)
	var texts []string
	for _, c := range captions {
		if t := heuristics.CleanText(c.Text); t != "" {
			texts = append(texts, t)
		}
	}
	bundle := Bundle{
		Span: domain.TopicSpan{
			TopicName: "Full Lecture",
			StartTime: start,
			EndTime:   end,
		},
		Text:   strings.Join(texts, " "),
		Screen: screens,
		Code:   codes,
	}
	note := p.compiler.Compile(bundle)
	if len(note.Explanation) == 0 {
		note.Explanation = []string{"Spoken content could not be transcribed; the on-screen material below covers this lecture."}
	}
	return note
}

func captionsFromScreens(screens []domain.ScreenFragment) []domain.CaptionEntry {
	captions := make([]domain.CaptionEntry, 0, len(screens))
	for _, s := range screens {
		captions = append(captions, domain.CaptionEntry{
			StartTime: s.StartTime,
			Duration:  s.EndTime - s.StartTime,
			Text:      s.Text,
		})
	}
	return captions
}

func fullExtent(captions []domain.CaptionEntry, screens []domain.ScreenFragment, codes []domain.CodeFragment) (float64, float64) {
	start, end := 0.0, 0.0
	first := true
	take := func(s, e float64) {
		if first || s < start {
			start = s
		}
		if first || e > end {
			end = e
		}
		first = false
	}
	for _, c := range captions {
		take(c.StartTime, c.EndTime())
	}
	for _, s := range screens {
		take(s.StartTime, s.EndTime)
	}
	for _, c := range codes {
		take(c.StartTime, c.EndTime)
	}
	return start, end
}
