package source

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/heuristics"
	"github.com/lectioapp/lectio-server/internal/logger"
)

const (
	frameInterval = 6.0 // seconds between sampled frames
	maxFrames     = 24
)

// OCRScreens samples video frames with yt-dlp and ffmpeg and reads their text
// with tesseract. Construction never fails: when a tool is missing the source
// reports itself disabled and Fetch returns no fragments.
type OCRScreens struct {
	ytdlpPath     string
	ffmpegPath    string
	tesseractPath string
	rules         heuristics.Rules
	enabled       bool
	log           *logger.Logger
}

// NewOCRScreens locates the external tools the OCR pass needs.
func NewOCRScreens(cfg config.SourcesConfig, rules heuristics.Rules, log *logger.Logger) *OCRScreens {
	s := &OCRScreens{rules: rules, log: log}
	if !cfg.OCREnabled {
		log.Info("screen text extraction disabled by configuration")
		return s
	}

	var err error
	if s.ytdlpPath, err = findTool(cfg.YtdlpPath, "yt-dlp"); err != nil {
		log.Warn("yt-dlp not found, screen text extraction disabled")
		return s
	}
	if s.ffmpegPath, err = findTool(cfg.FFmpegPath, "ffmpeg"); err != nil {
		log.Warn("ffmpeg not found, screen text extraction disabled")
		return s
	}
	if s.tesseractPath, err = findTool(cfg.TesseractPath, "tesseract"); err != nil {
		log.Warn("tesseract not found, screen text extraction disabled")
		return s
	}
	s.enabled = true
	log.Info("screen text extraction enabled",
		"yt_dlp", s.ytdlpPath, "ffmpeg", s.ffmpegPath, "tesseract", s.tesseractPath)
	return s
}

func findTool(configured, name string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return exec.LookPath(name)
}

// Enabled reports whether all external tools were found.
func (s *OCRScreens) Enabled() bool {
	return s.enabled
}

// Fetch downloads a low-resolution copy of the video, samples frames at a
// fixed interval, and OCRs each frame. Frames whose text is empty after
// cleaning produce no fragment. Fragment classification (code, formula or
// diagram) happens here so downstream stages stay pure.
func (s *OCRScreens) Fetch(ctx context.Context, videoID string) ([]domain.ScreenFragment, error) {
	if !s.enabled {
		return nil, nil
	}

	workDir, err := os.MkdirTemp("", "lectio-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	videoPath := filepath.Join(workDir, "video.mp4")
	download := exec.CommandContext(ctx, s.ytdlpPath, //nolint:gosec // tool path is from exec.LookPath or validated config
		"-f", "worst[ext=mp4]",
		"-o", videoPath,
		"--no-playlist",
		"https://www.youtube.com/watch?v="+videoID,
	)
	if out, err := download.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("download video %s: %w: %s", videoID, err, firstLine(out))
	}

	framePattern := filepath.Join(workDir, "frame-%03d.png")
	extract := exec.CommandContext(ctx, s.ffmpegPath, //nolint:gosec // tool path is from exec.LookPath or validated config
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%g", frameInterval),
		"-frames:v", fmt.Sprintf("%d", maxFrames),
		framePattern,
	)
	if out, err := extract.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("extract frames: %w: %s", err, firstLine(out))
	}

	frames, err := filepath.Glob(filepath.Join(workDir, "frame-*.png"))
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	sort.Strings(frames)

	var fragments []domain.ScreenFragment
	for i, frame := range frames {
		text, err := s.readFrame(ctx, frame)
		if err != nil {
			s.log.WithError(err).Debug("tesseract failed on frame", "frame", frame)
			continue
		}
		text = heuristics.CleanText(text)
		if text == "" {
			continue
		}
		start := float64(i) * frameInterval
		fragments = append(fragments, s.classify(domain.ScreenFragment{
			StartTime: start,
			EndTime:   start + frameInterval,
			Text:      text,
		}))
	}
	return fragments, nil
}

func (s *OCRScreens) readFrame(ctx context.Context, frame string) (string, error) {
	cmd := exec.CommandContext(ctx, s.tesseractPath, frame, "stdout") //nolint:gosec // tool path is from exec.LookPath or validated config
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract %s: %w", filepath.Base(frame), err)
	}
	return string(out), nil
}

func (s *OCRScreens) classify(frag domain.ScreenFragment) domain.ScreenFragment {
	switch {
	case s.rules.LooksLikeCode(frag.Text):
		frag.IsCode = true
	case s.rules.LooksLikeFormula(frag.Text) || s.rules.LooksLikeDiagram(frag.Text):
		frag.IsFormulaOrDiagram = true
	}
	return frag
}

func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line
}
