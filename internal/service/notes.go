// Package service contains the application services behind the HTTP API.
package service

import (
	"context"
	"time"

	"github.com/lectioapp/lectio-server/internal/domain"
	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
	"github.com/lectioapp/lectio-server/internal/export"
	"github.com/lectioapp/lectio-server/internal/id"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/metrics"
	"github.com/lectioapp/lectio-server/internal/pipeline"
	"github.com/lectioapp/lectio-server/internal/rewrite"
	"github.com/lectioapp/lectio-server/internal/source"
	"github.com/lectioapp/lectio-server/internal/store"
	"github.com/lectioapp/lectio-server/internal/validation"
)

// ProcessRequest is a validated request to synthesize notes for one video.
type ProcessRequest struct {
	YoutubeURL string `json:"youtube_url" validate:"required,url"`
	Language   string `json:"language" validate:"omitempty,oneof=english hinglish"`
	Style      string `json:"style" validate:"omitempty,oneof=simple exam"`
}

// Artifact is one export payload ready to stream to a client.
type Artifact struct {
	ContentType string
	Filename    string
	Data        []byte
}

// NotesService runs the synthesis pipeline and manages persisted notes.
type NotesService struct {
	pipeline  *pipeline.Pipeline
	rewriter  rewrite.Rewriter
	exporter  *export.Exporter
	store     *store.Store
	validator *validation.Validator
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// NewNotesService creates the notes service.
func NewNotesService(
	pipe *pipeline.Pipeline,
	rewriter rewrite.Rewriter,
	exporter *export.Exporter,
	st *store.Store,
	m *metrics.Metrics,
	log *logger.Logger,
) *NotesService {
	return &NotesService{
		pipeline:  pipe,
		rewriter:  rewriter,
		exporter:  exporter,
		store:     st,
		validator: validation.New(),
		metrics:   m,
		log:       log,
	}
}

// Process synthesizes, restyles, exports, and persists notes for a video.
func (s *NotesService) Process(ctx context.Context, req ProcessRequest) (*domain.Note, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	language := domain.Language(req.Language)
	if language == "" {
		language = domain.LanguageEnglish
	}
	style := domain.Style(req.Style)
	if style == "" {
		style = domain.StyleSimple
	}
	if !language.Valid() {
		return nil, domainerrors.Validationf("unsupported language %q", req.Language)
	}
	if !style.Valid() {
		return nil, domainerrors.Validationf("unsupported style %q", req.Style)
	}

	videoID, err := source.ParseVideoID(req.YoutubeURL)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	s.log.Info("processing video", "video_id", videoID, "language", string(language), "style", string(style))

	draft, err := s.pipeline.Run(ctx, videoID)
	if err != nil {
		s.metrics.IncProcessFailures()
		return nil, err
	}

	topics := s.rewriter.Rewrite(ctx, rewrite.Request{
		Language: language,
		Style:    style,
		Notes:    draft,
	})

	note := &domain.Note{
		ID:        id.MustGenerate("note"),
		SourceURL: req.YoutubeURL,
		Language:  language,
		Style:     style,
		Notes:     topics,
		CreatedAt: time.Now().Unix(),
	}
	note.Exports = s.exporter.Render(note)

	if err := s.store.SaveNote(note); err != nil {
		s.metrics.IncProcessFailures()
		return nil, domainerrors.Internalf("persist note: %v", err)
	}

	s.metrics.IncNotesProcessed()
	s.metrics.ObserveProcessDuration(time.Since(started))
	s.log.Info("video processed",
		"video_id", videoID,
		"note_id", note.ID,
		"topics", len(note.Notes),
		"took", time.Since(started).Round(time.Millisecond).String(),
	)
	return note, nil
}

// Get returns a persisted note by ID.
func (s *NotesService) Get(_ context.Context, noteID string) (*domain.Note, error) {
	return s.store.GetNote(noteID)
}

// List returns all persisted notes, newest first.
func (s *NotesService) List(_ context.Context) ([]*domain.Note, error) {
	return s.store.ListNotes()
}

// Export returns a rendered artifact for a previously processed note.
func (s *NotesService) Export(_ context.Context, format export.Format, noteID string) (*Artifact, error) {
	if !format.Valid() {
		return nil, domainerrors.Validationf("unknown export format %q", format)
	}
	// Resolve the note first so an unknown ID reads as a missing note,
	// not a missing file.
	if _, err := s.store.GetNote(noteID); err != nil {
		return nil, err
	}
	data, err := s.exporter.Open(format, noteID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncExportsServed(string(format))
	return &Artifact{
		ContentType: format.ContentType(),
		Filename:    exportFilename(format, noteID),
		Data:        data,
	}, nil
}

func exportFilename(format export.Format, noteID string) string {
	switch format {
	case export.FormatPDF:
		return noteID + ".pdf"
	case export.FormatDOCX:
		return noteID + ".docx"
	default:
		return noteID + ".md"
	}
}
