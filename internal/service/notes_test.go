package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/domain"
	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
	"github.com/lectioapp/lectio-server/internal/export"
	"github.com/lectioapp/lectio-server/internal/heuristics"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/metrics"
	"github.com/lectioapp/lectio-server/internal/pipeline"
	"github.com/lectioapp/lectio-server/internal/rewrite"
	"github.com/lectioapp/lectio-server/internal/store"
)

type stubTranscripts struct {
	captions []domain.CaptionEntry
	err      error
}

func (s *stubTranscripts) Fetch(_ context.Context, _ string) ([]domain.CaptionEntry, error) {
	return s.captions, s.err
}

type stubScreens struct{}

func (stubScreens) Fetch(_ context.Context, _ string) ([]domain.ScreenFragment, error) {
	return nil, nil
}

type stubCodes struct{}

func (stubCodes) Detect(_ context.Context, _ []domain.CaptionEntry, _ []domain.ScreenFragment) ([]domain.CodeFragment, error) {
	return nil, nil
}

func newTestService(t *testing.T, transcripts *stubTranscripts) *NotesService {
	t.Helper()
	log := logger.New(logger.Config{Writer: io.Discard, Format: "json"})

	pipe := pipeline.New(transcripts, stubScreens{}, stubCodes{}, heuristics.DefaultRules(),
		config.PipelineConfig{WindowSeconds: 45, MinWindowsPerTopic: 2, BoundaryThreshold: 0.82}, log)

	exporter, err := export.NewExporter(t.TempDir(), log)
	require.NoError(t, err)

	st, err := store.New(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return NewNotesService(pipe, rewrite.Noop{}, exporter, st, metrics.New(), log)
}

func lectureCaptions() []domain.CaptionEntry {
	return []domain.CaptionEntry{
		{StartTime: 0, Duration: 30, Text: "Intro to arrays"},
		{StartTime: 30, Duration: 40, Text: "Now let's look at sorting"},
		{StartTime: 70, Duration: 50, Text: "Here is bubble sort code"},
	}
}

func TestProcess(t *testing.T) {
	t.Run("full run persists note with exports", func(t *testing.T) {
		svc := newTestService(t, &stubTranscripts{captions: lectureCaptions()})

		note, err := svc.Process(context.Background(), ProcessRequest{
			YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(note.ID, "note-"))
		assert.Equal(t, domain.LanguageEnglish, note.Language)
		assert.Equal(t, domain.StyleSimple, note.Style)
		assert.NotEmpty(t, note.Notes)
		assert.NotEmpty(t, note.Exports.PDF)
		assert.NotEmpty(t, note.Exports.DOCX)
		assert.NotEmpty(t, note.Exports.Markdown)

		stored, err := svc.Get(context.Background(), note.ID)
		require.NoError(t, err)
		assert.Equal(t, note.ID, stored.ID)
	})

	t.Run("invalid request", func(t *testing.T) {
		svc := newTestService(t, &stubTranscripts{captions: lectureCaptions()})

		_, err := svc.Process(context.Background(), ProcessRequest{YoutubeURL: ""})
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

		_, err = svc.Process(context.Background(), ProcessRequest{
			YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Language:   "klingon",
		})
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	})

	t.Run("non-youtube url", func(t *testing.T) {
		svc := newTestService(t, &stubTranscripts{captions: lectureCaptions()})
		_, err := svc.Process(context.Background(), ProcessRequest{YoutubeURL: "https://vimeo.com/12345678901"})
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	})

	t.Run("transcript unavailable surfaces", func(t *testing.T) {
		svc := newTestService(t, &stubTranscripts{err: assert.AnError})
		_, err := svc.Process(context.Background(), ProcessRequest{
			YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		})
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrTranscriptUnavailable))
	})
}

func TestExport(t *testing.T) {
	svc := newTestService(t, &stubTranscripts{captions: lectureCaptions()})
	note, err := svc.Process(context.Background(), ProcessRequest{
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)

	t.Run("serves each format", func(t *testing.T) {
		tests := []struct {
			format      export.Format
			contentType string
			suffix      string
		}{
			{export.FormatPDF, "application/pdf", ".pdf"},
			{export.FormatDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
			{export.FormatMarkdown, "text/markdown; charset=utf-8", ".md"},
		}
		for _, tt := range tests {
			artifact, err := svc.Export(context.Background(), tt.format, note.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, artifact.ContentType)
			assert.True(t, strings.HasSuffix(artifact.Filename, tt.suffix))
			assert.NotEmpty(t, artifact.Data)
		}
	})

	t.Run("unknown note", func(t *testing.T) {
		_, err := svc.Export(context.Background(), export.FormatPDF, "note-missing")
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := svc.Export(context.Background(), export.Format("csv"), note.ID)
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	})
}
