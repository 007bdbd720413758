package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectioapp/lectio-server/internal/config"
	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/export"
	"github.com/lectioapp/lectio-server/internal/heuristics"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/metrics"
	"github.com/lectioapp/lectio-server/internal/pipeline"
	"github.com/lectioapp/lectio-server/internal/rewrite"
	"github.com/lectioapp/lectio-server/internal/service"
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

func newTestServer(t *testing.T, transcripts *stubTranscripts) *httptest.Server {
	t.Helper()
	log := logger.New(logger.Config{Writer: io.Discard, Format: "json"})

	pipe := pipeline.New(transcripts, stubScreens{}, stubCodes{}, heuristics.DefaultRules(),
		config.PipelineConfig{WindowSeconds: 45, MinWindowsPerTopic: 2, BoundaryThreshold: 0.82}, log)

	exporter, err := export.NewExporter(t.TempDir(), log)
	require.NoError(t, err)
	st, err := store.New(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	m := metrics.New()
	notes := service.NewNotesService(pipe, rewrite.Noop{}, exporter, st, m, log)
	srv := httptest.NewServer(NewServer(notes, m, config.ServerConfig{}, log))
	t.Cleanup(srv.Close)
	return srv
}

func defaultTranscripts() *stubTranscripts {
	return &stubTranscripts{captions: []domain.CaptionEntry{
		{StartTime: 0, Duration: 30, Text: "Intro to arrays"},
		{StartTime: 30, Duration: 40, Text: "Now let's look at sorting"},
		{StartTime: 70, Duration: 50, Text: "Here is bubble sort code"},
	}}
}

func processVideo(t *testing.T, srv *httptest.Server) domain.Note {
	t.Helper()
	body := []byte(`{"youtube_url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
	resp, err := http.Post(srv.URL+"/api/v1/process", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var note domain.Note
	require.NoError(t, json.UnmarshalRead(resp.Body, &note))
	return note
}

func TestProcessEndpoint(t *testing.T) {
	t.Run("returns synthesized note", func(t *testing.T) {
		srv := newTestServer(t, defaultTranscripts())
		body := []byte(`{"youtube_url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)
		resp, err := http.Post(srv.URL+"/api/v1/process", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"note_id"`)

		var note domain.Note
		require.NoError(t, json.Unmarshal(raw, &note))
		assert.NotEmpty(t, note.ID)
		assert.Len(t, note.Notes, 2)
		assert.Equal(t, domain.LanguageEnglish, note.Language)
		assert.NotEmpty(t, note.Exports.PDF)
	})

	t.Run("validation error is 400", func(t *testing.T) {
		srv := newTestServer(t, defaultTranscripts())
		body := []byte(`{"youtube_url":"https://vimeo.com/12345678901"}`)
		resp, err := http.Post(srv.URL+"/api/v1/process", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("transcript unavailable is 422", func(t *testing.T) {
		srv := newTestServer(t, &stubTranscripts{err: assert.AnError})
		body := []byte(`{"youtube_url":"https://youtu.be/dQw4w9WgXcQ"}`)
		resp, err := http.Post(srv.URL+"/api/v1/process", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestNoteEndpoints(t *testing.T) {
	srv := newTestServer(t, defaultTranscripts())
	note := processVideo(t, srv)

	t.Run("get note", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/notes/" + note.ID)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.Note
		require.NoError(t, json.UnmarshalRead(resp.Body, &got))
		assert.Equal(t, note.ID, got.ID)
	})

	t.Run("get missing note is 404", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/notes/note-missing")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list notes", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/notes")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Notes []domain.Note `json:"notes"`
		}
		require.NoError(t, json.UnmarshalRead(resp.Body, &body))
		require.Len(t, body.Notes, 1)
		assert.Equal(t, note.ID, body.Notes[0].ID)
	})
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t, defaultTranscripts())
	note := processVideo(t, srv)

	t.Run("downloads pdf", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/export/pdf/" + note.ID)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("unknown format is 400", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/export/csv/" + note.ID)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown note is 404", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/export/pdf/note-missing")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, defaultTranscripts())

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var health HealthResponse
		require.NoError(t, json.UnmarshalRead(resp.Body, &health))
		assert.Equal(t, "healthy", health.Status)
	})

	t.Run("metrics scrape", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(data), "lectio_requests_total")
	})
}
