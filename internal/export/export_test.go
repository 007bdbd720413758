package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectioapp/lectio-server/internal/domain"
	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
	"github.com/lectioapp/lectio-server/internal/logger"
)

func sampleNote() *domain.Note {
	return &domain.Note{
		ID:        "note-abc123",
		SourceURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Language:  domain.LanguageEnglish,
		Style:     domain.StyleSimple,
		Notes: []domain.TopicNote{
			{
				TopicName:          "Arrays",
				StartTime:          0,
				EndTime:            90,
				Explanation:        []string{"Arrays store elements next to each other", "Indexing is constant time"},
				ScreenContent:      []string{"arr[i] lookup table"},
				FormulasOrDiagrams: []string{"n = len(arr)"},
			},
			{
				TopicName:   "Sorting",
				StartTime:   90,
				EndTime:     4000,
				Explanation: []string{"Bubble sort swaps adjacent elements"},
				Diagram:     "unsorted -> compare -> swap -> sorted",
				CodeSections: []domain.CodeBlock{
					{
						Language:    "python",
						Code:        "def bubble_sort(arr):\n    pass",
						Explanation: "Implements bubble_sort in python.",
						LineByLine: []domain.CodeLine{
							{LineNumber: 1, Explanation: "Declares a function."},
						},
					},
				},
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := string(Markdown(sampleNote()))

	assert.Contains(t, md, "# Lecture Notes")
	assert.Contains(t, md, "## 1. Arrays")
	assert.Contains(t, md, "## 2. Sorting")
	assert.Contains(t, md, "- Arrays store elements next to each other")
	assert.Contains(t, md, "```python\ndef bubble_sort(arr):")
	assert.Contains(t, md, "- Line 1: Declares a function.")
	assert.Contains(t, md, "_0:00 - 1:30_")
	assert.Contains(t, md, "1:06:40") // hour-long timestamps use h:mm:ss
}

func TestPDF(t *testing.T) {
	data, err := PDF(sampleNote())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "missing pdf magic")
	assert.Greater(t, len(data), 500)
}

func TestDOCX(t *testing.T) {
	data, err := DOCX(sampleNote())
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	names := make(map[string]bool)
	var doc string
	for _, f := range r.File {
		names[f.Name] = true
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			body, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			doc = string(body)
		}
	}
	assert.True(t, names["[Content_Types].xml"])
	assert.True(t, names["_rels/.rels"])
	require.True(t, names["word/document.xml"])

	assert.Contains(t, doc, "Arrays store elements next to each other")
	assert.Contains(t, doc, "2. Sorting")
	// XML-escaped code content survives.
	assert.Contains(t, doc, "def bubble_sort(arr):")
}

func TestExporter(t *testing.T) {
	log := logger.New(logger.Config{Writer: io.Discard, Format: "json"})

	t.Run("render writes all artifacts", func(t *testing.T) {
		e, err := NewExporter(t.TempDir(), log)
		require.NoError(t, err)

		links := e.Render(sampleNote())
		assert.Equal(t, "/api/v1/export/pdf/note-abc123", links.PDF)
		assert.Equal(t, "/api/v1/export/docx/note-abc123", links.DOCX)
		assert.Equal(t, "/api/v1/export/markdown/note-abc123", links.Markdown)

		for _, format := range []Format{FormatPDF, FormatDOCX, FormatMarkdown} {
			data, err := e.Open(format, "note-abc123")
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		}
	})

	t.Run("open unknown note", func(t *testing.T) {
		e, err := NewExporter(t.TempDir(), log)
		require.NoError(t, err)

		_, err = e.Open(FormatPDF, "note-missing")
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
	})

	t.Run("open invalid format", func(t *testing.T) {
		e, err := NewExporter(t.TempDir(), log)
		require.NoError(t, err)

		_, err = e.Open(Format("csv"), "note-abc123")
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	})

	t.Run("markdown artifact round-trips content", func(t *testing.T) {
		e, err := NewExporter(t.TempDir(), log)
		require.NoError(t, err)
		e.Render(sampleNote())

		data, err := e.Open(FormatMarkdown, "note-abc123")
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "## 1. Arrays"))
	})
}
