package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lectioapp/lectio-server/internal/domain"
	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
	"github.com/lectioapp/lectio-server/internal/logger"
)

// Format identifies one export artifact kind.
type Format string

// Supported export formats.
const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatMarkdown Format = "markdown"
)

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatMarkdown:
		return true
	}
	return false
}

// ContentType returns the MIME type served for this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/markdown; charset=utf-8"
	}
}

func (f Format) filename() string {
	switch f {
	case FormatPDF:
		return "notes.pdf"
	case FormatDOCX:
		return "notes.docx"
	default:
		return "notes.md"
	}
}

// Exporter renders notes into artifacts under a per-note directory.
type Exporter struct {
	dir string
	log *logger.Logger
}

// NewExporter creates the export root directory if needed.
func NewExporter(dir string, log *logger.Logger) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &Exporter{dir: dir, log: log}, nil
}

// Render writes all three artifacts for note and returns their retrieval
// links. A failing format is skipped: its link stays empty and the other
// artifacts still render.
func (e *Exporter) Render(note *domain.Note) domain.ExportLinks {
	noteDir := filepath.Join(e.dir, note.ID)
	if err := os.MkdirAll(noteDir, 0o755); err != nil {
		e.log.WithError(err).Error("create note export directory", "note_id", note.ID)
		return domain.ExportLinks{}
	}

	var links domain.ExportLinks
	links.Markdown = e.write(noteDir, note.ID, FormatMarkdown, Markdown(note))

	if data, err := PDF(note); err != nil {
		e.log.WithError(err).Warn("pdf export failed", "note_id", note.ID)
	} else {
		links.PDF = e.write(noteDir, note.ID, FormatPDF, data)
	}

	if data, err := DOCX(note); err != nil {
		e.log.WithError(err).Warn("docx export failed", "note_id", note.ID)
	} else {
		links.DOCX = e.write(noteDir, note.ID, FormatDOCX, data)
	}
	return links
}

func (e *Exporter) write(noteDir, noteID string, format Format, data []byte) string {
	path := filepath.Join(noteDir, format.filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		e.log.WithError(err).Warn("write export artifact", "note_id", noteID, "format", string(format))
		return ""
	}
	return Link(format, noteID)
}

// Link builds the API retrieval path for an artifact.
func Link(format Format, noteID string) string {
	return fmt.Sprintf("/api/v1/export/%s/%s", format, noteID)
}

// Open returns the artifact bytes for a previously rendered note.
func (e *Exporter) Open(format Format, noteID string) ([]byte, error) {
	if !format.Valid() {
		return nil, domainerrors.Validationf("unknown export format %q", format)
	}
	path := filepath.Join(e.dir, noteID, format.filename())
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerrors.NotFoundf("no %s export for note %s", format, noteID)
		}
		return nil, fmt.Errorf("read export artifact: %w", err)
	}
	return data, nil
}
