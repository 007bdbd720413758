package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/lectioapp/lectio-server/internal/domain"
)

// DOCX renders the note as a minimal OOXML word document: one document part
// plus the fixed content-type and relationship parts the format requires.
func DOCX(note *domain.Note) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(note)},
	}
	for _, p := range parts {
		f, err := w.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize docx: %w", err)
	}
	return buf.Bytes(), nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func documentXML(note *domain.Note) string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writePara(&b, "Lecture Notes", true, false)
	writePara(&b, "Source: "+note.SourceURL, false, false)

	for i, topic := range note.Notes {
		writePara(&b, fmt.Sprintf("%d. %s", i+1, topic.TopicName), true, false)
		writePara(&b, formatTimestamp(topic.StartTime)+" - "+formatTimestamp(topic.EndTime), false, false)
		for _, bullet := range topic.Explanation {
			writePara(&b, "• "+bullet, false, false)
		}
		if len(topic.ScreenContent) > 0 {
			writePara(&b, "On Screen", true, false)
			for _, line := range topic.ScreenContent {
				writePara(&b, "- "+line, false, false)
			}
		}
		if len(topic.FormulasOrDiagrams) > 0 {
			writePara(&b, "Formulas", true, false)
			for _, f := range topic.FormulasOrDiagrams {
				writePara(&b, f, false, true)
			}
		}
		if topic.Diagram != "" {
			writePara(&b, "Diagram", true, false)
			writePara(&b, topic.Diagram, false, true)
		}
		for _, block := range topic.CodeSections {
			writePara(&b, "Code ("+block.Language+")", true, false)
			writePara(&b, block.Explanation, false, false)
			writePara(&b, block.Code, false, true)
			for _, line := range block.LineByLine {
				writePara(&b, fmt.Sprintf("Line %d: %s", line.LineNumber, line.Explanation), false, false)
			}
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// writePara emits one paragraph per text line, escaping XML content.
// Monospace paragraphs keep their line breaks as separate paragraphs since
// the minimal document carries no explicit line-break runs.
func writePara(b *bytes.Buffer, text string, bold, mono bool) {
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(`<w:p><w:r><w:rPr>`)
		if bold {
			b.WriteString(`<w:b/>`)
		}
		if mono {
			b.WriteString(`<w:rFonts w:ascii="Courier New" w:hAnsi="Courier New"/>`)
		}
		b.WriteString(`</w:rPr><w:t xml:space="preserve">`)
		_ = xml.EscapeText(b, []byte(line))
		b.WriteString(`</w:t></w:r></w:p>`)
	}
}
