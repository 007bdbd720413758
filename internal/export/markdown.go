// Package export renders a synthesized note into downloadable artifacts and
// keeps them on disk under a per-note directory.
package export

import (
	"fmt"
	"strings"

	"github.com/lectioapp/lectio-server/internal/domain"
)

// Markdown renders the note as a UTF-8 markdown document.
func Markdown(note *domain.Note) []byte {
	var b strings.Builder
	b.WriteString("# Lecture Notes\n\n")
	fmt.Fprintf(&b, "Source: %s\n\n", note.SourceURL)

	for i, topic := range note.Notes {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, topic.TopicName)
		fmt.Fprintf(&b, "_%s - %s_\n\n", formatTimestamp(topic.StartTime), formatTimestamp(topic.EndTime))

		for _, bullet := range topic.Explanation {
			fmt.Fprintf(&b, "- %s\n", bullet)
		}
		b.WriteString("\n")

		if len(topic.ScreenContent) > 0 {
			b.WriteString("### On Screen\n\n")
			for _, line := range topic.ScreenContent {
				fmt.Fprintf(&b, "- %s\n", line)
			}
			b.WriteString("\n")
		}

		if len(topic.FormulasOrDiagrams) > 0 {
			b.WriteString("### Formulas\n\n")
			for _, f := range topic.FormulasOrDiagrams {
				fmt.Fprintf(&b, "- `%s`\n", f)
			}
			b.WriteString("\n")
		}

		if topic.Diagram != "" {
			b.WriteString("### Diagram\n\n```\n")
			b.WriteString(topic.Diagram)
			b.WriteString("\n```\n\n")
		}

		for _, block := range topic.CodeSections {
			fmt.Fprintf(&b, "### Code (%s)\n\n", block.Language)
			fmt.Fprintf(&b, "%s\n\n", block.Explanation)
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", block.Language, block.Code)
			if len(block.LineByLine) > 0 {
				b.WriteString("Line by line:\n\n")
				for _, line := range block.LineByLine {
					fmt.Fprintf(&b, "- Line %d: %s\n", line.LineNumber, line.Explanation)
				}
				b.WriteString("\n")
			}
		}
	}
	return []byte(b.String())
}

// formatTimestamp renders seconds as m:ss or h:mm:ss.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
