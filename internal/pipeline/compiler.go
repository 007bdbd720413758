package pipeline

import (
	"strings"

	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/heuristics"
)

// Compiler turns an aligned bundle into one structured topic note. Compilation
// never fails: missing inputs produce empty optional sections, never errors.
type Compiler struct {
	rules heuristics.Rules
}

// NewCompiler builds a compiler with the given rule tables.
func NewCompiler(rules heuristics.Rules) *Compiler {
	return &Compiler{rules: rules}
}

// Compile renders one topic note from a bundle.
func (c *Compiler) Compile(b Bundle) domain.TopicNote {
	note := domain.TopicNote{
		TopicName:   b.Span.TopicName,
		StartTime:   b.Span.StartTime,
		EndTime:     b.Span.EndTime,
		Explanation: c.explanation(b.Text),
	}

	seen := make(map[string]bool)
	for _, frag := range b.Screen {
		switch {
		case frag.IsCode:
			// Raw code lines are rendered through code sections, not prose.
		case frag.IsFormulaOrDiagram:
			note.FormulasOrDiagrams = append(note.FormulasOrDiagrams, frag.Text)
			if note.Diagram == "" && c.rules.LooksLikeDiagram(frag.Text) {
				note.Diagram = frag.Text
			}
		default:
			key := heuristics.NormalizeKey(frag.Text)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			note.ScreenContent = append(note.ScreenContent, frag.Text)
			if note.Diagram == "" && c.rules.LooksLikeDiagram(frag.Text) {
				note.Diagram = frag.Text
			}
		}
	}

	for _, frag := range b.Code {
		note.CodeSections = append(note.CodeSections, c.codeBlock(frag))
	}
	return note
}

// explanation splits span text into sentence bullets, simplifies each, and
// merges fragments too short to stand alone into their successors.
func (c *Compiler) explanation(text string) []string {
	sentences := heuristics.SplitSentences(text)
	bullets := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if b := c.rules.Simplify(s); b != "" {
			bullets = append(bullets, b)
		}
	}
	return c.rules.MergeShortBullets(bullets)
}

func (c *Compiler) codeBlock(frag domain.CodeFragment) domain.CodeBlock {
	language := frag.Language
	if language == "" {
		language = c.rules.GuessLanguage(frag.RawCode)
	}

	lines := strings.Split(frag.RawCode, "\n")
	block := domain.CodeBlock{
		Language:    language,
		Code:        frag.RawCode,
		Explanation: c.rules.SummarizeCode(frag.RawCode, language),
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		block.LineByLine = append(block.LineByLine, domain.CodeLine{
			LineNumber:  i + 1,
			Explanation: c.rules.ExplainLine(line),
		})
	}
	return block
}
