package source

import (
	"context"
	"strings"

	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/heuristics"
)

const (
	maxPooledLines   = 20
	maxLinesPerBlock = 8
	maxCodeBlocks    = 2
)

// CodeDetector assembles code fragments from code-classified screen text.
// Adjacent fragments merge into a single listing so a block scrolling across
// several frames comes out as one fragment.
type CodeDetector struct {
	rules heuristics.Rules
}

// NewCodeDetector builds a detector with the given rule tables.
func NewCodeDetector(rules heuristics.Rules) *CodeDetector {
	return &CodeDetector{rules: rules}
}

// Detect groups code-like lines into at most two annotatable fragments.
// Dictated code in the captions pools first, then code-classified screen
// text, so a lecture with no usable OCR still yields code sections.
func (d *CodeDetector) Detect(_ context.Context, captions []domain.CaptionEntry, screens []domain.ScreenFragment) ([]domain.CodeFragment, error) {
	type pooledLine struct {
		text       string
		start, end float64
	}

	var pool []pooledLine
	seen := make(map[string]bool)
	add := func(line string, start, end float64) {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" || !d.rules.LooksLikeCode(line) {
			return
		}
		key := heuristics.NormalizeKey(line)
		if seen[key] || len(pool) == maxPooledLines {
			return
		}
		seen[key] = true
		pool = append(pool, pooledLine{text: line, start: start, end: end})
	}

	for _, c := range captions {
		add(c.Text, c.StartTime, c.EndTime())
	}
	for _, frag := range screens {
		if !frag.IsCode {
			continue
		}
		for _, line := range strings.Split(frag.Text, "\n") {
			add(line, frag.StartTime, frag.EndTime)
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	var fragments []domain.CodeFragment
	for i := 0; i < len(pool) && len(fragments) < maxCodeBlocks; i += maxLinesPerBlock {
		end := min(i+maxLinesPerBlock, len(pool))
		chunk := pool[i:end]

		lines := make([]string, 0, len(chunk))
		start, stop := chunk[0].start, chunk[0].end
		for _, l := range chunk {
			lines = append(lines, l.text)
			if l.start < start {
				start = l.start
			}
			if l.end > stop {
				stop = l.end
			}
		}
		code := strings.Join(lines, "\n")
		fragments = append(fragments, domain.CodeFragment{
			StartTime: start,
			EndTime:   stop,
			Language:  d.rules.GuessLanguage(code),
			RawCode:   code,
		})
	}
	return fragments, nil
}
