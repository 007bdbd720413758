package heuristics

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierRe = regexp.MustCompile(`(?:def|func|function)\s+(\w+)|(\w+)\s*\([^)]*\)\s*[{:]`)

// LooksLikeCode reports whether a single line of screen text resembles source code.
func (r Rules) LooksLikeCode(line string) bool {
	for _, p := range r.CodePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// LooksLikeFormula reports whether a line of screen text resembles a formula
// or equation rather than prose.
func (r Rules) LooksLikeFormula(line string) bool {
	if r.LooksLikeCode(line) {
		return false
	}
	return r.FormulaPattern.MatchString(line)
}

// LooksLikeDiagram reports whether screen text is a renderable diagram
// description, such as an ASCII flow sketch.
func (r Rules) LooksLikeDiagram(text string) bool {
	return r.DiagramPattern.MatchString(strings.ToLower(text))
}

// GuessLanguage guesses the programming language of a code fragment from its
// signature markers. Returns "text" when nothing matches.
func (r Rules) GuessLanguage(code string) string {
	lower := strings.ToLower(code)
	for _, sig := range r.LanguageSignatures {
		for _, m := range sig.Markers {
			if strings.Contains(lower, m) {
				return sig.Language
			}
		}
	}
	return "text"
}

// ExplainLine produces a one-sentence role annotation for a single code line.
func (r Rules) ExplainLine(line string) string {
	for _, role := range r.LineRoles {
		if role.Pattern.MatchString(line) {
			return role.Text
		}
	}
	return "Core statement in this step."
}

// SummarizeCode produces a one-sentence summary of a code fragment, derived
// from its first function signature or meaningful statement.
func (r Rules) SummarizeCode(code, language string) string {
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := identifierRe.FindStringSubmatch(trimmed); m != nil {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			if name != "" && name != "if" && name != "for" && name != "while" {
				return fmt.Sprintf("Implements %s in %s, shown on screen during this topic.", name, language)
			}
		}
		if strings.Contains(trimmed, "for") || strings.Contains(trimmed, "while") {
			return fmt.Sprintf("Iterates over the data using a %s loop shown on screen.", language)
		}
		return fmt.Sprintf("Carries out the %s computation shown on screen.", language)
	}
	return "Carries out the computation shown on screen."
}
