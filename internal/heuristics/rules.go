// Package heuristics provides the pure text-analysis rules behind topic
// segmentation, naming, and code annotation. Every function is deterministic
// and takes its rule tables as input so individual rules can be unit tested
// and tuned without touching pipeline control flow.
package heuristics

import "regexp"

// LineRole maps a source-line pattern to a short explanation of its role.
type LineRole struct {
	Pattern *regexp.Regexp
	Text    string
}

// LanguageSignature maps substring markers to a programming language name.
type LanguageSignature struct {
	Language string
	Markers  []string
}

// Replacement is an ordered word substitution applied during sentence simplification.
type Replacement struct {
	Old string
	New string
}

// Rules bundles every tunable heuristic table used by the pipeline.
type Rules struct {
	// StopWords are excluded from keyword extraction and topic naming.
	StopWords map[string]bool
	// DiscourseMarkers force a topic boundary candidate when a window opens with one.
	DiscourseMarkers []string
	// MinKeywordLength is the minimum length of a salient keyword.
	MinKeywordLength int
	// MinBulletWords is the bullet size below which a bullet merges with its successor.
	MinBulletWords int
	// Simplifications are applied to each explanation bullet, in order.
	Simplifications []Replacement
	// CodePatterns classify a line of text as source code.
	CodePatterns []*regexp.Regexp
	// FormulaPattern classifies a line of text as formula-like.
	FormulaPattern *regexp.Regexp
	// DiagramPattern classifies screen text as a renderable diagram description.
	DiagramPattern *regexp.Regexp
	// LineRoles annotate code lines, first match wins.
	LineRoles []LineRole
	// LanguageSignatures guess a code fragment's language, first match wins.
	LanguageSignatures []LanguageSignature
}

// DefaultRules returns the rule tables used in production.
func DefaultRules() Rules {
	return Rules{
		StopWords: map[string]bool{
			"the": true, "a": true, "an": true, "and": true, "or": true,
			"to": true, "of": true, "in": true, "for": true, "is": true,
			"are": true, "this": true, "that": true, "we": true, "you": true,
			"it": true, "with": true, "on": true, "as": true, "be": true,
			"by": true, "from": true, "at": true,
			// Lecture filler that makes for poor topic names.
			"now": true, "here": true, "look": true, "like": true,
			"going": true, "okay": true, "well": true, "just": true,
			"really": true, "very": true, "thing": true, "things": true,
			"today": true, "video": true, "lets": true, "will": true,
			"what": true, "when": true, "then": true, "them": true,
			"some": true, "also": true, "into": true, "about": true,
		},
		DiscourseMarkers: []string{
			"now let's",
			"now lets",
			"next topic",
			"moving on",
			"let's move",
			"lets move",
			"next up",
			"coming to",
			"switching to",
		},
		MinKeywordLength: 4,
		MinBulletWords:   5,
		Simplifications: []Replacement{
			{Old: "therefore", New: "so"},
			{Old: "hence", New: "so"},
			{Old: "approximately", New: "about"},
			{Old: "utilize", New: "use"},
			{Old: "demonstrates", New: "shows"},
			{Old: "fundamentally", New: "mainly"},
		},
		CodePatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*#include`),
			regexp.MustCompile(`^\s*import\s`),
			regexp.MustCompile(`\bint\s+main\b`),
			regexp.MustCompile(`\breturn\s+\d+;`),
			regexp.MustCompile(`\b(?:for|while|if)\s*\(`),
			regexp.MustCompile(`console\.log`),
			regexp.MustCompile(`\bdef\s+\w+`),
			regexp.MustCompile(`^\s*return\b`),
			regexp.MustCompile(`\bfunc\s+\w+`),
			regexp.MustCompile(`\b(?:int|float|double|char|long|short|bool|string)\b\s+[a-zA-Z_]\w*\s*=.*;`),
			regexp.MustCompile(`;\s*$`),
			regexp.MustCompile(`^\s*[{}]\s*$`),
		},
		FormulaPattern: regexp.MustCompile(`(?i)(=|\bplus\b|\bminus\b|\bintegral\b|\bderivative\b|\bmatrix\b|\bvoltage\b|\bcurrent\b|\bforce\b|\benergy\b|\bsum\b|\bsigma\b|\bkcl\b|\bkvl\b)`),
		DiagramPattern: regexp.MustCompile(`(->|=>|\|__|__\||\+--|--\+|^flow:)`),
		LineRoles: []LineRole{
			{Pattern: regexp.MustCompile(`^\s*#include`), Text: "Includes a header file for input/output support."},
			{Pattern: regexp.MustCompile(`\bint\s+main\s*\(`), Text: "Program execution starts here."},
			{Pattern: regexp.MustCompile(`^\s*\{\s*$`), Text: "Opens a new code block."},
			{Pattern: regexp.MustCompile(`^\s*\}\s*;?\s*$`), Text: "Closes the current code block."},
			{Pattern: regexp.MustCompile(`^\s*(//|#|/\*)`), Text: "Comment describing the logic."},
			{Pattern: regexp.MustCompile(`^\s*import\s`), Text: "Imports a module used below."},
			{Pattern: regexp.MustCompile(`\b(def|func|function)\s+\w+`), Text: "Declares a function."},
			{Pattern: regexp.MustCompile(`\b(for|while)\b`), Text: "Loop that repeats the following block."},
			{Pattern: regexp.MustCompile(`\bif\b`), Text: "Condition guarding the next statement."},
			{Pattern: regexp.MustCompile(`\breturn\b`), Text: "Returns the result and exits the function."},
			{Pattern: regexp.MustCompile(`(printf|println|console\.log|print\(|cout\s*<<)`), Text: "Prints output to the screen."},
			{Pattern: regexp.MustCompile(`=`), Text: "Assigns or computes a value."},
		},
		LanguageSignatures: []LanguageSignature{
			{Language: "c", Markers: []string{"#include", "int main", "printf"}},
			{Language: "java", Markers: []string{"public static void main", "system.out"}},
			{Language: "python", Markers: []string{"def ", "import ", "print("}},
			{Language: "javascript", Markers: []string{"console.log", "function ", "const ", "let "}},
			{Language: "go", Markers: []string{"func ", "package ", ":="}},
		},
	}
}
