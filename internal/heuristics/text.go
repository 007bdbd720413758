package heuristics

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	bracketRe    = regexp.MustCompile(`\[.*?\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`[a-zA-Z]+`)
	sentenceRe   = regexp.MustCompile(`[.?!\n]+`)
)

// CleanText strips bracketed annotations such as [Music] or [Applause] and
// collapses runs of whitespace.
func CleanText(s string) string {
	s = bracketRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// NormalizeKey lowercases and collapses whitespace, producing the key used
// for case-insensitive deduplication of screen content.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " ")))
}

// SplitSentences breaks free text into sentence-sized units. Terminators and
// newlines both end a unit; empty units are dropped.
func SplitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Keywords extracts salient lowercase words from text, in order of first
// appearance, with repeats. Words shorter than the rule minimum and stop
// words are excluded.
func (r Rules) Keywords(text string) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < r.MinKeywordLength || r.StopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// KeywordSet returns the unique keyword set of text.
func (r Rules) KeywordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range r.Keywords(text) {
		set[w] = true
	}
	return set
}

// JaccardDistance computes 1 - |a∩b| / |a∪b|. Two empty sets are considered
// identical, so consecutive silent windows never force a topic boundary.
func JaccardDistance(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return 1 - float64(inter)/float64(union)
}

// HasDiscourseMarker reports whether text opens a new topic with an explicit
// transition phrase.
func (r Rules) HasDiscourseMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range r.DiscourseMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// TopicTitle derives a human-readable topic name from the leading window of a
// span. It takes the two most frequent keywords, breaking ties by first
// appearance, and falls back to a numbered title when the window has no
// salient keywords. index is zero-based.
func (r Rules) TopicTitle(leadingText string, index int) string {
	keywords := r.Keywords(leadingText)
	if len(keywords) == 0 {
		return fmt.Sprintf("Topic %d", index+1)
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(keywords))
	for _, w := range keywords {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	top := make([]string, 0, 2)
	for len(top) < 2 {
		best := ""
		for _, w := range order {
			if contains(top, w) {
				continue
			}
			if best == "" || counts[w] > counts[best] {
				best = w
			}
		}
		if best == "" {
			break
		}
		top = append(top, best)
	}

	for i, w := range top {
		top[i] = capitalize(w)
	}
	return strings.Join(top, " & ")
}

// Simplify applies the rule table's word substitutions to a sentence and
// ensures it opens with a capital letter.
func (r Rules) Simplify(sentence string) string {
	lower := sentence
	for _, sub := range r.Simplifications {
		lower = replaceWord(lower, sub.Old, sub.New)
	}
	return capitalize(strings.TrimSpace(lower))
}

// capitalize upper-cases the first rune. Captions are not limited to ASCII,
// so the first rune must be decoded, not sliced.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// MergeShortBullets merges any bullet shorter than the rule minimum into the
// bullet that follows it, preserving order. A short trailing bullet is folded
// into its predecessor instead.
func (r Rules) MergeShortBullets(bullets []string) []string {
	out := make([]string, 0, len(bullets))
	carry := ""
	for _, b := range bullets {
		if carry != "" {
			b = carry + " " + b
			carry = ""
		}
		if len(strings.Fields(b)) < r.MinBulletWords {
			carry = b
			continue
		}
		out = append(out, b)
	}
	if carry != "" {
		if len(out) > 0 {
			out[len(out)-1] = out[len(out)-1] + " " + carry
		} else {
			out = append(out, carry)
		}
	}
	return out
}

func replaceWord(s, old, new string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(old) + `\b`)
	return re.ReplaceAllString(s, new)
}

func contains(list []string, w string) bool {
	for _, v := range list {
		if v == w {
			return true
		}
	}
	return false
}
