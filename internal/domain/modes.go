package domain

// Language selects the wording of rewritten bullets.
type Language string

// Supported languages.
const (
	LanguageEnglish  Language = "english"
	LanguageHinglish Language = "hinglish"
)

// Valid reports whether the language is supported.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHinglish:
		return true
	}
	return false
}

// Style selects the tone of rewritten bullets.
type Style string

// Supported styles.
const (
	StyleSimple Style = "simple"
	StyleExam   Style = "exam"
)

// Valid reports whether the style is supported.
func (s Style) Valid() bool {
	switch s {
	case StyleSimple, StyleExam:
		return true
	}
	return false
}
