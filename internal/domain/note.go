package domain

// TopicNote is one compiled study note covering a single topic span.
type TopicNote struct {
	TopicName          string      `json:"topic_name"`
	StartTime          float64     `json:"start_time"`
	EndTime            float64     `json:"end_time"`
	Explanation        []string    `json:"explanation"`
	ScreenContent      []string    `json:"screen_content"`
	FormulasOrDiagrams []string    `json:"formulas_or_diagrams"`
	Diagram            string      `json:"diagram,omitempty"`
	CodeSections       []CodeBlock `json:"code_sections"`
}

// CodeBlock is an annotated code listing inside a topic note.
type CodeBlock struct {
	Language    string     `json:"language"`
	Code        string     `json:"code"`
	Explanation string     `json:"explanation"`
	LineByLine  []CodeLine `json:"line_by_line"`
}

// CodeLine explains the role of a single non-blank source line.
// LineNumber is 1-based and reflects the line's position in the original
// listing; blank lines are skipped but keep their number reserved.
type CodeLine struct {
	LineNumber  int    `json:"line_number"`
	Explanation string `json:"explanation"`
}

// ExportLinks holds retrieval paths for the rendered export artifacts.
type ExportLinks struct {
	PDF      string `json:"pdf"`
	DOCX     string `json:"docx"`
	Markdown string `json:"markdown"`
}

// Note is the persisted result of one processing request.
type Note struct {
	ID        string      `json:"note_id"`
	SourceURL string      `json:"source_url"`
	Language  Language    `json:"language"`
	Style     Style       `json:"style"`
	Notes     []TopicNote `json:"notes"`
	Exports   ExportLinks `json:"exports"`
	CreatedAt int64       `json:"created_at"` // unix seconds
}
