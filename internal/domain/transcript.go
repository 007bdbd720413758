// Package domain contains the core entities for the Lectio notes pipeline.
package domain

// CaptionEntry is a single timestamped caption from the spoken transcript.
// Entries are ordered by StartTime and non-overlapping by construction;
// overlapping source captions are merged during fetch.
type CaptionEntry struct {
	StartTime float64 `json:"start_time"` // seconds
	Duration  float64 `json:"duration"`   // seconds
	Text      string  `json:"text"`
}

// EndTime returns the caption's end in seconds.
func (c CaptionEntry) EndTime() float64 {
	return c.StartTime + c.Duration
}

// TimeWindow is a fixed-duration aggregation of one or more captions.
// Windows are contiguous and ordered; gaps appear only where the source
// transcript itself has none.
type TimeWindow struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
}

// Duration returns the window length in seconds.
func (w TimeWindow) Duration() float64 {
	return w.EndTime - w.StartTime
}

// TopicSpan is a contiguous run of windows assigned to one named topic.
// Spans partition the full window sequence: every window belongs to
// exactly one span, spans are ordered by StartTime and non-overlapping.
type TopicSpan struct {
	TopicName     string  `json:"topic_name"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	WindowIndices []int   `json:"window_indices"`
}

// ScreenFragment is a time-ranged piece of on-screen text produced by OCR.
type ScreenFragment struct {
	StartTime          float64 `json:"start_time"`
	EndTime            float64 `json:"end_time"`
	Text               string  `json:"text"`
	IsFormulaOrDiagram bool    `json:"is_formula_or_diagram"`
	IsCode             bool    `json:"is_code"`
}

// CodeFragment is a detected block of source code with its on-screen time range.
type CodeFragment struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Language  string  `json:"language"`
	RawCode   string  `json:"raw_code"`
}
