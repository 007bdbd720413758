package pipeline

import (
	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/heuristics"
)

// Segmenter partitions the window sequence into contiguous topic spans by
// scoring lexical distance between adjacent windows.
type Segmenter struct {
	rules      heuristics.Rules
	minWindows int
	threshold  float64
}

// NewSegmenter builds a segmenter with the given rule tables, minimum span
// size in windows, and boundary distance threshold in [0,1].
func NewSegmenter(rules heuristics.Rules, minWindows int, threshold float64) *Segmenter {
	return &Segmenter{rules: rules, minWindows: minWindows, threshold: threshold}
}

// Segment partitions windows into topic spans. A boundary lands between
// adjacent windows when their keyword-set Jaccard distance exceeds the
// threshold, or when the later window contains a discourse marker. Spans
// shorter than the minimum are avoided by deferring the boundary, except on
// lectures too short to hold two minimum-size spans, where the guard is
// relaxed so a strongly distinct short lecture still splits. A short trailing
// span merges back into its predecessor under the same exception.
func (s *Segmenter) Segment(windows []domain.TimeWindow) ([]domain.TopicSpan, error) {
	if len(windows) == 0 {
		return nil, ErrInsufficientContent
	}

	minSpan := s.minWindows
	if len(windows) < 2*s.minWindows {
		minSpan = 1
	}

	sets := make([]map[string]bool, len(windows))
	for i, w := range windows {
		sets[i] = s.rules.KeywordSet(w.Text)
	}

	var spans []domain.TopicSpan
	spanStart := 0
	for i := 1; i < len(windows); i++ {
		if i-spanStart < minSpan {
			continue
		}
		boundary := heuristics.JaccardDistance(sets[i-1], sets[i]) > s.threshold ||
			s.rules.HasDiscourseMarker(windows[i].Text)
		if boundary {
			spans = append(spans, s.span(windows, spanStart, i, len(spans)))
			spanStart = i
		}
	}
	// Fold a short trailing span into its predecessor.
	if len(spans) > 0 && len(windows)-spanStart < minSpan {
		last := spans[len(spans)-1]
		spans = spans[:len(spans)-1]
		spans = append(spans, s.span(windows, last.WindowIndices[0], len(windows), len(spans)))
	} else {
		spans = append(spans, s.span(windows, spanStart, len(windows), len(spans)))
	}
	return spans, nil
}

func (s *Segmenter) span(windows []domain.TimeWindow, start, end, index int) domain.TopicSpan {
	indices := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indices = append(indices, i)
	}
	return domain.TopicSpan{
		TopicName:     s.rules.TopicTitle(windows[start].Text, index),
		StartTime:     windows[start].StartTime,
		EndTime:       windows[end-1].EndTime,
		WindowIndices: indices,
	}
}
