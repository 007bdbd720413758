package pipeline

import (
	"sort"
	"strings"

	"github.com/lectioapp/lectio-server/internal/domain"
)

// Bundle groups one topic span with the window text and fragments assigned to it.
type Bundle struct {
	Span   domain.TopicSpan
	Text   string
	Screen []domain.ScreenFragment
	Code   []domain.CodeFragment
}

// Align assigns every screen and code fragment to exactly one topic span: the
// span with the largest time overlap, breaking ties toward the earlier span.
// A fragment overlapping no span attaches to the nearest span by start time.
// Spans and fragments are swept in start order, so the cost is linear in
// their combined count once sorted.
func Align(spans []domain.TopicSpan, windows []domain.TimeWindow, screens []domain.ScreenFragment, codes []domain.CodeFragment) []Bundle {
	bundles := make([]Bundle, len(spans))
	for i, span := range spans {
		texts := make([]string, 0, len(span.WindowIndices))
		for _, wi := range span.WindowIndices {
			texts = append(texts, windows[wi].Text)
		}
		bundles[i] = Bundle{Span: span, Text: strings.Join(texts, " ")}
	}

	sorted := make([]domain.ScreenFragment, len(screens))
	copy(sorted, screens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })
	assign(spans, len(sorted), func(i int) (float64, float64) {
		return sorted[i].StartTime, sorted[i].EndTime
	}, func(i, spanIdx int) {
		bundles[spanIdx].Screen = append(bundles[spanIdx].Screen, sorted[i])
	})

	sortedCode := make([]domain.CodeFragment, len(codes))
	copy(sortedCode, codes)
	sort.SliceStable(sortedCode, func(i, j int) bool { return sortedCode[i].StartTime < sortedCode[j].StartTime })
	assign(spans, len(sortedCode), func(i int) (float64, float64) {
		return sortedCode[i].StartTime, sortedCode[i].EndTime
	}, func(i, spanIdx int) {
		bundles[spanIdx].Code = append(bundles[spanIdx].Code, sortedCode[i])
	})

	return bundles
}

// assign sweeps fragments (sorted by start) against spans (sorted by start),
// attaching each fragment to the best-overlapping span.
func assign(spans []domain.TopicSpan, n int, interval func(int) (float64, float64), attach func(fragIdx, spanIdx int)) {
	if len(spans) == 0 {
		return
	}
	lo := 0
	for i := 0; i < n; i++ {
		start, end := interval(i)

		// Skip spans that end before this fragment starts. Later fragments
		// start no earlier, so lo never moves backward.
		for lo < len(spans)-1 && spans[lo].EndTime <= start {
			lo++
		}

		best := -1
		bestOverlap := 0.0
		for j := lo; j < len(spans) && spans[j].StartTime < end; j++ {
			overlap := min(end, spans[j].EndTime) - max(start, spans[j].StartTime)
			if overlap > bestOverlap {
				best = j
				bestOverlap = overlap
			}
		}
		if best == -1 {
			// No positive overlap: attach to the nearest span. The sweep may
			// have advanced lo past the closest span, so the previous span is
			// a candidate too. Ties go to the earlier span.
			best = max(lo-1, 0)
			bestDist := distance(start, end, spans[best])
			for j := best + 1; j <= lo+1 && j < len(spans); j++ {
				if d := distance(start, end, spans[j]); d < bestDist {
					best = j
					bestDist = d
				}
			}
		}
		attach(i, best)
	}
}

func distance(start, end float64, span domain.TopicSpan) float64 {
	if end <= span.StartTime {
		return span.StartTime - end
	}
	if start >= span.EndTime {
		return start - span.EndTime
	}
	return 0
}
