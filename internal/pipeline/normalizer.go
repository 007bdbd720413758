// Package pipeline implements the deterministic notes-synthesis pipeline:
// caption normalization into fixed time windows, lexical topic segmentation,
// interval alignment of screen and code fragments, and compilation of the
// structured draft. Every stage is pure with respect to its inputs, so the
// same transcript always yields the same draft.
package pipeline

import (
	"errors"
	"sort"

	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/heuristics"
)

// Internal conditions handled by the orchestrator's fallback path. They never
// surface to callers of Pipeline.Run.
var (
	ErrEmptyTranscript     = errors.New("pipeline: transcript has no usable captions")
	ErrInsufficientContent = errors.New("pipeline: not enough content to segment")
)

// Normalize buckets captions into contiguous time windows of roughly
// windowSeconds each. A caption is never split: the window absorbing it
// extends to the caption's end time, and a caption starting past the current
// window's nominal boundary opens a fresh window at its own start time, so
// silent stretches appear as gaps between windows rather than empty windows.
func Normalize(captions []domain.CaptionEntry, windowSeconds float64) ([]domain.TimeWindow, error) {
	cleaned := make([]domain.CaptionEntry, 0, len(captions))
	for _, c := range captions {
		text := heuristics.CleanText(c.Text)
		if text == "" {
			continue
		}
		c.Text = text
		cleaned = append(cleaned, c)
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptyTranscript
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].StartTime < cleaned[j].StartTime
	})

	var windows []domain.TimeWindow
	var cur domain.TimeWindow
	closed := true // no open window yet

	for _, c := range cleaned {
		if closed {
			cur = domain.TimeWindow{StartTime: c.StartTime, EndTime: c.StartTime}
			closed = false
		} else if c.StartTime >= cur.StartTime+windowSeconds {
			windows = append(windows, cur)
			cur = domain.TimeWindow{StartTime: c.StartTime, EndTime: c.StartTime}
		}

		if cur.Text != "" {
			cur.Text += " "
		}
		cur.Text += c.Text
		if end := c.EndTime(); end > cur.EndTime {
			cur.EndTime = end
		}

		if cur.EndTime-cur.StartTime >= windowSeconds {
			windows = append(windows, cur)
			closed = true
		}
	}
	if !closed {
		windows = append(windows, cur)
	}
	return windows, nil
}
