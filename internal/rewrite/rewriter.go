// Package rewrite adjusts the tone and language of compiled draft notes.
// The draft is always a valid result on its own: a rewriter that cannot run,
// times out, or returns something unusable hands the draft back unchanged.
package rewrite

import (
	"context"

	"github.com/lectioapp/lectio-server/internal/domain"
)

// Request carries the rewrite parameters alongside the compiled draft.
type Request struct {
	Language domain.Language
	Style    domain.Style
	Notes    []domain.TopicNote
}

// Rewriter restyles the explanation bullets of a compiled draft. Structure
// (topic names, ordering, screen content, code sections) must pass through
// untouched; only explanation wording may change, and a topic's bullet count
// may only shrink.
type Rewriter interface {
	Rewrite(ctx context.Context, req Request) []domain.TopicNote
}

// Noop returns every draft unchanged. Used when no model is configured.
type Noop struct{}

// Rewrite returns the draft as-is.
func (Noop) Rewrite(_ context.Context, req Request) []domain.TopicNote {
	return req.Notes
}
