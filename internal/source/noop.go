package source

import (
	"context"

	"github.com/lectioapp/lectio-server/internal/domain"
)

// NoopScreens is the ScreenSource used when OCR is disabled outright.
type NoopScreens struct{}

// Fetch always returns no fragments.
func (NoopScreens) Fetch(_ context.Context, _ string) ([]domain.ScreenFragment, error) {
	return nil, nil
}
