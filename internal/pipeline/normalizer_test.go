package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectioapp/lectio-server/internal/domain"
)

func TestNormalize(t *testing.T) {
	t.Run("buckets captions into windows", func(t *testing.T) {
		captions := []domain.CaptionEntry{
			{StartTime: 0, Duration: 30, Text: "Intro to arrays"},
			{StartTime: 30, Duration: 40, Text: "Now let's look at sorting"},
			{StartTime: 70, Duration: 50, Text: "Here is bubble sort code"},
		}
		windows, err := Normalize(captions, 45)
		require.NoError(t, err)
		require.Len(t, windows, 2)

		assert.Equal(t, 0.0, windows[0].StartTime)
		assert.Equal(t, 70.0, windows[0].EndTime)
		assert.Equal(t, "Intro to arrays Now let's look at sorting", windows[0].Text)

		assert.Equal(t, 70.0, windows[1].StartTime)
		assert.Equal(t, 120.0, windows[1].EndTime)
		assert.Equal(t, "Here is bubble sort code", windows[1].Text)
	})

	t.Run("single short caption yields one window", func(t *testing.T) {
		windows, err := Normalize([]domain.CaptionEntry{
			{StartTime: 0, Duration: 5, Text: "hello world"},
		}, 45)
		require.NoError(t, err)
		require.Len(t, windows, 1)
		assert.Equal(t, 0.0, windows[0].StartTime)
		assert.Equal(t, 5.0, windows[0].EndTime)
		assert.Equal(t, "hello world", windows[0].Text)
	})

	t.Run("caption past the boundary opens a new window", func(t *testing.T) {
		windows, err := Normalize([]domain.CaptionEntry{
			{StartTime: 0, Duration: 10, Text: "first"},
			{StartTime: 100, Duration: 10, Text: "second"},
		}, 45)
		require.NoError(t, err)
		require.Len(t, windows, 2)
		assert.Equal(t, 100.0, windows[1].StartTime)
	})

	t.Run("windows are contiguous and non-overlapping", func(t *testing.T) {
		captions := make([]domain.CaptionEntry, 0, 20)
		for i := 0; i < 20; i++ {
			captions = append(captions, domain.CaptionEntry{
				StartTime: float64(i * 10),
				Duration:  10,
				Text:      "caption segment number",
			})
		}
		windows, err := Normalize(captions, 45)
		require.NoError(t, err)
		require.Greater(t, len(windows), 1)
		for i := 1; i < len(windows); i++ {
			assert.GreaterOrEqual(t, windows[i].StartTime, windows[i-1].EndTime-0.001)
		}
		for _, w := range windows {
			assert.NotEmpty(t, w.Text)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Normalize(nil, 45)
		assert.ErrorIs(t, err, ErrEmptyTranscript)
	})

	t.Run("annotation-only captions", func(t *testing.T) {
		_, err := Normalize([]domain.CaptionEntry{
			{StartTime: 0, Duration: 5, Text: "[Music]"},
		}, 45)
		assert.ErrorIs(t, err, ErrEmptyTranscript)
	})
}
