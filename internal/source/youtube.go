package source

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lectioapp/lectio-server/internal/domain"
	"github.com/lectioapp/lectio-server/internal/heuristics"
	"github.com/lectioapp/lectio-server/internal/logger"
	"github.com/lectioapp/lectio-server/internal/ratelimit"
)

const timedTextBaseURL = "https://www.youtube.com/api/timedtext"

// preferredLangs is the caption language fallback chain, tried in order.
var preferredLangs = []string{"en", "en-US", "hi", "en-GB"}

// YouTubeTranscripts fetches captions from YouTube's timedtext endpoint.
type YouTubeTranscripts struct {
	httpClient  *http.Client
	rateLimiter *ratelimit.KeyedRateLimiter
	baseURL     string
	log         *logger.Logger
}

// NewYouTubeTranscripts creates a caption fetcher with a bounded request
// budget, kept modest so batch processing cannot hammer the endpoint.
func NewYouTubeTranscripts(timeout time.Duration, log *logger.Logger) *YouTubeTranscripts {
	return &YouTubeTranscripts{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: ratelimit.New(1, 4),
		baseURL:     timedTextBaseURL,
		log:         log,
	}
}

// timedtext json3 payload.
type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			Text string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Fetch retrieves captions for videoID, trying each preferred language in
// order. Captions are cleaned, merged when overlapping, and deduplicated;
// entries with fewer than three words are dropped as caption noise.
func (y *YouTubeTranscripts) Fetch(ctx context.Context, videoID string) ([]domain.CaptionEntry, error) {
	var lastErr error
	for _, lang := range preferredLangs {
		captions, err := y.fetchLang(ctx, videoID, lang)
		if err != nil {
			lastErr = err
			continue
		}
		if len(captions) > 0 {
			y.log.Debug("fetched captions", "video_id", videoID, "lang", lang, "count", len(captions))
			return captions, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no caption track in %v", preferredLangs)
	}
	return nil, fmt.Errorf("fetch captions for %s: %w", videoID, lastErr)
}

func (y *YouTubeTranscripts) fetchLang(ctx context.Context, videoID, lang string) ([]domain.CaptionEntry, error) {
	if err := y.rateLimiter.Wait(ctx, "timedtext"); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext failed: status %d", resp.StatusCode)
	}

	var payload timedTextResponse
	if err := json.UnmarshalRead(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}
	return normalizeEvents(payload), nil
}

// normalizeEvents converts the raw event list into clean, ordered,
// non-overlapping caption entries.
func normalizeEvents(payload timedTextResponse) []domain.CaptionEntry {
	captions := make([]domain.CaptionEntry, 0, len(payload.Events))
	seen := make(map[string]bool)

	for _, ev := range payload.Events {
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.Text)
		}
		text := heuristics.CleanText(sb.String())
		if text == "" || len(strings.Fields(text)) < 3 {
			continue
		}
		key := heuristics.NormalizeKey(text)
		if seen[key] {
			continue
		}
		seen[key] = true

		entry := domain.CaptionEntry{
			StartTime: float64(ev.StartMs) / 1000,
			Duration:  float64(ev.DurationMs) / 1000,
			Text:      text,
		}
		// Merge into the previous entry when the ranges overlap.
		if n := len(captions); n > 0 && entry.StartTime < captions[n-1].EndTime() {
			prev := &captions[n-1]
			prev.Text += " " + entry.Text
			if end := entry.EndTime(); end > prev.EndTime() {
				prev.Duration = end - prev.StartTime
			}
			continue
		}
		captions = append(captions, entry)
	}
	return captions
}
