// Package source fetches the raw inputs of a synthesis run: timestamped
// captions, OCR'd screen text, and detected code fragments.
package source

import (
	"net/url"
	"regexp"
	"strings"

	domainerrors "github.com/lectioapp/lectio-server/internal/errors"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the 11-character video ID from any of the common
// YouTube URL shapes (watch, youtu.be, shorts, embed) or accepts a bare ID.
func ParseVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if videoIDRe.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", domainerrors.Validationf("youtube_url is not a valid URL: %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", domainerrors.Validationf("youtube_url must be an http(s) URL, got scheme %q", u.Scheme)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.Trim(strings.TrimPrefix(u.Path, "/shorts/"), "/")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.Trim(strings.TrimPrefix(u.Path, "/embed/"), "/")
		}
	default:
		return "", domainerrors.Validationf("youtube_url host %q is not a YouTube host", u.Hostname())
	}

	if !videoIDRe.MatchString(id) {
		return "", domainerrors.Validationf("could not extract a video ID from %q", raw)
	}
	return id, nil
}
