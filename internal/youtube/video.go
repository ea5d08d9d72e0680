// Package youtube resolves user-supplied video references to the canonical
// 11-character video id and derives thumbnail URLs from it.
package youtube

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrInvalidVideoRef = errors.New("invalid video reference")

var (
	idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	// Path-based URL shapes: youtu.be/, embed/, shorts/, live/, /v/. The
	// trailing group insists the id ends after 11 characters, so a longer
	// run is rejected rather than truncated.
	pathPattern = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:embed/|shorts/|live/|v/))([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
	// Canonical watch URLs, with v= anywhere in the query string.
	watchPattern = regexp.MustCompile(`youtube\.com/watch\?[^#\s]*?\bv=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
)

// ExtractVideoID pulls the 11-character video id out of an arbitrary URL
// shape, or accepts a bare id directly. Idempotent: feeding a previously
// extracted id back returns the same id.
func ExtractVideoID(ref string) (string, error) {
	if idPattern.MatchString(ref) {
		return ref, nil
	}
	if m := pathPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	if m := watchPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	return "", ErrInvalidVideoRef
}

// ThumbnailURL addresses the external thumbnail image for a video id.
// Not fetched through the data store; clients load it directly.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", videoID)
}
