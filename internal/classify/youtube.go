package classify

import (
	"regexp"
	"strings"
)

var (
	iframeSrcPattern = regexp.MustCompile(`(?i)<iframe[^>]*\ssrc\s*=\s*["']([^"']+)["']`)
	youtubeIDPattern = regexp.MustCompile(
		`(?:youtu\.be/|youtube(?:-nocookie)?\.com/(?:embed/|v/|watch\?(?:[^#]*&)?v=))([A-Za-z0-9_-]+)`,
	)
)

// NormalizeYouTubeID reduces a share link, watch URL, embed URL or a full
// <iframe> snippet to the bare video id. Input that matches none of those
// shapes is returned unchanged.
func NormalizeYouTubeID(input string) string {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return input
	}

	if m := iframeSrcPattern.FindStringSubmatch(candidate); m != nil {
		candidate = m[1]
	}

	if m := youtubeIDPattern.FindStringSubmatch(candidate); m != nil {
		return m[1]
	}
	return input
}
