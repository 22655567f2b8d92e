package youtube

import (
	"regexp"
	"strings"
)

// urlPatterns is the accepted set of YouTube URL shapes: watch, shorts,
// live, embed (including the nocookie host), the youtu.be short link,
// and playlist listings. Scheme and www./m. prefixes are optional;
// video ids are the fixed 11-character form.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^((?:https?:)?//)?((?:www|m)\.)?youtube\.com/watch\?v=[\w-]{11}`),
	regexp.MustCompile(`^((?:https?:)?//)?((?:www|m)\.)?youtube\.com/shorts/[\w-]{11}`),
	regexp.MustCompile(`^((?:https?:)?//)?((?:www|m)\.)?youtube\.com/live/[\w-]{11}`),
	regexp.MustCompile(`^((?:https?:)?//)?((?:www|m)\.)?(youtube\.com|youtube-nocookie\.com)/embed/[\w-]{11}`),
	regexp.MustCompile(`^((?:https?:)?//)?youtu\.be/[\w-]{11}`),
	regexp.MustCompile(`^((?:https?:)?//)?((?:www|m)\.)?youtube\.com/playlist\?list=[\w-]+`),
}

var playlistIDPattern = regexp.MustCompile(`youtube\.com/playlist\?list=([\w-]+)`)

// ValidateURL reports whether url matches one of the accepted YouTube
// URL shapes. Query parameters after the first & are ignored.
func ValidateURL(url string) bool {
	url = strings.SplitN(url, "&", 2)[0]
	for _, p := range urlPatterns {
		if p.MatchString(url) {
			return true
		}
	}
	return false
}

// ExtractPlaylistID returns the playlist id embedded in url, or the
// empty string when url is not a playlist URL.
func ExtractPlaylistID(url string) string {
	m := playlistIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
