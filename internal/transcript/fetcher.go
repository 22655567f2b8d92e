// Package transcript retrieves caption text for a video. YouTube has no
// public captions download API, so the fetcher reads the watch page,
// locates the caption track list embedded in the player config, and
// downloads the timedtext XML the player itself uses.
package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"transcriptify/internal/retry"
	"transcriptify/models"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	// A browser user agent; the watch page serves a reduced payload
	// without captionTracks to unknown clients.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

var captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// Fetcher downloads transcripts with bounded retry on transient
// failures. Missing captions propagate immediately as ErrNoTranscript.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	log      *logrus.Logger
	retryCfg retry.Config
}

func NewFetcher(log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  defaultBaseURL,
		log:      log,
		retryCfg: retry.DefaultConfig,
	}
}

// Fetch returns the plain transcript text for videoID, one caption line
// per row.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) (string, error) {
	track, err := f.captionTrack(ctx, videoID)
	if err != nil {
		return "", err
	}

	body, err := retry.Do(ctx, f.retryCfg, func() ([]byte, error) {
		return f.get(ctx, track.BaseURL)
	})
	if err != nil {
		return "", err
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", &models.UpstreamError{Service: "transcript",
			Err: fmt.Errorf("decoding timedtext for video %s: %w", videoID, err)}
	}

	lines := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		// Caption text arrives HTML-escaped a second time inside the XML.
		line := strings.TrimSpace(html.UnescapeString(t.Value))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", models.ErrNoTranscript
	}
	return strings.Join(lines, "\n"), nil
}

// captionTrack finds the preferred caption track for a video, favoring
// manually created English captions over auto-generated ones.
func (f *Fetcher) captionTrack(ctx context.Context, videoID string) (*captionTrack, error) {
	page, err := retry.Do(ctx, f.retryCfg, func() ([]byte, error) {
		return f.get(ctx, fmt.Sprintf("%s/watch?v=%s", f.baseURL, videoID))
	})
	if err != nil {
		return nil, err
	}

	m := captionTracksPattern.FindSubmatch(page)
	if m == nil {
		return nil, models.ErrNoTranscript
	}

	var tracks []captionTrack
	if err := json.Unmarshal(m[1], &tracks); err != nil {
		return nil, &models.UpstreamError{Service: "transcript",
			Err: fmt.Errorf("decoding caption track list for video %s: %w", videoID, err)}
	}
	if len(tracks) == 0 {
		return nil, models.ErrNoTranscript
	}

	best := tracks[0]
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			best = t
			break
		}
		if strings.HasPrefix(t.LanguageCode, "en") && !strings.HasPrefix(best.LanguageCode, "en") {
			best = t
		}
	}
	f.log.Debugf("Selected caption track %q (%s) for video %s", best.LanguageCode, best.Kind, videoID)
	return &best, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &models.RateLimitedError{Service: "transcript"}
	case resp.StatusCode >= 500:
		return nil, &models.UpstreamError{Service: "transcript", StatusCode: resp.StatusCode,
			Err: fmt.Errorf("GET %s", url)}
	case resp.StatusCode != http.StatusOK:
		return nil, &models.UpstreamError{Service: "transcript", StatusCode: resp.StatusCode,
			Err: fmt.Errorf("GET %s", url)}
	}

	return io.ReadAll(resp.Body)
}
