// Package youtube fetches playlist and video metadata from the YouTube
// Data API v3.
package youtube

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"transcriptify/internal/retry"
	"transcriptify/models"
)

const (
	// pageSize is the catalog's maximum page size.
	pageSize = 50
	// maxPlaylistItems caps how many videos one listing returns.
	maxPlaylistItems = 200
)

// Client wraps the Data API service for the two lookups the app needs:
// paginated playlist listings and per-video snippets.
type Client struct {
	svc      *youtube.Service
	log      *logrus.Logger
	retryCfg retry.Config
}

// NewClient builds a Client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string, log *logrus.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("YouTube API key is not configured")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, log: log, retryCfg: retry.DefaultConfig}, nil
}

// PlaylistVideos returns the playlist's videos in catalog order. The
// listing is paginated; malformed entries are skipped with a warning.
// Publish dates come from a follow-up videos.list call because playlist
// items carry the date the video was added, not published.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error) {
	c.log.Infof("Starting playlist fetch for playlist ID: %s", playlistID)

	var videos []models.Video
	pageToken := ""

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := retry.Do(ctx, c.retryCfg, func() (*youtube.PlaylistItemListResponse, error) {
			resp, err := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx).
				Do()
			if err != nil {
				return nil, mapAPIError(err)
			}
			return resp, nil
		})
		if err != nil {
			return nil, err
		}

		published, err := c.publishDates(ctx, page.Items)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Snippet == nil || item.Snippet.ResourceId == nil {
				c.log.Warn("Skipping malformed playlist item")
				continue
			}
			v := models.Video{
				VideoID:     item.Snippet.ResourceId.VideoId,
				Title:       item.Snippet.Title,
				PublishedAt: item.Snippet.PublishedAt,
			}
			if t := item.Snippet.Thumbnails; t != nil && t.Default != nil {
				v.Thumbnail = t.Default.Url
			}
			if at, ok := published[v.VideoID]; ok {
				v.PublishedAt = at
			}
			if !v.Valid() {
				c.log.Warnf("Skipping playlist item with missing metadata: %q", v.VideoID)
				continue
			}
			videos = append(videos, v)
		}

		pageToken = page.NextPageToken
		if pageToken == "" || len(videos) >= maxPlaylistItems {
			break
		}
	}

	if len(videos) == 0 {
		return nil, &models.UpstreamError{Service: "youtube", Err: errors.New("no valid videos found in playlist")}
	}
	if len(videos) > maxPlaylistItems {
		c.log.Warnf("Reached maximum playlist items limit: %d", maxPlaylistItems)
		videos = videos[:maxPlaylistItems]
	}

	c.log.Infof("Successfully fetched %d videos from playlist", len(videos))
	return videos, nil
}

// publishDates looks up the actual publish timestamps for one page of
// playlist items.
func (c *Client) publishDates(ctx context.Context, items []*youtube.PlaylistItem) (map[string]string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Snippet != nil && item.Snippet.ResourceId != nil {
			ids = append(ids, item.Snippet.ResourceId.VideoId)
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	resp, err := retry.Do(ctx, c.retryCfg, func() (*youtube.VideoListResponse, error) {
		resp, err := c.svc.Videos.List([]string{"snippet"}).Id(ids...).Context(ctx).Do()
		if err != nil {
			return nil, mapAPIError(err)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet != nil {
			out[item.Id] = item.Snippet.PublishedAt
		}
	}
	return out, nil
}

// VideoSnippet fetches title, channel, and publish date for one video.
func (c *Client) VideoSnippet(ctx context.Context, videoID string) (*models.VideoSnippet, error) {
	resp, err := retry.Do(ctx, c.retryCfg, func() (*youtube.VideoListResponse, error) {
		resp, err := c.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
		if err != nil {
			return nil, mapAPIError(err)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, &models.UpstreamError{Service: "youtube", StatusCode: 404,
			Err: errors.New("video not found or is not accessible")}
	}

	s := resp.Items[0].Snippet
	return &models.VideoSnippet{
		VideoID:      videoID,
		Title:        s.Title,
		ChannelTitle: s.ChannelTitle,
		PublishedAt:  s.PublishedAt,
	}, nil
}

// mapAPIError converts Data API failures into the app error taxonomy.
// Denied or missing playlists surface as non-retriable upstream errors.
func mapAPIError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 403 || gerr.Code == 404 {
			return &models.UpstreamError{Service: "youtube", StatusCode: gerr.Code,
				Err: errors.New("not found or not accessible")}
		}
		return &models.UpstreamError{Service: "youtube", StatusCode: gerr.Code, Err: err}
	}
	return err
}
