package models

// Video represents one entry of a YouTube playlist as returned by
// /get_playlist. Identity is VideoID (the 11-character YouTube id).
type Video struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// Valid reports whether the record carries the fields the client needs.
func (v Video) Valid() bool {
	return v.VideoID != "" && v.Title != ""
}

// VideoSnippet holds the per-video metadata fetched again at batch time,
// which includes the channel title the playlist listing does not carry.
type VideoSnippet struct {
	VideoID      string
	Title        string
	ChannelTitle string
	PublishedAt  string
}
