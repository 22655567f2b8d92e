package handlers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"transcriptify/models"
)

// PlaylistFetcher lists a playlist's videos in catalog order.
type PlaylistFetcher interface {
	PlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error)
}

// BatchRunner executes one batch run and returns the merged document.
type BatchRunner interface {
	Run(ctx context.Context, req models.BatchRequest) (string, error)
}

// ProgressReader exposes the tracker to the polling endpoint.
type ProgressReader interface {
	Snapshot(videoIDs []string) map[string]int
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Playlists       PlaylistFetcher
	Pipeline        BatchRunner
	Progress        ProgressReader
	Logger          *logrus.Logger
	PlaylistTimeout time.Duration
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(playlists PlaylistFetcher, pipeline BatchRunner, progress ProgressReader,
	logger *logrus.Logger, playlistTimeout time.Duration) *ApplicationHandler {
	return &ApplicationHandler{
		Playlists:       playlists,
		Pipeline:        pipeline,
		Progress:        progress,
		Logger:          logger,
		PlaylistTimeout: playlistTimeout,
	}
}
