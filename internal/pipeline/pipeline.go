// Package pipeline drives one batch run: fetch every requested
// transcript, summarize the survivors, and merge the results into a
// single document, advancing the progress tracker at each step.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"transcriptify/internal/progress"
	"transcriptify/internal/worker"
	"transcriptify/models"
)

// ErrAllVideosFailed aborts a batch in which not a single requested
// video produced usable output.
var ErrAllVideosFailed = errors.New("failed to process any transcripts")

// MetadataClient provides per-video snippets (title, channel, date).
type MetadataClient interface {
	VideoSnippet(ctx context.Context, videoID string) (*models.VideoSnippet, error)
}

// TranscriptFetcher returns raw transcript text for a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Summarizer turns a transcript into a structured analysis.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, style models.Style) (*models.Analysis, error)
}

// scrapedVideo is one video's state between the scrape and merge steps.
type scrapedVideo struct {
	snippet    *models.VideoSnippet
	transcript string
	analysis   *models.Analysis
}

// Orchestrator owns the per-video jobs of a batch run. The tracker is
// the only state shared with the request path.
type Orchestrator struct {
	metadata    MetadataClient
	transcripts TranscriptFetcher
	summarizer  Summarizer
	tracker     *progress.Tracker
	dispatcher  *worker.Dispatcher
	log         *logrus.Logger
}

func New(metadata MetadataClient, transcripts TranscriptFetcher, summarizer Summarizer,
	tracker *progress.Tracker, dispatcher *worker.Dispatcher, log *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		metadata:    metadata,
		transcripts: transcripts,
		summarizer:  summarizer,
		tracker:     tracker,
		dispatcher:  dispatcher,
		log:         log,
	}
}

// Run executes the three phases for req and returns the merged
// document. Per-video failures are isolated: a failing video is marked
// Failed and excluded from later phases while its siblings continue.
// Only a batch where every video failed returns an error.
func (o *Orchestrator) Run(ctx context.Context, req models.BatchRequest) (string, error) {
	o.log.Infof("Starting batch run for %d videos with style %q", len(req.VideoIDs), req.Style)
	o.tracker.Initialize(req.VideoIDs)

	scraped := o.scrapeAll(ctx, req.VideoIDs)
	if len(scraped) == 0 {
		return "", fmt.Errorf("%w: no transcripts could be fetched", ErrAllVideosFailed)
	}

	summarized := o.summarizeAll(ctx, req.VideoIDs, scraped, req.Style)
	if summarized == 0 {
		return "", fmt.Errorf("%w: summarization failed for every video", ErrAllVideosFailed)
	}

	doc := o.merge(req, scraped)
	o.log.Infof("Batch run complete: %d of %d videos merged", summarized, len(req.VideoIDs))
	return doc, nil
}

// scrapeAll fetches snippet and transcript for every requested id on
// the worker pool and returns the successes keyed by video id.
func (o *Orchestrator) scrapeAll(ctx context.Context, videoIDs []string) map[string]*scrapedVideo {
	out := make(map[string]*scrapedVideo, len(videoIDs))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, id := range videoIDs {
		wg.Add(1)
		o.dispatcher.Submit(&scrapeJob{
			orch:    o,
			ctx:     ctx,
			videoID: id,
			wg:      &wg,
			mu:      &mu,
			out:     out,
		})
	}
	wg.Wait()
	return out
}

// summarizeAll processes every scraped video and reports how many
// analyses succeeded. Results land on the scrapedVideo entries.
func (o *Orchestrator) summarizeAll(ctx context.Context, videoIDs []string, scraped map[string]*scrapedVideo, style models.Style) int {
	var wg sync.WaitGroup

	for _, id := range videoIDs {
		sv, ok := scraped[id]
		if !ok {
			continue
		}
		wg.Add(1)
		o.dispatcher.Submit(&summarizeJob{
			orch:    o,
			ctx:     ctx,
			videoID: id,
			style:   style,
			video:   sv,
			wg:      &wg,
		})
	}
	wg.Wait()

	n := 0
	for _, sv := range scraped {
		if sv.analysis != nil {
			n++
		}
	}
	return n
}
