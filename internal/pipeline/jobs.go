package pipeline

import (
	"context"
	"sync"

	"transcriptify/internal/progress"
	"transcriptify/models"
)

// scrapeJob fetches one video's metadata snippet and transcript.
type scrapeJob struct {
	orch    *Orchestrator
	ctx     context.Context
	videoID string
	wg      *sync.WaitGroup
	mu      *sync.Mutex
	out     map[string]*scrapedVideo
}

func (j *scrapeJob) ID() string { return "scrape:" + j.videoID }

func (j *scrapeJob) Execute() error {
	defer j.wg.Done()

	snippet, err := j.orch.metadata.VideoSnippet(j.ctx, j.videoID)
	if err != nil {
		j.orch.log.WithError(err).Errorf("Fetching metadata failed for video %s", j.videoID)
		j.orch.tracker.Advance(j.videoID, progress.Failed)
		return err
	}

	text, err := j.orch.transcripts.Fetch(j.ctx, j.videoID)
	if err != nil {
		j.orch.log.WithError(err).Errorf("Fetching transcript failed for video %s", j.videoID)
		j.orch.tracker.Advance(j.videoID, progress.Failed)
		return err
	}

	j.mu.Lock()
	j.out[j.videoID] = &scrapedVideo{snippet: snippet, transcript: text}
	j.mu.Unlock()

	j.orch.tracker.Advance(j.videoID, progress.Scraped)
	return nil
}

// summarizeJob runs one video's transcript through the summarizer.
type summarizeJob struct {
	orch    *Orchestrator
	ctx     context.Context
	videoID string
	style   models.Style
	video   *scrapedVideo
	wg      *sync.WaitGroup
}

func (j *summarizeJob) ID() string { return "summarize:" + j.videoID }

func (j *summarizeJob) Execute() error {
	defer j.wg.Done()

	analysis, err := j.orch.summarizer.Summarize(j.ctx, j.video.transcript, j.style)
	if err != nil {
		j.orch.log.WithError(err).Errorf("Summarization failed for video %s", j.videoID)
		j.orch.tracker.Advance(j.videoID, progress.Failed)
		return err
	}

	j.video.analysis = analysis
	j.orch.tracker.Advance(j.videoID, progress.Summarized)
	return nil
}
