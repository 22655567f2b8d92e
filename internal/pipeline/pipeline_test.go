package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptify/internal/progress"
	"transcriptify/internal/worker"
	"transcriptify/models"
)

type fakeMetadata struct {
	failFor map[string]bool
}

func (f *fakeMetadata) VideoSnippet(_ context.Context, videoID string) (*models.VideoSnippet, error) {
	if f.failFor[videoID] {
		return nil, &models.UpstreamError{Service: "youtube", StatusCode: 404, Err: fmt.Errorf("video %s not found", videoID)}
	}
	return &models.VideoSnippet{
		VideoID:      videoID,
		Title:        "Title " + videoID,
		ChannelTitle: "Channel " + videoID,
		PublishedAt:  "2024-03-01T12:00:00Z",
	}, nil
}

type fakeTranscripts struct {
	failFor map[string]bool
}

func (f *fakeTranscripts) Fetch(_ context.Context, videoID string) (string, error) {
	if f.failFor[videoID] {
		return "", models.ErrNoTranscript
	}
	return "transcript of " + videoID, nil
}

type fakeSummarizer struct {
	failFor map[string]bool

	mu     sync.Mutex
	styles []models.Style
}

func (f *fakeSummarizer) Summarize(_ context.Context, transcript string, style models.Style) (*models.Analysis, error) {
	f.mu.Lock()
	f.styles = append(f.styles, style)
	f.mu.Unlock()

	id := strings.TrimPrefix(transcript, "transcript of ")
	if f.failFor[id] {
		return nil, &models.UpstreamError{Service: "openai", StatusCode: 500, Err: fmt.Errorf("boom")}
	}
	return &models.Analysis{
		FormattedText: "Formatted " + id,
		Summary:       "Summary of " + id,
		Tags:          []string{"tag-" + id},
		KeyPoints:     []string{"point-" + id},
	}, nil
}

func newTestOrchestrator(t *testing.T, metadata MetadataClient, transcripts TranscriptFetcher, summarizer Summarizer) (*Orchestrator, *progress.Tracker) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	tracker := progress.NewTracker()
	dispatcher := worker.NewDispatcher(2, 32, log)
	dispatcher.Run()
	t.Cleanup(dispatcher.Stop)

	return New(metadata, transcripts, summarizer, tracker, dispatcher, log), tracker
}

func TestRunMergesInRequestOrder(t *testing.T) {
	ids := []string{"ccc", "aaa", "bbb"}
	orch, tracker := newTestOrchestrator(t,
		&fakeMetadata{}, &fakeTranscripts{}, &fakeSummarizer{})

	doc, err := orch.Run(context.Background(), models.BatchRequest{VideoIDs: ids, Style: models.StyleAcademic})
	require.NoError(t, err)

	// Sections appear in submission order, not completion order.
	posC := strings.Index(doc, "Video ID: ccc")
	posA := strings.Index(doc, "Video ID: aaa")
	posB := strings.Index(doc, "Video ID: bbb")
	require.NotEqual(t, -1, posC)
	require.NotEqual(t, -1, posA)
	require.NotEqual(t, -1, posB)
	assert.Less(t, posC, posA)
	assert.Less(t, posA, posB)

	assert.Contains(t, doc, "Summary of aaa")
	assert.Contains(t, doc, "Channel Name: Channel aaa")
	assert.Contains(t, doc, "Published At: March 1, 2024")
	assert.Contains(t, doc, "Processing Style: academic")

	assert.Equal(t, map[string]int{"ccc": 100, "aaa": 100, "bbb": 100}, tracker.Snapshot(ids))
}

func TestRunIsolatesPartialFailures(t *testing.T) {
	ids := []string{"aaa", "bbb", "ccc"}
	orch, tracker := newTestOrchestrator(t,
		&fakeMetadata{},
		&fakeTranscripts{failFor: map[string]bool{"bbb": true}},
		&fakeSummarizer{})

	doc, err := orch.Run(context.Background(), models.BatchRequest{VideoIDs: ids, Style: models.StyleDefault})
	require.NoError(t, err)

	assert.Contains(t, doc, "Summary of aaa")
	assert.Contains(t, doc, "Summary of ccc")
	assert.NotContains(t, doc, "Summary of bbb")
	assert.Contains(t, doc, "Error processing video bbb")

	snap := tracker.Snapshot(ids)
	assert.Equal(t, 100, snap["aaa"])
	assert.Equal(t, 100, snap["ccc"])
	assert.Equal(t, progress.FailedProgress, snap["bbb"])
}

func TestRunFailsWhenNothingScrapes(t *testing.T) {
	ids := []string{"aaa", "bbb"}
	orch, tracker := newTestOrchestrator(t,
		&fakeMetadata{},
		&fakeTranscripts{failFor: map[string]bool{"aaa": true, "bbb": true}},
		&fakeSummarizer{})

	_, err := orch.Run(context.Background(), models.BatchRequest{VideoIDs: ids, Style: models.StyleDefault})
	assert.ErrorIs(t, err, ErrAllVideosFailed)

	snap := tracker.Snapshot(ids)
	assert.Equal(t, progress.FailedProgress, snap["aaa"])
	assert.Equal(t, progress.FailedProgress, snap["bbb"])
}

func TestRunFailsWhenNothingSummarizes(t *testing.T) {
	ids := []string{"aaa", "bbb"}
	orch, _ := newTestOrchestrator(t,
		&fakeMetadata{},
		&fakeTranscripts{},
		&fakeSummarizer{failFor: map[string]bool{"aaa": true, "bbb": true}})

	_, err := orch.Run(context.Background(), models.BatchRequest{VideoIDs: ids, Style: models.StyleDefault})
	assert.ErrorIs(t, err, ErrAllVideosFailed)
}

func TestRunPassesStyleToSummarizer(t *testing.T) {
	summarizer := &fakeSummarizer{}
	orch, _ := newTestOrchestrator(t, &fakeMetadata{}, &fakeTranscripts{}, summarizer)

	_, err := orch.Run(context.Background(), models.BatchRequest{VideoIDs: []string{"aaa"}, Style: models.StyleBusiness})
	require.NoError(t, err)
	require.Len(t, summarizer.styles, 1)
	assert.Equal(t, models.StyleBusiness, summarizer.styles[0])
}

func TestRunFailedMetadataExcludesVideo(t *testing.T) {
	ids := []string{"aaa", "bbb"}
	orch, tracker := newTestOrchestrator(t,
		&fakeMetadata{failFor: map[string]bool{"aaa": true}},
		&fakeTranscripts{},
		&fakeSummarizer{})

	doc, err := orch.Run(context.Background(), models.BatchRequest{VideoIDs: ids, Style: models.StyleDefault})
	require.NoError(t, err)
	assert.Contains(t, doc, "Error processing video aaa")
	assert.Contains(t, doc, "Summary of bbb")
	assert.Equal(t, progress.FailedProgress, tracker.Snapshot(ids)["aaa"])
}
