package pipeline

import (
	"fmt"
	"strings"
	"time"

	"transcriptify/internal/progress"
	"transcriptify/models"
)

const (
	sectionRule = "--------------------------------------------------------------------------------"
	videoRule   = "================================================================================"
)

// merge concatenates the per-video sections in original request order.
// Videos that completed summarization are marked Merged; failed videos
// contribute an error line so their absence is visible in the output.
func (o *Orchestrator) merge(req models.BatchRequest, scraped map[string]*scrapedVideo) string {
	var out []string

	for _, id := range req.VideoIDs {
		sv, ok := scraped[id]
		if !ok || sv.analysis == nil {
			out = append(out,
				fmt.Sprintf("Error processing video %s: transcript or summary unavailable", id),
				videoRule,
				"")
			continue
		}

		out = append(out, formatSection(id, sv, req.Style)...)
		out = append(out, videoRule, "")
		o.tracker.Advance(id, progress.Merged)
	}

	return strings.Join(out, "\n")
}

// formatSection renders one video's block of the merged document.
func formatSection(videoID string, sv *scrapedVideo, style models.Style) []string {
	a := sv.analysis
	lines := []string{
		"Video Title: " + sv.snippet.Title,
		"Video ID: " + videoID,
		"Channel Name: " + sv.snippet.ChannelTitle,
		"Published At: " + formatDate(sv.snippet.PublishedAt),
		"Processing Style: " + string(style),
		sectionRule,
		"Summary:",
		a.Summary,
		"",
		"Tags:",
		strings.Join(a.Tags, ", "),
		"",
		"Key Points:",
	}
	for _, p := range a.KeyPoints {
		lines = append(lines, "- "+p)
	}
	lines = append(lines, "", "Formatted Text:", a.FormattedText)

	if len(a.ResearchImplications) > 0 {
		lines = append(lines, "", "Research Implications:")
		for _, s := range a.ResearchImplications {
			lines = append(lines, "- "+s)
		}
	}
	if len(a.CodeSnippets) > 0 {
		lines = append(lines, "", "Code Snippets:")
		for _, s := range a.CodeSnippets {
			lines = append(lines, "```", s, "```")
		}
	}
	if len(a.TechnicalConcepts) > 0 {
		lines = append(lines, "", "Technical Concepts:")
		for _, s := range a.TechnicalConcepts {
			lines = append(lines, "- "+s)
		}
	}
	if len(a.MarketInsights) > 0 {
		lines = append(lines, "", "Market Insights:")
		for _, s := range a.MarketInsights {
			lines = append(lines, "- "+s)
		}
	}
	if len(a.StrategicImplications) > 0 {
		lines = append(lines, "", "Strategic Implications:")
		for _, s := range a.StrategicImplications {
			lines = append(lines, "- "+s)
		}
	}
	return lines
}

// formatDate renders an RFC 3339 timestamp as a readable date, passing
// through values it cannot parse.
func formatDate(raw string) string {
	if raw == "" {
		return "Not available"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("January 2, 2006")
}
