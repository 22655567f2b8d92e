package summarize

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"transcriptify/models"
)

var codeFencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*|\\s*```$")

// parseAnalysis decodes the model's reply into an Analysis. Replies are
// requested as a bare JSON object, but models occasionally wrap them in
// markdown code fences, so those are stripped first.
func parseAnalysis(raw string) (*models.Analysis, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = codeFencePattern.ReplaceAllString(cleaned, "")

	var a models.Analysis
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		return nil, fmt.Errorf("decoding summarizer response: %w", err)
	}
	return &a, nil
}

// validateAnalysis rejects replies that skipped the formatting step or
// omitted required fields.
func validateAnalysis(input string, a *models.Analysis) error {
	if a.FormattedText == "" {
		return errors.New("response missing formatted text")
	}
	if a.FormattedText == input {
		return errors.New("formatted text unchanged from input")
	}

	var missing []string
	if a.Summary == "" {
		missing = append(missing, "summary")
	}
	if len(a.Tags) == 0 {
		missing = append(missing, "tags")
	}
	if len(a.KeyPoints) == 0 {
		missing = append(missing, "key_points")
	}
	if len(missing) > 0 {
		return fmt.Errorf("response missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
