// Package summarize turns raw transcripts into structured analyses via
// the OpenAI chat completions API.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"transcriptify/internal/retry"
	"transcriptify/models"
)

// Client calls the completion API with a per-style system prompt. A
// client-side limiter spaces requests to stay under the upstream
// per-minute quota; transient failures retry with backoff.
type Client struct {
	oai      openai.Client
	model    string
	limiter  *rate.Limiter
	log      *logrus.Logger
	retryCfg retry.Config
	timeout  time.Duration
}

// NewClient builds a summarizer. minInterval is the minimum spacing
// between completion requests.
func NewClient(apiKey, model string, minInterval time.Duration, log *logrus.Logger) *Client {
	return &Client{
		// SDK-internal retries are disabled: every attempt, including
		// retries, must take a limiter token first.
		oai:      openai.NewClient(option.WithAPIKey(apiKey), option.WithMaxRetries(0)),
		model:    model,
		limiter:  rate.NewLimiter(rate.Every(minInterval), 1),
		log:      log,
		retryCfg: retry.DefaultConfig,
		timeout:  120 * time.Second,
	}
}

// Summarize processes one transcript with the prompt template for
// style and returns the structured analysis.
func (c *Client) Summarize(ctx context.Context, transcript string, style models.Style) (*models.Analysis, error) {
	if transcript == "" {
		return nil, &models.ValidationError{Message: "invalid transcript text provided"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return retry.Do(ctx, c.retryCfg, func() (*models.Analysis, error) {
		// Inside the retry loop so retried attempts are paced too.
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(Template(style)),
				openai.UserMessage(transcript),
			},
			ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
			},
		})
		if err != nil {
			return nil, mapAPIError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, &models.UpstreamError{Service: "openai", Err: errors.New("no response choices")}
		}

		analysis, err := parseAnalysis(resp.Choices[0].Message.Content)
		if err != nil {
			return nil, &models.UpstreamError{Service: "openai", Err: err}
		}
		if err := validateAnalysis(transcript, analysis); err != nil {
			return nil, &models.UpstreamError{Service: "openai", Err: err}
		}
		return analysis, nil
	})
}

// mapAPIError converts SDK failures into the app error taxonomy so the
// shared retry predicate can classify them.
func mapAPIError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == 429 {
			return &models.RateLimitedError{Service: "openai"}
		}
		return &models.UpstreamError{Service: "openai", StatusCode: apierr.StatusCode, Err: err}
	}
	return fmt.Errorf("creating chat completion: %w", err)
}
