package classify

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"

	"github.com/hunju/ledgersort/internal/config"
	"github.com/hunju/ledgersort/internal/logger"
	"github.com/hunju/ledgersort/internal/taxonomy"
)

// EmptyResult is the terminal representation of a batch that could not be
// classified: it decodes to zero results and the run continues.
const EmptyResult = "[]"

// generator is the transport seam: one structured-output generation call.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// geminiGenerator calls the Gemini API with the fixed system instruction and
// response schema.
type geminiGenerator struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, g.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// Client sends one batch at a time to the classification service, enforcing
// the rate-limit delay and retrying transient failures with exponential
// backoff. A Client without an API key is disabled: every batch degrades to
// EmptyResult deterministically.
type Client struct {
	cfg config.Config
	gen generator

	// sleep and newBackoff are seams for tests; production uses time.Sleep
	// and the configured schedule.
	sleep      func(time.Duration)
	newBackoff func() retry.Backoff
}

// NewClient builds a classification client. When no API key is configured
// the client is created in disabled mode rather than failing, so the
// pipeline still produces unclassified output.
func NewClient(ctx context.Context, cfg config.Config, tax *taxonomy.Taxonomy) (*Client, error) {
	c := &Client{
		cfg:   cfg,
		sleep: time.Sleep,
		newBackoff: func() retry.Backoff {
			return backoffSchedule(cfg.BackoffBase, uint64(cfg.MaxRetries))
		},
	}
	if !cfg.ClassificationEnabled() {
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("classify.NewClient: %w", err)
	}

	c.gen = &geminiGenerator{
		client: gc,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction(tax)}},
			},
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema(),
		},
	}
	return c, nil
}

// Enabled reports whether the client can reach the service at all.
func (c *Client) Enabled() bool {
	return c.gen != nil
}

// Classify sends one non-empty batch and returns the raw response text.
// Transient service failures are retried up to the configured budget; any
// other failure, or an exhausted budget, is terminal for the batch and
// yields EmptyResult. Classify never fails the run: the only error is the
// violated non-empty precondition. All waits block the caller.
func (c *Client) Classify(ctx context.Context, batch []string) (string, error) {
	if len(batch) == 0 {
		return "", fmt.Errorf("classify.Classify: empty batch")
	}

	log := logger.FromContext(ctx)
	if !c.Enabled() {
		log.Debug().Msg("classification disabled, returning empty result")
		return EmptyResult, nil
	}

	prompt, err := userPrompt(batch)
	if err != nil {
		log.Error().Err(err).Msg("building prompt failed")
		return EmptyResult, nil
	}

	var text string
	err = retry.Do(ctx, c.newBackoff(), func(ctx context.Context) error {
		out, callErr := c.gen.generate(ctx, prompt)
		if callErr != nil {
			if outcomeOf(callErr) == outcomeTransient {
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		text = out
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Int("batch_size", len(batch)).Msg("batch classification failed")
		return EmptyResult, nil
	}

	// Rate-limit policy: paid on every successful call, not only retries.
	c.sleep(c.cfg.RPMDelay)
	return text, nil
}

// outcome classifies a service failure so the retry driver branches on data
// rather than error text.
type outcome int

const (
	outcomeTransient outcome = iota
	outcomeFatal
)

func outcomeOf(err error) outcome {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) {
			return outcomeFatal
		}
		apiErr = *apiErrPtr
	}
	switch apiErr.Code {
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return outcomeTransient
	}
	return outcomeFatal
}

// backoffSchedule waits base*2^attempt plus a uniform jitter in [0, base)
// before each retry, bounded by the retry budget.
func backoffSchedule(base time.Duration, maxRetries uint64) retry.Backoff {
	attempt := 0
	return retry.WithMaxRetries(maxRetries, retry.BackoffFunc(func() (time.Duration, bool) {
		d := backoffDelay(base, attempt)
		attempt++
		return d, false
	}))
}

func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base<<uint(attempt) + time.Duration(rand.Int64N(int64(base)))
}
