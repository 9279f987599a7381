package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	openai "github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"prodsight-server/internal/models"
)

// ScheduleClient asks an external generative model for a shooting schedule.
// Any returned error is one of the taxonomy sentinels (possibly wrapped) and
// means the caller should fall back to the deterministic generator.
type ScheduleClient interface {
	GenerateSchedule(ctx context.Context, prompt string) (*models.ScheduleResult, error)
}

// ClientConfig configures the model endpoint. Gemini is reached through its
// OpenAI-compatible surface, so BaseURL defaults to that.
type ClientConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MinCallInterval time.Duration
}

// Generation parameters for the scheduling request. Low temperature: we want
// a plan, not prose.
const (
	genTemperature = 0.3
	genTopP        = 0.95
	genMaxTokens   = 4096
)

type geminiClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	gate    *callGate
	hasKey  bool
	log     *zap.Logger
}

// NewScheduleClient builds the model client. A missing API key is not a
// construction error: the client is still usable and fails every call with
// ErrMissingCredential so the orchestrator can fall back.
func NewScheduleClient(cfg ClientConfig, log *zap.Logger) ScheduleClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &geminiClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		gate:    newCallGate(cfg.MinCallInterval),
		hasKey:  cfg.APIKey != "",
		log:     log.Named("ai_client"),
	}
}

func (c *geminiClient) GenerateSchedule(ctx context.Context, prompt string) (*models.ScheduleResult, error) {
	if !c.hasKey {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "missing_credential"}).Inc()
		return nil, ErrMissingCredential
	}

	// Pay the rate-limit floor before touching the network.
	if err := c.gate.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	aiPromptChars.With(prometheus.Labels{"model": c.model}).Observe(float64(len(prompt)))

	start := time.Now()
	c.log.Debug("Sending scheduling request to AI",
		zap.String("model", c.model),
		zap.Int("promptChars", len(prompt)))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: genTemperature,
		TopP:        genTopP,
		MaxTokens:   genMaxTokens,
	})

	duration := time.Since(start)
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	if err != nil {
		c.log.Warn("AI API call failed", zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.log.Warn("AI API returned an empty response", zap.Duration("duration", duration))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return nil, ErrEmptyResponse
	}

	text := resp.Choices[0].Message.Content
	c.log.Debug("AI response received",
		zap.Duration("duration", duration),
		zap.Int("responseChars", len(text)))

	result, err := parseScheduleResult(text)
	if err != nil {
		// Keep the raw text available for diagnostics.
		c.log.Warn("Unusable AI response", zap.Error(err), zap.String("rawResponse", text))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_parse"}).Inc()
		return nil, err
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	return result, nil
}

// parseScheduleResult digs the optimized schedule out of free model text:
// extract the embedded JSON object, check it parses, check it carries the
// optimized_schedule wrapper, and check the payload is a plausible schedule
// before handing it to callers.
func parseScheduleResult(text string) (*models.ScheduleResult, error) {
	raw := extractJSONObject(text)
	if raw == "" {
		return nil, ErrNoJSONFound
	}
	if !gjson.Valid(raw) {
		return nil, ErrMalformedJSON
	}

	payload := gjson.Get(raw, "optimized_schedule")
	if !payload.Exists() || !payload.IsObject() {
		return nil, ErrUnexpectedSchema
	}

	var result models.ScheduleResult
	if err := json.Unmarshal([]byte(payload.Raw), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedSchema, err)
	}

	if result.TotalShootingDays < 1 || len(result.DailySchedules) == 0 {
		return nil, ErrUnexpectedSchema
	}

	return &result, nil
}
