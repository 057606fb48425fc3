package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/utils"
)

// Sampling temperatures used by callers. Scoring wants near-deterministic
// output; open-ended generation wants variety.
const (
	StableTemperature  = 0.05
	DefaultTemperature = 0.95
)

// Client is the text-completion backend used by the scoring engine and the
// question generator.
type Client interface {
	// GenerateText performs one synchronous completion and returns the full
	// response text.
	GenerateText(ctx context.Context, system string, user string, temperature float64) (string, error)

	// StreamText streams incremental text deltas through onDelta and returns
	// the accumulated text once the stream completes.
	StreamText(ctx context.Context, system string, user string, temperature float64, onDelta func(delta string)) (string, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(utils.GetEnv("OPENAI_API_KEY", "", nil))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com", log)), "/")
	model := strings.TrimSpace(utils.GetEnv("OPENAI_MODEL", "gpt-4o-mini", log))
	timeoutSec := utils.GetEnvAsInt("OPENAI_TIMEOUT_SECONDS", 180, log)
	maxRetries := utils.GetEnvAsInt("OPENAI_MAX_RETRIES", 3, log)

	return &client{
		log:        log.With("service", "OpenAIClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type requestMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string           `json:"model"`
	Messages    []requestMessage `json:"messages"`
	Temperature *float64         `json:"temperature,omitempty"`
	Stream      bool             `json:"stream,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func retryable(err error) bool {
	var he *httpError
	if errors.As(err, &he) {
		return he.StatusCode == http.StatusTooManyRequests || he.StatusCode >= 500
	}
	// Transport-level failures are worth retrying.
	return true
}

func (c *client) newRequest(ctx context.Context, body completionRequest, stream bool) (*http.Request, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}
	return req, nil
}

func (c *client) do(ctx context.Context, body completionRequest) (*completionResponse, error) {
	backoff := 1 * time.Second

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := c.newRequest(ctx, body, false)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			raw, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				err = readErr
			} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				err = &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
			} else {
				var out completionResponse
				if uErr := json.Unmarshal(raw, &out); uErr != nil {
					return nil, fmt.Errorf("openai decode error: %w", uErr)
				}
				if out.Error != nil {
					return nil, fmt.Errorf("openai error: %s", out.Error.Message)
				}
				return &out, nil
			}
		}

		if attempt >= c.maxRetries || !retryable(err) {
			return nil, err
		}

		c.log.Warn("OpenAI request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", backoff.String(),
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (c *client) GenerateText(ctx context.Context, system string, user string, temperature float64) (string, error) {
	body := completionRequest{
		Model: c.model,
		Messages: []requestMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: &temperature,
	}

	resp, err := c.do(ctx, body)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty completion text")
	}
	return text, nil
}

func (c *client) StreamText(ctx context.Context, system string, user string, temperature float64, onDelta func(delta string)) (string, error) {
	body := completionRequest{
		Model: c.model,
		Messages: []requestMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: &temperature,
		Stream:      true,
	}

	req, err := c.newRequest(ctx, body, true)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return "", &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	defer resp.Body.Close()

	var full strings.Builder
	err = streamSSE(resp.Body, func(_ string, data string) error {
		if strings.TrimSpace(data) == "" || strings.TrimSpace(data) == "[DONE]" {
			return nil
		}
		var chunk completionResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return nil
		}
		if chunk.Error != nil {
			return fmt.Errorf("openai stream error: %s", chunk.Error.Message)
		}
		if len(chunk.Choices) == 0 {
			return nil
		}
		d := chunk.Choices[0].Delta.Content
		if d == "" {
			return nil
		}
		full.WriteString(d)
		if onDelta != nil {
			onDelta(d)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return full.String(), nil
}
