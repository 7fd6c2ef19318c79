// Package llm provides the chat-completion client used to request drug combinations
// from an OpenAI-compatible text generation service.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/giygas/medicombine-api/entities"
	"github.com/giygas/medicombine-api/interfaces"
	"github.com/giygas/medicombine-api/logging"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the OpenAI API root
const DefaultBaseURL = "https://api.openai.com/v1"

// Longest upstream error detail kept in a GenerationError
const maxUpstreamMessage = 500

// GenerationError reports a failed or non-successful upstream call.
// StatusCode is 0 when no HTTP response was received.
type GenerationError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("text generation request failed: %s", e.Message)
	}
	return fmt.Sprintf("text generation API error: %d - %s", e.StatusCode, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Compile-time check to ensure Client implements TextGenerator
var _ interfaces.TextGenerator = (*Client)(nil)

// Client calls the chat completions endpoint of an OpenAI-compatible API
type Client struct {
	api openai.Client
}

// NewClient creates a client with an explicit credential.
// An empty baseURL falls back to DefaultBaseURL; a nil httpClient to one without timeout,
// leaving deadlines to the caller's context. Failed calls are never retried.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
}

// Generate sends the prompt pair and returns the content of the first choice.
// Every failure is a *GenerationError.
func (c *Client) Generate(ctx context.Context, req entities.GenerationRequest) (string, error) {
	start := time.Now()
	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
	})

	if err != nil {
		genErr := toGenerationError(err)
		logging.Debug("Text generation call failed",
			"model", req.Model,
			"status_code", genErr.StatusCode,
			"duration_ms", time.Since(start).Milliseconds())
		return "", genErr
	}

	logging.Debug("Text generation call finished",
		"model", req.Model,
		"choices", len(completion.Choices),
		"total_tokens", completion.Usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds())

	if len(completion.Choices) == 0 {
		return "", &GenerationError{StatusCode: http.StatusOK, Message: "response contained no choices"}
	}

	return completion.Choices[0].Message.Content, nil
}

// toGenerationError maps API and transport failures onto a GenerationError
func toGenerationError(err error) *GenerationError {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &GenerationError{StatusCode: apiErr.StatusCode, Message: upstreamMessage(apiErr), Err: err}
	}
	return &GenerationError{Message: err.Error(), Err: err}
}

// upstreamMessage prefers the structured error message, falling back to the raw body
func upstreamMessage(apiErr *openai.Error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}

	raw := apiErr.RawJSON()
	for _, path := range []string{"error.message", "message"} {
		if msg := gjson.Get(raw, path); msg.Type == gjson.String && msg.String() != "" {
			return msg.String()
		}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return http.StatusText(apiErr.StatusCode)
	}
	if len(text) > maxUpstreamMessage {
		text = text[:maxUpstreamMessage] + "..."
	}
	return text
}

// IsGenerationError reports whether err carries a *GenerationError
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
