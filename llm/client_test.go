package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giygas/medicombine-api/entities"
)

// capturedRequest is the subset of the chat completion payload the tests inspect
type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"combinations\":[]}"}}],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func testRequest() entities.GenerationRequest {
	return entities.GenerationRequest{
		System:      "system prompt",
		User:        "user prompt",
		Model:       "gpt-4",
		Temperature: 0.5,
	}
}

func TestGenerateSuccess(t *testing.T) {
	var received capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Expected bearer credential, got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL+"/", nil)
	content, err := client.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if content != `{"combinations":[]}` {
		t.Errorf("Expected first choice content, got %q", content)
	}
	if received.Model != "gpt-4" || received.Temperature != 0.5 {
		t.Errorf("Expected model gpt-4 at 0.5, got %s at %v", received.Model, received.Temperature)
	}
	if len(received.Messages) != 2 ||
		received.Messages[0].Role != "system" || received.Messages[0].Content != "system prompt" ||
		received.Messages[1].Role != "user" || received.Messages[1].Content != "user prompt" {
		t.Errorf("Expected system then user message, got %+v", received.Messages)
	}
}

func TestGenerateAPIErrors(t *testing.T) {
	testCases := []struct {
		name         string
		status       int
		body         string
		expectedText string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, "Incorrect API key provided"},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached","type":"requests"}}`, "Rate limit reached"},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"The server had an error","type":"server_error"}}`, "The server had an error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewClient("sk-test", server.URL, nil).Generate(context.Background(), testRequest())
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("Expected *GenerationError, got %T", err)
			}
			if genErr.StatusCode != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, genErr.StatusCode)
			}
			if !strings.Contains(err.Error(), tc.expectedText) {
				t.Errorf("Expected error containing %q, got %q", tc.expectedText, err.Error())
			}
			if got := calls.Load(); got != 1 {
				t.Errorf("Expected a single attempt without retries, got %d", got)
			}
		})
	}
}

func TestGenerateUnusableResponses(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
	}{
		{"no choices", http.StatusOK, `{"id":"chatcmpl-2","object":"chat.completion","choices":[]}`},
		{"invalid JSON", http.StatusOK, `not json`},
		{"raw error body", http.StatusBadGateway, "upstream unavailable"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			content, err := NewClient("sk-test", server.URL, nil).Generate(context.Background(), testRequest())
			if !IsGenerationError(err) {
				t.Fatalf("Expected GenerationError, got %v", err)
			}
			if content != "" {
				t.Errorf("Expected no content, got %q", content)
			}
		})
	}
}

func TestGenerateTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient("sk-test", url, nil).Generate(context.Background(), testRequest())
	if !IsGenerationError(err) {
		t.Fatalf("Expected GenerationError, got %v", err)
	}

	var genErr *GenerationError
	errors.As(err, &genErr)
	if genErr.StatusCode != 0 {
		t.Errorf("Expected status 0 for transport failure, got %d", genErr.StatusCode)
	}
	if !strings.HasPrefix(err.Error(), "text generation request failed") {
		t.Errorf("Expected transport error message, got %q", err.Error())
	}
}

func TestGenerateHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient("sk-test", server.URL, nil).Generate(ctx, testRequest())
	if !IsGenerationError(err) {
		t.Fatalf("Expected GenerationError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected wrapped deadline error, got %v", err)
	}
}

func TestGenerationErrorMessage(t *testing.T) {
	err := &GenerationError{StatusCode: 401, Message: "Incorrect API key provided"}
	if err.Error() != "text generation API error: 401 - Incorrect API key provided" {
		t.Errorf("Unexpected message %q", err.Error())
	}

	err = &GenerationError{Message: "connection refused"}
	if err.Error() != "text generation request failed: connection refused" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
