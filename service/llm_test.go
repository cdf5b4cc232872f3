package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Unicus-11/quick-quill-clarity/config"
)

type stubCompleter struct {
	answer string
	err    error
	mode   Mode
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string, mode Mode) (string, error) {
	s.prompt = prompt
	s.mode = mode
	return s.answer, s.err
}

func (s *stubCompleter) Name() string { return "stub" }

func TestCompleteWithoutProvider(t *testing.T) {
	svc := NewLLMServiceWithProvider(nil, time.Second)

	_, err := svc.Complete(context.Background(), "prompt", ModeSummary)
	if !errors.Is(err, ErrLLMUnavailable) {
		t.Errorf("Expected ErrLLMUnavailable, got %v", err)
	}
}

func TestCompleteOrExplainWithoutProvider(t *testing.T) {
	svc := NewLLMServiceWithProvider(nil, time.Second)

	answer := svc.CompleteOrExplain(context.Background(), "prompt", ModeQA)
	if answer != UnavailableMessage {
		t.Errorf("Expected %q, got %q", UnavailableMessage, answer)
	}
}

func TestCompleteOrExplainDegradesFailure(t *testing.T) {
	stub := &stubCompleter{err: &RequestError{Provider: "stub", Status: 502, Message: "bad gateway"}}
	svc := NewLLMServiceWithProvider(stub, time.Second)

	answer := svc.CompleteOrExplain(context.Background(), "prompt", ModeQA)
	if !strings.HasPrefix(answer, "LLM request failed:") {
		t.Errorf("Expected diagnostic answer, got %q", answer)
	}
	if !strings.Contains(answer, "502") {
		t.Errorf("Expected upstream status in diagnostic, got %q", answer)
	}
}

func TestCompletePassesThrough(t *testing.T) {
	stub := &stubCompleter{answer: "the summary"}
	svc := NewLLMServiceWithProvider(stub, time.Second)

	answer, err := svc.Complete(context.Background(), "prompt", ModeSummary)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if answer != "the summary" {
		t.Errorf("Expected answer to pass through, got %q", answer)
	}
	if stub.mode != ModeSummary {
		t.Errorf("Expected mode to be forwarded, got %s", stub.mode)
	}
}

func TestNewLLMServiceProviderPrecedence(t *testing.T) {
	// Groq wins when both credentials are present
	cfg := &config.LLMConfig{
		GroqAPIKey:     "gsk-test",
		GroqBaseURL:    "https://api.groq.com/openai/v1",
		GoogleAPIKey:   "google-test",
		GeminiBaseURL:  "https://generativelanguage.googleapis.com",
		TimeoutSeconds: 30,
	}
	svc := NewLLMService(cfg)
	if svc.provider == nil || svc.provider.Name() != "groq" {
		t.Error("Expected groq provider to take precedence")
	}

	// Gemini when only the Google key is present
	cfg.GroqAPIKey = ""
	svc = NewLLMService(cfg)
	if svc.provider == nil || svc.provider.Name() != "gemini" {
		t.Error("Expected gemini provider")
	}

	// No provider without credentials
	cfg.GoogleAPIKey = ""
	svc = NewLLMService(cfg)
	if svc.provider != nil {
		t.Error("Expected no provider without credentials")
	}
}

func TestRequestErrorMessage(t *testing.T) {
	err := &RequestError{Provider: "gemini", Status: 429, Message: "quota exceeded"}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Unexpected error text: %s", err.Error())
	}

	err = &RequestError{Provider: "groq", Message: "connection refused"}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Unexpected error text: %s", err.Error())
	}
}

func TestGeminiProviderComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("Expected api key in query")
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "summarize this" {
			t.Errorf("Unexpected request body: %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  a plain summary  "}]}}]}`))
	}))
	defer server.Close()

	provider := newGeminiProvider(&config.LLMConfig{
		GoogleAPIKey:  "test-key",
		GeminiBaseURL: server.URL,
	}, 5*time.Second)

	answer, err := provider.Complete(context.Background(), "summarize this", ModeSummary)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if answer != "a plain summary" {
		t.Errorf("Expected trimmed answer, got %q", answer)
	}
}

func TestGeminiProviderModelPerMode(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	provider := newGeminiProvider(&config.LLMConfig{
		GoogleAPIKey:  "test-key",
		GeminiBaseURL: server.URL,
	}, 5*time.Second)

	if _, err := provider.Complete(context.Background(), "q", ModeQA); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotPath != "/v1beta/models/gemini-1.5-pro:generateContent" {
		t.Errorf("Expected qa mode to use the pro model, got %s", gotPath)
	}
}

func TestGeminiProviderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	provider := newGeminiProvider(&config.LLMConfig{
		GoogleAPIKey:  "test-key",
		GeminiBaseURL: server.URL,
	}, 5*time.Second)

	_, err := provider.Complete(context.Background(), "q", ModeQA)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", reqErr.Status)
	}
}

func TestGeminiProviderEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	provider := newGeminiProvider(&config.LLMConfig{
		GoogleAPIKey:  "test-key",
		GeminiBaseURL: server.URL,
	}, 5*time.Second)

	_, err := provider.Complete(context.Background(), "q", ModeSummary)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
}

func TestGroqProviderComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req["model"] != "llama-3.1-8b-instant" {
			t.Errorf("Expected summary model, got %v", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " the answer "}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	client := openai.NewClient(
		option.WithAPIKey("gsk-test"),
		option.WithBaseURL(server.URL),
	)
	provider := &groqProvider{client: client}

	answer, err := provider.Complete(context.Background(), "summarize", ModeSummary)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if answer != "the answer" {
		t.Errorf("Expected trimmed answer, got %q", answer)
	}
}

func TestGroqProviderUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid model","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := openai.NewClient(
		option.WithAPIKey("gsk-test"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	provider := &groqProvider{client: client}

	_, err := provider.Complete(context.Background(), "q", ModeQA)

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", reqErr.Status)
	}
}
