package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Unicus-11/quick-quill-clarity/config"
)

// Mode selects the prompt task and, through the provider's model table,
// which model serves the request
type Mode string

const (
	ModeSummary Mode = "summary"
	ModeQA      Mode = "qa"
)

// UnavailableMessage is returned in place of an answer when no provider
// is configured. Requests still succeed with this degraded text.
const UnavailableMessage = "No LLM client available."

// ErrLLMUnavailable indicates that no provider credential was configured
var ErrLLMUnavailable = errors.New("no LLM client available")

// RequestError carries the upstream status and message of a failed
// provider call. It is never retried and never triggers fallback.
type RequestError struct {
	Provider string
	Status   int
	Message  string
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Message)
}

// Completer is the capability a language-model provider exposes
type Completer interface {
	Complete(ctx context.Context, prompt string, mode Mode) (string, error)
	Name() string
}

// LLMService routes completions to the single provider selected at
// construction time. Groq takes static precedence over Gemini when both
// credentials are present; there is no per-request negotiation.
type LLMService struct {
	provider Completer
	timeout  time.Duration
}

func NewLLMService(cfg *config.LLMConfig) *LLMService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	var provider Completer
	switch {
	case cfg.GroqAPIKey != "":
		provider = newGroqProvider(cfg)
	case cfg.GoogleAPIKey != "":
		provider = newGeminiProvider(cfg, timeout)
	}

	if provider != nil {
		slog.Info("LLM provider selected", "provider", provider.Name())
	} else {
		slog.Warn("no LLM provider configured, answers will be degraded")
	}

	return &LLMService{provider: provider, timeout: timeout}
}

// NewLLMServiceWithProvider wires an explicit provider, used by tests
func NewLLMServiceWithProvider(provider Completer, timeout time.Duration) *LLMService {
	return &LLMService{provider: provider, timeout: timeout}
}

// Complete sends the prompt to the active provider under the configured
// timeout. Returns ErrLLMUnavailable when no provider is configured and
// *RequestError when the upstream call fails.
func (s *LLMService) Complete(ctx context.Context, prompt string, mode Mode) (string, error) {
	if s.provider == nil {
		return "", ErrLLMUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	answer, err := s.provider.Complete(ctx, prompt, mode)
	if err != nil {
		slog.Error("LLM call failed",
			"provider", s.provider.Name(),
			"mode", string(mode),
			"latency_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return "", err
	}

	slog.Debug("LLM call completed",
		"provider", s.provider.Name(),
		"mode", string(mode),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return answer, nil
}

// CompleteOrExplain degrades failures into answer text so callers can keep
// serving the rest of the response: missing credentials yield the fixed
// unavailable marker, upstream failures yield their diagnostic string.
func (s *LLMService) CompleteOrExplain(ctx context.Context, prompt string, mode Mode) string {
	answer, err := s.Complete(ctx, prompt, mode)
	if err == nil {
		return answer
	}
	if errors.Is(err, ErrLLMUnavailable) {
		return UnavailableMessage
	}
	return "LLM request failed: " + err.Error()
}
