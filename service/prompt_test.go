package service

import (
	"strings"
	"testing"
)

func TestSummaryPromptTruncation(t *testing.T) {
	refined := strings.Repeat("a", 10000)
	prompt := SummaryPrompt(refined)

	if got := strings.Count(prompt, "a"); got != 4000 {
		t.Errorf("Expected 4000 characters of refined text, got %d", got)
	}
	if !strings.HasPrefix(prompt, "Summarize this legal document in plain English:") {
		t.Error("Expected summary instruction prefix")
	}
}

func TestRiskPromptTruncation(t *testing.T) {
	refined := strings.Repeat("b", 10000)
	prompt := RiskPrompt(refined)

	if got := strings.Count(prompt, "b"); got != 4000 {
		t.Errorf("Expected 4000 characters of refined text, got %d", got)
	}
	if !strings.Contains(prompt, "risks, unfair clauses, penalties, or hidden obligations") {
		t.Error("Expected risk instruction text")
	}
}

func TestQAPromptTruncation(t *testing.T) {
	fullText := strings.Repeat("c", 10000)
	prompt := QAPrompt(fullText, "What is the notice period?")

	if got := strings.Count(prompt, "c"); got != 8000 {
		t.Errorf("Expected 8000 characters of document text, got %d", got)
	}
	if !strings.Contains(prompt, "Question: What is the notice period?") {
		t.Error("Expected question embedded in prompt")
	}
	if !strings.HasSuffix(prompt, "Answer:") {
		t.Error("Expected prompt to end with answer scaffold")
	}
}

func TestPromptsBelowLimitUntouched(t *testing.T) {
	refined := "Refined Document Analysis:\n[Payment | Risk: Low] The payment is due."
	prompt := SummaryPrompt(refined)

	if !strings.Contains(prompt, refined) {
		t.Error("Expected short refined text to be embedded unmodified")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hello"},
		{"multibyte runes", "héllo wörld", 7, "héllo w"},
		{"empty", "", 4, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, expected %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}
