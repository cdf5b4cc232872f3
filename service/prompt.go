package service

import (
	"fmt"
)

// Prompt excerpts are bounded by a hard character cutoff, not token-aware
// and not boundary-aware. Summary and risk prompts carry refined text,
// question answering carries the raw document.
const (
	refinedPromptLimit = 4000
	contextPromptLimit = 8000
)

// SummaryPrompt asks for a plain-English summary of the refined text
func SummaryPrompt(refinedText string) string {
	return "Summarize this legal document in plain English:\n\n" + truncate(refinedText, refinedPromptLimit)
}

// RiskPrompt asks for risk explanations over the refined text
func RiskPrompt(refinedText string) string {
	return "Identify any potential risks, unfair clauses, penalties, or hidden obligations in this legal document. Explain in plain English:\n\n" + truncate(refinedText, refinedPromptLimit)
}

// QAPrompt scopes a free-form question to the stored document text
func QAPrompt(fullText, question string) string {
	return fmt.Sprintf(`You are a helpful AI legal assistant.
Answer the question ONLY using the following document.

Document:
%s

Question: %s
Answer:`, truncate(fullText, contextPromptLimit), question)
}

// truncate cuts s to at most max characters. May cut mid-sentence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
