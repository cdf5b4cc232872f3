package service

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Unicus-11/quick-quill-clarity/model"
)

// minClauseLength is the shortest trimmed fragment kept after segmentation.
// Anything shorter is treated as noise (bullet markers, stray whitespace).
const minClauseLength = 10

// refinedHeader is the first line of the refined text handed to the LLM
const refinedHeader = "Refined Document Analysis:"

// categoryRule pairs a category with the keywords that select it.
// Rules are evaluated in order and the first match wins, so a clause
// mentioning both "fees" and "breach" classifies as Payment.
type categoryRule struct {
	category model.Category
	keywords []string
}

var categoryRules = []categoryRule{
	{model.CategoryPayment, []string{"payment", "fees", "amount", "invoice", "due"}},
	{model.CategoryTermination, []string{"terminate", "termination", "cancel", "end contract"}},
	{model.CategoryConfidentiality, []string{"confidential", "privacy", "disclosure", "secret"}},
	{model.CategoryPenalty, []string{"penalty", "fine", "charge", "liability", "breach"}},
}

type riskRule struct {
	risk     model.Risk
	keywords []string
}

var riskRules = []riskRule{
	{model.RiskHigh, []string{"penalty", "terminate", "lawsuit", "breach", "liability"}},
	{model.RiskMedium, []string{"fees", "confidential", "disclosure", "privacy"}},
}

// Segment splits raw document text into sentence-level clauses. The split
// point is after sentence-ending punctuation followed by whitespace, so the
// punctuation stays attached to the preceding clause. This is a heuristic:
// abbreviations and decimal numbers may over-split and that is accepted.
func Segment(text string) []string {
	var clauses []string
	var sb strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(sb.String())
		if utf8.RuneCountInString(trimmed) >= minClauseLength {
			clauses = append(clauses, trimmed)
		}
		sb.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		sb.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			flush()
		}
	}
	flush()

	return clauses
}

// Classify assigns a category to a clause by keyword matching.
// The rule order is part of the contract: earlier categories shadow later ones.
func Classify(clause string) model.Category {
	lower := strings.ToLower(clause)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryGeneral
}

// Score assigns a risk level to a clause. Scoring is independent of
// classification: the keyword sets overlap on purpose, category and risk
// are orthogonal dimensions.
func Score(clause string) model.Risk {
	lower := strings.ToLower(clause)
	for _, rule := range riskRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.risk
			}
		}
	}
	return model.RiskLow
}

// Analyze runs the full pipeline over extracted document text: segmentation,
// classification and risk scoring, plus assembly of the refined text block
// that summary and risk prompts are built from. Pure and deterministic.
func Analyze(text string) ([]model.Clause, string) {
	fragments := Segment(text)

	clauses := make([]model.Clause, 0, len(fragments))
	lines := make([]string, 0, len(fragments)+1)
	lines = append(lines, refinedHeader)

	for _, fragment := range fragments {
		clause := model.Clause{
			Text:     fragment,
			Category: Classify(fragment),
			Risk:     Score(fragment),
		}
		clauses = append(clauses, clause)
		lines = append(lines, fmt.Sprintf("[%s | Risk: %s] %s", clause.Category, clause.Risk, clause.Text))
	}

	return clauses, strings.Join(lines, "\n")
}
