package model

import (
	"time"
)

// Category is the clause taxonomy assigned by keyword classification
type Category string

const (
	CategoryPayment         Category = "Payment"
	CategoryTermination     Category = "Termination"
	CategoryConfidentiality Category = "Confidentiality"
	CategoryPenalty         Category = "Penalty"
	CategoryGeneral         Category = "General"
)

// Risk is the risk level assigned by keyword scoring
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Clause is a single annotated sentence-level unit of a document.
// Clauses are created once during analysis and never mutated.
type Clause struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Risk     Risk     `json:"risk"`
}

// AnalyzedDocument represents an uploaded legal document after the
// analysis pipeline has run over its extracted text
type AnalyzedDocument struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	FullText    string    `json:"-"`
	Clauses     []Clause  `json:"clauses"`
	RefinedText string    `json:"-"`
	Summary     string    `json:"summary,omitempty"`
	Risks       string    `json:"risks,omitempty"`
	FileURL     string    `json:"file_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
