package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Unicus-11/quick-quill-clarity/config"
)

// geminiModels maps task mode to model name, mirroring the Groq table:
// flash for summaries, pro for QA and risk analysis.
var geminiModels = map[Mode]string{
	ModeSummary: "gemini-1.5-flash",
	ModeQA:      "gemini-1.5-pro",
}

// geminiProvider speaks the Google generative-content API
type geminiProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newGeminiProvider(cfg *config.LLMConfig, timeout time.Duration) *geminiProvider {
	return &geminiProvider{
		apiKey:  cfg.GoogleAPIKey,
		baseURL: strings.TrimRight(cfg.GeminiBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *geminiProvider) Name() string {
	return "gemini"
}

func (p *geminiProvider) Complete(ctx context.Context, prompt string, mode Mode) (string, error) {
	model, ok := geminiModels[mode]
	if !ok {
		model = geminiModels[ModeQA]
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, url.PathEscape(model), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Provider: p.Name(), Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RequestError{Provider: p.Name(), Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &RequestError{Provider: p.Name(), Message: "no candidates returned"}
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}
