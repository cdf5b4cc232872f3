package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Unicus-11/quick-quill-clarity/config"
)

// Extractor turns uploaded file bytes into plain text. An empty result
// means no extractable text, which callers treat as an input error.
type Extractor interface {
	Extract(ctx context.Context, data []byte, ext string) (string, error)
}

// TextExtractor decodes txt uploads locally and delegates pdf and docx to
// a remote extraction API. Without a configured remote endpoint those
// formats yield no text.
type TextExtractor struct {
	config     *config.ExtractConfig
	httpClient *http.Client
}

func NewTextExtractor(cfg *config.ExtractConfig) *TextExtractor {
	return &TextExtractor{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// extractResponse is the remote extraction API's envelope
type extractResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		Text string `json:"text"`
	} `json:"data"`
}

func (s *TextExtractor) Extract(ctx context.Context, data []byte, ext string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "txt":
		return string(data), nil
	case "pdf", "docx":
		if s.config.APIURL == "" {
			return "", nil
		}
		return s.extractRemote(ctx, data, strings.ToLower(strings.TrimPrefix(ext, ".")))
	default:
		return "", nil
	}
}

func (s *TextExtractor) extractRemote(ctx context.Context, data []byte, format string) (string, error) {
	endpoint := fmt.Sprintf("%s/extract/text?format=%s", strings.TrimRight(s.config.APIURL, "/"), format)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	if s.config.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result extractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if result.Code != 0 {
		return "", fmt.Errorf("extraction API error: %s", result.Message)
	}

	return result.Data.Text, nil
}
