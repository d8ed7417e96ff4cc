package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/telemetry"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// maxInputChars bounds the prompt payload to stay inside the upstream
	// input limit.
	maxInputChars = 120000
)

// Client calls the Gemini generateContent endpoint to summarize document text.
//
// Summarization is strictly best effort: a missing API key, transport
// failure, timeout or malformed response all yield an empty summary, never an
// error. Document creation must not be gated on this call succeeding.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a summarizer client. An empty apiKey produces a client
// that degrades to empty summaries without making network calls.
func NewClient(apiKey, model string) *Client {
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-flash"
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL overrides the upstream endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Summarize produces a structured summary of the given text, or "" when the
// upstream call cannot be made or fails.
func (c *Client) Summarize(ctx context.Context, text string) string {
	if c.apiKey == "" {
		return ""
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}

	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	summary, err := c.generate(ctx, BuildPrompt(text))
	if err != nil {
		telemetry.Error("summarize.failed", map[string]any{
			"model": c.model,
			"error": err.Error(),
		})
		return ""
	}
	return summary
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, truncateForLog(body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error: %s (%s)", parsed.Error.Message, parsed.Error.Status)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}

	var builder strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		builder.WriteString(p.Text)
	}
	summary := strings.TrimSpace(builder.String())
	if summary == "" {
		return "", fmt.Errorf("gemini response empty content")
	}
	return summary, nil
}

func truncateForLog(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
