package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSummarize_NoAPIKeyReturnsEmpty(t *testing.T) {
	c := NewClient("", "gemini-1.5-flash")
	if got := c.Summarize(context.Background(), "some text"); got != "" {
		t.Fatalf("expected empty summary without api key, got %q", got)
	}
}

func TestSummarize_EmptyTextReturnsEmpty(t *testing.T) {
	c := NewClient("key", "gemini-1.5-flash")
	if got := c.Summarize(context.Background(), "   "); got != "" {
		t.Fatalf("expected empty summary for blank text, got %q", got)
	}
}

func TestSummarize_Success(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Issued 2024-01-01 by HQ. "},{"text":"Addressed to all staff."}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(srv.URL)
	got := c.Summarize(context.Background(), "memo body")
	want := "Issued 2024-01-01 by HQ. Addressed to all staff."
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
	if !strings.Contains(gotPrompt, "issue date") {
		t.Fatalf("prompt missing instruction, got %q", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "memo body") {
		t.Fatalf("prompt missing document text, got %q", gotPrompt)
	}
}

func TestSummarize_UpstreamErrorReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(srv.URL)
	if got := c.Summarize(context.Background(), "memo body"); got != "" {
		t.Fatalf("expected empty summary on upstream failure, got %q", got)
	}
}

func TestSummarize_MissingCandidatesReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(srv.URL)
	if got := c.Summarize(context.Background(), "memo body"); got != "" {
		t.Fatalf("expected empty summary when candidates absent, got %q", got)
	}
}

func TestSummarize_TruncatesLongInput(t *testing.T) {
	var promptLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			promptLen = len(req.Contents[0].Parts[0].Text)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", "gemini-1.5-flash").WithBaseURL(srv.URL)
	long := strings.Repeat("a", maxInputChars+5000)
	if got := c.Summarize(context.Background(), long); got != "ok" {
		t.Fatalf("summary = %q, want ok", got)
	}
	if promptLen > maxInputChars+len(BuildPrompt("")) {
		t.Fatalf("prompt not truncated: len=%d", promptLen)
	}
}
