package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// These tests run each provider against a local httptest server standing
// in for the real API, verifying request shape and response parsing.

var testImage = []byte{0xff, 0xd8, 0xff, 0xe0} // JPEG magic

func TestOpenAIDescribeImage(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq openAIRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)

		json.NewEncoder(w).Encode(openAIResponse{
			Choices: []openAIChoice{
				{Message: openAIResponseMessage{Role: "assistant", Content: "A mountain village at dusk."}},
			},
		})
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL})

	desc, err := p.DescribeImage(context.Background(), testImage, "image/jpeg")
	if err != nil {
		t.Fatalf("DescribeImage: %v", err)
	}
	if desc != "A mountain village at dusk." {
		t.Errorf("description = %q", desc)
	}

	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotReq.Model != "gpt-test" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || len(gotReq.Messages[0].Content) != 2 {
		t.Fatalf("unexpected message shape: %+v", gotReq.Messages)
	}
	img := gotReq.Messages[0].Content[1]
	if img.Type != "image_url" || img.ImageURL == nil ||
		img.ImageURL.URL[:22] != "data:image/jpeg;base64" {
		t.Errorf("image part = %+v", img)
	}
}

func TestOpenAIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL})
	if _, err := p.DescribeImage(context.Background(), testImage, "image/jpeg"); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestGeminiDescribeImage(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)

		json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []geminiCandidate{
				{Content: geminiContent{Parts: []geminiPart{{Text: "Prayer flags over a valley."}}}},
			},
		})
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "g-test", Model: "gemini-test", BaseURL: srv.URL})

	desc, err := p.DescribeImage(context.Background(), testImage, "image/webp")
	if err != nil {
		t.Fatalf("DescribeImage: %v", err)
	}
	if desc != "Prayer flags over a valley." {
		t.Errorf("description = %q", desc)
	}

	if gotPath != "/v1beta/models/gemini-test:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "g-test" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected content shape: %+v", gotReq.Contents)
	}
	inline := gotReq.Contents[0].Parts[1].InlineData
	if inline == nil || inline.MimeType != "image/webp" || inline.Data == "" {
		t.Errorf("inline data = %+v", inline)
	}
}

func TestGeminiNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "g-test", BaseURL: srv.URL})
	if _, err := p.DescribeImage(context.Background(), testImage, "image/png"); err == nil {
		t.Error("expected error when no candidates returned")
	}
}

func TestClaudeDescribeImage(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotReq claudeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotReq)

		json.NewEncoder(w).Encode(claudeResponse{
			Content: []claudeContentBlock{
				{Type: "text", Text: "A crowded street market in Kathmandu."},
			},
		})
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "c-test", Model: "claude-test", BaseURL: srv.URL})

	desc, err := p.DescribeImage(context.Background(), testImage, "image/jpeg")
	if err != nil {
		t.Fatalf("DescribeImage: %v", err)
	}
	if desc != "A crowded street market in Kathmandu." {
		t.Errorf("description = %q", desc)
	}

	if gotPath != "/v1/messages" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "c-test" || gotVersion != "2023-06-01" {
		t.Errorf("headers = %q / %q", gotKey, gotVersion)
	}
	if len(gotReq.Messages) != 1 || len(gotReq.Messages[0].Content) != 2 {
		t.Fatalf("unexpected message shape: %+v", gotReq.Messages)
	}
	src := gotReq.Messages[0].Content[0].Source
	if src == nil || src.Type != "base64" || src.MediaType != "image/jpeg" {
		t.Errorf("image source = %+v", src)
	}
}

func TestClaudeNoTextContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(claudeResponse{})
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "c-test", BaseURL: srv.URL})
	if _, err := p.DescribeImage(context.Background(), testImage, "image/png"); err == nil {
		t.Error("expected error when no text blocks returned")
	}
}
