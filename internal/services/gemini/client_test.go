package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeVideo(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func generateContentPayload(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func TestTranscribeInline(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var request struct {
			Contents []struct {
				Parts []struct {
					Text       string `json:"text"`
					InlineData *struct {
						MimeType string `json:"mime_type"`
					} `json:"inline_data"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(request.Contents) != 1 || len(request.Contents[0].Parts) != 2 {
			t.Fatalf("unexpected request shape: %+v", request)
		}
		if request.Contents[0].Parts[0].InlineData == nil {
			t.Fatal("expected inline media part")
		}
		if request.Contents[0].Parts[0].InlineData.MimeType != "video/mp4" {
			t.Fatalf("unexpected mime type %q", request.Contents[0].Parts[0].InlineData.MimeType)
		}
		gotPrompt = request.Contents[0].Parts[1].Text
		_ = json.NewEncoder(w).Encode(generateContentPayload("00:00:01,000 Hello"))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-2.0-flash", WithBaseURL(server.URL))
	transcript, err := client.Transcribe(context.Background(), writeVideo(t, 64), "Korean")
	if err != nil {
		t.Fatal(err)
	}
	if transcript != "00:00:01,000 Hello" {
		t.Fatalf("unexpected transcript %q", transcript)
	}
	if !strings.Contains(gotPrompt, "Korean") {
		t.Fatalf("prompt should name the target language, got %q", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "HH:MM:SS,mmm") {
		t.Fatalf("prompt should pin the timestamp format, got %q", gotPrompt)
	}
}

func TestTranscribeUploadsLargeFiles(t *testing.T) {
	var polls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/upload/v1beta/files":
			if r.Header.Get("X-Goog-Upload-Protocol") != "raw" {
				t.Fatalf("expected raw upload protocol")
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"file": map[string]any{"name": "files/abc123", "uri": "https://files.test/abc123", "state": "PROCESSING"},
			})
		case r.URL.Path == "/v1beta/files/abc123":
			polls++
			state := "PROCESSING"
			if polls >= 2 {
				state = "ACTIVE"
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"state": state})
		case strings.HasSuffix(r.URL.Path, ":generateContent"):
			_ = json.NewEncoder(w).Encode(generateContentPayload("transcript from upload"))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-2.0-flash",
		WithBaseURL(server.URL),
		WithInlineLimit(16),
		WithPollInterval(time.Millisecond),
	)
	transcript, err := client.Transcribe(context.Background(), writeVideo(t, 64), "Korean")
	if err != nil {
		t.Fatal(err)
	}
	if transcript != "transcript from upload" {
		t.Fatalf("unexpected transcript %q", transcript)
	}
	if polls < 2 {
		t.Fatalf("expected at least 2 state polls, got %d", polls)
	}
}

func TestTranscribeFailedProcessing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/upload/v1beta/files":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"file": map[string]any{"name": "files/bad", "uri": "https://files.test/bad"},
			})
		case r.URL.Path == "/v1beta/files/bad":
			_ = json.NewEncoder(w).Encode(map[string]string{"state": "FAILED"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient("test-key", "m", WithBaseURL(server.URL), WithInlineLimit(1), WithPollInterval(time.Millisecond))
	_, err := client.Transcribe(context.Background(), writeVideo(t, 64), "Korean")
	if !errors.Is(err, ErrFileProcessing) {
		t.Fatalf("expected ErrFileProcessing, got %v", err)
	}
}

func TestTranscribeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key"}}`))
	}))
	defer server.Close()

	client := NewClient("bad-key", "m", WithBaseURL(server.URL))
	_, err := client.Transcribe(context.Background(), writeVideo(t, 8), "Korean")
	if err == nil || !strings.Contains(err.Error(), "http 401") {
		t.Fatalf("expected http 401 error, got %v", err)
	}
}

func TestTranscribeAPIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"quota exhausted"}}`))
	}))
	defer server.Close()

	client := NewClient("k", "m", WithBaseURL(server.URL))
	_, err := client.Transcribe(context.Background(), writeVideo(t, 8), "Korean")
	if err == nil || !strings.Contains(err.Error(), "quota exhausted") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestTranscribeRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.xyz")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	client := NewClient("k", "m")
	if _, err := client.Transcribe(context.Background(), path, "Korean"); err == nil {
		t.Fatal("expected error for unknown extension")
	}
}

func TestTranscribeRequiresCredentials(t *testing.T) {
	client := NewClient("", "m")
	if _, err := client.Transcribe(context.Background(), "x.mp4", "Korean"); err == nil {
		t.Fatal("expected error without api key")
	}
}
