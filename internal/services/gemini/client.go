package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultHTTPTimeout = 5 * time.Minute

	// inlineLimitBytes is the documented ceiling for inline video payloads;
	// anything larger must go through the File API.
	inlineLimitBytes = 20 << 20

	defaultPollInterval = 5 * time.Second
	defaultPollAttempts = 12
)

// ErrFileProcessing signals that the uploaded file never became ACTIVE.
var ErrFileProcessing = errors.New("gemini: uploaded file failed processing")

// Client wraps the Generative Language REST API.
type Client struct {
	apiKey       string
	model        string
	baseURL      string
	httpClient   *http.Client
	inlineLimit  int64
	pollInterval time.Duration
	pollAttempts int
}

// Option customizes the Gemini client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithInlineLimit overrides the inline-payload threshold.
func WithInlineLimit(limit int64) Option {
	return func(c *Client) {
		if limit > 0 {
			c.inlineLimit = limit
		}
	}
}

// WithPollInterval overrides the file-state polling cadence.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithPollAttempts overrides the maximum number of file-state polls.
func WithPollAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.pollAttempts = attempts
		}
	}
}

// NewClient constructs a Gemini API client for the given model.
func NewClient(apiKey, model string, opts ...Option) *Client {
	client := &Client{
		apiKey:       strings.TrimSpace(apiKey),
		model:        strings.TrimSpace(model),
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
		inlineLimit:  inlineLimitBytes,
		pollInterval: defaultPollInterval,
		pollAttempts: defaultPollAttempts,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Transcribe sends the video to the API and returns the raw transcript text
// exactly as the model produced it. Cleanup and SRT normalization are the
// caller's concern.
func (c *Client) Transcribe(ctx context.Context, videoPath, languageName string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini transcribe: api key required")
	}
	if c.model == "" {
		return "", errors.New("gemini transcribe: model required")
	}
	info, err := os.Stat(videoPath)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: stat video: %w", err)
	}
	mimeType, err := mimeTypeFor(videoPath)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}

	var media part
	if info.Size() <= c.inlineLimit {
		data, err := os.ReadFile(videoPath)
		if err != nil {
			return "", fmt.Errorf("gemini transcribe: read video: %w", err)
		}
		media = part{InlineData: &blob{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}}
	} else {
		uploaded, err := c.uploadFile(ctx, videoPath, mimeType, info.Size())
		if err != nil {
			return "", err
		}
		if err := c.waitForActive(ctx, uploaded.Name); err != nil {
			return "", err
		}
		media = part{FileData: &fileData{MimeType: mimeType, FileURI: uploaded.URI}}
	}

	return c.generateContent(ctx, []part{media, {Text: transcriptionPrompt(languageName)}})
}

func (c *Client) generateContent(ctx context.Context, parts []part) (string, error) {
	request := generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: &generationConfig{Temperature: 0.1},
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("gemini transcribe: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("gemini transcribe: decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("gemini transcribe: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	if len(decoded.Candidates) == 0 {
		return "", errors.New("gemini transcribe: empty candidates")
	}
	var b strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("gemini transcribe: empty transcript")
	}
	return text, nil
}

func (c *Client) uploadFile(ctx context.Context, path, mimeType string, size int64) (uploadedFile, error) {
	var empty uploadedFile
	file, err := os.Open(path)
	if err != nil {
		return empty, fmt.Errorf("gemini upload: open video: %w", err)
	}
	defer file.Close()

	endpoint := c.baseURL + "/upload/v1beta/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, file)
	if err != nil {
		return empty, fmt.Errorf("gemini upload: request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("X-Goog-Upload-Protocol", "raw")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("gemini upload: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("gemini upload: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("gemini upload: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		File uploadedFile `json:"file"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return empty, fmt.Errorf("gemini upload: decode response: %w", err)
	}
	if decoded.File.Name == "" {
		return empty, errors.New("gemini upload: response missing file name")
	}
	return decoded.File, nil
}

// waitForActive polls the File API until the upload is ready for inference.
func (c *Client) waitForActive(ctx context.Context, name string) error {
	for attempt := 0; attempt < c.pollAttempts; attempt++ {
		state, err := c.fileState(ctx, name)
		if err != nil {
			return err
		}
		switch state {
		case "ACTIVE":
			return nil
		case "FAILED":
			return fmt.Errorf("%w: %s", ErrFileProcessing, name)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("gemini file poll: %w", ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}
	return fmt.Errorf("%w: %s still processing after %d polls", ErrFileProcessing, name, c.pollAttempts)
}

func (c *Client) fileState(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("gemini file poll: request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini file poll: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini file poll: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("gemini file poll: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var decoded struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("gemini file poll: decode response: %w", err)
	}
	return decoded.State, nil
}

// mimeTypes maps supported video extensions to their MIME types.
var mimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".mpg":  "video/mpeg",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
	".3gp":  "video/3gpp",
}

func mimeTypeFor(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := mimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("no MIME type for extension %q", ext)
	}
	return mime, nil
}

type uploadedFile struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string    `json:"text,omitempty"`
	InlineData *blob     `json:"inline_data,omitempty"`
	FileData   *fileData `json:"file_data,omitempty"`
}

type blob struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type fileData struct {
	MimeType string `json:"mime_type"`
	FileURI  string `json:"file_uri"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}
