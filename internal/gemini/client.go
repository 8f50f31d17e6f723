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
	"strings"
	"time"
)

// PromptKind selects which analysis the backend is asked to perform.
type PromptKind string

const (
	PromptTags        PromptKind = "tags"
	PromptDescription PromptKind = "description"
)

const promptForTags = "Generate tags for this image. Consider the main subjects, " +
	"the background, the mood and the colors, and respond with only 5-10 " +
	"comma-separated English keywords. Do not add any other prose. " +
	"Example: cat, tabby cat, sitting on a couch, warm light, indoor, brown, cozy"

const promptForDescription = "Look at this image and write a concise, lyrical " +
	"description of it in %s, no longer than 2-3 sentences."

// ErrEmptyResponse is returned when the backend answered 2xx but produced no
// usable candidate text.
var ErrEmptyResponse = errors.New("gemini: response contained no candidates")

// BackendError carries transport and HTTP-level failures from the
// generateContent endpoint.
type BackendError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gemini: unexpected status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("gemini: request failed: %v", e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

type Client struct {
	baseURL             string
	model               string
	apiKey              string
	descriptionLanguage string
	httpClient          *http.Client
}

func NewClient(baseURL, model, apiKey, descriptionLanguage string, timeout time.Duration) *Client {
	return &Client{
		baseURL:             strings.TrimSuffix(baseURL, "/"),
		model:               model,
		apiKey:              apiKey,
		descriptionLanguage: descriptionLanguage,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Request and response envelopes for the generateContent wire format.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// Analyze sends the image with the prompt selected by kind and returns the
// generated text of the first candidate, trimmed of surrounding whitespace.
// The call is synchronous and is not retried; the HTTP client timeout bounds
// it. Transport failures, non-2xx statuses and malformed bodies surface as
// *BackendError, a well-formed response without candidates as
// ErrEmptyResponse.
func (c *Client) Analyze(ctx context.Context, imageBytes []byte, mimeType string, kind PromptKind) (string, error) {
	requestBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
				{Text: c.promptFor(kind)},
			},
		}},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &BackendError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &BackendError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &BackendError{Err: fmt.Errorf("failed to decode response: %w", err), Body: string(body)}
	}

	if len(result.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	for _, p := range result.Candidates[0].Content.Parts {
		if p.Text != "" {
			return strings.TrimSpace(p.Text), nil
		}
	}
	return "", ErrEmptyResponse
}

func (c *Client) promptFor(kind PromptKind) string {
	if kind == PromptDescription {
		return fmt.Sprintf(promptForDescription, c.descriptionLanguage)
	}
	return promptForTags
}
