package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultCohereBaseURL = "https://api.cohere.ai/v1"
	defaultCohereModel   = "command-r"
)

// cohereRequest is the JSON payload sent to the Cohere chat endpoint.
type cohereRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// cohereResponse covers the completion fields seen across Cohere API versions.
type cohereResponse struct {
	Text        string `json:"text"`
	Reply       string `json:"reply"`
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

// content returns the first non-empty completion field in priority order.
func (r cohereResponse) content() string {
	if r.Text != "" {
		return r.Text
	}
	if r.Reply != "" {
		return r.Reply
	}
	if len(r.Generations) > 0 {
		return r.Generations[0].Text
	}
	return ""
}

// CohereClient sends prompts to the Cohere chat endpoint.
type CohereClient struct {
	Model    string
	BaseURL  string
	HTTP     HTTPDoer
	observer Observer
}

// NewCohere constructs a Cohere client, filling defaults for empty options.
func NewCohere(opts Options, observer Observer) *CohereClient {
	if observer == nil {
		observer = nopObserver{}
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultCohereModel
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultCohereBaseURL
	}
	return &CohereClient{
		Model:    model,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     opts.httpClient(),
		observer: observer,
	}
}

// Send posts the prompt as a chat message and returns the completion text.
func (c *CohereClient) Send(ctx context.Context, prompt, apiKey string) (string, error) {
	payload, err := json.Marshal(cohereRequest{
		Model:       c.Model,
		Message:     prompt,
		Temperature: Temperature,
		MaxTokens:   MaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.BaseURL + "/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.observer.OnRequestStart(Cohere)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", &Error{Provider: Cohere, Err: err}
	}
	defer resp.Body.Close()
	c.observer.OnResponse(Cohere, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &Error{Provider: Cohere, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var decoded cohereResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &Error{Provider: Cohere, StatusCode: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	content := decoded.content()
	if content == "" {
		return "", &Error{Provider: Cohere, StatusCode: resp.StatusCode, Message: "no completions returned"}
	}
	return content, nil
}
