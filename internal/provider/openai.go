package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = openai.GPT3Dot5Turbo
)

// OpenAIClient sends prompts to the OpenAI chat-completions endpoint.
type OpenAIClient struct {
	Model    string
	BaseURL  string
	HTTP     HTTPDoer
	observer Observer
}

// NewOpenAI constructs an OpenAI client, filling defaults for empty options.
func NewOpenAI(opts Options, observer Observer) *OpenAIClient {
	if observer == nil {
		observer = nopObserver{}
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		Model:    model,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     opts.httpClient(),
		observer: observer,
	}
}

// Send posts a single-message chat completion and returns the first choice's content.
func (c *OpenAIClient) Send(ctx context.Context, prompt, apiKey string) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = c.BaseURL
	cfg.HTTPClient = c.HTTP
	client := openai.NewClientWithConfig(cfg)

	c.observer.OnRequestStart(OpenAI)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		Temperature: Temperature,
		MaxTokens:   MaxOutputTokens,
		N:           1,
	})
	if err != nil {
		return "", c.classify(err)
	}
	c.observer.OnResponse(OpenAI, http.StatusOK)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &Error{Provider: OpenAI, StatusCode: http.StatusOK, Message: "no choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps go-openai errors onto provider errors and reports any
// received response to the observer.
func (c *OpenAIClient) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		c.observer.OnResponse(OpenAI, apiErr.HTTPStatusCode)
		return &Error{Provider: OpenAI, StatusCode: apiErr.HTTPStatusCode, Message: strings.TrimSpace(apiErr.Message), Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		c.observer.OnResponse(OpenAI, reqErr.HTTPStatusCode)
		return &Error{Provider: OpenAI, StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &Error{Provider: OpenAI, Err: err}
}
