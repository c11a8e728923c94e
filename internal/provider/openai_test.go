package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type recordingObserver struct {
	starts   int
	statuses []int
}

func (o *recordingObserver) OnRequestStart(Kind) {
	o.starts++
}

func (o *recordingObserver) OnResponse(_ Kind, statusCode int) {
	o.statuses = append(o.statuses, statusCode)
}

func TestOpenAISendsChatCompletion(t *testing.T) {
	var payload map[string]interface{}
	var auth, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"[]"},"finish_reason":"stop"}]}`)
	}))
	t.Cleanup(server.Close)

	observer := &recordingObserver{}
	client := NewOpenAI(Options{BaseURL: server.URL + "/v1", Client: server.Client()}, observer)
	out, err := client.Send(context.Background(), "prompt text", "sk-test")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out != "[]" {
		t.Fatalf("unexpected content %q", out)
	}
	if path != "/v1/chat/completions" {
		t.Fatalf("unexpected path %q", path)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if payload["model"] != "gpt-3.5-turbo" {
		t.Fatalf("unexpected model %v", payload["model"])
	}
	if payload["temperature"] != 0.3 || payload["max_tokens"] != float64(1200) || payload["n"] != float64(1) {
		t.Fatalf("unexpected sampling params: %v", payload)
	}
	messages, ok := payload["messages"].([]interface{})
	if !ok || len(messages) != 1 {
		t.Fatalf("expected one message, got %v", payload["messages"])
	}
	message := messages[0].(map[string]interface{})
	if message["role"] != "user" || message["content"] != "prompt text" {
		t.Fatalf("unexpected message %v", message)
	}
	if observer.starts != 1 || len(observer.statuses) != 1 || observer.statuses[0] != http.StatusOK {
		t.Fatalf("unexpected observer calls: %+v", observer)
	}
}

func TestOpenAIErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	}))
	t.Cleanup(server.Close)

	observer := &recordingObserver{}
	client := NewOpenAI(Options{BaseURL: server.URL + "/v1", Client: server.Client()}, observer)
	_, err := client.Send(context.Background(), "prompt", "bad")
	var providerErr *Error
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if providerErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", providerErr.StatusCode)
	}
	if len(observer.statuses) != 1 || observer.statuses[0] != http.StatusUnauthorized {
		t.Fatalf("expected response checkpoint with 401, got %v", observer.statuses)
	}
}

func TestOpenAIMissingChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"x","choices":[]}`)
	}))
	t.Cleanup(server.Close)

	client := NewOpenAI(Options{BaseURL: server.URL + "/v1", Client: server.Client()}, nil)
	_, err := client.Send(context.Background(), "prompt", "key")
	var providerErr *Error
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
