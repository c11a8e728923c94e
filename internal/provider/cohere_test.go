package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCohereSendsChatRequest(t *testing.T) {
	var payload map[string]interface{}
	var auth, contentType, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"text":"completion"}`)
	}))
	t.Cleanup(server.Close)

	observer := &recordingObserver{}
	client := NewCohere(Options{BaseURL: server.URL + "/v1", Client: server.Client()}, observer)
	out, err := client.Send(context.Background(), "the prompt", "co-key")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if out != "completion" {
		t.Fatalf("unexpected output %q", out)
	}
	if path != "/v1/chat" {
		t.Fatalf("unexpected path %q", path)
	}
	if auth != "Bearer co-key" || contentType != "application/json" {
		t.Fatalf("unexpected headers auth=%q content-type=%q", auth, contentType)
	}
	if payload["model"] != "command-r" || payload["message"] != "the prompt" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["temperature"] != 0.3 || payload["max_tokens"] != float64(1200) {
		t.Fatalf("unexpected sampling params %v", payload)
	}
	if observer.starts != 1 || len(observer.statuses) != 1 {
		t.Fatalf("unexpected observer calls: %+v", observer)
	}
}

// TestCohereFieldPriority verifies text, reply, and generations are checked in order.
func TestCohereFieldPriority(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "text wins", body: `{"text":"t","reply":"r","generations":[{"text":"g"}]}`, want: "t"},
		{name: "reply second", body: `{"reply":"r","generations":[{"text":"g"}]}`, want: "r"},
		{name: "generations last", body: `{"generations":[{"text":"g"},{"text":"h"}]}`, want: "g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			t.Cleanup(server.Close)
			client := NewCohere(Options{BaseURL: server.URL, Client: server.Client()}, nil)
			out, err := client.Send(context.Background(), "p", "k")
			if err != nil {
				t.Fatalf("send: %v", err)
			}
			if out != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestCohereErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "non-success status", status: http.StatusTooManyRequests, body: `{"message":"rate limited"}`, want: "rate limited"},
		{name: "no completion", status: http.StatusOK, body: `{"meta":{}}`, want: "no completions"},
		{name: "undecodable", status: http.StatusOK, body: `not json`, want: "decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			t.Cleanup(server.Close)
			client := NewCohere(Options{BaseURL: server.URL, Client: server.Client()}, nil)
			_, err := client.Send(context.Background(), "p", "k")
			var providerErr *Error
			if !errors.As(err, &providerErr) {
				t.Fatalf("expected provider error, got %v", err)
			}
			if providerErr.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, providerErr.StatusCode)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}
