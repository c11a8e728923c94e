package testutil

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ChatServerConfig controls the canned chat completion reply.
type ChatServerConfig struct {
	// Status defaults to 200. Any other status replies with an error body.
	Status int
	// Statuses overrides Status for the first len(Statuses) requests.
	Statuses []int
	Content  string
}

// ChatRequest is one request captured by a ChatServer.
type ChatRequest struct {
	Path          string
	Authorization string
	Body          string
}

// ChatServer is an OpenAI-shaped chat completions endpoint for tests.
type ChatServer struct {
	// BaseURL is the versioned API root to configure clients with.
	BaseURL string

	mu       sync.Mutex
	requests []ChatRequest
}

// StartChatServer launches a chat server closed at test cleanup.
func StartChatServer(t testing.TB, cfg ChatServerConfig) *ChatServer {
	t.Helper()
	if cfg.Status == 0 {
		cfg.Status = http.StatusOK
	}
	chat := &ChatServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		_, _ = body.ReadFrom(r.Body)
		chat.mu.Lock()
		status := cfg.Status
		if n := len(chat.requests); n < len(cfg.Statuses) {
			status = cfg.Statuses[n]
		}
		chat.requests = append(chat.requests, ChatRequest{
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          body.String(),
		})
		chat.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprint(w, `{"error":{"message":"request rejected"}}`)
			return
		}
		fmt.Fprintf(w, `{"id":"chat-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q}}]}`, cfg.Content)
	}))
	t.Cleanup(server.Close)
	chat.BaseURL = server.URL + "/v1"
	return chat
}

// Requests returns the captured requests in arrival order.
func (s *ChatServer) Requests() []ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatRequest(nil), s.requests...)
}

// Calls returns the number of requests received.
func (s *ChatServer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
