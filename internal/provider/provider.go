package provider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Kind identifies a supported language-model vendor.
type Kind string

const (
	// OpenAI selects the OpenAI chat-completions API.
	OpenAI Kind = "openai"
	// Cohere selects the Cohere chat API.
	Cohere Kind = "cohere"
)

// Request parameters shared by every provider.
const (
	Temperature     = 0.3
	MaxOutputTokens = 1200
)

// Label returns the display name shown in the provider picker.
func (k Kind) Label() string {
	switch k {
	case OpenAI:
		return "OpenAI (GPT-4, GPT-3.5)"
	case Cohere:
		return "Cohere (Command-R, Command-Nightly)"
	default:
		return string(k)
	}
}

// ParseKind resolves a provider name case-insensitively.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case OpenAI:
		return OpenAI, nil
	case Cohere:
		return Cohere, nil
	default:
		return "", fmt.Errorf("unsupported provider %q (expected openai|cohere)", value)
	}
}

// Client sends a prompt to a provider and returns the raw completion text.
type Client interface {
	Send(ctx context.Context, prompt, apiKey string) (string, error)
}

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer is notified at request checkpoints for progress feedback.
type Observer interface {
	// OnRequestStart fires right before the outbound request.
	OnRequestStart(kind Kind)
	// OnResponse fires once an HTTP response has been received.
	OnResponse(kind Kind, statusCode int)
}

type nopObserver struct{}

func (nopObserver) OnRequestStart(Kind) {}

func (nopObserver) OnResponse(Kind, int) {}

// Options configures a provider client.
type Options struct {
	Model   string
	BaseURL string
	Client  HTTPDoer
	Timeout time.Duration
}

// Constructor builds a client for one provider kind.
type Constructor func(opts Options, observer Observer) (Client, error)

// Registry resolves provider kinds to configured clients.
type Registry struct {
	options      map[Kind]Options
	constructors map[Kind]Constructor
}

// NewRegistry returns a registry with the built-in providers registered.
func NewRegistry(options map[Kind]Options) *Registry {
	if options == nil {
		options = map[Kind]Options{}
	}
	return &Registry{
		options: options,
		constructors: map[Kind]Constructor{
			OpenAI: func(opts Options, observer Observer) (Client, error) {
				return NewOpenAI(opts, observer), nil
			},
			Cohere: func(opts Options, observer Observer) (Client, error) {
				return NewCohere(opts, observer), nil
			},
		},
	}
}

// Register adds or replaces the constructor for a provider kind.
func (r *Registry) Register(kind Kind, constructor Constructor) {
	r.constructors[kind] = constructor
}

// Kinds lists the registered provider kinds in stable order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.constructors))
	for kind := range r.constructors {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Client builds a client for kind that reports checkpoints to observer.
func (r *Registry) Client(kind Kind, observer Observer) (Client, error) {
	constructor, ok := r.constructors[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q", kind)
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return constructor(r.options[kind], observer)
}

// httpClient returns the configured doer or a client honoring Timeout.
func (opts Options) httpClient() HTTPDoer {
	if opts.Client != nil {
		return opts.Client
	}
	if opts.Timeout > 0 {
		return &http.Client{Timeout: opts.Timeout}
	}
	return http.DefaultClient
}

// BaseURL returns the endpoint base a client for kind would call.
func BaseURL(kind Kind, opts Options) string {
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		return base
	}
	switch kind {
	case OpenAI:
		return defaultOpenAIBaseURL
	case Cohere:
		return defaultCohereBaseURL
	default:
		return ""
	}
}
