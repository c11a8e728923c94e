// Package config loads the optional .reviserr.yml settings file.
//
// The file tunes providers, pacing, the UI, and logging. It never holds an
// API key: keys are entered interactively for each session.
package config

import (
	"time"

	"reviserr/internal/provider"
)

// Config is the full settings tree.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Pacing   PacingConfig   `yaml:"pacing"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// ProviderConfig selects and tunes the language-model providers.
type ProviderConfig struct {
	Default string         `yaml:"default"`
	OpenAI  EndpointConfig `yaml:"openai"`
	Cohere  EndpointConfig `yaml:"cohere"`
	Timeout time.Duration  `yaml:"timeout"`
}

// EndpointConfig overrides a provider's model and base URL.
type EndpointConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// PacingConfig holds the UX delays.
type PacingConfig struct {
	PostGeneration time.Duration `yaml:"post_generation"`
	PostAnswer     time.Duration `yaml:"post_answer"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in settings used when no file is found.
func Default() Config {
	return Config{
		Provider: ProviderConfig{Default: string(provider.OpenAI)},
		Pacing: PacingConfig{
			PostGeneration: 600 * time.Millisecond,
			PostAnswer:     1350 * time.Millisecond,
		},
		UI:  UIConfig{Mode: "auto"},
		Log: LogConfig{Level: "warn"},
	}
}

// DefaultProvider returns the configured default provider kind.
func (cfg Config) DefaultProvider() provider.Kind {
	return provider.Kind(cfg.Provider.Default)
}

// ProviderOptions maps the endpoint settings onto provider client options.
func (cfg Config) ProviderOptions() map[provider.Kind]provider.Options {
	return map[provider.Kind]provider.Options{
		provider.OpenAI: {
			Model:   cfg.Provider.OpenAI.Model,
			BaseURL: cfg.Provider.OpenAI.BaseURL,
			Timeout: cfg.Provider.Timeout,
		},
		provider.Cohere: {
			Model:   cfg.Provider.Cohere.Model,
			BaseURL: cfg.Provider.Cohere.BaseURL,
			Timeout: cfg.Provider.Timeout,
		},
	}
}
