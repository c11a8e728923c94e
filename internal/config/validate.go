package config

import (
	"net/url"

	"github.com/sirupsen/logrus"

	"reviserr/internal/provider"
)

// Validate checks every field and reports all problems at once.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	validateProvider(cfg.Provider, collector.add)
	validatePacing(cfg.Pacing, collector.add)
	validateUI(cfg.UI, collector.add)
	validateLog(cfg.Log, collector.add)
	return collector.result()
}

func validateProvider(cfg ProviderConfig, add issueAdder) {
	if _, err := provider.ParseKind(cfg.Default); err != nil {
		add("provider.default", "must be openai or cohere")
	}
	validateBaseURL("provider.openai.base_url", cfg.OpenAI.BaseURL, add)
	validateBaseURL("provider.cohere.base_url", cfg.Cohere.BaseURL, add)
	if cfg.Timeout < 0 {
		add("provider.timeout", "must not be negative")
	}
}

func validateBaseURL(field, value string, add issueAdder) {
	if value == "" {
		return
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		add(field, "must be an absolute http or https URL")
	}
}

func validatePacing(cfg PacingConfig, add issueAdder) {
	if cfg.PostGeneration < 0 {
		add("pacing.post_generation", "must not be negative")
	}
	if cfg.PostAnswer < 0 {
		add("pacing.post_answer", "must not be negative")
	}
}

func validateUI(cfg UIConfig, add issueAdder) {
	switch cfg.Mode {
	case "auto", "live", "plain":
	default:
		add("ui.mode", "must be auto, live, or plain")
	}
}

func validateLog(cfg LogConfig, add issueAdder) {
	if cfg.Level == "" {
		return
	}
	if _, err := logrus.ParseLevel(cfg.Level); err != nil {
		add("log.level", "must be a logrus level (debug, info, warn, error)")
	}
}
