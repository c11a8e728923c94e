package config

import "strings"

// Normalize lowercases enum fields and trims endpoint URLs.
func Normalize(cfg *Config) {
	cfg.Provider.Default = strings.ToLower(strings.TrimSpace(cfg.Provider.Default))
	cfg.Provider.OpenAI.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Provider.OpenAI.BaseURL), "/")
	cfg.Provider.Cohere.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Provider.Cohere.BaseURL), "/")
	cfg.Provider.OpenAI.Model = strings.TrimSpace(cfg.Provider.OpenAI.Model)
	cfg.Provider.Cohere.Model = strings.TrimSpace(cfg.Provider.Cohere.Model)
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = "auto"
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
}
