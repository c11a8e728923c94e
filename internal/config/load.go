package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes YAML over the defaults. Unknown fields and multiple
// documents are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			validationErr.Path = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads explicitPath when set, otherwise the nearest config file
// above the working directory, otherwise the defaults. It returns the path
// that was loaded, or "" for defaults.
func Resolve(explicitPath string) (Config, string, error) {
	path := explicitPath
	if path == "" {
		found, err := FindConfigPath("")
		switch {
		case errors.Is(err, ErrNotFound):
			return Default(), "", nil
		case err != nil:
			return Config{}, "", err
		}
		path = found
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
