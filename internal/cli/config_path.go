package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"reviserr/internal/config"
)

// loadConfig loads an explicit config path or searches from CWD, falling
// back to defaults when no file exists.
func loadConfig(configPath string) (config.Config, error) {
	path := strings.TrimSpace(configPath)
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = abs
	}
	cfg, _, err := config.Resolve(path)
	return cfg, err
}
