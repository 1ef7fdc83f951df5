package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat shopfloor terminal configuration. A
// terminal is usually pinned to one work center and one operator.
type Config struct {
	Version           string `json:"version"`
	DefaultWorkCenter string `json:"default_work_center,omitempty"` // WC-XXX
	OperatorID        string `json:"operator_id,omitempty"`         // USR-XXX
}

// LoadConfig reads .shopfloor/config.json from the specified directory.
// Returns an error if no config is found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".shopfloor", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the directory.
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".shopfloor")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .shopfloor dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
