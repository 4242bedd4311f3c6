package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Settings is the free-form application settings store loaded from
// app.config_file. Values are whatever the document decoded to.
type Settings struct {
	values map[string]any
}

// NewSettings wraps values in a Settings store. A nil map is allowed.
func NewSettings(values map[string]any) *Settings {
	if values == nil {
		values = make(map[string]any)
	}
	return &Settings{values: values}
}

// Get returns the value stored under key.
func (s *Settings) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *Settings) Set(key string, value any) {
	s.values[key] = value
}

// String returns the value under key formatted as a string, or "" when absent.
func (s *Settings) String(key string) string {
	v, ok := s.values[key]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Keys returns the stored keys in sorted order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len is the number of top-level keys.
func (s *Settings) Len() int { return len(s.values) }

// GetAppSettings loads the application settings file named by
// app.config_file. JSON files (.json, .jsonc) may contain comments and
// trailing commas; anything else is parsed as YAML.
func (c *Config) GetAppSettings() (*Settings, error) {
	if c.appConfigFile == "" {
		return nil, fmt.Errorf("%w in the settings source; did you intend to provide one?", ErrSettingsSourceNotConfigured)
	}

	path := c.appConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading app config %s: %w", path, err)
	}

	values := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &values); err != nil {
			return nil, fmt.Errorf("parsing app config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parsing app config %s: %w", path, err)
		}
	}
	return NewSettings(values), nil
}
