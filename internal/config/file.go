package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// fileSettings mirrors the module block of a bar config. Nil fields were
// not set in the file or held a value of the wrong type.
type fileSettings struct {
	MaxShown        *int
	CharBudget      *int
	PenaltyPerEntry *int
	Tooltip         *bool
	RefreshInterval *time.Duration

	// Warnings lists keys that were present but ignored.
	Warnings []string
}

// readFile loads a config file. YAML is chosen by extension, anything else
// is read as JSON with comments and trailing commas allowed. Syntax errors
// fail the load; a key with an unusable value is skipped with a warning.
func readFile(path string) (fileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileSettings{}, fmt.Errorf("reading %s: %w", path, err)
	}
	settings, err := parseFile(filepath.Ext(path), data)
	if err != nil {
		return fileSettings{}, fmt.Errorf("%s: %w", path, err)
	}
	for i, w := range settings.Warnings {
		settings.Warnings[i] = fmt.Sprintf("%s: %s", path, w)
	}
	return settings, nil
}

func parseFile(ext string, data []byte) (fileSettings, error) {
	raw := map[string]interface{}{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fileSettings{}, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
			return fileSettings{}, fmt.Errorf("parsing jsonc: %w", err)
		}
	}
	return decodeSettings(raw), nil
}

func decodeSettings(raw map[string]interface{}) fileSettings {
	var s fileSettings
	s.MaxShown = s.intKey(raw, "max-shown")
	s.CharBudget = s.intKey(raw, "char-budget")
	s.PenaltyPerEntry = s.intKey(raw, "penalty-per-entry")
	s.Tooltip = s.boolKey(raw, "tooltip")
	s.RefreshInterval = s.durationKey(raw, "refresh-interval")
	return s
}

func (s *fileSettings) ignore(key string, value interface{}, want string) {
	s.Warnings = append(s.Warnings, fmt.Sprintf("%s: expected %s, got %#v; using default", key, want, value))
}

func (s *fileSettings) intKey(raw map[string]interface{}, key string) *int {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case int:
		return &v
	case int64:
		n := int(v)
		return &n
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32 {
			n := int(v)
			return &n
		}
	}
	s.ignore(key, value, "an integer")
	return nil
}

func (s *fileSettings) boolKey(raw map[string]interface{}, key string) *bool {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	if v, ok := value.(bool); ok {
		return &v
	}
	s.ignore(key, value, "a boolean")
	return nil
}

func (s *fileSettings) durationKey(raw map[string]interface{}, key string) *time.Duration {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	if text, ok := value.(string); ok {
		if d, err := time.ParseDuration(text); err == nil {
			return &d
		}
	}
	s.ignore(key, value, "a duration")
	return nil
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func durationOr(v *time.Duration, fallback time.Duration) time.Duration {
	if v == nil {
		return fallback
	}
	return *v
}
