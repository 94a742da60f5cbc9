package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fieldFile is the config file name looked up in the search directories.
const fieldFile = "field.yaml"

// SourceEmbedded names the built-in config in LoadFieldSource results.
const SourceEmbedded = "embedded"

// LoadField loads the asteroid field configuration.
// Search order: customPath -> ~/.rockfield/configs/field.yaml -> ./configs/field.yaml -> embedded default.
// Files are decoded over the defaults, so partial files only override what they set.
func LoadField(customPath string) (FieldConfig, error) {
	cfg, _, err := LoadFieldSource(customPath)
	return cfg, err
}

// LoadFieldSource is LoadField that also reports where the config came from:
// a file path or SourceEmbedded. A custom path must load; unreadable or
// invalid files elsewhere in the search order are skipped.
func LoadFieldSource(customPath string) (FieldConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FieldConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseField(data)
		if err != nil {
			return FieldConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := ParseField(data); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := ParseField(defaultFieldYAML)
	if err != nil {
		return DefaultFieldConfig(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

// ParseField decodes YAML over the default config and validates the result.
func ParseField(data []byte) (FieldConfig, error) {
	cfg := DefaultFieldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FieldConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FieldConfig{}, err
	}
	return cfg, nil
}

// MarshalField encodes cfg as YAML that ParseField reads back.
func MarshalField(cfg FieldConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode field config: %w", err)
	}
	return data, nil
}

// searchPaths lists the implicit config locations, user directory first.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".rockfield", "configs", fieldFile))
	}
	return append(paths, filepath.Join("configs", fieldFile))
}
