package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads settings from a YAML file at path. A missing file is not
// an error: the documented defaults are returned instead.
func Load(path string) (*SearchSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			settings := &SearchSettings{}
			settings.ApplyDefaults()
			return settings, nil
		}
		return nil, err
	}
	var settings SearchSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	settings.ApplyDefaults()
	return &settings, nil
}

// Save writes the settings to the given path, creating directories as
// needed.
func Save(path string, settings *SearchSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
