package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"verse_channel_bot/internal/domain/verse"
)

// LoadMessageTemplate reads message decoration overrides from a YAML file.
// An empty path yields the default template; fields left out of the file
// keep their defaults.
func LoadMessageTemplate(path string) (verse.Template, error) {
	if path == "" {
		return verse.DefaultTemplate(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return verse.Template{}, fmt.Errorf("read message config: %w", err)
	}

	var tmpl verse.Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return verse.Template{}, fmt.Errorf("parse message config: %w", err)
	}

	return tmpl.WithDefaults(), nil
}
