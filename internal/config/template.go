package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates/steplens.toml
var defaultTemplate string

// Template returns the commented steplens.toml written by "config init".
// Its values equal NewDefaults().
func Template() string {
	return defaultTemplate
}

// WriteTemplate writes Template() to steplens.toml in dir. An existing file is
// only replaced when force is set. Returns the path written.
func WriteTemplate(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
