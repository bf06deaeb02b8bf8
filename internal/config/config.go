// Package config loads the CLI configuration file. The library itself
// takes no configuration beyond a root path; everything here exists for
// the promptstore command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is looked up in the working directory and then the
// user's config directory when no explicit path is given.
const DefaultFileName = "promptstore.toml"

// Config carries CLI defaults. Every field can be overridden by a flag;
// API keys come from the environment only and are deliberately absent
// here so they never end up committed in a config file.
type Config struct {
	// Root is the template store root directory.
	Root string `toml:"root"`

	// Exporter names the default exporter for the export command.
	Exporter string `toml:"exporter"`

	// Provider selects the LLM backend for the run command: "openrouter"
	// or "ollama".
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// OllamaBaseURL points the ollama provider at a non-local instance.
	OllamaBaseURL string `toml:"ollama_base_url"`

	// CachePath enables the LLM response cache when non-empty.
	CachePath string `toml:"cache_path"`

	// StrictPlacement makes lint treat placement mismatches as errors.
	StrictPlacement bool `toml:"strict_placement"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:     "prompts",
		Exporter: "markdown",
		Provider: "openrouter",
	}
}

// Load reads the configuration at path, or the first default location
// when path is empty. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved := path
	if resolved == "" {
		resolved = findDefault()
		if resolved == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if path == "" && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", resolved, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", resolved, err)
	}
	return cfg, nil
}

// findDefault probes the working directory, then the user config
// directory.
func findDefault() string {
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, "promptstore", DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
