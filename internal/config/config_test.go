package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-promptstore/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Root != "prompts" || cfg.Exporter != "markdown" || cfg.Provider != "openrouter" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptstore.toml")
	body := `
root = "library"
exporter = "json"
provider = "ollama"
model = "codellama"
strict_placement = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "library" || cfg.Exporter != "json" || cfg.Provider != "ollama" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Model != "codellama" || !cfg.StrictPlacement {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptstore.toml")
	if err := os.WriteFile(path, []byte(`root = "elsewhere"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "elsewhere" {
		t.Fatalf("root = %q", cfg.Root)
	}
	if cfg.Exporter != "markdown" || cfg.Provider != "openrouter" {
		t.Fatalf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoadExplicitMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	if _, err := config.Load(missing); err == nil {
		t.Fatal("an explicitly named missing file is an error")
	}
}

func TestLoadNoDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("missing default config should not error: %v", err)
	}
	if cfg.Root != "prompts" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptstore.toml")
	if err := os.WriteFile(path, []byte("root = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
