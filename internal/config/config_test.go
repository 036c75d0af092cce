package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), LoadOptions{SearchPaths: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), *cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fixture.DefaultConfig(), cfg.FixtureConfig()); diff != "" {
		t.Fatalf("fixture config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fielderrors.yaml", `
fixture:
  title: Error indicators
  message: broken
  text_kinds: [TextField, PasswordField]
server:
  addr: 127.0.0.1:9000
theme:
  variant: dark
`)
	t.Setenv("FIELDERRORS_LOG_LEVEL", "debug")
	t.Setenv("FIELDERRORS_FIXTURE_MESSAGE", "from env")

	cfg, err := Load(context.Background(), LoadOptions{SearchPaths: []string{dir}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Fixture.Title != "Error indicators" || cfg.Server.Addr != "127.0.0.1:9000" || cfg.Theme.Variant != "dark" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Fixture.Message != "from env" {
		t.Fatalf("env should win over file, got %q", cfg.Fixture.Message)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != log.DebugLevel {
		t.Fatalf("expected debug level, got %v (%v)", level, err)
	}
	if diff := cmp.Diff([]model.Kind{model.KindTextField, model.KindPasswordField}, cfg.FixtureConfig().TextKinds); diff != "" {
		t.Fatalf("text kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ok", "error"}, cfg.Fixture.Options); diff != "" {
		t.Fatalf("options should keep defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", "log:\n  level: warn\n")

	cfg, err := Load(context.Background(), LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected warn, got %q", cfg.Log.Level)
	}

	if _, err := Load(context.Background(), LoadOptions{ConfigFile: filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"failing value passes": "fixture:\n  failing_value: ok\n",
		"unknown log level":    "log:\n  level: loud\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "fielderrors.yaml", body)
			if _, err := Load(context.Background(), LoadOptions{ConfigFile: path}); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, LoadOptions{}); err == nil {
		t.Fatalf("expected canceled error")
	}
}

func TestThemeSelector_WithManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "contrast.yaml", `
name: contrast
version: 1.0.0
tokens:
  error-color: "#ff0000"
`)

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if manifest.Name != "contrast" || manifest.Tokens["error-color"] != "#ff0000" {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}

	cfg := DefaultConfig()
	selector, err := cfg.ThemeSelector()
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != cfg.Theme.Name {
		t.Fatalf("expected default theme, got %q", selection.Theme)
	}

	if _, err := LoadManifest(writeFile(t, dir, "nameless.yaml", "version: 1\n")); err == nil {
		t.Fatalf("expected error for manifest without name")
	}
}
