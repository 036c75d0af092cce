package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-fielderrors/internal/config"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/orchestrator"
	"github.com/goliatone/go-fielderrors/pkg/renderers/tui"
)

// app carries the state shared by every command: resolved configuration,
// logger and output streams.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *log.Logger

	// driver replaces the survey prompts, used by tests.
	driver tui.PromptDriver
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) load(ctx context.Context) error {
	cfg, err := config.Load(ctx, config.LoadOptions{ConfigFile: a.cfgFile})
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: "fielderrors",
		Level:  level,
	})
	return nil
}

func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	selector, err := a.cfg.ThemeSelector()
	if err != nil {
		return nil, err
	}
	return orchestrator.New(
		orchestrator.WithLogger(a.logger),
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithFixtureOptions(a.cfg.FixtureOptions(a.logger.WithPrefix("fixture"))...),
	), nil
}

// parseValues turns repeated `Kind=label[,label]` flags into value overrides.
func parseValues(raw []string) (map[model.Kind][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := make(map[model.Kind][]string, len(raw))
	for _, entry := range raw {
		name, labels, ok := strings.Cut(entry, "=")
		kind := model.Kind(strings.TrimSpace(name))
		if !ok || !kind.Known() {
			return nil, fmt.Errorf("invalid value %q: want <Kind>=<label>[,<label>]", entry)
		}
		out := []string{}
		for _, label := range strings.Split(labels, ",") {
			if label = strings.TrimSpace(label); label != "" {
				out = append(out, label)
			}
		}
		values[kind] = out
	}
	return values, nil
}
