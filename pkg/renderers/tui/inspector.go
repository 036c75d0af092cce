package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
)

const doneChoice = "Done"

// Inspector runs an interactive session over a built page: the tester picks
// a field, changes its value and sees whether the error indicator is still
// active.
type Inspector struct {
	driver   PromptDriver
	renderer *Renderer
	out      io.Writer
}

// NewInspector constructs an inspector. Without WithPromptDriver the survey
// driver bound to the process stdio is used.
func NewInspector(options ...Option) *Inspector {
	s := newSettings(options)
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return &Inspector{
		driver:   s.driver,
		renderer: &Renderer{styles: s.styles},
		out:      s.out,
	}
}

// Run loops until the tester chooses Done. Aborting a prompt ends the session
// with ErrAborted.
func (i *Inspector) Run(ctx context.Context, page *fixture.Page) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if page == nil {
		return ErrNoPage
	}

	if err := i.report(ctx, i.renderer.Text(page.Snapshot())); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		snapshot := page.Snapshot()
		fields := snapshot.Fields()
		choices := make([]string, 0, len(fields)+1)
		for _, field := range fields {
			choices = append(choices, field.Caption)
		}
		choices = append(choices, doneChoice)

		idx, err := i.driver.Select(ctx, SelectConfig{
			Message:  "Field to change",
			Options:  choices,
			PageSize: len(choices),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(fields) {
			return i.report(ctx, i.renderer.Text(page.Snapshot()))
		}

		field := fields[idx]
		if err := i.edit(ctx, page, field); err != nil {
			return err
		}

		updated, ok := page.Snapshot().FieldByKind(field.Kind)
		if !ok {
			return fmt.Errorf("tui: %s disappeared from page", field.Kind)
		}
		if err := i.report(ctx, i.indicatorLine(updated)); err != nil {
			return err
		}
	}
}

func (i *Inspector) edit(ctx context.Context, page *fixture.Page, field model.Field) error {
	if field.Kind.IsSelection() {
		values, err := i.promptSelection(ctx, field)
		if err != nil {
			return err
		}
		return page.SetValues(field.Kind, values...)
	}

	value, err := i.promptText(ctx, field)
	if err != nil {
		return err
	}
	if err := page.SetValues(field.Kind, value); err != nil {
		return err
	}

	if !field.Error.Active {
		return nil
	}
	reset, err := i.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Clear the component error on %s?", field.Caption),
	})
	if err != nil {
		return err
	}
	if reset {
		if component, ok := page.Field(field.Kind); ok {
			component.ClearComponentError()
		}
	}
	return nil
}

func (i *Inspector) promptSelection(ctx context.Context, field model.Field) ([]string, error) {
	message := fmt.Sprintf("%s value", field.Caption)
	if field.Multi {
		indices, err := i.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  field.Options,
			Defaults: indicesOf(field.Options, field.Value),
		})
		if err != nil {
			return nil, err
		}
		return defaultsFromIndices(field.Options, indices), nil
	}

	current := -1
	if len(field.Value) > 0 {
		current = indexOf(field.Options, field.Value[0])
	}
	idx, err := i.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      field.Options,
		DefaultIndex: current,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return nil, nil
	}
	return []string{field.Options[idx]}, nil
}

func (i *Inspector) promptText(ctx context.Context, field model.Field) (string, error) {
	message := fmt.Sprintf("%s value", field.Caption)
	switch {
	case field.Secret:
		return i.driver.Password(ctx, InputConfig{Message: message})
	case field.Rows > 0:
		return i.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: strings.Join(field.Value, "\n"),
		})
	default:
		var current string
		if len(field.Value) > 0 {
			current = field.Value[0]
		}
		return i.driver.Input(ctx, InputConfig{Message: message, Default: current})
	}
}

func (i *Inspector) indicatorLine(field model.Field) string {
	styles := i.renderer.styles
	if field.Error.Active {
		return fmt.Sprintf("%s: %s", field.Caption, styles.Indicator.Render("indicator active ("+field.Error.Message+")"))
	}
	return fmt.Sprintf("%s: %s", field.Caption, styles.Valid.Render("indicator cleared"))
}

func (i *Inspector) report(ctx context.Context, msg string) error {
	msg = strings.TrimRight(msg, "\n")
	if i.out != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(i.out, msg)
		return err
	}
	return i.driver.Info(ctx, msg)
}
