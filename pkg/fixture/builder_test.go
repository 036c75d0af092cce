package fixture_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/widgets"
)

func newBuilder(options ...fixture.Option) *fixture.Builder {
	base := []fixture.Option{
		fixture.WithLogger(fixture.DiscardLogger()),
		fixture.WithIDGenerator(func() string { return "page-1" }),
	}
	return fixture.New(append(base, options...)...)
}

func mustBuild(t *testing.T, b *fixture.Builder) *fixture.Page {
	t.Helper()
	page, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return page
}

func TestBuild_EveryIndicatorActive(t *testing.T) {
	page := mustBuild(t, newBuilder())

	components := page.Components()
	if len(components) != 8 {
		t.Fatalf("expected 8 widgets, got %d", len(components))
	}
	if !page.IndicatorsActive() {
		t.Fatalf("expected every indicator active")
	}
	if len(page.Skipped) != 0 {
		t.Fatalf("unexpected skipped kinds: %v", page.SkippedKinds())
	}
}

func TestBuild_ColumnLayout(t *testing.T) {
	page := mustBuild(t, newBuilder())

	kindsOf := func(components []widgets.Component) []model.Kind {
		var out []model.Kind
		for _, c := range components {
			out = append(out, c.Kind())
		}
		return out
	}

	if diff := cmp.Diff(model.SelectionKinds(), kindsOf(page.Selection.Components())); diff != "" {
		t.Fatalf("selection column mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.TextKinds(), kindsOf(page.Text.Components())); diff != "" {
		t.Fatalf("text column mismatch (-want +got):\n%s", diff)
	}
	if got := len(page.Root.Containers()); got != 2 {
		t.Fatalf("expected two columns inside the root, got %d", got)
	}
}

func TestBuild_SelectionWidgetsSeededWithFailingValue(t *testing.T) {
	page := mustBuild(t, newBuilder())

	for _, kind := range model.SelectionKinds() {
		component, ok := page.Field(kind)
		if !ok {
			t.Fatalf("missing %s", kind)
		}
		snap := component.Snapshot()
		if snap.Caption != kind.String() {
			t.Fatalf("%s caption = %q", kind, snap.Caption)
		}
		if diff := cmp.Diff([]string{"ok", "error"}, snap.Options); diff != "" {
			t.Fatalf("%s options mismatch (-want +got):\n%s", kind, diff)
		}
		if diff := cmp.Diff([]string{"error"}, snap.Value); diff != "" {
			t.Fatalf("%s value mismatch (-want +got):\n%s", kind, diff)
		}
		if !snap.Error.Active || snap.Error.Message != "fail" {
			t.Fatalf("%s indicator = %+v", kind, snap.Error)
		}
		if component.Validate() == nil {
			t.Fatalf("%s should fail validation", kind)
		}
	}

	twin, _ := page.Field(model.KindTwinColSelect)
	if diff := cmp.Diff([]string{"exactSet"}, twin.Snapshot().Validators); diff != "" {
		t.Fatalf("twin column validators mismatch (-want +got):\n%s", diff)
	}
	combo, _ := page.Field(model.KindComboBox)
	if diff := cmp.Diff([]string{"stringLength"}, combo.Snapshot().Validators); diff != "" {
		t.Fatalf("combo box validators mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ComboBoxIndicatorScenario(t *testing.T) {
	page := mustBuild(t, newBuilder())

	combo, ok := page.Field(model.KindComboBox)
	if !ok {
		t.Fatalf("combo box missing")
	}
	want := model.ErrorIndicator{Active: true, Message: "fail"}
	if diff := cmp.Diff(want, combo.ErrorIndicator()); diff != "" {
		t.Fatalf("combo box indicator mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_TwinColSelectionScenarios(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		active bool
	}{
		{name: "only ok clears the indicator", labels: []string{"ok"}, active: false},
		{name: "only error", labels: []string{"error"}, active: true},
		{name: "ok and error", labels: []string{"ok", "error"}, active: true},
		{name: "empty", labels: nil, active: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := mustBuild(t, newBuilder())
			if err := page.SetValues(model.KindTwinColSelect, tc.labels...); err != nil {
				t.Fatalf("set values: %v", err)
			}
			twin, _ := page.Field(model.KindTwinColSelect)
			if got := twin.ErrorIndicator().Active; got != tc.active {
				t.Fatalf("indicator active = %v, want %v", got, tc.active)
			}
		})
	}
}

func TestBuild_TextWidgetsForcedError(t *testing.T) {
	page := mustBuild(t, newBuilder())

	for _, kind := range model.TextKinds() {
		component, ok := page.Field(kind)
		if !ok {
			t.Fatalf("missing %s", kind)
		}
		if component.Caption() != kind.String() {
			t.Fatalf("%s caption = %q", kind, component.Caption())
		}
		want := model.ErrorIndicator{Active: true, Message: "fail"}
		if diff := cmp.Diff(want, component.ErrorIndicator()); diff != "" {
			t.Fatalf("%s indicator mismatch (-want +got):\n%s", kind, diff)
		}
		if err := component.Validate(); err != nil {
			t.Fatalf("%s error should not come from validation: %v", kind, err)
		}
	}

	// Changing the text does not clear a forced error.
	if err := page.SetValues(model.KindTextField, "ok"); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if !page.IndicatorsActive() {
		t.Fatalf("forced error should survive value changes")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	builder := fixture.New(fixture.WithLogger(fixture.DiscardLogger()))

	first := mustBuild(t, builder)
	second := mustBuild(t, builder)

	if first.ID == second.ID {
		t.Fatalf("expected distinct page ids, got %q twice", first.ID)
	}
	if first.Root == second.Root {
		t.Fatalf("builds must not share widget trees")
	}

	opts := cmpopts.IgnoreFields(model.Page{}, "ID")
	if diff := cmp.Diff(first.Snapshot(), second.Snapshot(), opts); diff != "" {
		t.Fatalf("builds differ (-first +second):\n%s", diff)
	}

	if err := first.SetValues(model.KindTwinColSelect, "ok"); err != nil {
		t.Fatalf("set values: %v", err)
	}
	if !second.IndicatorsActive() {
		t.Fatalf("mutating one page leaked into another")
	}
}

func TestBuild_NonInstantiableKindIsSkipped(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)

	abstract := model.Kind("AbstractTextField")
	builder := newBuilder(
		fixture.WithLogger(logger),
		fixture.WithTextKinds(model.KindTextField, abstract, model.KindPasswordField),
	)

	page := mustBuild(t, builder)

	if _, ok := page.Field(abstract); ok {
		t.Fatalf("abstract kind should be absent from the tree")
	}
	if diff := cmp.Diff([]model.Kind{abstract}, page.SkippedKinds()); diff != "" {
		t.Fatalf("skipped kinds mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(page.Skipped[0].Err, widgets.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", page.Skipped[0].Err)
	}
	if got := len(page.Text.Components()); got != 2 {
		t.Fatalf("expected the remaining text widgets, got %d", got)
	}
	if !page.IndicatorsActive() {
		t.Fatalf("remaining widgets should still show indicators")
	}
	if !strings.Contains(logs.String(), "AbstractTextField") {
		t.Fatalf("expected skipped kind to be logged, got %q", logs.String())
	}

	snap := page.Snapshot()
	if len(snap.Skipped) != 1 || snap.Skipped[0].Kind != abstract || snap.Skipped[0].Reason == "" {
		t.Fatalf("snapshot skipped mismatch: %+v", snap.Skipped)
	}
}

func TestBuild_FailingFactoryIsSkipped(t *testing.T) {
	registry := widgets.NewRegistry()
	registry.MustRegister(model.KindRichTextArea, func() (widgets.Component, error) {
		return nil, errors.New("editor unavailable")
	})
	registry.MustRegister(model.KindNativeSelect, func() (widgets.Component, error) {
		return widgets.NewTextField(), nil
	})

	page := mustBuild(t, newBuilder(fixture.WithRegistry(registry)))

	want := []model.Kind{model.KindNativeSelect, model.KindRichTextArea}
	if diff := cmp.Diff(want, page.SkippedKinds()); diff != "" {
		t.Fatalf("skipped kinds mismatch (-want +got):\n%s", diff)
	}
	for _, skipped := range page.Skipped {
		if !errors.Is(skipped.Err, widgets.ErrConstruction) {
			t.Fatalf("%s: expected ErrConstruction, got %v", skipped.Kind, skipped.Err)
		}
	}
	if got := len(page.Components()); got != 6 {
		t.Fatalf("expected 6 widgets, got %d", got)
	}
}

func TestBuild_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newBuilder().Build(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuild_RejectsConfigThatWouldPass(t *testing.T) {
	cfg := fixture.DefaultConfig()
	cfg.MaxLength = 10

	if _, err := newBuilder(fixture.WithConfig(cfg)).Build(context.Background()); err == nil {
		t.Fatalf("expected configuration error when the failing value fits the length limit")
	}

	cfg = fixture.DefaultConfig()
	cfg.FailingValue = "missing"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for failing value outside the options")
	}

	for _, accepted := range [][]string{{"error"}, {"error", "error"}} {
		cfg = fixture.DefaultConfig()
		cfg.AcceptedSet = accepted
		if _, err := newBuilder(fixture.WithConfig(cfg)).Build(context.Background()); err == nil {
			t.Fatalf("accepted set %q lets the twin column pass", accepted)
		}
	}
}

func TestTextKindsSurviveLaterConfig(t *testing.T) {
	builder := newBuilder(
		fixture.WithTextKinds(model.KindTextField),
		fixture.WithConfig(fixture.Config{Message: "invalid"}),
	)

	if diff := cmp.Diff([]model.Kind{model.KindTextField}, builder.Config().TextKinds); diff != "" {
		t.Fatalf("text kinds mismatch (-want +got):\n%s", diff)
	}
	page := mustBuild(t, builder)
	if got := len(page.Text.Components()); got != 1 {
		t.Fatalf("expected one text widget, got %d", got)
	}
	if got := page.Text.Components()[0].ErrorIndicator().Message; got != "invalid" {
		t.Fatalf("message = %q", got)
	}
}

func TestSetValues_KindNotOnPage(t *testing.T) {
	page := mustBuild(t, newBuilder(fixture.WithTextKinds(model.KindTextField)))

	err := page.SetValues(model.KindPasswordField, "x")
	if !errors.Is(err, fixture.ErrNotOnPage) {
		t.Fatalf("expected ErrNotOnPage, got %v", err)
	}
}

func TestBuild_CustomConfig(t *testing.T) {
	cfg := fixture.Config{
		Title:        "Custom",
		Options:      []string{"ok", "nope", "broken"},
		FailingValue: "broken",
		Message:      "invalid",
	}
	page := mustBuild(t, newBuilder(fixture.WithConfig(cfg)))

	if page.Title != "Custom" {
		t.Fatalf("title = %q", page.Title)
	}
	for _, component := range page.Components() {
		if got := component.ErrorIndicator(); !got.Active || got.Message != "invalid" {
			t.Fatalf("%s indicator = %+v", component.Kind(), got)
		}
	}
}

func TestControlID(t *testing.T) {
	cases := map[model.Kind]string{
		model.KindComboBox:      "fe-combo-box",
		model.KindTwinColSelect: "fe-twin-col-select",
		model.KindTextField:     "fe-text-field",
		model.Kind(""):          "",
	}
	for kind, want := range cases {
		if got := fixture.ControlID(kind); got != want {
			t.Fatalf("ControlID(%q) = %q, want %q", kind, got, want)
		}
	}
}
