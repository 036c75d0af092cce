package snapshot_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/render"
	"github.com/goliatone/go-fielderrors/pkg/renderers/snapshot"
	"github.com/goliatone/go-fielderrors/pkg/testsupport"
)

func TestRenderer_JSONMatchesDocument(t *testing.T) {
	page := testsupport.Snapshot(t)

	out, err := snapshot.NewJSON().Render(testsupport.Context(), page, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got snapshot.Document
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(snapshot.NewDocument(page), got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
	if !got.AllIndicated || got.ActiveCount != 8 || got.FieldCount != 8 {
		t.Fatalf("expected every indicator active, got %d/%d", got.ActiveCount, got.FieldCount)
	}

	golden := filepath.Join("testdata", "stock_page.json")
	if testsupport.WriteMaybeGolden(t, golden, out) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, golden), string(out)); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_YAMLReflectsSelection(t *testing.T) {
	page := testsupport.BuildPage(t)
	if err := page.SetValues(model.KindTwinColSelect, "ok"); err != nil {
		t.Fatalf("set values: %v", err)
	}

	out, err := snapshot.NewYAML().Render(testsupport.Context(), page.Snapshot(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got snapshot.Document
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AllIndicated || got.ActiveCount != 7 {
		t.Fatalf("expected 7 active indicators, got %d", got.ActiveCount)
	}
	twin, ok := got.Page.FieldByKind(model.KindTwinColSelect)
	if !ok {
		t.Fatalf("twin column select missing")
	}
	want := model.ErrorIndicator{}
	if diff := cmp.Diff(want, twin.Error); diff != "" {
		t.Fatalf("twin column indicator mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got.Errors[fixture.ControlID(model.KindTwinColSelect)]; ok {
		t.Fatalf("cleared field should not be listed in errors")
	}
}

func TestRenderer_SkippedKindsBecomePageErrors(t *testing.T) {
	page := testsupport.Snapshot(t, fixture.WithTextKinds("AbstractField"))

	doc := snapshot.NewDocument(page)
	if len(doc.PageErrors) != 1 || doc.FieldCount != 4 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if diff := cmp.Diff([]model.Skipped{{Kind: "AbstractField", Reason: page.Skipped[0].Reason}}, doc.Page.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	if _, err := snapshot.New("xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}

	tests := []struct {
		renderer    *snapshot.Renderer
		name        string
		contentType string
	}{
		{renderer: snapshot.NewJSON(), name: "json", contentType: "application/json"},
		{renderer: snapshot.NewYAML(), name: "yaml", contentType: "application/yaml"},
	}
	for _, tt := range tests {
		if tt.renderer.Name() != tt.name || tt.renderer.ContentType() != tt.contentType {
			t.Fatalf("unexpected metadata %s %s", tt.renderer.Name(), tt.renderer.ContentType())
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := snapshot.NewJSON().Render(ctx, model.Page{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected canceled context error")
	}
}
