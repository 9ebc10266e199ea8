package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lineitems/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, render.Form, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(namedRenderer("Vanilla"), namedRenderer("tui"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	got, err := registry.Get(" VANILLA ")
	if err != nil || got.Name() != "Vanilla" {
		t.Fatalf("lookup ignores case and spaces: %v, %v", got, err)
	}

	if err := registry.Register(namedRenderer("tui")); err == nil {
		t.Fatalf("duplicate names must be rejected")
	}
	if err := registry.Register(namedRenderer(" ")); err == nil {
		t.Fatalf("blank names must be rejected")
	}
	if _, err := registry.Get("preact"); err == nil || !strings.Contains(err.Error(), "tui, vanilla") {
		t.Fatalf("missing renderer should list the known names, got %v", err)
	}
}
