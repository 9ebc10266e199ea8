package gotemplate_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-lineitems/pkg/render/template/gotemplate"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"row.tmpl":    {Data: []byte(`{{ row.name|trim }} x{{ row.quantity }}`)},
		"global.tmpl": {Data: []byte(`{{ site.title }}`)},
		"label.tmpl":  {Data: []byte(`{{ label("price") }}`)},
		"shout.tmpl":  {Data: []byte(`{{ name|shout_row }}`)},
		"escape.tmpl": {Data: []byte(`<textarea>{{ body }}</textarea>`)},
	}
}

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(testFS())}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

type rowData struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func TestRenderTemplateUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	var out bytes.Buffer
	got, err := engine.RenderTemplate("row", map[string]any{
		"row": rowData{Name: "  Pommes ", Quantity: 3},
	}, &out)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Pommes x3" {
		t.Fatalf("got %q", got)
	}
	if out.String() != got {
		t.Fatalf("writer got %q", out.String())
	}
}

func TestRenderTemplateWithExtension(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("row.tmpl", map[string]any{"row": map[string]any{"name": "Kale", "quantity": 1}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Kale x1" {
		t.Fatalf("got %q", got)
	}
}

func TestGlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"site": map[string]any{"title": "AMAP"}}))
	got, err := engine.RenderTemplate("global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "AMAP" {
		t.Fatalf("got %q", got)
	}

	if err := engine.GlobalContext(map[string]any{"site": map[string]any{"title": "Ferme"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err = engine.RenderTemplate("global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Ferme" {
		t.Fatalf("got %q", got)
	}
}

func TestTemplateFuncs(t *testing.T) {
	engine := newEngine(t, gotemplate.WithTemplateFunc(map[string]any{
		"label": func(key string) string { return "label:" + key },
	}))
	got, err := engine.RenderTemplate("label", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "label:price" {
		t.Fatalf("got %q", got)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_row", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}
	got, err := engine.RenderTemplate("shout", map[string]any{"name": "kale"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "KALE!" {
		t.Fatalf("got %q", got)
	}

	if err := engine.RegisterFilter("shout_row", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter to be rejected")
	}
}

func TestAutoescape(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderTemplate("escape", map[string]any{"body": "<p>a & b</p>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<textarea>&lt;p&gt;a &amp; b&lt;/p&gt;</textarea>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderString(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString(`{% if ok %}yes{% else %}no{% endif %}`, map[string]any{"ok": true})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "yes" {
		t.Fatalf("got %q", got)
	}
}

func TestNewRequiresTemplates(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected an error without templates")
	}
}
