package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lineitems/pkg/config"
	"github.com/goliatone/go-lineitems/pkg/editor"
)

func TestParseFormatsKeepDefaults(t *testing.T) {
	want := config.Default()
	want.BlankRows = 5
	want.Strategy = "destroy-recreate"
	want.Editor.Name = "plain"
	want.Theme = config.Theme{Name: "garden", Variant: "dark"}
	want.HiddenFields = map[string]string{"csrfmiddlewaretoken": "abc"}

	docs := map[string]string{
		"lineitems.json": `{
			"blank_rows": 5,
			"strategy": "destroy-recreate",
			"editor": {"name": "plain", "plugins": ["link"], "content_css": "/static/editor.css", "language": "fr_FR"},
			"theme": {"name": "garden", "variant": "dark"},
			"hidden_fields": {"csrfmiddlewaretoken": "abc"}
		}`,
		"lineitems.yaml": `
blank_rows: 5
strategy: destroy-recreate
editor:
  name: plain
theme:
  name: garden
  variant: dark
hidden_fields:
  csrfmiddlewaretoken: abc
`,
		"lineitems.toml": `
blank_rows = 5
strategy = "destroy-recreate"

[editor]
name = "plain"

[theme]
name = "garden"
variant = "dark"

[hidden_fields]
csrfmiddlewaretoken = "abc"
`,
	}

	for name, body := range docs {
		t.Run(name, func(t *testing.T) {
			got, err := config.Parse([]byte(body), name)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"negative rows":    `{"blank_rows": -1}`,
		"unknown strategy": `{"strategy": "teleport"}`,
		"bad timeout":      `{"http_timeout": "soon"}`,
		"not a document":   `[1, 2`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse([]byte(body), "c.json"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := config.Parse([]byte("  \n"), "c.yaml"); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoadAndLoadFS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineitems.yml")
	if err := os.WriteFile(path, []byte("locale: en\nhttp_timeout: 2s\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "en" || cfg.BlankRows != config.DefaultBlankRows {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if d, _ := cfg.Timeout(); d != 2*time.Second {
		t.Fatalf("timeout = %v", d)
	}

	fsys := fstest.MapFS{"conf/settings": {Data: []byte("strategy = \"flag-swap\"\nlocale = \"fr_FR\"\n")}}
	cfg, err = config.LoadFS(fsys, "conf/settings")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if cfg.Locale != "fr_FR" || cfg.SwapStrategy() != editor.StrategyFlagSwap {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestEditorConfigConversion(t *testing.T) {
	cfg := config.Default()
	ed := cfg.EditorConfig()
	if !ed.HasPlugin("link") || ed.Language != "fr_FR" {
		t.Fatalf("unexpected editor config %+v", ed)
	}
	ed.Plugins[0] = "mutated"
	if cfg.Editor.Plugins[0] != "link" {
		t.Fatalf("EditorConfig must copy plugins")
	}
}
