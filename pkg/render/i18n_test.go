package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-lineitems/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestCatalogFallsBackToLanguageThenDefault(t *testing.T) {
	cat := render.DefaultCatalog()

	got, err := cat.Translate("fr_FR", "validation.invalid_price", "Poires")
	if err != nil || got != "Le prix de Poires n'est pas valide." {
		t.Fatalf("fr_FR lookup = %q, %v", got, err)
	}
	got, err = cat.Translate("de", "label.price")
	if err != nil || got != "Price" {
		t.Fatalf("unknown locale should fall back to English, got %q, %v", got, err)
	}
	if _, err := cat.Translate("fr", "label.nope"); !errors.Is(err, render.ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
}

func TestCatalogMerge(t *testing.T) {
	merged := render.DefaultCatalog().Merge(render.Catalog{"fr": {"label.name": "Article"}})
	if got, _ := merged.Translate("fr", "label.name"); got != "Article" {
		t.Fatalf("override not applied, got %q", got)
	}
	if got, _ := merged.Translate("fr", "label.price"); got != "Prix" {
		t.Fatalf("defaults lost, got %q", got)
	}
}

func TestTranslateUsesFallbacks(t *testing.T) {
	if got := render.Translate(nil, nil, "fr", "label.name", "Name"); got != "Name" {
		t.Fatalf("nil translator should use fallback, got %q", got)
	}
	if got := render.Translate(stubTranslator{}, nil, "fr", "label.name", ""); got != "label.name" {
		t.Fatalf("empty fallback should yield key, got %q", got)
	}
	var seen error
	onMissing := func(_ string, key string, _ []any, err error) string {
		seen = err
		return "?" + key
	}
	if got := render.Translate(stubTranslator{}, onMissing, "fr", "x", "X"); got != "?x" || seen == nil {
		t.Fatalf("custom handler not used: %q %v", got, seen)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs(render.DefaultCatalog(), render.TemplateI18nConfig{})
	translate := funcs["translate"].(func(any, string, ...any) string)
	locale := funcs["current_locale"].(func(any) string)

	ctx := map[string]any{"locale": "fr"}
	if got := translate(ctx, "label.unit"); got != "Unité" {
		t.Fatalf("translate = %q", got)
	}
	if got := locale(ctx); got != "fr" {
		t.Fatalf("current_locale = %q", got)
	}
	if got := translate("en", "label.missing"); got != "label.missing" {
		t.Fatalf("missing key should echo the key, got %q", got)
	}
}
