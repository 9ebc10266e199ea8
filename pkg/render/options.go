package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers use without
// touching the form state.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty posts back to the page.
	Action string
	// Locale selects labels and messages; see DefaultCatalog.
	Locale string
	// Translator overrides the built-in catalog.
	Translator Translator
	// OnMissing handles keys the translator cannot resolve.
	OnMissing MissingTranslationHandler
	// Hidden is posted as hidden inputs (CSRF token and the like).
	Hidden map[string]string
	// Errors surfaces validation feedback keyed by input name ("dv-name",
	// "r3-price"); see MapErrorPayload.
	Errors map[string][]string
	// FormErrors are messages not tied to one input.
	FormErrors []string
	// Theme carries the resolved theme: tokens, partials and asset URLs.
	Theme *theme.RendererConfig
}

func (o RenderOptions) translator() Translator {
	if o.Translator != nil {
		return o.Translator
	}
	return DefaultCatalog()
}

// T resolves a label for the configured locale.
func (o RenderOptions) T(key, fallback string, args ...any) string {
	return Translate(o.translator(), o.OnMissing, o.Locale, key, fallback, args...)
}

// TemplateFuncs returns the translate and current_locale helpers bound to
// the configured translator.
func (o RenderOptions) TemplateFuncs() map[string]any {
	return TemplateI18nFuncs(o.translator(), TemplateI18nConfig{OnMissing: o.OnMissing})
}
