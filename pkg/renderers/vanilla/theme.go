package vanilla

import (
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme keys understood by the renderer.
const (
	// PartialForm names the template used instead of the built-in form.
	PartialForm = "lineitems.form"
	// AssetStylesheet is linked from the rendered page when the theme has it.
	AssetStylesheet = "stylesheet"
)

// DefaultManifest describes the built-in look: a light and a dark variant
// over the embedded stylesheet.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "lineitems",
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent":       "#2f6f3e",
			"deleted-text": "#8a8a8a",
			"invalid":      "#b00020",
		},
		Assets: theme.Assets{
			Prefix: "/static/lineitems",
			Files: map[string]string{
				AssetStylesheet: StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"accent":       "#8fd19e",
					"deleted-text": "#6b6b6b",
				},
			},
		},
	}
}

// Select picks a variant of manifest. Unknown variants fall back to the
// manifest's base values.
func Select(manifest *theme.Manifest, variant string) *theme.Selection {
	if manifest == nil {
		return nil
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  strings.TrimSpace(variant),
		Manifest: manifest,
	}
}

// ThemeConfig flattens a selection into what templates consume: variant
// values override the manifest's, tokens become "--name" CSS variables.
func ThemeConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	variant, hasVariant := manifest.Variants[sel.Variant]

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if hasVariant {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	var cssVars map[string]string
	if len(tokens) > 0 {
		cssVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cssVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
