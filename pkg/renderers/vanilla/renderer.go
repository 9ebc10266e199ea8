// Package vanilla renders the product form as plain HTML through pongo2
// templates. The markup carries every input the page posts, so a rendered
// form submits the same fields as render.Encode.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/render"
	rendertemplate "github.com/goliatone/go-lineitems/pkg/render/template"
	"github.com/goliatone/go-lineitems/pkg/render/template/gotemplate"
)

// FormTemplate is the built-in page template.
const FormTemplate = "templates/form.tmpl"

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheets      []string
	inlineStyles     bool
	formClass        string
	placeholder      string
	links            bool
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// FormTemplate, or the template a theme names under PartialForm.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an extra stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(href); trimmed != "" {
			cfg.stylesheets = append(cfg.stylesheets, trimmed)
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithFormClass adds classes to the form element.
func WithFormClass(classes string) Option {
	return func(cfg *config) {
		cfg.formClass = classes
	}
}

// WithPlaceholder sets the picture shown for rows without an image.
func WithPlaceholder(url string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			cfg.placeholder = trimmed
		}
	}
}

// WithDescriptionLinks keeps or strips anchors in rendered descriptions;
// it should follow the editor's "link" plugin.
func WithDescriptionLinks(enabled bool) Option {
	return func(cfg *config) {
		cfg.links = enabled
	}
}

// Renderer produces the HTML page.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	builtinFuncs bool
	stylesheets  []string
	inlineStyles bool
	formClass    string
	placeholder  string
	links        bool
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer on the embedded templates unless told otherwise.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		placeholder: image.Placeholder,
		links:       true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	builtin := engine == nil
	if builtin {
		built, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTemplateFunc(render.RenderOptions{}.TemplateFuncs()),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		engine = built
	}

	return &Renderer{
		templates:    engine,
		builtinFuncs: builtin,
		stylesheets:  cfg.stylesheets,
		inlineStyles: cfg.inlineStyles,
		formClass:    cfg.formClass,
		placeholder:  cfg.placeholder,
		links:        cfg.links,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the page for form.
func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]any{
		"form": r.buildView(form, options),
	}
	// The built-in engine carries the default catalog helpers; injected
	// engines and custom catalogs get them per render.
	if !r.builtinFuncs || options.Translator != nil || options.OnMissing != nil {
		for name, fn := range options.TemplateFuncs() {
			data[name] = fn
		}
	}

	name := FormTemplate
	if options.Theme != nil {
		if partial := strings.TrimSpace(options.Theme.Partials[PartialForm]); partial != "" {
			name = partial
		}
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
