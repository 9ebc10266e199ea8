// Package lineitems wires configuration, editors, the delivery loader and
// the renderers into ready-to-use product forms.
package lineitems

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lineitems/pkg/config"
	"github.com/goliatone/go-lineitems/pkg/controller"
	"github.com/goliatone/go-lineitems/pkg/editor"
	"github.com/goliatone/go-lineitems/pkg/loader"
	"github.com/goliatone/go-lineitems/pkg/render"
	"github.com/goliatone/go-lineitems/pkg/renderers/tui"
	"github.com/goliatone/go-lineitems/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions for callers of the root package.
type RenderOptions = render.RenderOptions

// Submission aliases render.Submission.
type Submission = render.Submission

// Option configures an App.
type Option func(*App)

// WithLogger routes form logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithEditor registers an extra editor factory, selectable by name from the
// configuration.
func WithEditor(name string, priority int, factory editor.Factory) Option {
	return func(a *App) {
		a.editors.Register(name, priority, factory)
	}
}

// WithRenderer registers an extra renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(a *App) {
		a.extraRenderers = append(a.extraRenderers, renderer)
	}
}

// WithThemeManifest makes a theme selectable by its manifest name.
func WithThemeManifest(manifest *theme.Manifest) Option {
	return func(a *App) {
		if manifest != nil {
			a.themes[manifest.Name] = manifest
		}
	}
}

// WithLoaderOptions adds loader options (file system, HTTP client, ...).
func WithLoaderOptions(options ...loader.Option) Option {
	return func(a *App) {
		a.loaderOptions = append(a.loaderOptions, options...)
	}
}

// WithTUIOptions configures the terminal renderer.
func WithTUIOptions(options ...tui.Option) Option {
	return func(a *App) {
		a.tuiOptions = append(a.tuiOptions, options...)
	}
}

// App holds the process-wide pieces shared by every form.
type App struct {
	cfg            config.Config
	logger         *slog.Logger
	editors        *editor.Registry
	renderers      *render.Registry
	themes         map[string]*theme.Manifest
	loader         *loader.Loader
	loaderOptions  []loader.Option
	extraRenderers []render.Renderer
	tuiOptions     []tui.Option
	tui            *tui.Renderer
}

// New validates cfg and builds the registries. The vanilla and tui
// renderers are always registered.
func New(cfg config.Config, options ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		editors: editor.NewRegistry(),
		themes:  map[string]*theme.Manifest{},
	}
	builtin := vanilla.DefaultManifest()
	a.themes[builtin.Name] = builtin
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	if _, ok := a.editors.Resolve(cfg.Editor.Name); !ok {
		return nil, fmt.Errorf("lineitems: unknown editor %q (have %s)", cfg.Editor.Name, strings.Join(a.editors.Names(), ", "))
	}

	timeout, _ := cfg.Timeout()
	loaderOptions := append([]loader.Option{loader.WithHTTP(timeout)}, a.loaderOptions...)
	a.loader = loader.New(loaderOptions...)

	html, err := vanilla.New(vanilla.WithDescriptionLinks(cfg.EditorConfig().HasPlugin("link")))
	if err != nil {
		return nil, err
	}
	tuiOptions := append([]tui.Option{tui.WithLocale(cfg.Locale)}, a.tuiOptions...)
	a.tui = tui.New(tuiOptions...)

	renderers := append([]render.Renderer{html, a.tui}, a.extraRenderers...)
	registry, err := render.NewRegistry(renderers...)
	if err != nil {
		return nil, err
	}
	a.renderers = registry
	return a, nil
}

// Config returns the settings the app was built with.
func (a *App) Config() config.Config {
	return a.cfg
}

// Renderers exposes the renderer registry.
func (a *App) Renderers() *render.Registry {
	return a.renderers
}

// TUI returns the terminal renderer used for interactive sessions.
func (a *App) TUI() *tui.Renderer {
	return a.tui
}

// NewController returns an empty form configured from the settings.
func (a *App) NewController() *controller.Controller {
	factory, _ := a.editors.Resolve(a.cfg.Editor.Name)
	var hidden []render.HiddenField
	for name, value := range a.cfg.HiddenFields {
		hidden = append(hidden, render.Hidden(name, value))
	}
	return controller.New(
		controller.WithEditorFactory(factory),
		controller.WithEditorConfig(a.cfg.EditorConfig()),
		controller.WithStrategy(a.cfg.SwapStrategy()),
		controller.WithBlankRows(a.cfg.BlankRows),
		controller.WithLogger(a.logger),
		controller.WithHiddenFields(hidden...),
		controller.WithLoader(a.loader),
	)
}

// Open loads the delivery at src into a new form.
func (a *App) Open(ctx context.Context, src loader.Source, opts controller.LoadOptions) (*controller.Controller, error) {
	c := a.NewController()
	if err := c.Load(ctx, src, opts); err != nil {
		return nil, err
	}
	return c, nil
}

// RenderOptions returns the per-request options derived from the settings.
func (a *App) RenderOptions() (render.RenderOptions, error) {
	options := render.RenderOptions{
		Action: a.cfg.Action,
		Locale: a.cfg.Locale,
		Hidden: render.MergeHiddenFields(a.cfg.HiddenFields),
	}
	name := strings.TrimSpace(a.cfg.Theme.Name)
	if name == "" {
		return options, nil
	}
	manifest, ok := a.themes[name]
	if !ok {
		return render.RenderOptions{}, fmt.Errorf("lineitems: unknown theme %q", name)
	}
	options.Theme = vanilla.ThemeConfig(vanilla.Select(manifest, a.cfg.Theme.Variant))
	return options, nil
}

// Render renders c with the named renderer ("vanilla", "tui", ...).
func (a *App) Render(ctx context.Context, c *controller.Controller, rendererName string) ([]byte, error) {
	renderer, err := a.renderers.Get(rendererName)
	if err != nil {
		return nil, err
	}
	options, err := a.RenderOptions()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, c.Form(), options)
}
