// Package controller binds the product form's user actions to the row
// store: loading a delivery, editing rows, moving them and submitting.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-lineitems/pkg/editor"
	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/loader"
	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/render"
	"github.com/goliatone/go-lineitems/pkg/rows"
	"github.com/goliatone/go-lineitems/pkg/validation"
)

// Values posted in then_leave.
const (
	Stay  = "0"
	Leave = "1"
)

// ErrCannotMove is returned when a move has no neighbour to swap with. The
// page disables those buttons; callers without buttons get an error.
var ErrCannotMove = errors.New("controller: row has no neighbour in that direction")

// LoadOptions tune how a delivery document opens.
type LoadOptions struct {
	// New marks a freshly created delivery: its name is left for the user
	// to fill in.
	New bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithEditorFactory sets the description editor factory.
func WithEditorFactory(factory editor.Factory) Option {
	return func(c *Controller) {
		if factory != nil {
			c.factory = factory
		}
	}
}

// WithEditorConfig sets the settings handed to editors when they load.
func WithEditorConfig(cfg editor.Config) Option {
	return func(c *Controller) { c.editorConfig = cfg }
}

// WithStrategy selects how swaps move editor state.
func WithStrategy(strategy editor.Strategy) Option {
	return func(c *Controller) {
		if strategy != "" {
			c.strategy = strategy
		}
	}
}

// WithBlankRows sets how many empty rows follow the loaded products.
func WithBlankRows(n int) Option {
	return func(c *Controller) {
		if n >= 0 {
			c.blankRows = n
		}
	}
}

// WithLogger routes controller logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHiddenFields adds hidden inputs (CSRF token, ...) to every submission.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(c *Controller) {
		c.hidden = render.MergeHiddenFields(c.hidden, fields...)
	}
}

// WithLoader replaces the document loader used by Load.
func WithLoader(l *loader.Loader) Option {
	return func(c *Controller) {
		if l != nil {
			c.loader = l
		}
	}
}

// Controller is one open product form. It is not safe for concurrent use.
type Controller struct {
	loader       *loader.Loader
	logger       *slog.Logger
	factory      editor.Factory
	editorConfig editor.Config
	strategy     editor.Strategy
	blankRows    int
	hidden       map[string]string

	header model.Header
	store  *rows.Store
}

// New returns a controller holding an empty form.
func New(options ...Option) *Controller {
	c := &Controller{
		loader:       loader.New(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		factory:      editor.NewMemory,
		editorConfig: editor.DefaultConfig(),
		strategy:     editor.StrategyFlagSwap,
		blankRows:    3,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	c.store = c.newStore()
	return c
}

func (c *Controller) newStore() *rows.Store {
	return rows.New(
		rows.WithEditorFactory(c.factory),
		rows.WithEditorConfig(c.editorConfig),
		rows.WithStrategy(c.strategy),
		rows.WithEditorTarget(render.EditorTarget),
	)
}

// Header returns the delivery-level fields.
func (c *Controller) Header() model.Header {
	return c.header
}

// SetHeader replaces the delivery-level fields.
func (c *Controller) SetHeader(h model.Header) {
	c.header = h
}

// Store exposes the rows for renderers.
func (c *Controller) Store() *rows.Store {
	return c.store
}

// Form returns what renderers need.
func (c *Controller) Form() render.Form {
	return render.Form{Header: c.header, Rows: c.store}
}

// Load fetches the delivery document and opens it.
func (c *Controller) Load(ctx context.Context, src loader.Source, opts LoadOptions) error {
	dv, err := c.loader.Load(ctx, src)
	if err != nil {
		return err
	}
	return c.Open(dv, opts)
}

// Open replaces the form with dv: one hydrated row per product followed by
// the blank rows. The header description is seeded last, once the rows are
// in place.
func (c *Controller) Open(dv model.Delivery, opts LoadOptions) error {
	header := model.HeaderFrom(dv, opts.New)
	header.Description = ""
	store := c.newStore()

	for i, product := range dv.Products {
		row := store.AddRow()
		if err := store.Hydrate(row.Slot(), product); err != nil {
			return fmt.Errorf("controller: product %d: %w", i+1, err)
		}
	}
	for i := 0; i < c.blankRows; i++ {
		store.AddRow()
	}
	header.Description = dv.Description

	c.header = header
	c.store = store
	c.logger.Debug("delivery opened",
		slog.String("delivery", dv.ID),
		slog.Int("products", len(dv.Products)),
		slog.Int("rows", store.Len()),
		slog.Bool("new", opts.New),
	)
	return nil
}

// AddRow appends an empty row and returns its slot.
func (c *Controller) AddRow() rows.Slot {
	return c.store.AddRow().Slot()
}

// SetField writes one product input.
func (c *Controller) SetField(slot rows.Slot, field model.Field, value string) error {
	return c.store.SetField(slot, field, value)
}

// SetDescription writes a row's description.
func (c *Controller) SetDescription(slot rows.Slot, text string) error {
	return c.store.SetDescription(slot, text)
}

// ToggleDeleted flips the row's deleted checkbox and returns its new state.
func (c *Controller) ToggleDeleted(slot rows.Slot) bool {
	deleted := !c.store.Row(slot).Deleted()
	c.store.MarkDeleted(slot, deleted)
	return deleted
}

// ToggleDescribed flips the row's described checkbox and returns its new
// state. On error the checkbox is left as it was and its state is returned.
func (c *Controller) ToggleDescribed(slot rows.Slot) (bool, error) {
	described := !c.store.Row(slot).Described()
	if err := c.store.MarkDescribed(slot, described); err != nil {
		return !described, err
	}
	return described, nil
}

// ReplaceImage attaches a user-selected picture to a row.
func (c *Controller) ReplaceImage(slot rows.Slot, upload *image.Upload) error {
	return c.store.ReplaceImage(slot, upload)
}

// MoveUp swaps the row with the one above it.
func (c *Controller) MoveUp(slot rows.Slot) error {
	if !c.store.CanMoveUp(slot) {
		return fmt.Errorf("%w: up from %d", ErrCannotMove, slot)
	}
	return c.swap(slot - 1)
}

// MoveDown swaps the row with the one below it.
func (c *Controller) MoveDown(slot rows.Slot) error {
	if !c.store.CanMoveDown(slot) {
		return fmt.Errorf("%w: down from %d", ErrCannotMove, slot)
	}
	return c.swap(slot)
}

func (c *Controller) swap(p rows.Slot) error {
	if err := c.store.Swap(p); err != nil {
		c.logger.Error("swap failed", slog.Int("slot", int(p)), slog.Any("error", err))
		return err
	}
	c.logger.Debug("rows swapped", slog.Int("upper", int(p)), slog.Int("lower", int(p)+1))
	return nil
}

// Check lists every validation failure without blocking anything.
func (c *Controller) Check() []*validation.Error {
	return validation.Collect(c.header, c.store)
}

// Submit validates the form and, when it passes, returns what the page
// would post. thenLeave is posted as then_leave (Stay or Leave). A refused
// submission returns the *validation.Error.
func (c *Controller) Submit(thenLeave string) (*render.Submission, error) {
	if err := validation.CanSubmit(c.header, c.store); err != nil {
		c.logger.Info("submission blocked", slog.Any("reason", err))
		return nil, err
	}
	sub := render.Encode(c.header, c.store, render.EncodeOptions{
		ThenLeave: thenLeave,
		Hidden:    c.hidden,
	})
	c.logger.Debug("submission encoded", slog.Int("fields", len(sub.Fields)), slog.Int("files", len(sub.Files)))
	return sub, nil
}
