// Package rows holds the ordered product rows of a delivery form. A Store
// owns a dense sequence of slots numbered from 1. Each slot keeps its own
// wiring (editor target, image container label, submitted field names) for
// the whole session, while the content it shows can move to a neighbouring
// slot through Swap. Rows are only ever appended; deletion is a flag.
//
// A Store is not safe for concurrent use. It belongs to the single session
// that edits the form.
package rows

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-lineitems/pkg/editor"
	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/model"
)

// Slot is the 1-based position of a row.
type Slot int

// ErrRowDeleted is returned when editing the inputs of a deleted row.
var ErrRowDeleted = errors.New("rows: row is deleted")

// ErrUnknownField is returned by SetField for names outside the schema.
var ErrUnknownField = errors.New("rows: unknown field")

// payload is the part of a row that travels with a swap, apart from the
// description (kept by the editor handle) and the image (kept by its
// container).
type payload struct {
	identity  string
	fields    model.Fields
	deleted   bool
	described bool
}

// Row is one slot of the table.
type Row struct {
	slot   Slot
	data   payload
	editor *editor.Handle
	image  *image.Container
	view   Presentation
}

// Slot returns the row's fixed position.
func (r *Row) Slot() Slot {
	return r.slot
}

// Content returns a snapshot of the row's mobile payload.
func (r *Row) Content() model.Content {
	return model.Content{
		Identity:    r.data.identity,
		Fields:      r.data.fields.Clone(),
		Deleted:     r.data.deleted,
		Described:   r.data.described,
		Description: r.editor.Content(),
	}
}

// Field returns one input value.
func (r *Row) Field(name model.Field) string {
	return r.data.fields.Get(name)
}

// Identity returns the persisted product id, empty for new rows.
func (r *Row) Identity() string {
	return r.data.identity
}

// Deleted reports the soft-delete flag.
func (r *Row) Deleted() bool {
	return r.data.deleted
}

// Described reports whether the description panel is enabled.
func (r *Row) Described() bool {
	return r.data.described
}

// Editor exposes the slot's description editor handle.
func (r *Row) Editor() *editor.Handle {
	return r.editor
}

// Image exposes the image container currently attached to the slot.
func (r *Row) Image() *image.Container {
	return r.image
}

// Presentation returns the visual state derived at the last mutation.
func (r *Row) Presentation() Presentation {
	return r.view
}

// Option configures a Store.
type Option func(*Store)

// WithEditorFactory sets the factory used when a description editor loads.
func WithEditorFactory(factory editor.Factory) Option {
	return func(s *Store) {
		if factory != nil {
			s.factory = factory
		}
	}
}

// WithEditorConfig sets the configuration handed to editors when they load.
func WithEditorConfig(cfg editor.Config) Option {
	return func(s *Store) {
		s.editorConfig = cfg
	}
}

// WithStrategy selects how Swap moves editor state.
func WithStrategy(strategy editor.Strategy) Option {
	return func(s *Store) {
		if strategy != "" {
			s.strategy = strategy
		}
	}
}

// WithEditorTarget names the element a slot's editor attaches to. Naming is
// a rendering concern, so callers that render supply it.
func WithEditorTarget(namer func(Slot) string) Option {
	return func(s *Store) {
		if namer != nil {
			s.target = namer
		}
	}
}

// Store is the ordered row collection of one open form.
type Store struct {
	rows         []*Row
	factory      editor.Factory
	editorConfig editor.Config
	strategy     editor.Strategy
	target       func(Slot) string
	observers    []func(*Row)
}

// New returns an empty store.
func New(options ...Option) *Store {
	s := &Store{
		factory:      editor.NewMemory,
		editorConfig: editor.DefaultConfig(),
		strategy:     editor.StrategyFlagSwap,
		target: func(slot Slot) string {
			return strconv.Itoa(int(slot))
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// OnReflect registers fn to be called whenever a row's presentation is
// recomputed.
func (s *Store) OnReflect(fn func(*Row)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// Strategy returns the editor swap strategy in use.
func (s *Store) Strategy() editor.Strategy {
	return s.strategy
}

// Len returns the number of rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns the rows in slot order.
func (s *Store) Rows() []*Row {
	return append([]*Row(nil), s.rows...)
}

// Row returns the row at slot. Asking for a slot that does not exist is a
// programming error.
func (s *Store) Row(slot Slot) *Row {
	if !s.has(slot) {
		panic(fmt.Sprintf("rows: no slot %d (store has %d rows)", slot, len(s.rows)))
	}
	return s.rows[slot-1]
}

func (s *Store) has(slot Slot) bool {
	return slot >= 1 && int(slot) <= len(s.rows)
}

// CanMoveUp reports whether the row at slot has a row above it.
func (s *Store) CanMoveUp(slot Slot) bool {
	return slot > 1 && s.has(slot)
}

// CanMoveDown reports whether the row at slot has a row below it.
func (s *Store) CanMoveDown(slot Slot) bool {
	return s.has(slot) && s.has(slot+1)
}

// AddRow appends an empty row after the current last one.
func (s *Store) AddRow() *Row {
	slot := Slot(len(s.rows) + 1)
	row := &Row{
		slot:   slot,
		data:   payload{fields: make(model.Fields)},
		editor: editor.NewHandle(s.target(slot), s.factory, s.editorConfig),
		image:  image.NewContainer(int(slot)),
	}
	s.rows = append(s.rows, row)

	// The former last row gains a neighbour below.
	if slot > 1 {
		s.reflectView(s.rows[slot-2])
	}
	s.reflectView(row)
	return row
}

// MarkDeleted flips the soft-delete flag.
func (s *Store) MarkDeleted(slot Slot, deleted bool) {
	row := s.Row(slot)
	row.data.deleted = deleted
	s.reflectView(row)
}

// MarkDescribed flips the description flag. The first time a row becomes
// described its editor loads; clearing the flag only hides it. When the
// editor fails to load the flag is restored and the error returned.
func (s *Store) MarkDescribed(slot Slot, described bool) error {
	row := s.Row(slot)
	previous := row.data.described
	row.data.described = described
	if err := s.reflect(row); err != nil {
		row.data.described = previous
		s.reflectView(row)
		return err
	}
	return nil
}

// SetField writes one product input.
func (s *Store) SetField(slot Slot, name model.Field, value string) error {
	row := s.Row(slot)
	if !name.Known() {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if row.data.deleted {
		return ErrRowDeleted
	}
	row.data.fields[name] = value
	s.reflectView(row)
	return nil
}

// SetDescription writes the row's description text.
func (s *Store) SetDescription(slot Slot, text string) error {
	row := s.Row(slot)
	if row.data.deleted {
		return ErrRowDeleted
	}
	row.editor.SetContent(text)
	return nil
}

// ReplaceImage hands a user-selected upload to the row's image container.
func (s *Store) ReplaceImage(slot Slot, upload *image.Upload) error {
	row := s.Row(slot)
	if row.data.deleted {
		return ErrRowDeleted
	}
	if upload == nil {
		return errors.New("rows: upload is nil")
	}
	row.image.Replace(upload)
	s.reflectView(row)
	return nil
}

// Hydrate fills a row from a product record served by the endpoint. A
// record with a non-empty description, whitespace included, turns the
// description panel on; a record with
// an image URL shows it without counting as a replacement.
func (s *Store) Hydrate(slot Slot, record model.ProductRecord) error {
	row := s.Row(slot)
	row.data.identity = record.ID
	for name, value := range record.Fields {
		if name.Known() {
			row.data.fields[name] = value
		}
	}
	if record.Description != "" {
		row.data.described = true
		row.editor.SetContent(record.Description)
	}
	row.image.ShowRemote(record.Image)
	return s.reflect(row)
}

// reflect recomputes a row's presentation, loading its editor the first time
// the description panel shows.
func (s *Store) reflect(row *Row) error {
	var err error
	if row.data.described && !row.editor.Loaded() {
		err = row.editor.Load()
	}
	s.reflectView(row)
	return err
}

func (s *Store) reflectView(row *Row) {
	row.view = s.present(row)
	for _, fn := range s.observers {
		fn(row)
	}
}
