package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-lineitems/pkg/controller"
	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/render"
	"github.com/goliatone/go-lineitems/pkg/rows"
	"github.com/goliatone/go-lineitems/pkg/validation"
)

type menuEntry struct {
	label string
	run   func(ctx context.Context) (done bool, err error)
}

type session struct {
	r    *Renderer
	c    *controller.Controller
	last *render.Submission
}

// Run edits c until the user saves and leaves or quits. It returns the last
// accepted submission, nil when nothing was saved.
func (r *Renderer) Run(ctx context.Context, c *controller.Controller) (*render.Submission, error) {
	if c == nil {
		return nil, errors.New("tui: controller is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	s := &session{r: r, c: c}
	for {
		if err := ctx.Err(); err != nil {
			return s.last, err
		}
		entries := s.mainMenu()
		done, err := s.choose(ctx, r.t("prompt.choose_row", "Product or action"), entries)
		if err != nil {
			return s.last, err
		}
		if done {
			return s.last, nil
		}
	}
}

func (s *session) choose(ctx context.Context, message string, entries []menuEntry) (bool, error) {
	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = entry.label
	}
	idx, err := s.r.driver.Select(ctx, SelectConfig{Message: message, Options: labels, PageSize: 15})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(entries) {
		return false, fmt.Errorf("tui: selection %d out of range", idx)
	}
	return entries[idx].run(ctx)
}

func (s *session) mainMenu() []menuEntry {
	store := s.c.Store()
	entries := make([]menuEntry, 0, store.Len()+5)
	for _, row := range store.Rows() {
		slot := row.Slot()
		entries = append(entries, menuEntry{
			label: s.rowLabel(row),
			run: func(ctx context.Context) (bool, error) {
				return false, s.rowMenu(ctx, slot)
			},
		})
	}
	entries = append(entries,
		menuEntry{label: s.r.t("action.edit_header", "Edit delivery"), run: func(ctx context.Context) (bool, error) {
			return false, s.editHeader(ctx)
		}},
		menuEntry{label: s.r.t("action.add_row", "Add a product"), run: func(ctx context.Context) (bool, error) {
			s.c.AddRow()
			return false, nil
		}},
		menuEntry{label: s.r.t("action.save", "Save"), run: func(ctx context.Context) (bool, error) {
			return s.save(ctx, false)
		}},
		menuEntry{label: s.r.t("action.save_and_leave", "Save and leave"), run: func(ctx context.Context) (bool, error) {
			return s.save(ctx, true)
		}},
		menuEntry{label: s.r.t("action.quit", "Quit without saving"), run: func(context.Context) (bool, error) {
			return true, nil
		}},
	)
	return entries
}

func (s *session) rowLabel(row *rows.Row) string {
	name := row.Content().Name()
	if name == "" {
		name = s.r.t("status.empty_row", "(empty)")
	}
	label := fmt.Sprintf("%d. %s", int(row.Slot()), name)
	if marks := flags(row); marks != "-" {
		label += " [" + marks + "]"
	}
	return label
}

func (s *session) rowMenu(ctx context.Context, slot rows.Slot) error {
	row := s.c.Store().Row(slot)
	view := row.Presentation()

	var entries []menuEntry
	if !row.Deleted() {
		entries = append(entries, menuEntry{label: s.r.t("action.edit_fields", "Edit product"), run: func(ctx context.Context) (bool, error) {
			return false, s.editFields(ctx, slot)
		}})
	}
	deleteLabel := s.r.t("action.delete", "Delete")
	if row.Deleted() {
		deleteLabel = s.r.t("action.restore", "Restore")
	}
	entries = append(entries, menuEntry{label: deleteLabel, run: func(context.Context) (bool, error) {
		s.c.ToggleDeleted(slot)
		return false, nil
	}})
	describeLabel := s.r.t("action.describe", "Describe")
	if row.Described() {
		describeLabel = s.r.t("action.hide_description", "Hide description")
	}
	entries = append(entries, menuEntry{label: describeLabel, run: func(context.Context) (bool, error) {
		_, err := s.c.ToggleDescribed(slot)
		return false, err
	}})
	if view.DescriptionEnabled {
		entries = append(entries, menuEntry{label: s.r.t("action.write_description", "Write description"), run: func(ctx context.Context) (bool, error) {
			return false, s.writeDescription(ctx, slot)
		}})
	}
	if !row.Deleted() {
		entries = append(entries, menuEntry{label: s.r.t("action.attach_image", "Attach image"), run: func(ctx context.Context) (bool, error) {
			return false, s.attachImage(ctx, slot)
		}})
	}
	if view.CanMoveUp {
		entries = append(entries, menuEntry{label: s.r.t("action.move_up", "Move up"), run: func(context.Context) (bool, error) {
			return false, s.c.MoveUp(slot)
		}})
	}
	if view.CanMoveDown {
		entries = append(entries, menuEntry{label: s.r.t("action.move_down", "Move down"), run: func(context.Context) (bool, error) {
			return false, s.c.MoveDown(slot)
		}})
	}
	entries = append(entries, menuEntry{label: s.r.t("action.back", "Back"), run: func(context.Context) (bool, error) {
		return false, nil
	}})

	_, err := s.choose(ctx, s.r.t("prompt.choose_action", "What to do with %s?", s.rowLabel(row)), entries)
	return err
}

func (s *session) editFields(ctx context.Context, slot rows.Slot) error {
	row := s.c.Store().Row(slot)
	for _, field := range model.ProductFields {
		value, err := s.r.driver.Input(ctx, InputConfig{
			Message:   s.r.t("label."+string(field), string(field)),
			Default:   row.Field(field),
			Validator: fieldValidator(field),
		})
		if err != nil {
			return err
		}
		if err := s.c.SetField(slot, field, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

// fieldValidator rejects non-numeric input in numeric columns while typing.
// Business rules such as a positive price are checked on save.
func fieldValidator(field model.Field) func(string) error {
	switch field {
	case model.FieldName, model.FieldUnit:
		return nil
	}
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
		return nil
	}
}

func (s *session) writeDescription(ctx context.Context, slot rows.Slot) error {
	text, err := s.r.driver.TextArea(ctx, TextAreaConfig{
		Message: s.r.t("label.description", "Description"),
		Default: s.c.Store().Row(slot).Content().Description,
	})
	if err != nil {
		return err
	}
	return s.c.SetDescription(slot, text)
}

func (s *session) attachImage(ctx context.Context, slot rows.Slot) error {
	if s.r.openImage == nil {
		return ErrNoImageOpener
	}
	path, err := s.r.driver.Input(ctx, InputConfig{Message: s.r.t("prompt.image_path", "Image path")})
	if err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return nil
	}
	upload, err := s.r.openImage(path)
	if err != nil {
		return s.r.driver.Info(ctx, s.r.theme.ErrorPrefix+err.Error())
	}
	return s.c.ReplaceImage(slot, upload)
}

func (s *session) editHeader(ctx context.Context) error {
	h := s.c.Header()
	prompts := []struct {
		key, fallback string
		target        *string
	}{
		{"label.delivery_name", "Delivery name", &h.Name},
		{"label.freeze_date", "Freeze date", &h.FreezeDate},
		{"label.distribution_date", "Distribution date", &h.DistributionDate},
	}
	for _, p := range prompts {
		value, err := s.r.driver.Input(ctx, InputConfig{Message: s.r.t(p.key, p.fallback), Default: *p.target})
		if err != nil {
			return err
		}
		*p.target = strings.TrimSpace(value)
	}

	if len(h.Producers) > 0 {
		options := make([]string, len(h.Producers))
		current := 0
		for i, p := range h.Producers {
			options[i] = p.Name
			if p.ID == h.Producer {
				current = i
			}
		}
		idx, err := s.r.driver.Select(ctx, SelectConfig{
			Message:      s.r.t("label.producer", "Producer"),
			Options:      options,
			DefaultIndex: current,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(h.Producers) {
			h.Producer = h.Producers[idx].ID
		}
	}

	description, err := s.r.driver.TextArea(ctx, TextAreaConfig{
		Message: s.r.t("label.description", "Description"),
		Default: h.Description,
	})
	if err != nil {
		return err
	}
	h.Description = description
	s.c.SetHeader(h)
	return nil
}

func (s *session) save(ctx context.Context, leave bool) (bool, error) {
	thenLeave := controller.Stay
	if leave {
		thenLeave = controller.Leave
	}
	sub, err := s.c.Submit(thenLeave)
	var verr *validation.Error
	if errors.As(err, &verr) {
		return false, s.r.driver.Info(ctx, s.r.theme.ErrorPrefix+verr.MessageWith(s.r.translator(), s.r.options.Locale))
	}
	if err != nil {
		return false, err
	}
	if s.r.onSave != nil {
		if err := s.r.onSave(sub, leave); err != nil {
			return false, s.r.driver.Info(ctx, s.r.theme.ErrorPrefix+err.Error())
		}
	}
	s.last = sub
	if err := s.r.driver.Info(ctx, s.r.theme.InfoPrefix+s.r.t("status.saved", "Delivery saved.")); err != nil {
		return false, err
	}
	return leave, nil
}

func (r *Renderer) t(key, fallback string, args ...any) string {
	return r.options.T(key, fallback, args...)
}

func (r *Renderer) translator() render.Translator {
	if r.options.Translator != nil {
		return r.options.Translator
	}
	return render.DefaultCatalog()
}
