package vanilla

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-lineitems/pkg/editor"
	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/render"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

type fieldSpec struct {
	field     model.Field
	inputType string
	step      string
	min       string
	maxLength int
	// suffix is printed after the input; mirror prints the row's unit
	// mirror before it, and hides the suffix when there is no unit.
	suffix string
	mirror bool
}

var productLayout = []fieldSpec{
	{field: model.FieldName, inputType: "text", maxLength: 64},
	{field: model.FieldPrice, inputType: "number", step: "0.01", min: "0", suffix: "€/"},
	{field: model.FieldUnit, inputType: "text", maxLength: 64},
	{field: model.FieldQuantityPerPackage, inputType: "number", suffix: "/ct", mirror: true},
	{field: model.FieldQuantityLimit, inputType: "number", min: "0", mirror: true},
	{field: model.FieldQuantum, inputType: "number", min: "0", step: "0.001", mirror: true},
	{field: model.FieldUnitWeight, inputType: "number", min: "0", step: "0.001", suffix: "kg"},
}

type formView struct {
	Action    string            `json:"action"`
	Locale    string            `json:"locale"`
	FormClass string            `json:"form_class"`
	RowCount  int               `json:"row_count"`
	ThenLeave string            `json:"then_leave"`
	Hidden    []hiddenView      `json:"hidden"`
	Header    headerView        `json:"header"`
	Columns   []string          `json:"columns"`
	Rows      []rowView         `json:"rows"`
	Errors    []string          `json:"errors"`
	Text      map[string]string `json:"text"`
	Theme     themeView         `json:"theme"`
	Styles    stylesView        `json:"styles"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type headerView struct {
	Class        string     `json:"class"`
	ID           hiddenView `json:"id"`
	State        hiddenView `json:"state"`
	Name         fieldView  `json:"name"`
	FreezeDate   fieldView  `json:"freeze_date"`
	Distribution fieldView  `json:"distribution_date"`
	Producer     selectView `json:"producer"`
	Description  fieldView  `json:"description"`
}

type selectView struct {
	Name    string       `json:"name"`
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Options []optionView `json:"options"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type fieldView struct {
	Name      string   `json:"name"`
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Value     string   `json:"value"`
	Step      string   `json:"step"`
	Min       string   `json:"min"`
	MaxLength int      `json:"max_length"`
	Disabled  bool     `json:"disabled"`
	Class     string   `json:"class"`
	Column    string   `json:"column"`
	Mirror    string   `json:"mirror"`
	Suffix    string   `json:"suffix"`
	Errors    []string `json:"errors"`
}

type checkView struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type descriptionView struct {
	RowID    string   `json:"row_id"`
	Name     string   `json:"name"`
	Target   string   `json:"target"`
	Value    string   `json:"value"`
	Visible  bool     `json:"visible"`
	Disabled bool     `json:"disabled"`
	Errors   []string `json:"errors"`
}

type imageView struct {
	ModifiedName string `json:"modified_name"`
	Modified     string `json:"modified"`
	UploadName   string `json:"upload_name"`
	UploadID     string `json:"upload_id"`
	URL          string `json:"url"`
	Label        string `json:"label"`
	Disabled     bool   `json:"disabled"`
}

type rowView struct {
	Slot        int             `json:"slot"`
	ID          string          `json:"id"`
	Class       string          `json:"class"`
	Identity    hiddenView      `json:"identity"`
	Place       hiddenView      `json:"place"`
	CanMoveUp   bool            `json:"can_move_up"`
	CanMoveDown bool            `json:"can_move_down"`
	Fields      []fieldView     `json:"fields"`
	Image       imageView       `json:"image"`
	Deleted     checkView       `json:"deleted"`
	Described   checkView       `json:"described"`
	Description descriptionView `json:"description"`
}

type themeView struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"css_vars_style"`
}

type stylesView struct {
	Links  []string `json:"links"`
	Inline string   `json:"inline"`
}

func (r *Renderer) buildView(form render.Form, options render.RenderOptions) formView {
	view := formView{
		Action:    options.Action,
		Locale:    options.Locale,
		FormClass: classList(ClassForm, r.formClass),
		ThenLeave: render.ThenLeave,
		Header:    r.headerView(form.Header, options),
		Errors:    render.MergeFormErrors(nil, options.FormErrors...),
		Text:      staticText(options),
		Theme:     buildThemeView(options),
		Styles:    r.styles(options),
	}
	if view.Locale == "" {
		view.Locale = render.DefaultLocale
	}
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		view.Hidden = append(view.Hidden, hiddenView{Name: field.Name, Value: field.Value})
	}
	for _, spec := range productLayout {
		view.Columns = append(view.Columns, options.T("label."+string(spec.field), string(spec.field)))
	}
	if form.Rows != nil {
		for _, row := range form.Rows.Rows() {
			view.Rows = append(view.Rows, r.rowView(row, options))
		}
	}
	view.RowCount = len(view.Rows)
	return view
}

func (r *Renderer) headerView(h model.Header, options render.RenderOptions) headerView {
	header := headerView{
		Class: string(ClassHeader),
		ID:    hiddenView{Name: render.DeliveryID, Value: h.ID},
		State: hiddenView{Name: render.DeliveryState, Value: h.State},
		Name: textField(options, render.DeliveryName, "text", h.Name,
			options.T("label.delivery_name", "Name")),
		FreezeDate: textField(options, render.FreezeDate, "date", h.FreezeDate,
			options.T("label.freeze_date", "Freeze date")),
		Distribution: textField(options, render.DistributionDate, "date", h.DistributionDate,
			options.T("label.distribution_date", "Distribution date")),
		Description: textField(options, render.DeliveryDescription, "textarea",
			editor.SanitizeHTML(h.Description, r.links), options.T("label.description", "Description")),
	}
	header.Name.MaxLength = 64

	producer := selectView{
		Name:  render.Producer,
		ID:    inputID(render.Producer),
		Label: options.T("label.producer", "Producer"),
	}
	hasNone := false
	for _, p := range h.Producers {
		if p.ID == model.NoProducer {
			hasNone = true
		}
	}
	if !hasNone {
		producer.Options = append(producer.Options, optionView{
			Value:    model.NoProducer,
			Label:    options.T("label.no_producer", "No producer"),
			Selected: !h.HasProducer(),
		})
	}
	for _, p := range h.Producers {
		producer.Options = append(producer.Options, optionView{
			Value:    p.ID,
			Label:    p.Name,
			Selected: p.ID == h.Producer || (p.ID == model.NoProducer && !h.HasProducer()),
		})
	}
	header.Producer = producer
	return header
}

func textField(options render.RenderOptions, name, inputType, value, label string) fieldView {
	errs := fieldErrors(options, name)
	field := fieldView{
		Name:   name,
		ID:     inputID(name),
		Label:  label,
		Type:   inputType,
		Value:  value,
		Errors: errs,
	}
	if len(errs) > 0 {
		field.Class = string(ClassInvalid)
	}
	return field
}

func (r *Renderer) rowView(row *rows.Row, options render.RenderOptions) rowView {
	slot := row.Slot()
	content := row.Content()
	view := row.Presentation()

	out := rowView{
		Slot:        int(slot),
		ID:          render.RowID(slot),
		Identity:    hiddenView{Name: render.FieldKey(slot, model.FieldID), Value: content.Identity},
		Place:       hiddenView{Name: render.SlotKey(slot, render.SuffixPlace), Value: strconv.Itoa(int(slot))},
		CanMoveUp:   view.CanMoveUp,
		CanMoveDown: view.CanMoveDown,
	}
	if view.Struck {
		out.Class = classList(ClassRow, string(ClassDeleted))
	} else {
		out.Class = string(ClassRow)
	}

	for _, spec := range productLayout {
		name := render.FieldKey(slot, spec.field)
		field := textField(options, name, spec.inputType, content.Fields.Get(spec.field),
			options.T("label."+string(spec.field), string(spec.field)))
		field.Step = spec.step
		field.Min = spec.min
		field.MaxLength = spec.maxLength
		field.Disabled = view.InputsDisabled
		field.Column = string(spec.field)
		field.Suffix = spec.suffix
		if spec.mirror {
			field.Mirror = view.UnitMirror
			if !view.ShowUnitSuffix {
				field.Suffix = ""
			}
		}
		out.Fields = append(out.Fields, field)
	}

	modified := "0"
	if view.ImageModified {
		modified = "1"
	}
	imageURL := view.ImageURL
	if imageURL == "" || imageURL == image.Placeholder {
		imageURL = r.placeholder
	}
	out.Image = imageView{
		ModifiedName: render.SlotKey(slot, render.SuffixImageModified),
		Modified:     modified,
		UploadName:   render.SlotKey(slot, render.SuffixImageUpload),
		UploadID:     inputID(render.SlotKey(slot, render.SuffixImageUpload)),
		URL:          imageURL,
		Label:        options.T("label.image", "Image"),
		Disabled:     view.InputsDisabled,
	}

	deletedName := render.SlotKey(slot, render.SuffixDeleted)
	out.Deleted = checkView{
		Name:    deletedName,
		ID:      inputID(deletedName),
		Label:   options.T("action.delete", "Delete"),
		Checked: content.Deleted,
	}
	describedName := render.SlotKey(slot, render.SuffixDescribed)
	out.Described = checkView{
		Name:    describedName,
		ID:      inputID(describedName),
		Label:   options.T("action.describe", "Describe"),
		Checked: content.Described,
	}

	descriptionName := render.SlotKey(slot, render.SuffixDescription)
	out.Description = descriptionView{
		RowID:    render.SlotKey(slot, render.SuffixDescription),
		Name:     descriptionName,
		Target:   render.EditorTarget(slot),
		Value:    editor.SanitizeHTML(content.Description, r.links),
		Visible:  view.DescriptionVisible,
		Disabled: !view.DescriptionEnabled,
		Errors:   fieldErrors(options, descriptionName),
	}
	return out
}

func staticText(options render.RenderOptions) map[string]string {
	return map[string]string{
		"add_row":        options.T("action.add_row", "Add a product"),
		"save":           options.T("action.save", "Save"),
		"save_and_leave": options.T("action.save_and_leave", "Save and leave"),
		"place":          options.T("label.place", "Place"),
		"image":          options.T("label.image", "Image"),
		"delete":         options.T("action.delete", "Delete"),
		"describe":       options.T("action.describe", "Describe"),
	}
}

func buildThemeView(options render.RenderOptions) themeView {
	cfg := options.Theme
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" {
			continue
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

func (r *Renderer) styles(options render.RenderOptions) stylesView {
	var out stylesView
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if href := options.Theme.AssetURL(AssetStylesheet); href != "" {
			out.Links = append(out.Links, href)
		}
	}
	out.Links = append(out.Links, r.stylesheets...)
	if r.inlineStyles {
		out.Inline = defaultStylesheet()
	}
	return out
}
