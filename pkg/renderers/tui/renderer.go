// Package tui edits a product form from the terminal. Renderer.Run drives an
// interactive session over a controller; Renderer.Render prints a plain text
// summary of the form.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/render"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

// Renderer implements render.Renderer for terminals.
type Renderer struct {
	driver    PromptDriver
	theme     Theme
	options   render.RenderOptions
	openImage ImageOpener
	onSave    SaveFunc
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey driver.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:    NewSurveyDriver(),
		openImage: OpenImageFile,
		theme:     Theme{ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports what Render produces.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints the header and one line per row. Deleted rows are marked
// with "x", described rows with "d", replaced images with "i".
func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if options.Locale == "" {
		options.Locale = r.options.Locale
	}

	var buf bytes.Buffer
	h := form.Header
	fmt.Fprintf(&buf, "%s: %s\n", options.T("label.delivery_name", "Delivery name"), h.Name)
	if h.FreezeDate != "" {
		fmt.Fprintf(&buf, "%s: %s\n", options.T("label.freeze_date", "Freeze date"), h.FreezeDate)
	}
	if h.DistributionDate != "" {
		fmt.Fprintf(&buf, "%s: %s\n", options.T("label.distribution_date", "Distribution date"), h.DistributionDate)
	}
	if h.HasProducer() {
		fmt.Fprintf(&buf, "%s: %s\n", options.T("label.producer", "Producer"), producerName(h))
	}
	buf.WriteString("\n")

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	columns := []string{"#", "", options.T("label.name", "Product"), options.T("label.price", "Price"), options.T("label.unit", "Unit")}
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	if form.Rows != nil {
		for _, row := range form.Rows.Rows() {
			content := row.Content()
			if content.Blank() && !content.Deleted {
				continue
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				int(row.Slot()), flags(row), content.Name(),
				content.Fields.Get(model.FieldPrice), content.Fields.Get(model.FieldUnit))
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("tui: render: %w", err)
	}
	return buf.Bytes(), nil
}

func flags(row *rows.Row) string {
	var b strings.Builder
	if row.Deleted() {
		b.WriteString("x")
	}
	if row.Described() {
		b.WriteString("d")
	}
	if row.Image().State() == image.Replaced {
		b.WriteString("i")
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func producerName(h model.Header) string {
	for _, p := range h.Producers {
		if p.ID == h.Producer {
			return p.Name
		}
	}
	return h.Producer
}
