package render

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

// HiddenField is an extra hidden input posted with the form, typically the
// CSRF token of the hosting page.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds the hidden field carrying token. The input name depends on
// the backend ("csrfmiddlewaretoken", "_csrf", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	result := make([]HiddenField, 0, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		result = append(result, HiddenField{Name: key, Value: value})
	}
	if len(result) == 0 {
		return nil
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// FormValue is one posted name/value pair.
type FormValue struct {
	Name  string
	Value string
}

// FilePart is one posted file. The upload is streamed, never buffered by the
// encoder.
type FilePart struct {
	Name   string
	Upload *image.Upload
}

// Submission is what the browser would post for the current form state, in
// document order.
type Submission struct {
	Fields []FormValue
	Files  []FilePart
}

// Values returns the fields as url.Values.
func (s *Submission) Values() url.Values {
	out := make(url.Values, len(s.Fields))
	for _, field := range s.Fields {
		out.Add(field.Name, field.Value)
	}
	return out
}

// Get returns the first value posted under name.
func (s *Submission) Get(name string) (string, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

func (s *Submission) add(name, value string) {
	s.Fields = append(s.Fields, FormValue{Name: name, Value: value})
}

func (s *Submission) checkbox(name string, checked bool) {
	if checked {
		s.add(name, name)
	}
}

// EncodeOptions carries the values the core does not own.
type EncodeOptions struct {
	ThenLeave string
	Hidden    map[string]string
}

// Encode produces the submission for header and store. It mirrors browser
// form semantics: unchecked checkboxes and disabled inputs are absent, so a
// deleted row only posts its hidden inputs and its deleted checkbox.
func Encode(header model.Header, store *rows.Store, opts EncodeOptions) *Submission {
	sub := &Submission{}
	for _, field := range SortedHiddenFields(opts.Hidden) {
		sub.add(field.Name, field.Value)
	}

	sub.add(DeliveryID, header.ID)
	sub.add(DeliveryState, header.State)
	sub.add(DeliveryName, header.Name)
	sub.add(FreezeDate, header.FreezeDate)
	sub.add(DistributionDate, header.DistributionDate)
	sub.add(Producer, header.Producer)
	sub.add(DeliveryDescription, header.Description)

	if store != nil {
		for _, row := range store.Rows() {
			encodeRow(sub, row)
		}
	}

	sub.add(ThenLeave, opts.ThenLeave)
	return sub
}

func encodeRow(sub *Submission, row *rows.Row) {
	slot := row.Slot()
	content := row.Content()
	img := row.Image()

	sub.add(FieldKey(slot, model.FieldID), content.Identity)
	sub.add(SlotKey(slot, SuffixPlace), strconv.Itoa(int(slot)))
	modified := "0"
	if img.Modified() {
		modified = "1"
	}
	sub.add(SlotKey(slot, SuffixImageModified), modified)

	if !content.Deleted {
		for _, field := range model.ProductFields {
			sub.add(FieldKey(slot, field), content.Fields.Get(field))
		}
	}
	sub.checkbox(SlotKey(slot, SuffixDeleted), content.Deleted)
	sub.checkbox(SlotKey(slot, SuffixDescribed), content.Described)
	if content.Described && !content.Deleted {
		sub.add(SlotKey(slot, SuffixDescription), content.Description)
	}
	if img.Modified() && !content.Deleted && img.Upload() != nil {
		sub.Files = append(sub.Files, FilePart{Name: SlotKey(slot, SuffixImageUpload), Upload: img.Upload()})
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// WriteMultipart writes the submission as multipart/form-data and returns
// the content type to send with it. Uploads are consumed.
func (s *Submission) WriteMultipart(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, field := range s.Fields {
		if err := mw.WriteField(field.Name, field.Value); err != nil {
			return "", fmt.Errorf("render: write field %s: %w", field.Name, err)
		}
	}
	for _, file := range s.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(file.Name), quoteEscaper.Replace(file.Upload.Filename())))
		contentType := file.Upload.ContentType()
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return "", fmt.Errorf("render: create part %s: %w", file.Name, err)
		}
		if _, err := file.Upload.WriteTo(part); err != nil {
			return "", fmt.Errorf("render: stream %s: %w", file.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("render: close multipart: %w", err)
	}
	return mw.FormDataContentType(), nil
}

// Multipart renders the submission into memory. Handy for tests and for
// transports that need a Content-Length.
func (s *Submission) Multipart() ([]byte, string, error) {
	var buf bytes.Buffer
	contentType, err := s.WriteMultipart(&buf)
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), contentType, nil
}
