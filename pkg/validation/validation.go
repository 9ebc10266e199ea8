// Package validation decides whether a delivery form may be submitted.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/render"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

// Kind enumerates the reasons a submission is refused.
type Kind int

const (
	MissingDeliveryName Kind = iota + 1
	DuplicateProductName
	InvalidPrice
)

func (k Kind) String() string {
	switch k {
	case MissingDeliveryName:
		return "missing_delivery_name"
	case DuplicateProductName:
		return "duplicate_product_name"
	case InvalidPrice:
		return "invalid_price"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrMissingDeliveryName  = errors.New("validation: delivery has no name")
	ErrDuplicateProductName = errors.New("validation: duplicate product name")
	ErrInvalidPrice         = errors.New("validation: invalid price")
)

// Error is a user-correctable reason to block submission.
type Error struct {
	Kind Kind
	// Name is the offending product name; empty for MissingDeliveryName.
	Name string
	// Slot is the row that triggered the failure; 0 for delivery-level
	// failures.
	Slot rows.Slot
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingDeliveryName:
		return ErrMissingDeliveryName.Error()
	case DuplicateProductName:
		return fmt.Sprintf("%s %q (row %d)", ErrDuplicateProductName, e.Name, e.Slot)
	case InvalidPrice:
		return fmt.Sprintf("%s for %q (row %d)", ErrInvalidPrice, e.Name, e.Slot)
	default:
		return "validation: " + e.Kind.String()
	}
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case MissingDeliveryName:
		return target == ErrMissingDeliveryName
	case DuplicateProductName:
		return target == ErrDuplicateProductName
	case InvalidPrice:
		return target == ErrInvalidPrice
	}
	return false
}

// Issue locates an error on the form.
type Issue struct {
	Kind    string `json:"kind"`
	Field   string `json:"field"`
	Product string `json:"product,omitempty"`
	Message string `json:"message"`
}

// Field returns the input the user has to correct.
func (e *Error) Field() string {
	switch e.Kind {
	case MissingDeliveryName:
		return render.DeliveryName
	case DuplicateProductName:
		return render.FieldKey(e.Slot, model.FieldName)
	case InvalidPrice:
		return render.FieldKey(e.Slot, model.FieldPrice)
	}
	return ""
}

// Message renders the user-facing text in locale.
func (e *Error) Message(locale string) string {
	return e.MessageWith(render.DefaultCatalog(), locale)
}

// MessageWith renders the user-facing text through t.
func (e *Error) MessageWith(t render.Translator, locale string) string {
	switch e.Kind {
	case MissingDeliveryName:
		return render.Translate(t, nil, locale, "validation.missing_delivery_name", e.Error())
	case DuplicateProductName:
		return render.Translate(t, nil, locale, "validation.duplicate_product", e.Error(), e.Name)
	case InvalidPrice:
		return render.Translate(t, nil, locale, "validation.invalid_price", e.Error(), e.Name)
	}
	return e.Error()
}

// Issue converts the error for reports and renderers.
func (e *Error) Issue(locale string) Issue {
	return Issue{
		Kind:    e.Kind.String(),
		Field:   e.Field(),
		Product: e.Name,
		Message: e.Message(locale),
	}
}

// CanSubmit checks the form and returns the first failure, or nil:
//
//  1. the delivery name must not be blank;
//  2. rows are scanned in slot order, skipping deleted rows and rows with a
//     blank name; a row fails if an earlier non-deleted row has the same
//     trimmed name;
//  3. then its price must parse as a number greater than zero.
func CanSubmit(header model.Header, store *rows.Store) error {
	if issues := check(header, store, true); len(issues) > 0 {
		return issues[0]
	}
	return nil
}

// Collect runs the same checks without stopping at the first failure.
func Collect(header model.Header, store *rows.Store) []*Error {
	return check(header, store, false)
}

func check(header model.Header, store *rows.Store, firstOnly bool) []*Error {
	var out []*Error
	if strings.TrimSpace(header.Name) == "" {
		out = append(out, &Error{Kind: MissingDeliveryName})
		if firstOnly {
			return out
		}
	}
	if store == nil {
		return out
	}

	all := store.Rows()
	for i, row := range all {
		if row.Deleted() {
			continue
		}
		name := strings.TrimSpace(row.Field(model.FieldName))
		if name == "" {
			continue
		}
		if duplicateBefore(all[:i], name) {
			out = append(out, &Error{Kind: DuplicateProductName, Name: name, Slot: row.Slot()})
			if firstOnly {
				return out
			}
			continue
		}
		if !ValidPrice(row.Field(model.FieldPrice)) {
			out = append(out, &Error{Kind: InvalidPrice, Name: name, Slot: row.Slot()})
			if firstOnly {
				return out
			}
		}
	}
	return out
}

func duplicateBefore(earlier []*rows.Row, name string) bool {
	for _, other := range earlier {
		if other.Deleted() {
			continue
		}
		if strings.TrimSpace(other.Field(model.FieldName)) == name {
			return true
		}
	}
	return false
}

// ValidPrice reports whether raw reads as a finite decimal number strictly
// greater than zero. Surrounding whitespace is ignored; an empty value reads
// as zero. Hexadecimal floats, infinities and values out of float64 range
// are rejected.
func ValidPrice(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.ContainsAny(trimmed, "xX") {
		return false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value > 0
}
