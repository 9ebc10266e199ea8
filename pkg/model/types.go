package model

import (
	"regexp"
	"strings"
)

// Field identifies one scalar input of a product row.
type Field string

const (
	FieldID                 Field = "id"
	FieldName               Field = "name"
	FieldPrice              Field = "price"
	FieldUnit               Field = "unit"
	FieldQuantityPerPackage Field = "quantity_per_package"
	FieldQuantityLimit      Field = "quantity_limit"
	FieldQuantum            Field = "quantum"
	FieldUnitWeight         Field = "unit_weight"
)

// ProductFields lists the editable product inputs in table order. The
// identity is kept apart because it is a hidden pass-through value.
var ProductFields = []Field{
	FieldName,
	FieldPrice,
	FieldUnit,
	FieldQuantityPerPackage,
	FieldQuantityLimit,
	FieldQuantum,
	FieldUnitWeight,
}

// Known reports whether f is one of the product inputs. The identity is not
// a product input.
func (f Field) Known() bool {
	for _, candidate := range ProductFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// Fields maps product inputs to their raw string values.
type Fields map[Field]string

// Get returns the value for name, or "" when unset.
func (f Fields) Get(name Field) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Content is the mobile payload of a slot. Swapping two slots exchanges their
// Content while the slots themselves stay put.
type Content struct {
	Identity    string
	Fields      Fields
	Deleted     bool
	Described   bool
	Description string
}

// Name returns the trimmed product name.
func (c Content) Name() string {
	return strings.TrimSpace(c.Fields.Get(FieldName))
}

// Blank reports whether the row carries no product data at all. Blank rows
// are inert placeholders appended for convenience.
func (c Content) Blank() bool {
	for _, name := range ProductFields {
		if strings.TrimSpace(c.Fields.Get(name)) != "" {
			return false
		}
	}
	return true
}

var leadingDigit = regexp.MustCompile(`^\d`)

// UnitMirror derives the unit label repeated around a row. Units that start
// with a digit ("5kg") read as a multiplier, so they get a "×" prefix.
func UnitMirror(unit string) string {
	if leadingDigit.MatchString(unit) {
		return "×" + unit
	}
	return unit
}
