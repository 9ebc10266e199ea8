package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Producer is one selectable producer offered by the delivery document.
type Producer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// NoProducer is the producer id used when the delivery is not bound to any
// producer.
const NoProducer = "0"

// Delivery is the document served by the product endpoint when the form
// opens. Scalar ids may arrive as JSON numbers or strings; both decode to
// their textual form.
type Delivery struct {
	ID               string          `json:"id"`
	State            string          `json:"state"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	FreezeDate       string          `json:"freeze-date,omitempty"`
	DistributionDate string          `json:"distribution-date,omitempty"`
	Producer         string          `json:"producer"`
	Producers        []Producer      `json:"producers"`
	Products         []ProductRecord `json:"products"`
}

// UnmarshalJSON accepts both the dashed (`freeze-date`) and camel-case
// (`freezeDate`) spellings of the optional dates.
func (d *Delivery) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode delivery: %w", err)
	}

	var out Delivery
	var err error
	pick := func(dst *string, keys ...string) {
		if err != nil {
			return
		}
		for _, key := range keys {
			value, ok := raw[key]
			if !ok {
				continue
			}
			*dst, err = scalarString(value)
			if err != nil {
				err = fmt.Errorf("model: delivery field %q: %w", key, err)
			}
			return
		}
	}
	pick(&out.ID, "id")
	pick(&out.State, "state")
	pick(&out.Name, "name")
	pick(&out.Description, "description")
	pick(&out.FreezeDate, "freeze-date", "freezeDate")
	pick(&out.DistributionDate, "distribution-date", "distributionDate")
	pick(&out.Producer, "producer")
	if err != nil {
		return err
	}

	if value, ok := raw["producers"]; ok && !isNull(value) {
		var producers []struct {
			ID       json.RawMessage `json:"id"`
			Name     string          `json:"name"`
			Selected bool            `json:"selected"`
		}
		if err := json.Unmarshal(value, &producers); err != nil {
			return fmt.Errorf("model: decode producers: %w", err)
		}
		for _, p := range producers {
			id, err := scalarString(p.ID)
			if err != nil {
				return fmt.Errorf("model: producer id: %w", err)
			}
			out.Producers = append(out.Producers, Producer{ID: id, Name: p.Name, Selected: p.Selected})
		}
	}

	if value, ok := raw["products"]; ok && !isNull(value) {
		if err := json.Unmarshal(value, &out.Products); err != nil {
			return fmt.Errorf("model: decode products: %w", err)
		}
	}

	*d = out
	return nil
}

// ProductRecord is one product as served by the endpoint. Keys outside the
// row schema are ignored, the same way a form with no matching input would
// drop them.
type ProductRecord struct {
	ID          string
	Fields      Fields
	Description string
	Image       string
}

// UnmarshalJSON normalises numbers, strings and nulls into field strings.
func (p *ProductRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: decode product: %w", err)
	}

	out := ProductRecord{Fields: make(Fields)}
	for key, value := range raw {
		text, err := scalarString(value)
		if err != nil {
			return fmt.Errorf("model: product field %q: %w", key, err)
		}
		switch key {
		case string(FieldID):
			out.ID = text
		case "description":
			out.Description = text
		case "image":
			out.Image = text
		default:
			if field := Field(key); field.Known() {
				out.Fields[field] = text
			}
		}
	}
	*p = out
	return nil
}

// MarshalJSON writes the record back in the endpoint's flat layout.
func (p ProductRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(p.Fields)+3)
	for key, value := range p.Fields {
		out[string(key)] = value
	}
	if p.ID != "" {
		out[string(FieldID)] = p.ID
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.Image != "" {
		out["image"] = p.Image
	}
	return json.Marshal(out)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func scalarString(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || isNull(trimmed) {
		return "", nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return "", err
	}

	switch typed := value.(type) {
	case string:
		return typed, nil
	case json.Number:
		return typed.String(), nil
	case bool:
		if typed {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("expected a scalar, got %s", strings.TrimSpace(string(trimmed)))
	}
}

// Header is the delivery-level part of the form edited next to the rows.
type Header struct {
	ID               string
	State            string
	Name             string
	Description      string
	FreezeDate       string
	DistributionDate string
	Producer         string
	Producers        []Producer
}

// HeaderFrom copies the delivery fields into a form header. A freshly created
// delivery keeps an empty name so the user has to choose one explicitly.
func HeaderFrom(d Delivery, isNew bool) Header {
	h := Header{
		ID:               d.ID,
		State:            d.State,
		Description:      d.Description,
		FreezeDate:       d.FreezeDate,
		DistributionDate: d.DistributionDate,
		Producer:         d.Producer,
		Producers:        append([]Producer(nil), d.Producers...),
	}
	if !isNew {
		h.Name = d.Name
	}
	return h
}

// HasProducer reports whether a concrete producer is selected.
func (h Header) HasProducer() bool {
	p := strings.TrimSpace(h.Producer)
	return p != "" && p != NoProducer
}
