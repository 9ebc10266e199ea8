package render

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

// ErrorMapping splits a server error payload into input-level and
// form-level messages. Input-level messages are keyed by input name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps error keys onto the form's input names. It accepts
// input names as posted ("r3-price", "dv-name"), delivery properties
// ("name", "/body/description") and JSON paths into the products array with
// 0-based indexes ("products[2].price", "/products/2/price"). Keys that do not
// resolve to an existing input are kept as form-level messages.
func MapErrorPayload(rowCount int, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name, ok := mapErrorPath(rawPath, rowCount)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}
	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

var slotKeyPattern = regexp.MustCompile(`^r(\d+)-([a-z_-]+)$`)

var deliveryProperties = map[string]string{
	"id":                DeliveryID,
	"name":              DeliveryName,
	"state":             DeliveryState,
	"description":       DeliveryDescription,
	"freeze-date":       FreezeDate,
	"freezedate":        FreezeDate,
	"distribution-date": DistributionDate,
	"distributiondate":  DistributionDate,
	"producer":          Producer,
}

func mapErrorPath(raw string, rowCount int) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}

	if m := slotKeyPattern.FindStringSubmatch(trimmed); m != nil {
		slot, _ := strconv.Atoi(m[1])
		if slot < 1 || slot > rowCount || !knownSlotSuffix(m[2]) {
			return "", false
		}
		return trimmed, true
	}
	for _, name := range deliveryProperties {
		if trimmed == name {
			return name, true
		}
	}

	segments := dropWrapperSegments(parsePathSegments(trimmed))
	switch {
	case len(segments) == 1:
		name, ok := deliveryProperties[strings.ToLower(segments[0])]
		return name, ok
	case len(segments) >= 3 && strings.EqualFold(segments[0], "products"):
		index, err := strconv.Atoi(segments[1])
		if err != nil || index < 0 || index >= rowCount {
			return "", false
		}
		suffix := segments[2]
		if !knownSlotSuffix(suffix) {
			return "", false
		}
		return SlotKey(rows.Slot(index+1), suffix), true
	default:
		return "", false
	}
}

func knownSlotSuffix(suffix string) bool {
	if field := model.Field(suffix); field == model.FieldID || field.Known() {
		return true
	}
	switch suffix {
	case SuffixPlace, SuffixDeleted, SuffixDescribed, SuffixDescription, SuffixImageModified, SuffixImageUpload:
		return true
	}
	return false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "delivery":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
