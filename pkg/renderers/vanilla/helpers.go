package vanilla

import (
	"strings"

	"github.com/goliatone/go-lineitems/pkg/render"
)

// inputID is the element id of an input; labels point at it.
func inputID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "li-" + trimmed
}

// classList joins non-empty classes. Caller classes may not reuse the
// reserved "lineitems-" prefix.
func classList(base ChromeClass, extra ...string) string {
	keep := []string{string(base)}
	for _, value := range extra {
		for _, token := range strings.Fields(value) {
			if strings.HasPrefix(token, "lineitems-") && token != string(base) {
				continue
			}
			keep = append(keep, token)
		}
	}
	return strings.Join(keep, " ")
}

func fieldErrors(options render.RenderOptions, name string) []string {
	if len(options.Errors) == 0 {
		return nil
	}
	return options.Errors[name]
}
