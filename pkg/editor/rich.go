package editor

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy

	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// Rich is an HTML editor whose content is sanitised on every write, so that
// whatever the page submits is safe to render back.
type Rich struct {
	Memory
	links bool
}

// NewRich satisfies Factory. Links survive sanitising only when the "link"
// plugin is enabled.
func NewRich(cfg Config) Editor {
	return &Rich{links: cfg.HasPlugin("link")}
}

func (r *Rich) SetContent(content string) {
	r.Memory.SetContent(SanitizeHTML(content, r.links))
}

// SanitizeHTML cleans description markup. With links disabled anchors are
// unwrapped to their text.
func SanitizeHTML(raw string, links bool) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	policy := descriptionSanitizer()
	if !links {
		policy = plainSanitizer()
	}
	return strings.TrimSpace(policy.Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}

func plainSanitizer() *bluemonday.Policy {
	plainPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"p", "br", "strong", "b", "em", "i", "u", "s",
			"ul", "ol", "li", "blockquote", "h1", "h2", "h3", "h4",
		)
		plainPolicy = policy
	})
	return plainPolicy
}
