// Package editor implements the lazily loaded rich-text editor bound to each
// row's description. The editor component itself is opaque: it is built by a
// Factory, attached to a target element, and then only read and written
// through Content/SetContent. A Handle tracks whether its slot's editor is
// loaded and buffers the description text while it is not.
package editor

import "strings"

// Editor is the contract of a heavyweight description editor.
type Editor interface {
	// Init attaches the editor to the element identified by target.
	Init(target string) error
	Content() string
	SetContent(content string)
	Destroy()
}

// Config carries the opaque language/asset settings handed to editors when
// they load.
type Config struct {
	Plugins    []string `json:"plugins" yaml:"plugins" toml:"plugins"`
	ContentCSS string   `json:"content_css" yaml:"content_css" toml:"content_css"`
	Language   string   `json:"language" yaml:"language" toml:"language"`
}

// DefaultConfig mirrors the settings the product form has always used.
func DefaultConfig() Config {
	return Config{
		Plugins:    []string{"link"},
		ContentCSS: "/static/editor.css",
		Language:   "fr_FR",
	}
}

// HasPlugin reports whether name is enabled.
func (c Config) HasPlugin(name string) bool {
	for _, p := range c.Plugins {
		if strings.EqualFold(strings.TrimSpace(p), name) {
			return true
		}
	}
	return false
}

// Factory builds an unattached editor.
type Factory func(cfg Config) Editor
