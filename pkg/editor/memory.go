package editor

import "errors"

// ErrAlreadyInitialised is returned when Init runs twice on one editor.
var ErrAlreadyInitialised = errors.New("editor: already initialised")

// Memory is a plain-text editor kept entirely in memory. It backs terminal
// sessions and tests.
type Memory struct {
	target    string
	content   string
	attached  bool
	destroyed bool
}

// NewMemory satisfies Factory.
func NewMemory(Config) Editor {
	return &Memory{}
}

func (m *Memory) Init(target string) error {
	if m.attached {
		return ErrAlreadyInitialised
	}
	m.target = target
	m.attached = true
	return nil
}

func (m *Memory) Content() string {
	return m.content
}

func (m *Memory) SetContent(content string) {
	m.content = content
}

func (m *Memory) Destroy() {
	m.destroyed = true
	m.attached = false
}

// Target returns the element the editor was attached to.
func (m *Memory) Target() string {
	return m.target
}

// Destroyed reports whether Destroy was called.
func (m *Memory) Destroyed() bool {
	return m.destroyed
}
