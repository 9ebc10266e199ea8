package editor

import (
	"errors"
	"fmt"
)

// Strategy selects how a swap moves editor state between two slots.
type Strategy string

const (
	// StrategyFlagSwap loads the destination editor when needed, exchanges the
	// contents and then exchanges the loaded flags. Editors are never
	// destroyed.
	StrategyFlagSwap Strategy = "flag-swap"
	// StrategyDestroyRecreate destroys every loaded editor, exchanges the
	// buffered text and re-creates editors where the loaded flag landed.
	StrategyDestroyRecreate Strategy = "destroy-recreate"
)

// ParseStrategy maps a configuration value to a Strategy. The empty string
// selects StrategyFlagSwap.
func ParseStrategy(raw string) (Strategy, error) {
	switch Strategy(raw) {
	case "", StrategyFlagSwap:
		return StrategyFlagSwap, nil
	case StrategyDestroyRecreate:
		return StrategyDestroyRecreate, nil
	default:
		return "", fmt.Errorf("editor: unknown swap strategy %q", raw)
	}
}

// Handle is the per-slot editor state machine: Unloaded -> Loaded, back to
// Unloaded only through Destroy (or when a swap moves the loaded flag away).
type Handle struct {
	target  string
	factory Factory
	config  Config

	editor Editor
	loaded bool
	text   string
	inits  int
}

// NewHandle prepares an unloaded handle for the element identified by target.
func NewHandle(target string, factory Factory, cfg Config) *Handle {
	if factory == nil {
		factory = NewMemory
	}
	return &Handle{target: target, factory: factory, config: cfg}
}

// Target returns the element the editor attaches to.
func (h *Handle) Target() string {
	return h.target
}

// Loaded reports whether the slot currently holds a live editor.
func (h *Handle) Loaded() bool {
	return h.loaded
}

// Inits counts editor initialisations for this slot.
func (h *Handle) Inits() int {
	return h.inits
}

// Load attaches an editor if the slot has none, then seeds it with the
// buffered text. Loading an already loaded handle is a no-op; a retained
// instance is reused rather than initialised twice.
func (h *Handle) Load() error {
	if h.loaded {
		return nil
	}
	if h.editor == nil {
		ed := h.factory(h.config)
		if ed == nil {
			return errors.New("editor: factory returned nil")
		}
		if err := ed.Init(h.target); err != nil {
			return fmt.Errorf("editor: init %s: %w", h.target, err)
		}
		h.inits++
		h.editor = ed
	}
	h.editor.SetContent(h.text)
	h.loaded = true
	return nil
}

// Content returns the description held by the slot.
func (h *Handle) Content() string {
	if h.loaded {
		return h.editor.Content()
	}
	return h.text
}

// SetContent replaces the slot's description.
func (h *Handle) SetContent(content string) {
	h.text = content
	if h.loaded {
		h.editor.SetContent(content)
	}
}

// Destroy tears the editor down and returns the slot to Unloaded. The
// description survives in the buffer.
func (h *Handle) Destroy() {
	if h.editor == nil {
		h.loaded = false
		return
	}
	if h.loaded {
		h.text = h.editor.Content()
	}
	h.editor.Destroy()
	h.editor = nil
	h.loaded = false
}

func (h *Handle) unload() {
	if !h.loaded {
		return
	}
	h.text = h.editor.Content()
	h.loaded = false
}

func (h *Handle) setLoaded(loaded bool) error {
	if loaded {
		return h.Load()
	}
	h.unload()
	return nil
}

// Exchange moves description content and loaded state between two slots.
// Afterwards a holds what b held (content and loaded flag) and vice versa.
func Exchange(a, b *Handle, strategy Strategy) error {
	if a == nil || b == nil {
		return errors.New("editor: exchange needs two handles")
	}
	if strategy == StrategyDestroyRecreate {
		return exchangeRecreate(a, b)
	}
	return exchangeFlags(a, b)
}

func exchangeFlags(a, b *Handle) error {
	loadedA, loadedB := a.loaded, b.loaded
	contentA, contentB := a.Content(), b.Content()

	// Content needs somewhere to land before it can be transferred.
	if loadedA && !loadedB {
		if err := b.Load(); err != nil {
			return err
		}
	}
	if loadedB && !loadedA {
		if err := a.Load(); err != nil {
			return err
		}
	}

	a.SetContent(contentB)
	b.SetContent(contentA)

	if err := a.setLoaded(loadedB); err != nil {
		return err
	}
	if err := b.setLoaded(loadedA); err != nil {
		return err
	}

	// A side that ends unloaded keeps the buffered text verbatim, not what
	// the borrowed editor normalised it into.
	if !loadedB {
		a.text = contentB
	}
	if !loadedA {
		b.text = contentA
	}
	return nil
}

func exchangeRecreate(a, b *Handle) error {
	loadedA, loadedB := a.loaded, b.loaded

	a.Destroy()
	b.Destroy()
	a.text, b.text = b.text, a.text

	if loadedB {
		if err := a.Load(); err != nil {
			return err
		}
	}
	if loadedA {
		if err := b.Load(); err != nil {
			return err
		}
	}
	return nil
}
