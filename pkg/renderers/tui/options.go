package tui

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/render"
)

// Theme captures the prefixes printed in front of session messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// ImageOpener turns a path typed by the user into an upload.
type ImageOpener func(path string) (*image.Upload, error)

// SaveFunc receives each accepted submission. Returning an error keeps the
// session open and shows the error.
type SaveFunc func(sub *render.Submission, leave bool) error

// Option configures the TUI renderer and its sessions.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLocale selects labels and validation messages.
func WithLocale(locale string) Option {
	return func(r *Renderer) {
		r.options.Locale = strings.TrimSpace(locale)
	}
}

// WithTranslator overrides the built-in catalog.
func WithTranslator(t render.Translator) Option {
	return func(r *Renderer) {
		r.options.Translator = t
	}
}

// WithImageOpener replaces how image paths become uploads.
func WithImageOpener(open ImageOpener) Option {
	return func(r *Renderer) {
		r.openImage = open
	}
}

// WithSaveFunc is called on every successful save.
func WithSaveFunc(fn SaveFunc) Option {
	return func(r *Renderer) {
		r.onSave = fn
	}
}

// OpenImageFile reads the picture lazily from disk when the submission is
// written. The content type follows the file extension.
func OpenImageFile(path string) (*image.Upload, error) {
	path = strings.TrimSpace(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("tui: image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("tui: image: %s is a directory", path)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	return image.NewUpload(filepath.Base(path), contentType, func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}
