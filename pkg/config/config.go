// Package config loads the settings of the product form: editor assets,
// swap strategy, blank rows, locale, theme and hidden inputs. Files may be
// JSON, YAML or TOML; keys absent from a file keep their defaults.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-lineitems/pkg/editor"
)

// DefaultBlankRows is the number of empty rows appended after loading.
const DefaultBlankRows = 3

// Editor configures the description editors.
type Editor struct {
	// Name selects a factory from the editor registry ("rich", "plain").
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Plugins    []string `json:"plugins" yaml:"plugins" toml:"plugins"`
	ContentCSS string   `json:"content_css" yaml:"content_css" toml:"content_css"`
	Language   string   `json:"language" yaml:"language" toml:"language"`
}

// Theme selects a go-theme manifest and variant for the HTML renderer.
type Theme struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Variant string `json:"variant" yaml:"variant" toml:"variant"`
}

// Config is the full settings document.
type Config struct {
	BlankRows    int               `json:"blank_rows" yaml:"blank_rows" toml:"blank_rows"`
	Strategy     string            `json:"strategy" yaml:"strategy" toml:"strategy"`
	Editor       Editor            `json:"editor" yaml:"editor" toml:"editor"`
	Locale       string            `json:"locale" yaml:"locale" toml:"locale"`
	Theme        Theme             `json:"theme" yaml:"theme" toml:"theme"`
	HiddenFields map[string]string `json:"hidden_fields" yaml:"hidden_fields" toml:"hidden_fields"`
	HTTPTimeout  string            `json:"http_timeout" yaml:"http_timeout" toml:"http_timeout"`
	Action       string            `json:"action" yaml:"action" toml:"action"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	ed := editor.DefaultConfig()
	return Config{
		BlankRows: DefaultBlankRows,
		Strategy:  string(editor.StrategyFlagSwap),
		Editor: Editor{
			Name:       editor.EditorRich,
			Plugins:    ed.Plugins,
			ContentCSS: ed.ContentCSS,
			Language:   ed.Language,
		},
		Locale:      "fr",
		HTTPTimeout: "10s",
	}
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.BlankRows < 0 {
		return fmt.Errorf("config: blank_rows must not be negative, got %d", c.BlankRows)
	}
	if _, err := editor.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// SwapStrategy returns the parsed swap strategy.
func (c Config) SwapStrategy() editor.Strategy {
	strategy, err := editor.ParseStrategy(c.Strategy)
	if err != nil {
		return editor.StrategyFlagSwap
	}
	return strategy
}

// EditorConfig converts the editor section for editor factories.
func (c Config) EditorConfig() editor.Config {
	return editor.Config{
		Plugins:    append([]string(nil), c.Editor.Plugins...),
		ContentCSS: c.Editor.ContentCSS,
		Language:   c.Editor.Language,
	}
}

// Timeout parses HTTPTimeout. An empty value means no timeout.
func (c Config) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.HTTPTimeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: http_timeout: %w", err)
	}
	return d, nil
}

// Load reads the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads name from fsys.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes data on top of Default. The extension of source picks the
// format; ".json", ".yaml" and ".yml" files are tried as JSON then YAML, and
// unknown extensions fall back to TOML last.
func Parse(data []byte, source string) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	cfg, err := decode(data, source)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w (file %s)", err, source)
	}
	return cfg, nil
}

func decode(data []byte, source string) (Config, error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".toml":
		cfg := Default()
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", source, err)
		}
		return cfg, nil
	case ".json", ".yaml", ".yml":
		if cfg, ok := decodeJSONOrYAML(data); ok {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
	default:
		if cfg, ok := decodeJSONOrYAML(data); ok {
			return cfg, nil
		}
		cfg := Default()
		if _, err := toml.Decode(string(data), &cfg); err == nil {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: parse %s: invalid JSON, YAML or TOML", source)
	}
}

func decodeJSONOrYAML(data []byte) (Config, bool) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg, true
	}
	cfg = Default()
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		return cfg, true
	}
	return Config{}, false
}
