// Package loader fetches the delivery document a product form opens with.
// Documents come from a file, an fs.FS entry or the product endpoint over
// HTTP, are checked against the embedded OpenAPI "Delivery" schema and then
// decoded into model.Delivery.
package loader

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-lineitems/pkg/model"
)

//go:embed delivery.openapi.yaml
var deliverySpec []byte

// DefaultTimeout caps remote fetches when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Options configures a Loader.
type Options struct {
	FileSystem fs.FS
	HTTPClient *http.Client
	// AllowHTTP enables URL sources with a default client when HTTPClient is
	// nil.
	AllowHTTP bool
	Timeout   time.Duration
	// SkipSchema disables the OpenAPI check; decoding still applies.
	SkipSchema bool
}

// Option mutates Options.
type Option func(*Options)

// WithFileSystem serves SourceKindFS sources from files.
func WithFileSystem(files fs.FS) Option {
	return func(o *Options) { o.FileSystem = files }
}

// WithHTTPClient injects the client used for URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) { o.HTTPClient = client }
}

// WithHTTP enables URL sources with a default client and timeout.
func WithHTTP(timeout time.Duration) Option {
	return func(o *Options) {
		o.AllowHTTP = true
		o.Timeout = timeout
	}
}

// WithoutSchemaValidation skips the OpenAPI document check.
func WithoutSchemaValidation() Option {
	return func(o *Options) { o.SkipSchema = true }
}

// Loader implements document loading by delegating to file, fs.FS or HTTP
// strategies.
type Loader struct {
	fs         fs.FS
	http       *http.Client
	timeout    time.Duration
	skipSchema bool
}

// New builds a Loader. URL sources are disabled unless an HTTP client or
// WithHTTP is supplied.
func New(options ...Option) *Loader {
	var opts Options
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	timeout := opts.Timeout
	var client *http.Client
	switch {
	case opts.HTTPClient != nil:
		clone := *opts.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case opts.AllowHTTP:
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:         opts.FileSystem,
		http:       client,
		timeout:    timeout,
		skipSchema: opts.SkipSchema,
	}
}

// Fetch returns the raw document bytes.
func (l *Loader) Fetch(ctx context.Context, src Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if l.http == nil {
			return nil, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("loader: fetch %s: %w", src.Location(), err)
	}
	return data, nil
}

// Load fetches, checks and decodes the delivery document.
func (l *Loader) Load(ctx context.Context, src Source) (model.Delivery, error) {
	data, err := l.Fetch(ctx, src)
	if err != nil {
		return model.Delivery{}, err
	}
	if !l.skipSchema {
		if err := Validate(ctx, data); err != nil {
			return model.Delivery{}, err
		}
	}
	return Decode(data)
}

// Decode turns document bytes into a Delivery without the schema check.
func Decode(data []byte) (model.Delivery, error) {
	var dv model.Delivery
	if err := json.Unmarshal(data, &dv); err != nil {
		return model.Delivery{}, fmt.Errorf("loader: decode: %w", err)
	}
	return dv, nil
}

// ErrSchema wraps documents that do not match the Delivery schema.
var ErrSchema = errors.New("loader: document does not match the Delivery schema")

var (
	schemaOnce sync.Once
	schemaRef  *openapi3.Schema
	schemaErr  error
)

func deliverySchema(ctx context.Context) (*openapi3.Schema, error) {
	schemaOnce.Do(func() {
		loader := &openapi3.Loader{Context: ctx}
		doc, err := loader.LoadFromData(deliverySpec)
		if err != nil {
			schemaErr = fmt.Errorf("loader: parse embedded schema: %w", err)
			return
		}
		ref := doc.Components.Schemas["Delivery"]
		if ref == nil || ref.Value == nil {
			schemaErr = errors.New("loader: embedded schema has no Delivery component")
			return
		}
		schemaRef = ref.Value
	})
	return schemaRef, schemaErr
}

// Validate checks raw JSON against the Delivery schema.
func Validate(ctx context.Context, data []byte) error {
	schema, err := deliverySchema(ctx)
	if err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("loader: decode: %w", err)
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}
