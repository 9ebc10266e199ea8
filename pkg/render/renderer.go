package render

import (
	"context"

	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

// Form is the state a renderer reflects: the delivery header and its rows.
type Form struct {
	Header model.Header
	Rows   *rows.Store
}

// Renderer turns a Form into a byte representation (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
