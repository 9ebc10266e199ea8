package lineitems

import (
	"io/fs"

	"github.com/goliatone/go-lineitems/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet the HTML renderer links to.
//
// Typical mount:
//
//	mux.Handle("/static/lineitems/",
//	  http.StripPrefix("/static/lineitems/",
//	    http.FileServerFS(lineitems.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
