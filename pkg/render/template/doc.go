// Package template defines the template engine seam used by the HTML
// renderer. Engines live in subpackages.
package template
