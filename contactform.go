// Package contactform is the top-level entry point: it re-exports the form
// core and offers one-call helpers for rendering the contact form.
package contactform

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

// Form aliases contact.Form for callers that only import the root package.
type Form = contact.Form

// Submission aliases contact.Submission.
type Submission = contact.Submission

// RenderOptions describes per-request overrides that renderers can use to
// surface server-side errors, hidden inputs and theming.
type RenderOptions = render.RenderOptions

// NewForm returns a form in the editing state.
func NewForm(options ...contact.Option) *Form {
	return contact.NewForm(options...)
}

// NewRegistry returns a registry holding the HTML renderer (the default) and
// the terminal renderer.
func NewRegistry(vanillaOptions []vanilla.Option, tuiOptions ...tui.Option) (*render.Registry, error) {
	html, err := vanilla.New(vanillaOptions...)
	if err != nil {
		return nil, fmt.Errorf("contactform: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(tui.New(tuiOptions...)); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML renders form as a standalone HTML page.
func RenderHTML(ctx context.Context, form *Form, opts RenderOptions, options ...vanilla.Option) ([]byte, error) {
	if form == nil {
		form = contact.NewForm()
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("contactform: %w", err)
	}
	return renderer.Render(ctx, form.View(), opts)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or override them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(contactform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
