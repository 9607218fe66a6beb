package render

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// Renderer turns a contact form view into a byte representation (HTML, JSON,
// terminal transcript).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view contact.View, options RenderOptions) ([]byte, error)
}
