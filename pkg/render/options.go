package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form state.
type RenderOptions struct {
	// Action is the URL the form posts to. Empty keeps the current URL.
	Action string
	// Method defaults to POST.
	Method string
	// Hidden carries extra inputs such as CSRF tokens.
	Hidden map[string]string
	// Errors surfaces server-side feedback keyed by field. These messages are
	// rendered next to the form's own validation errors.
	Errors map[contact.Field][]string
	// FormErrors are messages that do not belong to a single field.
	FormErrors []string
	// LiveValidationURL enables per-keystroke validation against the given
	// endpoint when the renderer supports it.
	LiveValidationURL string
	// Theme carries resolved theme tokens and CSS variables.
	Theme *theme.RendererConfig
}
