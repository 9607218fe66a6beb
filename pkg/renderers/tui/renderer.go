package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. It prompts for
// every field, re-asking until the field passes its rules, submits the form
// and serializes the submission.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	out          io.Writer
	maxAttempts  int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, pretty output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatPrettyText,
		out:          os.Stdout,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render runs the prompt session seeded with the view's values. A view that
// is already submitted is serialized without prompting.
func (r *Renderer) Render(ctx context.Context, view contact.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view.Submitted() {
		return r.serialize(view.Title, *view.Submission)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	prefill := contact.Values{}
	for _, field := range view.Fields {
		prefill, _ = prefill.With(field.Name, field.Value)
	}
	form := contact.NewForm(contact.WithTitle(view.Title), contact.WithInitialValues(prefill))

	if err := r.driver.Info(ctx, r.theme.InfoPrefix+form.Title()); err != nil {
		return nil, err
	}
	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	for _, spec := range contact.Fields() {
		if err := r.promptField(ctx, form, spec, opts.Errors[spec.Name]); err != nil {
			return nil, err
		}
	}

	submission, ok := form.Submit()
	if !ok {
		for _, message := range form.Errors().Messages() {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
		}
		return nil, ErrNotSubmitted
	}
	return r.serialize(form.Title(), submission)
}

func (r *Renderer) promptField(ctx context.Context, form *contact.Form, spec contact.FieldSpec, serverErrors []string) error {
	for _, message := range serverErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}

	help := ""
	if spec.Placeholder != "" {
		help = "e.g. " + spec.Placeholder
	}

	for attempt := 1; ; attempt++ {
		current := form.Values().Get(spec.Name)

		var (
			answer string
			err    error
		)
		if spec.Control == contact.ControlTextArea {
			answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: spec.Label, Default: current, Help: help})
		} else {
			answer, err = r.driver.Input(ctx, InputConfig{Message: spec.Label, Default: current, Help: help})
		}
		if err != nil {
			return err
		}

		if err := form.SetValue(spec.Name, answer); err != nil {
			return err
		}
		fe, invalid := form.Errors().Get(spec.Name)
		if !invalid {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+fe.Message); err != nil {
			return err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("tui: %s: %w", spec.Name, ErrNotSubmitted)
		}
	}
}

func (r *Renderer) serialize(title string, submission contact.Submission) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatJSON:
		payload, err := json.Marshal(submission)
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return payload, nil
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, entry := range submission.Entries() {
			values.Set(string(entry.Field), entry.Value)
		}
		return []byte(values.Encode()), nil
	default:
		return []byte(prettyText(title, submission)), nil
	}
}

// prettyText mirrors the HTML submitted view: one row per value and the
// message repeated as a quoted preview.
func prettyText(title string, submission contact.Submission) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, entry := range submission.Entries() {
		fmt.Fprintf(&b, "%s: %s\n", entry.Label, entry.Value)
	}
	if submission.HasMessage() {
		for _, line := range strings.Split(submission.Message, "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
	}
	return b.String()
}
