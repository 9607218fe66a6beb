package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	rendertemplate "github.com/goliatone/go-contactform/pkg/render/template"
	gotemplate "github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
)

const (
	pageTemplate     = "templates/page.tmpl"
	fragmentTemplate = "templates/contact.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	inlineStyles     bool
	fragment         bool
	sanitizer        *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide the same template names as TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet from the page head.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the bundled stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithFragment renders only the contact form markup, without the page
// document around it.
func WithFragment() Option {
	return func(cfg *config) {
		cfg.fragment = true
	}
}

// WithSanitizer replaces the policy applied to error messages before they are
// emitted as markup. Messages may come from the application (OnSubmit hooks,
// server-side errors), so the default keeps only emphasis and plain links.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// Renderer draws the contact form and its submitted view as HTML.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheet   string
	inlineStyles string
	fragment     bool
	sanitizer    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:  renderer,
		stylesheet: cfg.stylesheet,
		fragment:   cfg.fragment,
		sanitizer:  cfg.sanitizer,
	}
	if r.sanitizer == nil {
		r.sanitizer = MessagePolicy()
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view contact.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	name := pageTemplate
	if r.fragment {
		name = fragmentTemplate
	}
	result, err := r.templates.RenderTemplate(name, r.templateData(view, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) templateData(view contact.View, opts render.RenderOptions) map[string]any {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodPost
	}

	data := map[string]any{
		"title":               view.Title,
		"status":              string(view.Status),
		"submitted":           view.Submitted(),
		"action":              opts.Action,
		"method":              method,
		"live_validation_url": opts.LiveValidationURL,
		"stylesheet":          r.resolveStylesheet(opts.Theme),
		"inline_styles":       r.inlineStyles,
		"theme":               themeContext(opts.Theme),
		"form_errors":         r.sanitizeAll(render.MergeFormErrors(nil, opts.FormErrors...)),
		"hidden_fields":       hiddenFields(opts.Hidden),
		"fields":              r.fieldData(view, opts.Errors),
	}

	if view.Submitted() {
		entries := make([]map[string]any, 0, 4)
		for _, entry := range view.Submission.Entries() {
			entries = append(entries, map[string]any{
				"field": string(entry.Field),
				"label": entry.Label,
				"value": entry.Value,
			})
		}
		data["entries"] = entries
		if view.Submission.HasMessage() {
			data["message"] = view.Submission.Message
		}
	}
	return data
}

// MessagePolicy is the default policy for error messages: strong, em and
// links with http, https or mailto targets survive, everything else is
// stripped and text is escaped.
func MessagePolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("strong", "em")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// sanitizeAll returns messages as escaped markup the templates emit with the
// safe filter. Submitted values never pass through here; pongo2 autoescapes
// them so the snapshot is shown exactly as captured.
func (r *Renderer) sanitizeAll(messages []string) []string {
	if len(messages) == 0 {
		return messages
	}
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		out = append(out, r.sanitizer.Sanitize(message))
	}
	return out
}

func (r *Renderer) resolveStylesheet(cfg *theme.RendererConfig) string {
	if r.stylesheet == "" {
		return ""
	}
	if cfg != nil && cfg.AssetURL != nil {
		if resolved := cfg.AssetURL(r.stylesheet); resolved != "" {
			return resolved
		}
	}
	return r.stylesheet
}

func (r *Renderer) fieldData(view contact.View, extra map[contact.Field][]string) []map[string]any {
	out := make([]map[string]any, 0, len(view.Fields))
	for _, field := range view.Fields {
		var messages []string
		if field.Error != "" {
			messages = append(messages, field.Error)
		}
		messages = render.MergeFormErrors(messages, extra[field.Name]...)

		out = append(out, map[string]any{
			"name":        string(field.Name),
			"label":       field.Label,
			"placeholder": field.Placeholder,
			"control":     string(field.Control),
			"required":    field.Required,
			"value":       field.Value,
			"errors":      r.sanitizeAll(messages),
		})
	}
	return out
}

func hiddenFields(fields map[string]string) []map[string]any {
	sorted := render.SortedHiddenFields(fields)
	out := make([]map[string]any, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]any{"name": field.Name, "value": field.Value})
	}
	return out
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	vars := make(map[string]string, len(cfg.CSSVars)+len(cfg.Tokens))
	for key, value := range cfg.Tokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}
	for key, value := range cfg.CSSVars {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}
	return map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"css_vars": cssVarsStyle(vars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		value := strings.TrimSpace(vars[key])
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s; ", key, value)
	}
	return strings.TrimSpace(b.String())
}
