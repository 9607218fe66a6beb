package contactform

import (
	"context"
	"net/http"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
)

const (
	defaultRoutePath    = "/contact"
	defaultMaxBodyBytes = 64 << 10
)

// GuardFunc may reject a request before it reaches the form. Returning an
// HTTPError controls the response status; any other error maps to 403.
type GuardFunc func(r *http.Request) error

// SubmitFunc receives every accepted submission. Returning an error that
// implements FieldErrorer re-renders the form with those messages; other
// errors are reported as form-level failures.
type SubmitFunc func(ctx context.Context, submission contact.Submission) error

// HiddenFunc supplies hidden inputs (for example a CSRF token) per request.
type HiddenFunc func(r *http.Request) map[string]string

type Options struct {
	RoutePath      string
	Title          string
	MaxBodyBytes   int64
	LiveValidation bool
	Guard          GuardFunc
	OnSubmit       SubmitFunc
	Hidden         HiddenFunc
	Renderer       render.Renderer
	Theme          *theme.RendererConfig
	Logger         *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:      defaultRoutePath,
		Title:          contact.DefaultTitle,
		MaxBodyBytes:   defaultMaxBodyBytes,
		LiveValidation: true,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.Title == "" {
		opts.Title = contact.DefaultTitle
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithLiveValidation toggles the inline validation script and endpoint.
func WithLiveValidation(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LiveValidation = enabled
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithOnSubmit(fn SubmitFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnSubmit = fn
	}
}

// WithHidden injects the same hidden inputs into every rendered form.
func WithHidden(fields map[string]string) OptionFn {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return WithHiddenFunc(func(*http.Request) map[string]string { return copied })
}

func WithHiddenFunc(fn HiddenFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hidden = fn
	}
}

// WithRenderer replaces the default vanilla HTML renderer.
func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
