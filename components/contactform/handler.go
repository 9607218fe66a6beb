package contactform

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/apidoc"
	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

const (
	validatePath = "/validate"
	openAPIPath  = "/openapi.json"

	genericSubmitError = "Unable to send your message. Please try again."
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// FieldErrorer is implemented by OnSubmit errors that carry per-field
// messages. Keys may be field names, dotted paths or JSON pointers.
type FieldErrorer interface {
	FieldErrors() map[string][]string
}

type apiRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

type validateRequest struct {
	apiRequest
	Touched []string `json:"touched"`
}

type apiResponse struct {
	Submission *contact.Submission `json:"submission,omitempty"`
	Errors     contact.Errors      `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type validateResponse struct {
	Errors contact.Errors `json:"errors"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. The handler dispatches on the path suffix so it can be mounted under
// any prefix.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h := &handler{opts: opts, log: opts.Logger, renderer: opts.Renderer}
	if h.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			h.log.Error("contact: configure default renderer", zap.Error(err))
		} else {
			h.renderer = renderer
		}
	}
	return h
}

type handler struct {
	opts     Options
	log      *zap.Logger
	renderer render.Renderer
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			code := writeGuardError(w, err)
			h.log.Warn("contact: request rejected",
				zap.String("path", r.URL.Path),
				zap.Int("status", code),
				zap.Error(err),
			)
			return
		}
	}

	path := strings.TrimRight(r.URL.Path, "/")
	switch {
	case strings.HasSuffix(path, validatePath):
		if !h.opts.LiveValidation {
			http.NotFound(w, r)
			return
		}
		h.serveValidate(w, r)
	case strings.HasSuffix(path, apidoc.ContactPath):
		h.serveAPI(w, r)
	case strings.HasSuffix(path, openAPIPath):
		h.serveOpenAPI(w, r, strings.TrimSuffix(path, openAPIPath))
	default:
		h.servePage(w, r, path)
	}
}

func (h *handler) servePage(w http.ResponseWriter, r *http.Request, base string) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		form := contact.NewForm(contact.WithTitle(h.opts.Title))
		h.writeView(w, r, http.StatusOK, form.View(), h.renderOptions(r, base))
	case http.MethodPost:
		h.servePageSubmit(w, r, base)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) servePageSubmit(w http.ResponseWriter, r *http.Request, base string) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := contact.NewForm(
		contact.WithTitle(h.opts.Title),
		contact.WithInitialValues(valuesFromForm(r)),
	)
	renderOpts := h.renderOptions(r, base)

	submission, ok := form.Submit()
	if !ok {
		h.logInvalid(r, form.Errors())
		h.writeView(w, r, http.StatusUnprocessableEntity, form.View(), renderOpts)
		return
	}

	status, mapping, err := h.deliver(r, submission)
	if err != nil {
		view := form.View()
		view.Status = contact.StatusEditing
		view.Submission = nil
		renderOpts.Errors = mapping.Fields
		renderOpts.FormErrors = mapping.Form
		h.writeView(w, r, status, view, renderOpts)
		return
	}
	h.writeView(w, r, http.StatusOK, form.View(), renderOpts)
}

func (h *handler) serveValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	var (
		values  contact.Values
		touched []string
	)
	if isJSON(r) {
		var req validateRequest
		if err := decodeJSON(r.Body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{Error: "invalid JSON body"})
			return
		}
		values = req.apiRequest.values()
		touched = req.Touched
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		values = valuesFromForm(r)
		touched = r.PostForm["touched"]
	}

	errs := contact.Validate(values)
	if touched != nil {
		set := touchedSet(touched)
		errs = errs.Filter(func(f contact.Field) bool { return set[f] })
	}
	if errs == nil {
		errs = contact.Errors{}
	}
	writeJSON(w, http.StatusOK, validateResponse{Errors: errs})
}

func (h *handler) serveAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, apiResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	var req apiRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "invalid JSON body"})
		return
	}

	form := contact.NewForm(contact.WithInitialValues(req.values()))
	submission, ok := form.Submit()
	if !ok {
		h.logInvalid(r, form.Errors())
		writeJSON(w, http.StatusUnprocessableEntity, apiResponse{Errors: form.Errors()})
		return
	}

	status, mapping, err := h.deliver(r, submission)
	if err != nil {
		resp := apiResponse{FormErrors: mapping.Form}
		for _, spec := range contact.Fields() {
			for _, message := range mapping.Fields[spec.Name] {
				resp.Errors = append(resp.Errors, contact.FieldError{Field: spec.Name, Kind: contact.Rejected, Message: message})
			}
		}
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Submission: &submission})
}

func (h *handler) serveOpenAPI(w http.ResponseWriter, r *http.Request, base string) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	payload, err := apidoc.JSON(r.Context(), apidoc.WithTitle(h.opts.Title+" API"), apidoc.WithServerURL(base))
	if err != nil {
		h.log.Error("contact: build openapi document", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(payload)
}

// deliver hands an accepted submission to OnSubmit. On failure it returns
// the response status and the messages to show.
func (h *handler) deliver(r *http.Request, submission contact.Submission) (int, render.ErrorMapping, error) {
	if h.opts.OnSubmit != nil {
		if err := h.opts.OnSubmit(r.Context(), submission); err != nil {
			status, mapping := submitFailure(err)
			h.log.Warn("contact: submission rejected",
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Error(err),
			)
			return status, mapping, err
		}
	}
	h.log.Info("contact: submission accepted",
		zap.String("path", r.URL.Path),
		zap.Bool("message", submission.HasMessage()),
	)
	return http.StatusOK, render.ErrorMapping{}, nil
}

func submitFailure(err error) (int, render.ErrorMapping) {
	var fieldErr FieldErrorer
	if errors.As(err, &fieldErr) && fieldErr != nil {
		mapping := render.MapErrorPayload(fieldErr.FieldErrors())
		if len(mapping.Fields) > 0 || len(mapping.Form) > 0 {
			return http.StatusUnprocessableEntity, mapping
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr.StatusCode(), render.ErrorMapping{Form: render.MergeFormErrors(nil, httpErr.Error())}
	}
	return http.StatusInternalServerError, render.ErrorMapping{Form: []string{genericSubmitError}}
}

func (h *handler) renderOptions(r *http.Request, base string) render.RenderOptions {
	opts := render.RenderOptions{Theme: h.opts.Theme}
	if h.opts.Hidden != nil {
		opts.Hidden = render.MergeHiddenFields(h.opts.Hidden(r))
	}
	if h.opts.LiveValidation {
		opts.LiveValidationURL = base + validatePath
	}
	return opts
}

func (h *handler) writeView(w http.ResponseWriter, r *http.Request, status int, view contact.View, opts render.RenderOptions) {
	if h.renderer == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body, err := h.renderer.Render(r.Context(), view, opts)
	if err != nil {
		h.log.Error("contact: render view", zap.String("renderer", h.renderer.Name()), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// logInvalid records which fields failed. Values are never logged.
func (h *handler) logInvalid(r *http.Request, errs contact.Errors) {
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, string(fe.Field))
	}
	h.log.Debug("contact: validation failed",
		zap.String("path", r.URL.Path),
		zap.Strings("fields", fields),
	)
}

func (req apiRequest) values() contact.Values {
	return contact.Values{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Message:   req.Message,
	}
}

func valuesFromForm(r *http.Request) contact.Values {
	raw := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		raw[name] = r.PostForm.Get(name)
	}
	return contact.ValuesFromMap(raw)
}

func touchedSet(names []string) map[contact.Field]bool {
	set := make(map[contact.Field]bool, len(names))
	for _, name := range names {
		if field, err := contact.ParseField(name); err == nil {
			set[field] = true
		}
	}
	return set
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSON(body io.Reader, target any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(target); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) int {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
	return code
}
