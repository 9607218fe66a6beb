package contact

// Status is the position of a Form in its state machine.
type Status string

const (
	StatusEditing   Status = "editing"
	StatusSubmitted Status = "submitted"
)

// DefaultTitle is the header shown above the form.
const DefaultTitle = "Contact Form"

// Option configures a Form at construction.
type Option func(*Form)

// WithTitle overrides the header text.
func WithTitle(title string) Option {
	return func(f *Form) {
		if title != "" {
			f.title = title
		}
	}
}

// WithInitialValues pre-fills the form. Pre-filled fields are not touched,
// so they produce no inline errors until changed or submitted.
func WithInitialValues(values Values) Option {
	return func(f *Form) {
		f.values = values
	}
}

// Form owns the values, the touched set, the derived errors and the last
// successful submission of one contact form session.
type Form struct {
	title      string
	values     Values
	touched    map[Field]bool
	attempted  bool
	errors     Errors
	status     Status
	submission *Submission
}

// NewForm returns a form in the editing state with empty values.
func NewForm(options ...Option) *Form {
	f := &Form{
		title:   DefaultTitle,
		touched: make(map[Field]bool, len(fieldSpecs)),
		status:  StatusEditing,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.revalidate()
	return f
}

// SetValue applies one change event to field.
func (f *Form) SetValue(field Field, value string) error {
	next, err := f.values.With(field, value)
	if err != nil {
		return err
	}
	f.values = next
	f.touched[field] = true
	f.status = StatusEditing
	f.revalidate()
	return nil
}

// Type appends text to field one rune at a time, validating after each rune
// the way a keystroke stream would.
func (f *Form) Type(field Field, text string) error {
	if _, err := Spec(field); err != nil {
		return err
	}
	current := []rune(f.values.Get(field))
	for _, r := range text {
		current = append(current, r)
		if err := f.SetValue(field, string(current)); err != nil {
			return err
		}
	}
	return nil
}

// Clear empties field as a single change event.
func (f *Form) Clear(field Field) error {
	return f.SetValue(field, "")
}

// Submit validates every field. When nothing fails it records a snapshot of
// the values and moves to StatusSubmitted.
func (f *Form) Submit() (Submission, bool) {
	f.attempted = true
	for _, spec := range fieldSpecs {
		f.touched[spec.Name] = true
	}
	f.revalidate()
	if !f.errors.Empty() {
		f.status = StatusEditing
		return Submission{}, false
	}

	snapshot := newSubmission(f.values)
	f.submission = &snapshot
	f.status = StatusSubmitted
	return snapshot, true
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	return f.values
}

// Errors returns the errors currently displayed: failures of touched fields.
func (f *Form) Errors() Errors {
	return append(Errors(nil), f.errors...)
}

// Status reports the state machine position.
func (f *Form) Status() Status {
	return f.status
}

// Submission returns the last successful snapshot, if any.
func (f *Form) Submission() (Submission, bool) {
	if f.submission == nil {
		return Submission{}, false
	}
	return *f.submission, true
}

// Touched reports whether field has received a change event or a submit.
func (f *Form) Touched(field Field) bool {
	return f.touched[field]
}

// SubmitAttempted reports whether Submit has been called at least once.
func (f *Form) SubmitAttempted() bool {
	return f.attempted
}

// Title returns the header text.
func (f *Form) Title() string {
	return f.title
}

func (f *Form) revalidate() {
	f.errors = Validate(f.values).Filter(func(field Field) bool {
		return f.touched[field]
	})
}
