package contact

// View is the immutable snapshot a renderer draws.
type View struct {
	Title      string      `json:"title"`
	Status     Status      `json:"status"`
	Fields     []FieldView `json:"fields"`
	Errors     Errors      `json:"errors,omitempty"`
	Submission *Submission `json:"submission,omitempty"`
}

// FieldView joins a field's metadata with its current value and error.
type FieldView struct {
	FieldSpec
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// Submitted reports whether the view should show the submission instead of
// the inputs.
func (v View) Submitted() bool {
	return v.Status == StatusSubmitted && v.Submission != nil
}

// View captures the current state for rendering.
func (f *Form) View() View {
	view := View{
		Title:  f.title,
		Status: f.status,
		Errors: f.Errors(),
	}
	for _, spec := range fieldSpecs {
		fv := FieldView{FieldSpec: spec, Value: f.values.Get(spec.Name)}
		if fe, ok := f.errors.Get(spec.Name); ok {
			fv.Error = fe.Message
		}
		view.Fields = append(view.Fields, fv)
	}
	if f.submission != nil {
		snapshot := *f.submission
		view.Submission = &snapshot
	}
	return view
}
