package contact

// Submission is the snapshot captured by a successful Submit. It is a plain
// value; later edits to the form never reach it.
type Submission struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message,omitempty"`
}

// Entry is one label/value row of the submitted view.
type Entry struct {
	Field Field  `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

func newSubmission(v Values) Submission {
	return Submission{
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Email:     v.Email,
		Message:   v.Message,
	}
}

// Values converts the snapshot back into form values.
func (s Submission) Values() Values {
	return Values{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Message:   s.Message,
	}
}

// HasMessage reports whether the optional message was provided.
func (s Submission) HasMessage() bool {
	return s.Message != ""
}

// Entries lists the rows of the submitted view. The message row is omitted
// when no message was provided.
func (s Submission) Entries() []Entry {
	entries := []Entry{
		{Field: FieldFirstName, Label: "First Name", Value: s.FirstName},
		{Field: FieldLastName, Label: "Last Name", Value: s.LastName},
		{Field: FieldEmail, Label: "Email", Value: s.Email},
	}
	if s.HasMessage() {
		entries = append(entries, Entry{Field: FieldMessage, Label: "Message", Value: s.Message})
	}
	return entries
}
