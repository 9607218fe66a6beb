package contact

import "strings"

// FieldError is a single inline validation message.
type FieldError struct {
	Field   Field     `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

// Errors lists at most one FieldError per field, ordered firstName,
// lastName, email.
type Errors []FieldError

// ValidateField evaluates the rule table for a single field and returns the
// first failure.
func ValidateField(f Field, value string) (FieldError, bool) {
	for _, rule := range rules {
		if rule.Field != f {
			continue
		}
		if rule.Valid(value) {
			continue
		}
		return FieldError{Field: f, Kind: rule.Kind, Message: rule.Message}, true
	}
	return FieldError{}, false
}

// Validate recomputes every field's rules against v.
func Validate(v Values) Errors {
	var out Errors
	for _, spec := range fieldSpecs {
		if fe, failed := ValidateField(spec.Name, v.Get(spec.Name)); failed {
			out = append(out, fe)
		}
	}
	return out
}

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Get returns the error attached to f.
func (e Errors) Get(f Field) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == f {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Has reports whether f failed validation.
func (e Errors) Has(f Field) bool {
	_, ok := e.Get(f)
	return ok
}

// Messages returns the messages in field order.
func (e Errors) Messages() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Message)
	}
	return out
}

// Map keys messages by field name.
func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[string(fe.Field)] = fe.Message
	}
	return out
}

// Filter keeps the errors whose field satisfies keep.
func (e Errors) Filter(keep func(Field) bool) Errors {
	var out Errors
	for _, fe := range e {
		if keep(fe.Field) {
			out = append(out, fe)
		}
	}
	return out
}

func (e Errors) String() string {
	return strings.Join(e.Messages(), "\n")
}
