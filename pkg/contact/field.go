package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned when a field name does not match the contact
// field table.
var ErrUnknownField = errors.New("contact: unknown field")

// Field identifies a contact form input by its wire name.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldMessage   Field = "message"
)

// Control describes how a field is presented.
type Control string

const (
	ControlText     Control = "text"
	ControlEmail    Control = "email"
	ControlTextArea Control = "textarea"
)

// FieldSpec carries the presentation metadata for one field.
type FieldSpec struct {
	Name        Field   `json:"name"`
	Label       string  `json:"label"`
	Placeholder string  `json:"placeholder,omitempty"`
	Control     Control `json:"control"`
	Required    bool    `json:"required"`
}

var fieldSpecs = []FieldSpec{
	{Name: FieldFirstName, Label: "First Name*", Placeholder: "Edd", Control: ControlText, Required: true},
	{Name: FieldLastName, Label: "Last Name*", Placeholder: "Burke", Control: ControlText, Required: true},
	{Name: FieldEmail, Label: "Email*", Placeholder: "bluebill1049@hotmail.com", Control: ControlEmail, Required: true},
	{Name: FieldMessage, Label: "Message", Control: ControlTextArea},
}

// Fields returns the field table in display order.
func Fields() []FieldSpec {
	return append([]FieldSpec(nil), fieldSpecs...)
}

// Spec returns the presentation metadata for f.
func Spec(f Field) (FieldSpec, error) {
	for _, spec := range fieldSpecs {
		if spec.Name == f {
			return spec, nil
		}
	}
	return FieldSpec{}, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
}

// ParseField resolves a raw field name. Matching is exact first and then
// case-insensitive so "FirstName" and "firstname" resolve as well.
func ParseField(name string) (Field, error) {
	trimmed := strings.TrimSpace(name)
	for _, spec := range fieldSpecs {
		if string(spec.Name) == trimmed {
			return spec.Name, nil
		}
	}
	for _, spec := range fieldSpecs {
		if strings.EqualFold(string(spec.Name), trimmed) {
			return spec.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (f Field) String() string {
	return string(f)
}

// Values holds the current contents of every field. Message is optional and
// defaults to the empty string.
type Values struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message,omitempty"`
}

// Get returns the value stored for f. Unknown fields read as empty.
func (v Values) Get(f Field) string {
	switch f {
	case FieldFirstName:
		return v.FirstName
	case FieldLastName:
		return v.LastName
	case FieldEmail:
		return v.Email
	case FieldMessage:
		return v.Message
	default:
		return ""
	}
}

// With returns a copy of v with f set to value.
func (v Values) With(f Field, value string) (Values, error) {
	switch f {
	case FieldFirstName:
		v.FirstName = value
	case FieldLastName:
		v.LastName = value
	case FieldEmail:
		v.Email = value
	case FieldMessage:
		v.Message = value
	default:
		return v, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return v, nil
}

// ValuesFromMap builds Values from a name -> value map, ignoring unknown keys.
func ValuesFromMap(raw map[string]string) Values {
	var out Values
	for name, value := range raw {
		field, err := ParseField(name)
		if err != nil {
			continue
		}
		out, _ = out.With(field, value)
	}
	return out
}
