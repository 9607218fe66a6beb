package contact

import (
	"regexp"
	"unicode/utf8"
)

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	RequiredFieldMissing ErrorKind = "required"
	TooShort             ErrorKind = "too_short"
	InvalidFormat        ErrorKind = "invalid_format"
	// Rejected marks messages supplied by the application after every rule
	// passed, for example a mail relay refusing the address.
	Rejected ErrorKind = "rejected"
)

// MinFirstNameLength is the minimum number of characters accepted for
// firstName.
const MinFirstNameLength = 5

// EmailPattern is the shape an email value must match: something, an at
// sign, something, a dot, something, with no whitespace.
const EmailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`

var emailPattern = regexp.MustCompile(EmailPattern)

// Rule pairs a predicate with the message shown when it fails. Rules for the
// same field are evaluated in table order and the first failure wins.
type Rule struct {
	Field   Field
	Kind    ErrorKind
	Message string
	Valid   func(value string) bool
}

var rules = []Rule{
	{
		Field:   FieldFirstName,
		Kind:    RequiredFieldMissing,
		Message: "Error: firstName is a required field.",
		Valid:   present,
	},
	{
		Field:   FieldFirstName,
		Kind:    TooShort,
		Message: "Error: firstName must have at least 5 characters.",
		Valid:   minLength(MinFirstNameLength),
	},
	{
		Field:   FieldLastName,
		Kind:    RequiredFieldMissing,
		Message: "Error: lastName is a required field.",
		Valid:   present,
	},
	{
		Field:   FieldEmail,
		Kind:    RequiredFieldMissing,
		Message: "Error: email is a required field.",
		Valid:   present,
	},
	{
		Field:   FieldEmail,
		Kind:    InvalidFormat,
		Message: "Error: email must be a valid email address.",
		Valid:   IsEmail,
	},
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// IsEmail reports whether value has a valid email shape.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

func present(value string) bool {
	return value != ""
}

func minLength(n int) func(string) bool {
	return func(value string) bool {
		return utf8.RuneCountInString(value) >= n
	}
}
