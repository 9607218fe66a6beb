package testsupport

import (
	"context"
	"testing"

	"github.com/goliatone/go-contactform/pkg/contact"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// TypeInto mirrors a user typing into each field in order, failing the test
// on unknown fields.
func TypeInto(t *testing.T, form *contact.Form, entries ...FieldInput) {
	t.Helper()

	for _, entry := range entries {
		if err := form.Type(entry.Field, entry.Text); err != nil {
			t.Fatalf("type into %s: %v", entry.Field, err)
		}
	}
}

// FieldInput pairs a field with the text typed into it.
type FieldInput struct {
	Field contact.Field
	Text  string
}

// Input is a shorthand for FieldInput literals.
func Input(field contact.Field, text string) FieldInput {
	return FieldInput{Field: field, Text: text}
}
