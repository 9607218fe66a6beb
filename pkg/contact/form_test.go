package contact_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/contact"
)

func TestForm_NewFormShowsNoErrors(t *testing.T) {
	form := contact.NewForm()

	if form.Status() != contact.StatusEditing {
		t.Fatalf("status = %q, want editing", form.Status())
	}
	if !form.Errors().Empty() {
		t.Fatalf("expected no errors, got %v", form.Errors().Messages())
	}
	if form.Title() != "Contact Form" {
		t.Fatalf("title = %q", form.Title())
	}
}

func TestForm_TypingShortFirstNameOnlyFlagsThatField(t *testing.T) {
	form := contact.NewForm()

	if err := form.Type(contact.FieldFirstName, "Four"); err != nil {
		t.Fatalf("type: %v", err)
	}

	want := []string{"Error: firstName must have at least 5 characters."}
	if diff := cmp.Diff(want, form.Errors().Messages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if form.Touched(contact.FieldLastName) || form.Touched(contact.FieldEmail) {
		t.Fatalf("untouched fields should stay unvalidated")
	}
}

func TestForm_TypingInvalidEmail(t *testing.T) {
	form := contact.NewForm()

	if err := form.Type(contact.FieldEmail, "connor"); err != nil {
		t.Fatalf("type: %v", err)
	}

	want := []string{"Error: email must be a valid email address."}
	if diff := cmp.Diff(want, form.Errors().Messages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ClearingRevertsToRequired(t *testing.T) {
	form := contact.NewForm()
	_ = form.Type(contact.FieldLastName, "Burke")
	if !form.Errors().Empty() {
		t.Fatalf("expected no errors after typing a last name")
	}

	if err := form.Clear(contact.FieldLastName); err != nil {
		t.Fatalf("clear: %v", err)
	}
	want := []string{"Error: lastName is a required field."}
	if diff := cmp.Diff(want, form.Errors().Messages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SubmitEmptyReportsThreeErrors(t *testing.T) {
	form := contact.NewForm()

	if _, ok := form.Submit(); ok {
		t.Fatalf("expected submit to fail")
	}
	if got := len(form.Errors()); got != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", got, form.Errors().Messages())
	}
	if _, ok := form.Submission(); ok {
		t.Fatalf("failed submit must not produce a submission")
	}
	if !form.SubmitAttempted() {
		t.Fatalf("expected submit attempt to be recorded")
	}
}

func TestForm_SubmitMissingEmail(t *testing.T) {
	form := contact.NewForm()
	_ = form.Type(contact.FieldFirstName, "Connor")
	_ = form.Type(contact.FieldLastName, "Lastname")

	if _, ok := form.Submit(); ok {
		t.Fatalf("expected submit to fail")
	}
	want := []string{"Error: email is a required field."}
	if diff := cmp.Diff(want, form.Errors().Messages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SubmitMissingLastName(t *testing.T) {
	form := contact.NewForm()
	_ = form.Type(contact.FieldFirstName, "Connor")
	_ = form.Type(contact.FieldEmail, "connor@hotmail.com")

	if _, ok := form.Submit(); ok {
		t.Fatalf("expected submit to fail")
	}
	want := []string{"Error: lastName is a required field."}
	if diff := cmp.Diff(want, form.Errors().Messages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SubmitValidCapturesSnapshot(t *testing.T) {
	form := contact.NewForm()
	_ = form.Type(contact.FieldFirstName, "Connor")
	_ = form.Type(contact.FieldLastName, "Condor")
	_ = form.Type(contact.FieldEmail, "connor@hotmail.com")
	_ = form.Type(contact.FieldMessage, "My message is here!")

	got, ok := form.Submit()
	if !ok {
		t.Fatalf("expected submit to succeed, errors: %v", form.Errors().Messages())
	}
	want := contact.Submission{
		FirstName: "Connor",
		LastName:  "Condor",
		Email:     "connor@hotmail.com",
		Message:   "My message is here!",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	if form.Status() != contact.StatusSubmitted {
		t.Fatalf("status = %q, want submitted", form.Status())
	}

	_ = form.Type(contact.FieldFirstName, "!")
	if form.Status() != contact.StatusEditing {
		t.Fatalf("editing after submit should resume the editing state")
	}
	kept, ok := form.Submission()
	if !ok || kept.FirstName != "Connor" {
		t.Fatalf("snapshot must not follow later edits: %+v", kept)
	}
}

func TestForm_UnknownField(t *testing.T) {
	form := contact.NewForm()

	err := form.SetValue(contact.Field("phone"), "555")
	if !errors.Is(err, contact.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := form.Type(contact.Field("phone"), "5"); !errors.Is(err, contact.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField from Type, got %v", err)
	}
}

func TestForm_InitialValuesAreNotTouched(t *testing.T) {
	form := contact.NewForm(contact.WithInitialValues(contact.Values{FirstName: "Ed"}))

	if !form.Errors().Empty() {
		t.Fatalf("prefilled values should not surface errors: %v", form.Errors().Messages())
	}
	if _, ok := form.Submit(); ok {
		t.Fatalf("expected submit to fail")
	}
	fe, ok := form.Errors().Get(contact.FieldFirstName)
	if !ok || fe.Kind != contact.TooShort {
		t.Fatalf("expected too short error after submit, got %+v", fe)
	}
}

func TestSubmission_EntriesOmitEmptyMessage(t *testing.T) {
	sub := contact.Submission{FirstName: "Connor", LastName: "Condor", Email: "connor@hotmail.com"}

	var fields []contact.Field
	for _, entry := range sub.Entries() {
		fields = append(fields, entry.Field)
	}
	want := []contact.Field{contact.FieldFirstName, contact.FieldLastName, contact.FieldEmail}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseField(t *testing.T) {
	for _, raw := range []string{"firstName", " firstname ", "FIRSTNAME"} {
		got, err := contact.ParseField(raw)
		if err != nil || got != contact.FieldFirstName {
			t.Fatalf("ParseField(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := contact.ParseField("nickname"); !errors.Is(err, contact.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestView_ReflectsErrorsAndSubmission(t *testing.T) {
	form := contact.NewForm()
	_ = form.Type(contact.FieldFirstName, "Four")

	view := form.View()
	if view.Submitted() {
		t.Fatalf("editing view must not be submitted")
	}
	if len(view.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(view.Fields))
	}
	if view.Fields[0].Error != "Error: firstName must have at least 5 characters." {
		t.Fatalf("unexpected first field error %q", view.Fields[0].Error)
	}
	if view.Fields[0].Placeholder != "Edd" || view.Fields[3].Label != "Message" {
		t.Fatalf("unexpected field metadata: %+v", view.Fields)
	}
}
