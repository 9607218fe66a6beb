package vanilla_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

func renderForm(t *testing.T, form *contact.Form, opts render.RenderOptions, options ...vanilla.Option) *testsupport.Screen {
	t.Helper()

	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), form.View(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return testsupport.MustScreen(t, output)
}

func TestRender_WithoutErrors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render(testsupport.Context(), contact.NewForm().View(), render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
}

func TestRender_ContactFormHeader(t *testing.T) {
	screen := renderForm(t, contact.NewForm(), render.RenderOptions{})

	screen.GetByText(t, testsupport.Exact("Contact Form"))
}

func TestRender_ExposesControlsByPlaceholderAndRole(t *testing.T) {
	screen := renderForm(t, contact.NewForm(), render.RenderOptions{})

	for _, placeholder := range []string{"Edd", "Burke", "bluebill1049@hotmail.com"} {
		screen.GetByPlaceholderText(t, testsupport.Exact(placeholder))
	}
	message := screen.GetByRole(t, "textbox", testsupport.Exact("Message"))
	if testsupport.Attr(message, "name") != "message" {
		t.Fatalf("message textbox has name %q", testsupport.Attr(message, "name"))
	}
	button := screen.GetByRole(t, "button", testsupport.Pattern(`(?i)submit`))
	if testsupport.Attr(button, "type") != "submit" {
		t.Fatalf("expected a submit button")
	}
	if got := len(screen.QueryAllByText(testsupport.Pattern(`(?i)Error:`))); got != 0 {
		t.Fatalf("fresh form should show no errors, found %d", got)
	}
}

func TestRender_OneErrorForShortFirstName(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form, testsupport.Input(contact.FieldFirstName, "Four"))

	screen := renderForm(t, form, render.RenderOptions{})

	screen.GetByText(t, testsupport.Pattern(`(?i)firstName must have at least 5 characters`))
	if got := len(screen.GetAllByText(t, testsupport.Pattern(`(?i)Error:`))); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	input := screen.GetByPlaceholderText(t, testsupport.Exact("Edd"))
	if testsupport.Attr(input, "value") != "Four" {
		t.Fatalf("typed value not echoed: %q", testsupport.Attr(input, "value"))
	}
	if testsupport.Attr(input, "aria-invalid") != "true" {
		t.Fatalf("invalid input should be flagged")
	}
}

func TestRender_ThreeErrorsWhenSubmittingEmpty(t *testing.T) {
	form := contact.NewForm()
	form.Submit()

	screen := renderForm(t, form, render.RenderOptions{})

	if got := len(screen.GetAllByText(t, testsupport.Pattern(`(?i)Error: `))); got != 3 {
		t.Fatalf("expected 3 errors, got %d", got)
	}
}

func TestRender_OneErrorWhenEmailMissing(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form,
		testsupport.Input(contact.FieldFirstName, "Connor"),
		testsupport.Input(contact.FieldLastName, "Lastname"),
	)
	form.Submit()

	screen := renderForm(t, form, render.RenderOptions{})

	errs := screen.GetAllByText(t, testsupport.Pattern(`(?i)Error:`))
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if got := testsupport.TextContent(errs[0]); got != "Error: email is a required field." {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestRender_InvalidEmail(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form, testsupport.Input(contact.FieldEmail, "connor"))

	screen := renderForm(t, form, render.RenderOptions{})

	screen.GetByText(t, testsupport.Pattern(`(?i)Error: email must be a valid email address\.`))
}

func TestRender_LastNameRequiredOnSubmit(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form,
		testsupport.Input(contact.FieldFirstName, "Connor"),
		testsupport.Input(contact.FieldEmail, "connor@hotmail.com"),
	)
	form.Submit()

	screen := renderForm(t, form, render.RenderOptions{})

	screen.GetByText(t, testsupport.Pattern(`(?i)Error: lastName is a required field\.`))
	if got := len(screen.GetAllByText(t, testsupport.Pattern(`(?i)Error:`))); got != 1 {
		t.Fatalf("expected only the lastName error, got %d", got)
	}
}

func TestRender_SubmittedValuesWithoutMessage(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form,
		testsupport.Input(contact.FieldFirstName, "Connor"),
		testsupport.Input(contact.FieldLastName, "Condor"),
		testsupport.Input(contact.FieldEmail, "connor@hotmail.com"),
	)
	if _, ok := form.Submit(); !ok {
		t.Fatalf("expected submit to succeed")
	}

	screen := renderForm(t, form, render.RenderOptions{})

	screen.GetByText(t, testsupport.Exact("Connor"))
	screen.GetByText(t, testsupport.Exact("Condor"))
	screen.GetByText(t, testsupport.Exact("connor@hotmail.com"))
	if got := screen.QueryAllByText(testsupport.Pattern(`(?i)My message is here!`)); len(got) != 0 {
		t.Fatalf("message should not render, found %d nodes", len(got))
	}
	screen.GetByText(t, testsupport.Exact("Contact Form"))
}

func TestRender_SubmittedValuesWithMessage(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form,
		testsupport.Input(contact.FieldFirstName, "Connor"),
		testsupport.Input(contact.FieldLastName, "Condor"),
		testsupport.Input(contact.FieldEmail, "connor@hotmail.com"),
		testsupport.Input(contact.FieldMessage, "My message is here!"),
	)
	if _, ok := form.Submit(); !ok {
		t.Fatalf("expected submit to succeed")
	}

	screen := renderForm(t, form, render.RenderOptions{})

	screen.GetByText(t, testsupport.Exact("Connor"))
	screen.GetByText(t, testsupport.Exact("Condor"))
	screen.GetByText(t, testsupport.Exact("connor@hotmail.com"))
	if got := len(screen.GetAllByText(t, testsupport.Pattern(`(?i)My message is here!`))); got != 2 {
		t.Fatalf("expected message in 2 places, got %d", got)
	}
}

func TestRender_SubmittedValuesRoundTripExactly(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form,
		testsupport.Input(contact.FieldFirstName, "Connor"),
		testsupport.Input(contact.FieldLastName, "Tom &amp; <Jerry>"),
		testsupport.Input(contact.FieldEmail, "x<y>@ex.com"),
		testsupport.Input(contact.FieldMessage, `use <b>bold</b> & <img src=x onerror="alert(1)"> here`),
	)
	if _, ok := form.Submit(); !ok {
		t.Fatalf("submit failed: %s", form.Errors())
	}

	output, _ := vanillaOutput(t, form, render.RenderOptions{})
	if strings.Contains(output, "<img") || strings.Contains(output, "<b>") {
		t.Fatalf("markup was emitted unescaped:\n%s", output)
	}

	screen := testsupport.MustScreen(t, []byte(output))
	screen.GetByText(t, testsupport.Exact("Tom &amp; <Jerry>"))
	screen.GetByText(t, testsupport.Exact("x<y>@ex.com"))
	message := screen.GetAllByText(t, testsupport.Exact(`use <b>bold</b> & <img src=x onerror="alert(1)"> here`))
	if len(message) != 2 {
		t.Fatalf("expected message twice, got %d", len(message))
	}
	tags := []string{message[0].Data, message[1].Data}
	if tags[0] != "dd" || tags[1] != "blockquote" {
		t.Fatalf("message rendered in %v, want [dd blockquote]", tags)
	}
}

func TestRender_ErrorMessagesKeepLinksAndDropScripts(t *testing.T) {
	form := contact.NewForm()
	message := `Write to <a href="mailto:help@example.com" onclick="steal()">support</a><script>alert(1)</script>`

	output, _ := vanillaOutput(t, form, render.RenderOptions{
		FormErrors: []string{message},
		Errors:     map[contact.Field][]string{contact.FieldEmail: {"Address <em>bounced</em> & retried"}},
	}, vanilla.WithFragment())

	if !strings.Contains(output, `<a href="mailto:help@example.com" rel="nofollow">support</a>`) {
		t.Fatalf("expected sanitized link in output:\n%s", output)
	}
	if !strings.Contains(output, "<em>bounced</em> &amp; retried") {
		t.Fatalf("expected emphasis kept and text escaped:\n%s", output)
	}
	for _, banned := range []string{"onclick", "steal()", "alert(1)", "<script"} {
		if strings.Contains(output, banned) {
			t.Fatalf("output contains %q:\n%s", banned, output)
		}
	}
}

func TestRender_WithSanitizerOverridesMessagePolicy(t *testing.T) {
	output, _ := vanillaOutput(t, contact.NewForm(), render.RenderOptions{
		FormErrors: []string{`Write to <a href="mailto:help@example.com">support</a>`},
	}, vanilla.WithFragment(), vanilla.WithSanitizer(bluemonday.StrictPolicy()))

	if strings.Contains(output, "<a ") {
		t.Fatalf("strict policy should drop links:\n%s", output)
	}
	screen := testsupport.MustScreen(t, []byte(output))
	screen.GetByText(t, testsupport.Exact("Write to support"))
}

func TestRender_WithTemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := `<section><h2>{{ title }}</h2>{% for field in fields %}<span>{{ field.label }}</span>{% endfor %}</section>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "contact.tmpl"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	output, _ := vanillaOutput(t, contact.NewForm(contact.WithTitle("Say hi")), render.RenderOptions{},
		vanilla.WithTemplatesDir(dir), vanilla.WithFragment())

	want := "<section><h2>Say hi</h2><span>First Name*</span><span>Last Name*</span><span>Email*</span><span>Message</span></section>"
	if diff := cmp.Diff(want, output); diff != "" {
		t.Fatalf("custom template output mismatch (-want +got):\n%s", diff)
	}
}

type recordingTemplates struct {
	name string
	data map[string]any
}

func (r *recordingTemplates) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	return "rendered", nil
}

func (r *recordingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", errors.New("not supported")
}

func (r *recordingTemplates) RegisterFilter(string, func(any, any) (any, error)) error { return nil }

func (r *recordingTemplates) GlobalContext(any) error { return nil }

func TestRender_WithTemplateRenderer(t *testing.T) {
	templates := &recordingTemplates{}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(templates))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), contact.NewForm().View(), render.RenderOptions{Method: "get"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "rendered" {
		t.Fatalf("output = %q", output)
	}
	if templates.name != "templates/page.tmpl" {
		t.Fatalf("template name = %q", templates.name)
	}
	if templates.data["method"] != "GET" || templates.data["title"] != "Contact Form" {
		t.Fatalf("unexpected template data: method=%v title=%v", templates.data["method"], templates.data["title"])
	}
}

func TestRender_ServerErrorsHiddenFieldsAndAction(t *testing.T) {
	form := contact.NewForm()
	testsupport.TypeInto(t, form, testsupport.Input(contact.FieldEmail, "connor@hotmail.com"))

	screen := renderForm(t, form, render.RenderOptions{
		Action:     "/contact",
		Hidden:     map[string]string{"_csrf": "token123"},
		Errors:     map[contact.Field][]string{contact.FieldEmail: {"Address bounced"}},
		FormErrors: []string{"Please try again"},
	})

	screen.GetByText(t, testsupport.Exact("Address bounced"))
	screen.GetByText(t, testsupport.Exact("Please try again"))

	form1 := screen.GetByRole(t, "form", nil)
	if testsupport.Attr(form1, "action") != "/contact" || testsupport.Attr(form1, "method") != "POST" {
		t.Fatalf("unexpected form attributes: action=%q method=%q", testsupport.Attr(form1, "action"), testsupport.Attr(form1, "method"))
	}
	output, _ := vanillaOutput(t, form, render.RenderOptions{Hidden: map[string]string{"_csrf": "token123"}})
	if !strings.Contains(output, `name="_csrf" value="token123"`) {
		t.Fatalf("expected csrf hidden input in output")
	}
}

func TestRender_FragmentAndStyles(t *testing.T) {
	output, _ := vanillaOutput(t, contact.NewForm(), render.RenderOptions{LiveValidationURL: "/validate"}, vanilla.WithFragment())
	if strings.Contains(output, "<html") || strings.Contains(output, "<script") {
		t.Fatalf("fragment should not include page chrome:\n%s", output)
	}
	if !strings.Contains(output, `data-validate-url="/validate"`) {
		t.Fatalf("expected validation url on the form")
	}

	page, _ := vanillaOutput(t, contact.NewForm(), render.RenderOptions{LiveValidationURL: "/validate"},
		vanilla.WithDefaultStyles(), vanilla.WithStylesheet("/assets/contactform.css"))
	if !strings.Contains(page, ".contact-form__error") {
		t.Fatalf("expected inline default styles")
	}
	if !strings.Contains(page, `href="/assets/contactform.css"`) {
		t.Fatalf("expected stylesheet link")
	}
	if !strings.Contains(page, "<script>") {
		t.Fatalf("expected live validation script on the page")
	}
}

func vanillaOutput(t *testing.T, form *contact.Form, opts render.RenderOptions, options ...vanilla.Option) (string, *vanilla.Renderer) {
	t.Helper()

	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), form.View(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output), renderer
}
