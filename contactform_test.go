package contactform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".contact-form") {
		t.Fatalf("expected contact form rules in stylesheet")
	}
}

func TestEmbeddedTemplatesIncludePage(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("expected page template: %v", err)
	}
}

func TestNewRegistryDefaultsToHTML(t *testing.T) {
	registry, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	out, contentType, err := registry.Render(context.Background(), "", NewForm().View(), RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(contentType, "text/html") || !strings.Contains(string(out), "Contact Form") {
		t.Fatalf("unexpected default render %q", contentType)
	}
}

func TestRenderHTMLSubmittedForm(t *testing.T) {
	form := NewForm()
	_ = form.SetValue(contact.FieldFirstName, "Connor")
	_ = form.SetValue(contact.FieldLastName, "Condor")
	_ = form.SetValue(contact.FieldEmail, "connor@hotmail.com")
	if _, ok := form.Submit(); !ok {
		t.Fatalf("expected submit to succeed")
	}

	out, err := RenderHTML(context.Background(), form, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "connor@hotmail.com") {
		t.Fatalf("expected submitted email in output")
	}
}
