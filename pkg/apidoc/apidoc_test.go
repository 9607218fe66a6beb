package apidoc_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/apidoc"
)

func TestBuild_DescribesContactEndpoint(t *testing.T) {
	doc, err := apidoc.Build(context.Background(), apidoc.WithServerURL("/contact/"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	item := doc.Paths.Value(apidoc.ContactPath)
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST %s", apidoc.ContactPath)
	}
	for _, status := range []int{200, 400, 422} {
		if item.Post.Responses.Status(status) == nil {
			t.Fatalf("missing %d response", status)
		}
	}
	if got := doc.Servers[0].URL; got != "/contact" {
		t.Fatalf("server url = %q", got)
	}

	request := doc.Components.Schemas["ContactRequest"].Value
	if diff := cmp.Diff([]string{"firstName", "lastName", "email"}, request.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_RequestSchemaMirrorsRules(t *testing.T) {
	doc, err := apidoc.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	request := doc.Components.Schemas["ContactRequest"].Value

	valid := map[string]any{
		"firstName": "Connor",
		"lastName":  "Condor",
		"email":     "connor@hotmail.com",
	}
	if err := request.VisitJSON(valid); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	cases := map[string]map[string]any{
		"short first name":  {"firstName": "Four", "lastName": "Condor", "email": "connor@hotmail.com"},
		"missing last name": {"firstName": "Connor", "email": "connor@hotmail.com"},
		"malformed email":   {"firstName": "Connor", "lastName": "Condor", "email": "connor"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if err := request.VisitJSON(payload); err == nil {
				t.Fatalf("expected schema error")
			}
		})
	}
}

func TestJSON_RoundTripsThroughLoader(t *testing.T) {
	ctx := context.Background()
	payload, err := apidoc.JSON(ctx, apidoc.WithTitle("Contact"), apidoc.WithVersion("2.0.0"))
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	doc, err := openapi3.NewLoader().LoadFromData(payload)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := doc.Validate(ctx); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Info.Title != "Contact" || doc.Info.Version != "2.0.0" {
		t.Fatalf("unexpected info: %+v", doc.Info)
	}

	body := doc.Paths.Value(apidoc.ContactPath).Post.RequestBody.Value
	schema := body.Content.Get("application/json").Schema
	if schema.Ref != "#/components/schemas/ContactRequest" || schema.Value == nil {
		t.Fatalf("expected resolved request ref, got %q", schema.Ref)
	}
}
