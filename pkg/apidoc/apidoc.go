// Package apidoc describes the contact JSON API as an OpenAPI 3 document.
//
// The request schema is derived from the same field table and rule
// constants the validator uses, so the published document and the server
// behaviour cannot drift apart.
package apidoc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/contact"
)

const (
	// ContactPath is the JSON API route relative to the component mount path.
	ContactPath = "/api/contact"

	requestSchemaName    = "ContactRequest"
	submissionSchemaName = "ContactSubmission"
	errorsSchemaName     = "ValidationErrors"
)

// Option configures Build.
type Option func(*config)

type config struct {
	title   string
	version string
	server  string
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(c *config) {
		if strings.TrimSpace(title) != "" {
			c.title = title
		}
	}
}

// WithVersion overrides the document version.
func WithVersion(version string) Option {
	return func(c *config) {
		if strings.TrimSpace(version) != "" {
			c.version = version
		}
	}
}

// WithServerURL publishes the mount path (or absolute URL) the API lives
// under.
func WithServerURL(url string) Option {
	return func(c *config) {
		c.server = strings.TrimRight(strings.TrimSpace(url), "/")
	}
}

// Build assembles and validates the OpenAPI document.
func Build(ctx context.Context, options ...Option) (*openapi3.T, error) {
	cfg := config{title: "Contact Form API", version: "1.0.0"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	request := requestSchema()
	submission := submissionSchema()
	errs := errorsSchema()

	op := openapi3.NewOperation()
	op.OperationID = "submitContact"
	op.Summary = "Validate and submit the contact form"
	op.Tags = []string{"contact"}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(componentRef(requestSchemaName, request)),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("The form was valid and the submission was accepted.").
			WithJSONSchema(openapi3.NewObjectSchema().
				WithPropertyRef("submission", componentRef(submissionSchemaName, submission)))}),
		openapi3.WithStatus(400, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("The request body is not valid JSON.")}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("One or more fields failed validation.").
			WithJSONSchemaRef(componentRef(errorsSchemaName, errs))}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   cfg.title,
			Version: cfg.version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(ContactPath, &openapi3.PathItem{Post: op})),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				requestSchemaName:    openapi3.NewSchemaRef("", request),
				submissionSchemaName: openapi3.NewSchemaRef("", submission),
				errorsSchemaName:     openapi3.NewSchemaRef("", errs),
			},
		},
	}
	if cfg.server != "" {
		doc.Servers = openapi3.Servers{{URL: cfg.server}}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("apidoc: validate document: %w", err)
	}
	return doc, nil
}

// JSON renders the document as indented JSON.
func JSON(ctx context.Context, options ...Option) ([]byte, error) {
	doc, err := Build(ctx, options...)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("apidoc: encode document: %w", err)
	}
	return payload, nil
}

func componentRef(name string, schema *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schema)
}

func requestSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, spec := range contact.Fields() {
		prop := openapi3.NewStringSchema()
		prop.Title = strings.TrimSuffix(spec.Label, "*")
		switch spec.Name {
		case contact.FieldFirstName:
			prop.WithMinLength(contact.MinFirstNameLength)
		case contact.FieldLastName:
			prop.WithMinLength(1)
		case contact.FieldEmail:
			prop.WithFormat("email").WithPattern(contact.EmailPattern)
		}
		schema.WithProperty(string(spec.Name), prop)
		if spec.Required {
			required = append(required, string(spec.Name))
		}
	}
	return schema.WithRequired(required)
}

func submissionSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, spec := range contact.Fields() {
		schema.WithProperty(string(spec.Name), openapi3.NewStringSchema())
		if spec.Required {
			required = append(required, string(spec.Name))
		}
	}
	return schema.WithRequired(required)
}

func errorsSchema() *openapi3.Schema {
	fields := make([]any, 0, len(contact.Fields()))
	for _, spec := range contact.Fields() {
		fields = append(fields, string(spec.Name))
	}
	kinds := []any{
		string(contact.RequiredFieldMissing),
		string(contact.TooShort),
		string(contact.InvalidFormat),
		string(contact.Rejected),
	}

	item := openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema().WithEnum(fields...)).
		WithProperty("kind", openapi3.NewStringSchema().WithEnum(kinds...)).
		WithProperty("message", openapi3.NewStringSchema()).
		WithRequired([]string{"field", "kind", "message"})

	return openapi3.NewObjectSchema().
		WithProperty("errors", openapi3.NewArraySchema().WithItems(item)).
		WithRequired([]string{"errors"})
}
