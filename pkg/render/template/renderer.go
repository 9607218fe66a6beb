package template

import "io"

// TemplateRenderer is the seam renderers use to execute named templates or
// raw template strings. Output is returned and optionally copied to out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
