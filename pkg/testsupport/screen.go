package testsupport

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Matcher decides whether a normalised text or accessible name matches.
type Matcher interface {
	Match(text string) bool
	String() string
}

type exactMatcher string

func (m exactMatcher) Match(text string) bool { return text == string(m) }
func (m exactMatcher) String() string         { return fmt.Sprintf("%q", string(m)) }

type patternMatcher struct{ re *regexp.Regexp }

func (m patternMatcher) Match(text string) bool { return m.re.MatchString(text) }
func (m patternMatcher) String() string         { return "/" + m.re.String() + "/" }

// Exact matches the whole normalised string.
func Exact(text string) Matcher {
	return exactMatcher(normalizeSpace(text))
}

// Pattern matches a regular expression anywhere in the string. Prefix the
// expression with (?i) for case-insensitive matching.
func Pattern(expr string) Matcher {
	return patternMatcher{re: regexp.MustCompile(expr)}
}

// Screen queries a rendered HTML document the way a user perceives it: by
// visible text, placeholder text, and role plus accessible name.
type Screen struct {
	root *html.Node
	ids  map[string]*html.Node
}

// NewScreen parses an HTML document.
func NewScreen(r io.Reader) (*Screen, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse html: %w", err)
	}
	s := &Screen{root: root, ids: make(map[string]*html.Node)}
	walk(root, func(n *html.Node) {
		if id := Attr(n, "id"); id != "" {
			if _, exists := s.ids[id]; !exists {
				s.ids[id] = n
			}
		}
	})
	return s, nil
}

// MustScreen parses output or fails the test.
func MustScreen(t *testing.T, output []byte) *Screen {
	t.Helper()

	s, err := NewScreen(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("%v", err)
	}
	return s
}

// QueryAllByText returns elements whose own text matches m. Script and style
// contents are ignored.
func (s *Screen) QueryAllByText(m Matcher) []*html.Node {
	var out []*html.Node
	walk(s.root, func(n *html.Node) {
		if n.Type != html.ElementNode || ignoredElement(n) {
			return
		}
		text := ownText(n)
		if text == "" {
			return
		}
		if m.Match(text) {
			out = append(out, n)
		}
	})
	return out
}

// GetByText returns the single element matching m, failing otherwise.
func (s *Screen) GetByText(t *testing.T, m Matcher) *html.Node {
	t.Helper()
	return single(t, "text", m, s.QueryAllByText(m))
}

// GetAllByText returns every element matching m, failing when none match.
func (s *Screen) GetAllByText(t *testing.T, m Matcher) []*html.Node {
	t.Helper()

	nodes := s.QueryAllByText(m)
	if len(nodes) == 0 {
		t.Fatalf("unable to find any element with text %s", m)
	}
	return nodes
}

// QueryAllByPlaceholderText returns elements whose placeholder matches m.
func (s *Screen) QueryAllByPlaceholderText(m Matcher) []*html.Node {
	var out []*html.Node
	walk(s.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if placeholder, ok := attr(n, "placeholder"); ok && m.Match(normalizeSpace(placeholder)) {
			out = append(out, n)
		}
	})
	return out
}

// GetByPlaceholderText returns the single element with a matching
// placeholder.
func (s *Screen) GetByPlaceholderText(t *testing.T, m Matcher) *html.Node {
	t.Helper()
	return single(t, "placeholder", m, s.QueryAllByPlaceholderText(m))
}

// QueryAllByRole returns elements with the given implicit or explicit role
// whose accessible name matches name. A nil name matches any element.
func (s *Screen) QueryAllByRole(role string, name Matcher) []*html.Node {
	var out []*html.Node
	walk(s.root, func(n *html.Node) {
		if n.Type != html.ElementNode || Role(n) != role {
			return
		}
		if name != nil && !name.Match(s.AccessibleName(n)) {
			return
		}
		out = append(out, n)
	})
	return out
}

// GetByRole returns the single element with role and a matching name.
func (s *Screen) GetByRole(t *testing.T, role string, name Matcher) *html.Node {
	t.Helper()
	return single(t, "role "+role+" and name", name, s.QueryAllByRole(role, name))
}

// AccessibleName computes a simplified accessible name: aria-label,
// aria-labelledby, an associated or wrapping label, and finally the element's
// own content for buttons and headings.
func (s *Screen) AccessibleName(n *html.Node) string {
	if label, ok := attr(n, "aria-label"); ok && strings.TrimSpace(label) != "" {
		return normalizeSpace(label)
	}
	if ids, ok := attr(n, "aria-labelledby"); ok {
		var parts []string
		for _, id := range strings.Fields(ids) {
			if ref := s.ids[id]; ref != nil {
				parts = append(parts, TextContent(ref))
			}
		}
		if len(parts) > 0 {
			return normalizeSpace(strings.Join(parts, " "))
		}
	}
	if id := Attr(n, "id"); id != "" {
		var parts []string
		walk(s.root, func(candidate *html.Node) {
			if candidate.DataAtom == atom.Label && Attr(candidate, "for") == id {
				parts = append(parts, TextContent(candidate))
			}
		})
		if len(parts) > 0 {
			return normalizeSpace(strings.Join(parts, " "))
		}
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.DataAtom == atom.Label {
			return normalizeSpace(TextContent(p))
		}
	}
	switch Role(n) {
	case "button":
		if n.DataAtom == atom.Input {
			return normalizeSpace(Attr(n, "value"))
		}
		return TextContent(n)
	case "heading":
		return TextContent(n)
	}
	return normalizeSpace(Attr(n, "title"))
}

// Role returns the explicit role attribute or the implicit role of the
// element for the subset of elements forms use.
func Role(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	if role, ok := attr(n, "role"); ok && strings.TrimSpace(role) != "" {
		return strings.Fields(role)[0]
	}
	switch n.DataAtom {
	case atom.Textarea:
		return "textbox"
	case atom.Button:
		return "button"
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return "heading"
	case atom.Form:
		return "form"
	case atom.Input:
		switch strings.ToLower(Attr(n, "type")) {
		case "", "text", "email", "tel", "url", "search":
			return "textbox"
		case "submit", "button", "reset":
			return "button"
		case "checkbox":
			return "checkbox"
		}
	}
	return ""
}

// Attr returns the attribute value or the empty string.
func Attr(n *html.Node, key string) string {
	value, _ := attr(n, key)
	return value
}

// TextContent concatenates every descendant text node, whitespace
// normalised.
func TextContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(child *html.Node) {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
			b.WriteString(" ")
		}
	})
	return normalizeSpace(b.String())
}

func attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func ownText(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return normalizeSpace(b.String())
}

func ignoredElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Template:
		return true
	}
	return false
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

func single(t *testing.T, what string, m Matcher, nodes []*html.Node) *html.Node {
	t.Helper()

	label := "<any>"
	if m != nil {
		label = m.String()
	}
	switch len(nodes) {
	case 0:
		t.Fatalf("unable to find an element by %s %s", what, label)
	case 1:
		return nodes[0]
	default:
		t.Fatalf("found %d elements by %s %s, expected one", len(nodes), what, label)
	}
	return nil
}
