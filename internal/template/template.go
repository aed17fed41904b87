// Package template implements the placeholder dialect used by document
// templates: {{path}} interpolation with dot access, {{#if}}/{{else}}/{{/if}}
// conditionals, and {{#each}} iteration with ../ parent references.
//
// Markup is parsed once into a tree, then evaluated against a context of
// nested map[string]any values. Rendering never fails: unresolved
// placeholders stay visible in the output so template authors can spot them
// in the produced document. Only structural problems (unbalanced or
// unterminated blocks) are reported, at parse time.
package template

import (
	"errors"
	"strings"
)

// ErrSyntax reports unbalanced or unterminated block markers.
var ErrSyntax = errors.New("invalid template structure")

// Template is a parsed template, safe for concurrent use.
type Template struct {
	nodes []node
}

// Parse tokenizes and parses markup into a Template.
// Returns ErrSyntax if block markers are unbalanced or unterminated.
func Parse(markup string) (*Template, error) {
	p := &parser{toks: lex(markup)}
	nodes, _, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	return &Template{nodes: nodes}, nil
}

// Render evaluates the template against data and returns the output.
// A nil data map resolves nothing, so every placeholder stays verbatim.
func (t *Template) Render(data map[string]any) string {
	var b strings.Builder
	writeNodes(&b, t.nodes, []any{data})
	return b.String()
}

// Render parses markup and evaluates it against data in one call.
func Render(markup string, data map[string]any) (string, error) {
	t, err := Parse(markup)
	if err != nil {
		return "", err
	}
	return t.Render(data), nil
}
