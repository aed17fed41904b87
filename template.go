package paperwork

import (
	"github.com/alnah/go-paperwork/internal/template"
)

// RenderTemplate resolves {{path}} placeholders, {{#if}}/{{else}}/{{/if}}
// conditionals and {{#each}}/{{/each}} iteration blocks in markup against
// data. Paths are dot-separated; inside an iteration body a ../ prefix
// resolves against the enclosing context.
//
// Missing or nil values leave their tokens verbatim in the output, so
// unresolved paths stay diagnosable in the produced document instead of
// failing the render. The only error condition is structurally invalid
// markup (unbalanced blocks), reported as ErrTemplateSyntax.
func RenderTemplate(markup string, data map[string]any) (string, error) {
	return template.Render(markup, data)
}

// ValidateTemplate checks markup for structural template errors without
// rendering it. Returns nil for well-formed markup.
func ValidateTemplate(markup string) error {
	_, err := template.Parse(markup)
	return err
}
