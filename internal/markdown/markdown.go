// Package markdown converts Markdown-authored template sources to HTML
// markup. Placeholder tokens pass through untouched: they carry no Markdown
// syntax and no markup, so both the converter and the sanitizer leave them
// for the template engine to resolve at generation time.
package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConvert indicates Markdown conversion failed.
var ErrConvert = errors.New("markdown conversion failed")

// Converter turns Markdown template sources into sanitized HTML markup.
// Safe for concurrent use.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewConverter creates a Converter with GFM extensions and a UGC
// sanitization policy. Catalog directories are user-supplied, so imported
// markup is stripped of scripts and event handlers before it enters the
// template catalog.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Converter{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

// ToHTML converts a Markdown template source to sanitized HTML markup.
func (c *Converter) ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConvert, err)
	}
	return c.policy.Sanitize(buf.String()), nil
}
