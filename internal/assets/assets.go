package assets

import (
	_ "embed"
)

//go:embed styles/base.css
var baseCSS string

// BaseCSS returns the shared print stylesheet injected into every assembled
// document. Template styles come after it in the output, so templates can
// override any rule.
func BaseCSS() string {
	return baseCSS
}
