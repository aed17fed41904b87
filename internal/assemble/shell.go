package assemble

import (
	"fmt"
	"strings"
)

// documentShell wraps assembled content in a complete HTML5 document.
// First placeholder: stylesheet. Second: body content.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// buildShell assembles the final HTML document from a stylesheet and body
// content. The stylesheet is sanitized so document styles cannot close the
// <style> block early.
func buildShell(css, body string) string {
	return fmt.Sprintf(documentShell, sanitizeCSS(css), body)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
