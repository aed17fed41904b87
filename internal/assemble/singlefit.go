package assemble

import (
	"fmt"
	"strings"
)

// Page mirrors the caller's page settings for layout computation.
// Margin is in inches and applies to all sides.
type Page struct {
	Size        string
	Orientation string
	Margin      float64
}

// fitScaleSafety shrinks the computed scale slightly so rounding in the
// browser's layout engine cannot push the last line onto a second page.
const fitScaleSafety = 0.98

// fitShell is the HTML5 document for single-page output. The measurement
// script runs during parse, before the load event, so the scale transform is
// already applied when the renderer snapshots the page.
// Placeholders: stylesheet, body content, safety factor.
const fitShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Document</title>
<style>
%s
</style>
</head>
<body>
<div id="fit-page" class="fit-page">
<div id="fit-content" class="fit-content">
%s
</div>
</div>
<script>
(function () {
  var page = document.getElementById("fit-page");
  var content = document.getElementById("fit-content");
  var target = page.clientHeight;
  var actual = content.scrollHeight;
  if (actual > target) {
    var scale = (target / actual) * %g;
    content.style.transform = "scale(" + scale + ")";
    content.style.transformOrigin = "top center";
  }
})();
</script>
</body>
</html>`

// LayoutSingle produces a print document whose content is scaled down, when
// necessary, to occupy exactly one page.
//
// The fit container is sized to the printable area of the page; the inner
// content div is measured against it and scaled only when it overflows, so
// short documents keep their natural size. Returns ErrEmptyResult when the
// document has no usable content.
func LayoutSingle(doc Doc, page Page, baseCSS string) (*Result, error) {
	frag, ok := Normalize(doc.HTML)
	if !ok {
		return nil, fmt.Errorf("%w: document %q has no usable content", ErrEmptyResult, doc.ID)
	}

	var styles styleSheet
	styles.add(buildFitCSS(page))
	styles.add(baseCSS)
	styles.add(frag.Style)

	return &Result{
		HTML:     fmt.Sprintf(fitShell, sanitizeCSS(styles.String()), frag.Body, fitScaleSafety),
		Included: []string{doc.ID},
		Outcome:  Outcome{Processed: 1},
	}, nil
}

// buildFitCSS sizes the fit container to the printable area of the page.
// The outer container clips, the inner one is free to overflow so its
// natural height can be measured before scaling.
func buildFitCSS(page Page) string {
	w, h := printableArea(page)
	return fmt.Sprintf(`html, body {
  margin: 0;
  padding: 0;
}
.fit-page {
  width: %.2fin;
  height: %.2fin;
  overflow: hidden;
}`, w, h)
}

// Paper dimensions in inches, portrait.
const (
	letterWidthInches  = 8.5
	letterHeightInches = 11.0
	a4WidthInches      = 8.27
	a4HeightInches     = 11.69
	legalWidthInches   = 8.5
	legalHeightInches  = 14.0
)

// PaperDimensions returns paper width and height in inches for a page size,
// swapped for landscape. Unknown sizes fall back to letter.
func PaperDimensions(page Page) (w, h float64) {
	switch strings.ToLower(page.Size) {
	case "a4":
		w, h = a4WidthInches, a4HeightInches
	case "legal":
		w, h = legalWidthInches, legalHeightInches
	default:
		w, h = letterWidthInches, letterHeightInches
	}
	if strings.ToLower(page.Orientation) == "landscape" {
		w, h = h, w
	}
	return w, h
}

// printableArea returns the content box in inches after subtracting margins.
func printableArea(page Page) (w, h float64) {
	w, h = PaperDimensions(page)
	w -= 2 * page.Margin
	h -= 2 * page.Margin
	return w, h
}
