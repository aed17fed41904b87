package assemble

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResult indicates that no queued document survived normalization.
var ErrEmptyResult = errors.New("no documents could be processed")

// Doc is one stored document queued for assembly.
type Doc struct {
	ID   string
	HTML string
}

// Outcome reports how the queued set was consumed.
// Processed+Skipped always equals the number of queued documents.
type Outcome struct {
	Processed int
	Skipped   int
}

// Result is a printable HTML document produced from a queued set.
type Result struct {
	HTML     string
	Included []string // ids of documents present in the output, input order
	Skipped  []string // ids of documents dropped during normalization
	Outcome  Outcome
}

// assemblyCSS keeps multi-document output printable: every document after
// the first starts on a fresh page.
const assemblyCSS = `.doc-break {
  break-before: page;
  page-break-before: always;
}`

// Assemble merges queued documents into one flowing print document.
//
// Documents that fail normalization are skipped and reported, never
// defaulted: a blank page in the middle of a print run is worse than a
// shorter run. baseCSS is the shared print stylesheet; per-document styles
// come after it so templates can override. Returns ErrEmptyResult when
// nothing survives normalization.
func Assemble(docs []Doc, baseCSS string) (*Result, error) {
	res := &Result{}

	var styles styleSheet
	styles.add(assemblyCSS)
	styles.add(baseCSS)

	var bodies strings.Builder
	for _, d := range docs {
		frag, ok := Normalize(d.HTML)
		if !ok {
			res.Outcome.Skipped++
			res.Skipped = append(res.Skipped, d.ID)
			continue
		}

		styles.add(frag.Style)

		if res.Outcome.Processed == 0 {
			bodies.WriteString(`<div class="doc">`)
		} else {
			bodies.WriteString(`<div class="doc doc-break">`)
		}
		bodies.WriteString("\n")
		bodies.WriteString(frag.Body)
		bodies.WriteString("\n</div>\n")

		res.Outcome.Processed++
		res.Included = append(res.Included, d.ID)
	}

	if res.Outcome.Processed == 0 {
		return nil, fmt.Errorf("%w: all %d queued documents were skipped", ErrEmptyResult, res.Outcome.Skipped)
	}

	res.HTML = buildShell(styles.String(), bodies.String())
	return res, nil
}

// styleSheet accumulates per-document styles, dropping exact repeats.
type styleSheet struct {
	combined string
}

// add appends css unless the accumulated sheet already contains it verbatim.
// Documents rendered from the same template carry byte-identical style
// blocks; a plain substring check removes that repetition. Semantically
// equal but differently formatted rules are appended again, which is
// harmless under the CSS cascade.
func (s *styleSheet) add(css string) {
	if css == "" {
		return
	}
	if strings.Contains(s.combined, css) {
		return
	}
	if s.combined != "" {
		s.combined += "\n"
	}
	s.combined += css
}

// String returns the accumulated stylesheet.
func (s *styleSheet) String() string {
	return s.combined
}
