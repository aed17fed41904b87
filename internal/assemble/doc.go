// Package assemble turns stored document fragments into printable HTML.
//
// Stored documents arrive as self-contained HTML snippets, each carrying its
// own <style> blocks. The package extracts the usable content of every
// fragment, merges the styles without repeating shared blocks, and produces
// either a flowing multi-document page suite or a single page scaled to fit
// one sheet. Splitting large sets into bounded batches lives here too.
package assemble
