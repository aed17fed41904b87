package paperwork

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-paperwork/internal/assets"
	"github.com/alnah/go-paperwork/internal/markdown"
	"github.com/alnah/go-paperwork/internal/template"
)

// TemplateInfo describes one template available in a catalog.
type TemplateInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// catalogEntry pairs a template's manifest metadata with its parsed form.
type catalogEntry struct {
	info TemplateInfo
	tpl  *template.Template
}

// Catalog holds a set of parsed document templates, looked up by id.
//
// Templates are parsed once when the catalog is opened; Render only
// substitutes data, so a catalog is safe for concurrent use.
type Catalog struct {
	entries map[string]catalogEntry
	ids     []string
}

// DefaultCatalog opens the catalog of templates compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return newCatalog(assets.NewEmbeddedSource())
}

// OpenCatalog opens a catalog from a directory containing a catalog.yaml
// manifest and the template files it lists. Files may be HTML fragments
// or Markdown; Markdown is converted to HTML once at load time.
//
// Returns ErrInvalidCatalogDir if dir is not a readable directory.
func OpenCatalog(dir string) (*Catalog, error) {
	src, err := assets.NewDirSource(dir)
	if err != nil {
		return nil, err
	}
	return newCatalog(src)
}

func newCatalog(src assets.CatalogSource) (*Catalog, error) {
	manifest, err := src.LoadManifest()
	if err != nil {
		return nil, err
	}

	md := markdown.NewConverter()
	entries := make(map[string]catalogEntry, len(manifest.Templates))
	ids := make([]string, 0, len(manifest.Templates))

	for _, e := range manifest.Templates {
		markup, err := src.LoadTemplate(e.File)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", e.ID, err)
		}

		// Markdown templates become HTML fragments here, before parsing,
		// so placeholders survive conversion and render like any other
		// template. Assembly adds the document shell later.
		if strings.HasSuffix(e.File, ".md") {
			markup, err = md.ToHTML(markup)
			if err != nil {
				return nil, fmt.Errorf("template %q: %w", e.ID, err)
			}
		}

		tpl, err := template.Parse(markup)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", e.ID, err)
		}

		entries[e.ID] = catalogEntry{
			info: TemplateInfo{ID: e.ID, Name: e.Name, Category: e.Category},
			tpl:  tpl,
		}
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)

	return &Catalog{entries: entries, ids: ids}, nil
}

// List returns the available templates sorted by id.
func (c *Catalog) List() []TemplateInfo {
	infos := make([]TemplateInfo, 0, len(c.ids))
	for _, id := range c.ids {
		infos = append(infos, c.entries[id].info)
	}
	return infos
}

// IDs returns the available template ids in sorted order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Get returns the metadata for a template id.
//
// Returns ErrTemplateNotFound if no template has that id.
func (c *Catalog) Get(id string) (TemplateInfo, error) {
	e, ok := c.entries[id]
	if !ok {
		return TemplateInfo{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return e.info, nil
}

// Render fills the template identified by id with data and returns the
// resulting HTML fragment. Placeholders with no matching key are left
// verbatim in the output.
//
// Returns ErrTemplateNotFound if no template has that id.
func (c *Catalog) Render(id string, data map[string]any) (string, error) {
	e, ok := c.entries[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return e.tpl.Render(data), nil
}
