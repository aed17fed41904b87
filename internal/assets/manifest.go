package assets

import (
	"fmt"

	"github.com/alnah/go-paperwork/internal/yamlutil"
)

// ManifestName is the file every catalog directory must contain.
const ManifestName = "catalog.yaml"

// Entry describes one template listed in a catalog manifest.
type Entry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	File     string `yaml:"file"`
}

// Manifest is the parsed catalog.yaml.
type Manifest struct {
	Templates []Entry `yaml:"templates"`
}

// decodeManifest parses and validates raw manifest bytes.
// Unknown fields are rejected so typos in hand-written catalogs surface
// immediately instead of silently dropping a template.
func decodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yamlutil.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if len(m.Templates) == 0 {
		return nil, fmt.Errorf("%w: no templates listed", ErrInvalidManifest)
	}

	seen := make(map[string]bool, len(m.Templates))
	for i, e := range m.Templates {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidManifest, i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: duplicate template id %q", ErrInvalidManifest, e.ID)
		}
		seen[e.ID] = true
		if err := ValidateTemplateFile(e.File); err != nil {
			return nil, fmt.Errorf("%w: template %q: %v", ErrInvalidManifest, e.ID, err)
		}
	}
	return &m, nil
}
