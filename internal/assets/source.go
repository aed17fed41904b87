package assets

import (
	"embed"
	"fmt"
)

//go:embed templates/*
var templates embed.FS

// CatalogSource supplies a template manifest and the files it references.
// Implementations may load from embedded assets, a directory, or anything
// else that can produce the catalog layout.
type CatalogSource interface {
	// LoadManifest reads and validates the catalog manifest.
	LoadManifest() (*Manifest, error)

	// LoadTemplate reads one template file listed in the manifest.
	// Returns ErrTemplateNotFound if the file does not exist.
	LoadTemplate(file string) (string, error)
}

// EmbeddedSource loads the built-in catalog shipped with the library.
type EmbeddedSource struct{}

// NewEmbeddedSource creates an EmbeddedSource.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// LoadManifest reads the embedded catalog manifest.
func (e *EmbeddedSource) LoadManifest() (*Manifest, error) {
	data, err := templates.ReadFile("templates/" + ManifestName)
	if err != nil {
		return nil, fmt.Errorf("%w: embedded %s", ErrManifestNotFound, ManifestName)
	}
	return decodeManifest(data)
}

// LoadTemplate reads an embedded template file by its manifest name.
func (e *EmbeddedSource) LoadTemplate(file string) (string, error) {
	if err := ValidateTemplateFile(file); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + file)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, file)
	}
	return string(content), nil
}
