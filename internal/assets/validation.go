package assets

import (
	"fmt"
	"strings"
)

// ValidateTemplateFile checks that a manifest file reference is safe to open
// relative to the catalog directory. Catalogs are flat: the name must be a
// bare .html or .md file name without separators or traversal sequences.
func ValidateTemplateFile(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty file name", ErrInvalidTemplateFile)
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidTemplateFile, name)
	}
	if !strings.HasSuffix(name, ".html") && !strings.HasSuffix(name, ".md") {
		return fmt.Errorf("%w: %q (must end in .html or .md)", ErrInvalidTemplateFile, name)
	}
	return nil
}
