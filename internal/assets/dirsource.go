package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirSource loads a catalog from a directory on the filesystem.
// The directory must contain catalog.yaml next to the template files it
// lists.
type DirSource struct {
	basePath string
}

// NewDirSource creates a DirSource for the given directory.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewDirSource(basePath string) (*DirSource, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in the base path so containment checks compare real
	// paths on both sides.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &DirSource{basePath: absPath}, nil
}

// LoadManifest reads and validates {basePath}/catalog.yaml.
func (d *DirSource) LoadManifest() (*Manifest, error) {
	path := filepath.Join(d.basePath, ManifestName)
	data, err := os.ReadFile(path) // #nosec G304 -- path rooted in validated base
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return decodeManifest(data)
}

// LoadTemplate reads a template file listed in the manifest.
func (d *DirSource) LoadTemplate(file string) (string, error) {
	if err := ValidateTemplateFile(file); err != nil {
		return "", err
	}

	path := filepath.Join(d.basePath, file)
	if err := d.verifyPathContainment(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, file)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// verifyPathContainment ensures the resolved file path stays inside the
// catalog directory, even when the file itself is a symlink.
func (d *DirSource) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// Resolve symlinks to the real target. If resolution fails (the file may
	// not exist), keep the absolute path; opening will fail later and the
	// prefix check below still runs.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	// Separator suffix blocks prefix collisions like /base/path vs /base/pathevil.
	if !strings.HasPrefix(absFilePath, d.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes catalog directory", ErrPathTraversal)
	}
	return nil
}
