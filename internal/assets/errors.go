package assets

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrManifestNotFound indicates the catalog manifest does not exist.
	ErrManifestNotFound = errors.New("catalog manifest not found")

	// ErrInvalidManifest indicates the manifest could not be parsed or
	// fails validation.
	ErrInvalidManifest = errors.New("invalid catalog manifest")

	// ErrTemplateNotFound indicates a requested template does not exist,
	// whether looked up by catalog id or by manifest file name.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidTemplateFile indicates a manifest entry references an unsafe
	// or unsupported file name.
	ErrInvalidTemplateFile = errors.New("invalid template file name")

	// ErrInvalidBasePath indicates the configured catalog directory is not a
	// valid, readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading a catalog file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the
	// catalog directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
