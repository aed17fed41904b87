package paperwork

import (
	"errors"

	"github.com/alnah/go-paperwork/internal/assemble"
	"github.com/alnah/go-paperwork/internal/assets"
	"github.com/alnah/go-paperwork/internal/template"
)

// Sentinel errors for library operations.
var (
	ErrNoDocuments     = errors.New("document set cannot be empty")
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrRenderTimeout   = errors.New("rendering timed out")
	ErrRenderResources = errors.New("browser ran out of resources")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Batch validation errors.
	ErrInvalidBatchSize = errors.New("invalid batch size")
	ErrBatchOutOfRange  = errors.New("batch number out of range")
)

// Errors owned by internal packages, re-exported so errors.Is works for
// library callers without reaching into internal paths.
var (
	// ErrEmptyResult reports that every document in the set was skipped.
	ErrEmptyResult = assemble.ErrEmptyResult

	// ErrTemplateSyntax reports unbalanced or unparseable template blocks.
	ErrTemplateSyntax = template.ErrSyntax

	// ErrTemplateNotFound reports an unknown template id in a catalog.
	ErrTemplateNotFound = assets.ErrTemplateNotFound

	// ErrInvalidCatalogDir reports an unusable template catalog directory.
	ErrInvalidCatalogDir = assets.ErrInvalidBasePath

	// ErrManifestNotFound reports a catalog directory without a manifest.
	ErrManifestNotFound = assets.ErrManifestNotFound

	// ErrInvalidManifest reports a manifest that fails parsing or validation.
	ErrInvalidManifest = assets.ErrInvalidManifest
)
