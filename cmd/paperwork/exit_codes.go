package main

import (
	"errors"
	"os"

	paperwork "github.com/alnah/go-paperwork"
	"github.com/alnah/go-paperwork/internal/config"
)

// Exit codes for the paperwork CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful generation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, data files, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, paperwork.ErrBrowserConnect) ||
		errors.Is(err, paperwork.ErrPageCreate) ||
		errors.Is(err, paperwork.ErrPageLoad) ||
		errors.Is(err, paperwork.ErrPDFGeneration) ||
		errors.Is(err, paperwork.ErrRenderTimeout) ||
		errors.Is(err, paperwork.ErrRenderResources) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadData) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrReadDocumentFile) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, paperwork.ErrNoDocuments) ||
		errors.Is(err, paperwork.ErrEmptyResult) ||
		errors.Is(err, paperwork.ErrInvalidPageSize) ||
		errors.Is(err, paperwork.ErrInvalidOrientation) ||
		errors.Is(err, paperwork.ErrInvalidMargin) ||
		errors.Is(err, paperwork.ErrInvalidBatchSize) ||
		errors.Is(err, paperwork.ErrBatchOutOfRange) ||
		errors.Is(err, paperwork.ErrTemplateNotFound) ||
		errors.Is(err, paperwork.ErrTemplateSyntax) ||
		errors.Is(err, paperwork.ErrInvalidCatalogDir) ||
		errors.Is(err, paperwork.ErrManifestNotFound) ||
		errors.Is(err, paperwork.ErrInvalidManifest) ||
		errors.Is(err, ErrInvalidDataFile) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
