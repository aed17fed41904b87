package paperwork

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil; zero-valued fields also pass, since they mean
// "use the default". Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// withDefaults returns a copy with every zero-valued field filled from
// DefaultPageSettings. Safe on a nil receiver.
func (p *PageSettings) withDefaults() PageSettings {
	out := *DefaultPageSettings()
	if p == nil {
		return out
	}
	if p.Size != "" {
		out.Size = p.Size
	}
	if p.Orientation != "" {
		out.Orientation = p.Orientation
	}
	if p.Margin != 0 {
		out.Margin = p.Margin
	}
	return out
}

// isValidPageSize checks if size is a known page size (case-insensitive).
// Empty is valid and means the default.
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case "", PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
// Empty is valid and means the default.
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case "", OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Document is one unit of paperwork queued for generation. HTML holds the
// finished markup for that document (typically a catalog template rendered
// against record data, sometimes stored verbatim).
type Document struct {
	ID   string // Reported back in Included/Skipped; assigned when blank
	HTML string
}

// LayoutMode names the assembly strategy that produced a result.
type LayoutMode string

const (
	// LayoutFlow stacks documents with forced page boundaries between them
	// and lets each flow across as many pages as it needs.
	LayoutFlow LayoutMode = "flow"

	// LayoutSingleFit scales a single document down, when necessary, so it
	// occupies exactly one physical page.
	LayoutSingleFit LayoutMode = "single-fit"
)

// ProcessingOutcome counts how the input set split between processed and
// skipped documents. Processed + Skipped always equals the submitted count.
type ProcessingOutcome struct {
	Processed int
	Skipped   int
}

// Batch describes one contiguous slice of a partitioned document set.
// Indexes refer to positions in the submitted document list.
type Batch struct {
	Number int // 1-based batch position
	Total  int // Total batches in the run
	Start  int // First document index (inclusive)
	End    int // Last document index (inclusive)
	Count  int // Documents in this batch
}

// GenerateRequest carries the documents and options for one generation run.
type GenerateRequest struct {
	Documents []Document

	// BatchSize caps how many documents are merged into one PDF.
	// 0 disables partitioning and merges the whole set.
	BatchSize int

	// BatchNumber selects which batch to assemble and render (1-based).
	// 0 with a multi-batch set returns the batch plan instead of bytes.
	BatchNumber int

	// Page settings for the run. Nil uses defaults.
	Page *PageSettings

	// PrintBackground controls CSS background painting. Nil means on.
	PrintBackground *bool

	// HTMLOnly skips PDF rendering and returns assembled HTML (debugging).
	HTMLOnly bool
}

// GenerateResult is the outcome of one generation run.
type GenerateResult struct {
	PDF      []byte            // Final PDF bytes (empty for HTMLOnly and batch plans)
	HTML     []byte            // Assembled HTML fed to the renderer
	Mode     LayoutMode        // Which assembly path produced the output
	Outcome  ProcessingOutcome // Processed/skipped split
	Included []string          // Document ids present in the output, in order
	Skipped  []string          // Document ids dropped for lack of usable content
	Batches  []Batch           // Batch plan (only for multi-batch requests without a number)
	RunID    string            // Correlation id, also used in logs
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	baseCSS string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("paperwork: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithBaseCSS replaces the embedded print stylesheet applied to every run.
func WithBaseCSS(css string) Option {
	return func(s *Service) {
		s.cfg.baseCSS = css
	}
}

// WithLogger sets the structured logger. The default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer injects a PDF renderer, replacing the default headless
// Chrome implementation. Used by tests and custom deployments.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}
