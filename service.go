package paperwork

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/alnah/go-paperwork/internal/assemble"
	"github.com/alnah/go-paperwork/internal/assets"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ Renderer             = (*rodRenderer)(nil)
	_ assets.CatalogSource = (*assets.EmbeddedSource)(nil)
	_ assets.CatalogSource = (*assets.DirSource)(nil)
)

// Service orchestrates the document generation pipeline.
// Create with NewService(), use Generate() for runs, and Close() when done.
type Service struct {
	cfg      serviceConfig
	renderer Renderer
	logger   *zap.Logger
}

// NewService creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithBaseCSS, WithLogger).
func NewService(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			baseCSS: assets.BaseCSS(),
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s
}

// Generate runs the full pipeline and returns the result containing HTML and PDF.
// The context is used for cancellation and timeout.
//
// The layout is chosen from the request shape: a single document fits one
// page, anything else flows across pages with a break between documents.
// When BatchSize splits the set into more than one batch and no BatchNumber
// is given, Generate renders nothing and returns the batch plan instead;
// callers then re-submit once per batch.
//
// If req.HTMLOnly is true, PDF rendering is skipped (for debugging).
// Recovers from internal panics to prevent crashes from propagating to callers.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (result *GenerateResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	runID := ulid.Make().String()
	log := s.logger.With(zap.String("run_id", runID))
	start := time.Now()

	docs := withAssignedIDs(req.Documents)

	var batches []assemble.Batch
	if req.BatchSize > 0 {
		batches = assemble.Partition(len(docs), req.BatchSize)
	}

	// Resolve which documents this run covers and which layout applies.
	mode := LayoutFlow
	switch {
	case req.BatchNumber > 0:
		if req.BatchNumber > len(batches) {
			return nil, fmt.Errorf("%w: %d of %d", ErrBatchOutOfRange, req.BatchNumber, len(batches))
		}
		b := batches[req.BatchNumber-1]
		docs = docs[b.Start : b.End+1]

	case len(batches) > 1:
		// The set needs several print runs: report the split, render nothing.
		log.Info("run partitioned",
			zap.Int("documents", len(docs)),
			zap.Int("batch_size", req.BatchSize),
			zap.Int("batches", len(batches)))
		return &GenerateResult{
			Mode:    LayoutFlow,
			Batches: toBatches(batches),
			RunID:   runID,
		}, nil

	case len(docs) == 1:
		mode = LayoutSingleFit
	}

	// Assemble documents into one printable HTML document
	var ares *assemble.Result
	if mode == LayoutSingleFit {
		ares, err = assemble.LayoutSingle(toDoc(docs[0]), toPage(req.Page), s.cfg.baseCSS)
	} else {
		ares, err = assemble.Assemble(toDocs(docs), s.cfg.baseCSS)
	}
	if err != nil {
		return nil, fmt.Errorf("assembling documents: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if len(ares.Skipped) > 0 {
		log.Warn("documents skipped",
			zap.Int("count", ares.Outcome.Skipped),
			zap.Strings("document_ids", ares.Skipped))
	}

	result = &GenerateResult{
		HTML:     []byte(ares.HTML),
		Mode:     mode,
		Outcome:  ProcessingOutcome(ares.Outcome),
		Included: ares.Included,
		Skipped:  ares.Skipped,
		RunID:    runID,
	}

	// Skip PDF rendering if HTMLOnly mode
	if req.HTMLOnly {
		log.Info("generation complete",
			zap.String("mode", string(mode)),
			zap.Int("processed", ares.Outcome.Processed),
			zap.Int("skipped", ares.Outcome.Skipped),
			zap.Int("html_bytes", len(ares.HTML)),
			zap.Duration("elapsed", time.Since(start)))
		return result, nil
	}

	printBackground := true
	if req.PrintBackground != nil {
		printBackground = *req.PrintBackground
	}

	pdfBytes, err := s.renderer.RenderPDF(ctx, ares.HTML, &RenderOptions{
		Page:            req.Page,
		PrintBackground: printBackground,
		Timeout:         s.cfg.timeout,
	})
	if err != nil {
		// Timeouts and resource exhaustion scale with run size, so report
		// the size alongside the remedy.
		if errors.Is(err, ErrRenderTimeout) || errors.Is(err, ErrRenderResources) {
			log.Error("rendering failed",
				zap.Error(err),
				zap.Int("documents", ares.Outcome.Processed),
				zap.Int("html_bytes", len(ares.HTML)))
			return nil, fmt.Errorf("%w (%d documents, %d bytes of HTML): retry with a smaller batch size",
				err, ares.Outcome.Processed, len(ares.HTML))
		}
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	result.PDF = pdfBytes

	log.Info("generation complete",
		zap.String("mode", string(mode)),
		zap.Int("processed", ares.Outcome.Processed),
		zap.Int("skipped", ares.Outcome.Skipped),
		zap.Int("pdf_bytes", len(pdfBytes)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// validateRequest checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build GenerateRequest
// manually. CLI users have their input validated earlier by Config.Validate()
// at config load time. Both paths converge here, ensuring all inputs are
// validated before processing.
func (s *Service) validateRequest(req GenerateRequest) error {
	if len(req.Documents) == 0 {
		return ErrNoDocuments
	}
	if req.BatchSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, req.BatchSize)
	}
	if req.BatchNumber < 0 {
		return fmt.Errorf("%w: %d", ErrBatchOutOfRange, req.BatchNumber)
	}
	if req.BatchNumber > 0 && req.BatchSize == 0 {
		return fmt.Errorf("%w: batch %d requested without a batch size", ErrInvalidBatchSize, req.BatchNumber)
	}
	if err := req.Page.Validate(); err != nil {
		return err
	}
	return nil
}

// withAssignedIDs returns a copy of docs where every blank ID carries a
// fresh ULID, so skip and include reporting can always name a document.
func withAssignedIDs(docs []Document) []Document {
	out := make([]Document, len(docs))
	copy(out, docs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = ulid.Make().String()
		}
	}
	return out
}

// toDoc converts the public Document type to internal assemble.Doc.
func toDoc(d Document) assemble.Doc {
	return assemble.Doc{ID: d.ID, HTML: d.HTML}
}

// toDocs converts public Documents to internal assemble.Docs.
func toDocs(docs []Document) []assemble.Doc {
	out := make([]assemble.Doc, len(docs))
	for i, d := range docs {
		out[i] = toDoc(d)
	}
	return out
}

// toPage converts the public PageSettings type to internal assemble.Page.
// Nil settings and zero-valued fields mean defaults.
func toPage(p *PageSettings) assemble.Page {
	q := p.withDefaults()
	return assemble.Page{Size: q.Size, Orientation: q.Orientation, Margin: q.Margin}
}

// toBatches converts internal partition batches to their public form.
func toBatches(batches []assemble.Batch) []Batch {
	out := make([]Batch, len(batches))
	for i, b := range batches {
		out[i] = Batch(b)
	}
	return out
}
