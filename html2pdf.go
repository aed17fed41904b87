package paperwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-paperwork/internal/assemble"
	"github.com/alnah/go-paperwork/internal/fileutil"
)

// Renderer converts final HTML into PDF bytes. It is the single blocking
// collaborator in the pipeline; implementations must honor the context and
// the options timeout.
type Renderer interface {
	RenderPDF(ctx context.Context, html string, opts *RenderOptions) ([]byte, error)
	Close() error
}

// RenderOptions holds options for one PDF render.
type RenderOptions struct {
	Page            *PageSettings // nil = defaults
	PrintBackground bool
	Timeout         time.Duration // 0 = renderer default
}

// rodRenderer implements Renderer using headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given default timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	// Configure launcher
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderPDF writes the HTML to a temp file, opens it in headless Chrome and
// prints it to PDF. Returns classified errors instead of panicking when
// browser operations fail.
func (r *rodRenderer) RenderPDF(ctx context.Context, htmlContent string, opts *RenderOptions) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, classifyRenderError(err)
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Resolve timeout: options override the default, a context deadline
	// overrides both when present.
	timeout := r.timeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, classifyRenderError(context.DeadlineExceeded)
		}
	}

	// Wait for page to load; the fit-page measurement script runs before the
	// load event fires, so the scale transform is already applied here.
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		if classified := classifyRenderError(err); classified != err {
			return nil, classified
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, classifyRenderError(err)
	}

	// Generate PDF
	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		if classified := classifyRenderError(err); classified != err {
			return nil, classified
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		if classified := classifyRenderError(err); classified != err {
			return nil, classified
		}
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from the page settings.
// Nil options and zero-valued page fields fall back to defaults.
func buildPDFOptions(opts *RenderOptions) *proto.PagePrintToPDF {
	var settings *PageSettings
	printBackground := true
	if opts != nil {
		settings = opts.Page
		printBackground = opts.PrintBackground
	}
	page := settings.withDefaults()

	w, h := assemble.PaperDimensions(assemble.Page{
		Size:        page.Size,
		Orientation: page.Orientation,
	})

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(w),
		PaperHeight:     floatPtr(h),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: printBackground,
	}
}

// classifyRenderError maps browser failures onto the stable error classes
// callers branch on. Returns the error unchanged when no class applies.
func classifyRenderError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
	case isResourceExhaustion(err):
		return fmt.Errorf("%w: %v", ErrRenderResources, err)
	}
	return err
}

// resourceMarkers identify Chrome crash and memory exhaustion failures,
// which surface as free-text messages from the DevTools protocol.
var resourceMarkers = []string{
	"out of memory",
	"crashed",
	"target closed",
	"session closed",
	"browser has disconnected",
}

// isResourceExhaustion reports whether err looks like the browser ran out
// of resources rather than a malformed payload.
func isResourceExhaustion(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range resourceMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
