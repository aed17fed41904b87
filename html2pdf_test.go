package paperwork

// Notes:
// - Browser-dependent paths (ensureBrowser, RenderPDF against real Chrome)
//   are covered by integration tests; these tests exercise the pure parts:
//   option building and error classification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewRodRenderer(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)

	if r.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", r.timeout, defaultTimeout)
	}
	if r.browser != nil {
		t.Error("browser should connect lazily, not at construction")
	}
}

func TestRodRenderer_Close_WithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unused renderer = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - Print Option Mapping
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	t.Run("nil opts uses defaults", func(t *testing.T) {
		t.Parallel()

		pdfOpts := buildPDFOptions(nil)

		if *pdfOpts.PaperWidth != 8.5 || *pdfOpts.PaperHeight != 11.0 {
			t.Errorf("paper = %vx%v, want 8.5x11 (letter portrait)", *pdfOpts.PaperWidth, *pdfOpts.PaperHeight)
		}
		if *pdfOpts.MarginTop != DefaultMargin {
			t.Errorf("MarginTop = %v, want %v", *pdfOpts.MarginTop, DefaultMargin)
		}
		if !pdfOpts.PrintBackground {
			t.Error("PrintBackground should default to true")
		}
	})

	t.Run("a4 landscape swaps dimensions", func(t *testing.T) {
		t.Parallel()

		pdfOpts := buildPDFOptions(&RenderOptions{
			Page:            &PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.5},
			PrintBackground: true,
		})

		if *pdfOpts.PaperWidth != 11.69 || *pdfOpts.PaperHeight != 8.27 {
			t.Errorf("paper = %vx%v, want 11.69x8.27 (a4 landscape)", *pdfOpts.PaperWidth, *pdfOpts.PaperHeight)
		}
	})

	t.Run("margin applies to all four sides", func(t *testing.T) {
		t.Parallel()

		pdfOpts := buildPDFOptions(&RenderOptions{
			Page:            &PageSettings{Size: "letter", Orientation: "portrait", Margin: 1.25},
			PrintBackground: true,
		})

		for side, got := range map[string]*float64{
			"top":    pdfOpts.MarginTop,
			"bottom": pdfOpts.MarginBottom,
			"left":   pdfOpts.MarginLeft,
			"right":  pdfOpts.MarginRight,
		} {
			if *got != 1.25 {
				t.Errorf("margin %s = %v, want 1.25", side, *got)
			}
		}
	})

	t.Run("partial page settings fill defaults", func(t *testing.T) {
		t.Parallel()

		pdfOpts := buildPDFOptions(&RenderOptions{
			Page:            &PageSettings{Size: "legal"},
			PrintBackground: true,
		})

		if *pdfOpts.PaperHeight != 14.0 {
			t.Errorf("PaperHeight = %v, want 14.0 (legal)", *pdfOpts.PaperHeight)
		}
		if *pdfOpts.MarginTop != DefaultMargin {
			t.Errorf("MarginTop = %v, want default %v", *pdfOpts.MarginTop, DefaultMargin)
		}
	})

	t.Run("background can be disabled", func(t *testing.T) {
		t.Parallel()

		pdfOpts := buildPDFOptions(&RenderOptions{PrintBackground: false})

		if pdfOpts.PrintBackground {
			t.Error("PrintBackground should be off when disabled")
		}
	})
}

// ---------------------------------------------------------------------------
// TestClassifyRenderError - Failure Classification
// ---------------------------------------------------------------------------

func TestClassifyRenderError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantClass error
	}{
		{
			name:      "deadline exceeded becomes timeout",
			err:       fmt.Errorf("waiting for load: %w", context.DeadlineExceeded),
			wantClass: ErrRenderTimeout,
		},
		{
			name:      "crash becomes resource exhaustion",
			err:       errors.New("page crashed during print"),
			wantClass: ErrRenderResources,
		},
		{
			name:      "out of memory becomes resource exhaustion",
			err:       errors.New("render failed: Out Of Memory"),
			wantClass: ErrRenderResources,
		},
		{
			name:      "closed target becomes resource exhaustion",
			err:       errors.New("cdp: target closed"),
			wantClass: ErrRenderResources,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			classified := classifyRenderError(tt.err)
			if !errors.Is(classified, tt.wantClass) {
				t.Errorf("classifyRenderError() = %v, want class %v", classified, tt.wantClass)
			}
			if !strings.Contains(classified.Error(), tt.err.Error()) {
				t.Errorf("classified message should keep the cause, got %q", classified)
			}
		})
	}
}

func TestClassifyRenderError_UnknownPassesThrough(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file or directory")
	if got := classifyRenderError(cause); got != cause {
		t.Errorf("unknown error should pass through unchanged, got %v", got)
	}
}

func TestIsResourceExhaustion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "out of memory", err: errors.New("OOM: out of memory"), want: true},
		{name: "crashed", err: errors.New("tab crashed"), want: true},
		{name: "target closed", err: errors.New("Target Closed"), want: true},
		{name: "session closed", err: errors.New("session closed by peer"), want: true},
		{name: "disconnect", err: errors.New("the browser has disconnected"), want: true},
		{name: "unrelated", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isResourceExhaustion(tt.err); got != tt.want {
				t.Errorf("isResourceExhaustion(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
