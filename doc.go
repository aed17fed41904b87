// Package paperwork turns stored business documents into print-ready PDFs
// using headless Chrome.
//
// # Quick Start
//
// Create a service, generate a PDF from stored document HTML, and close
// when done:
//
//	svc := paperwork.NewService()
//	defer svc.Close()
//
//	result, err := svc.Generate(ctx, paperwork.GenerateRequest{
//	    Documents: []paperwork.Document{
//	        {ID: "invoice-1041", HTML: storedHTML},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result contains both the PDF bytes (result.PDF) and the assembled
// HTML (result.HTML) for debugging. Use GenerateRequest.HTMLOnly to skip
// PDF rendering.
//
// # Generation Pipeline
//
// The generation process follows these stages:
//
//  1. Template rendering ({{placeholder}} substitution against record data)
//  2. Normalization (fragment parsing via goquery, style extraction,
//     empty-document detection)
//  3. Assembly (single document scaled to one page, or the whole set
//     flowing with a page break between documents)
//  4. PDF rendering via headless Chrome (go-rod)
//
// Stage 1 is optional: documents stored as finished HTML enter at stage 2.
//
// # Templates
//
// A Catalog holds named document templates. The built-in catalog ships
// inside the binary; OpenCatalog loads a custom one from disk:
//
//	catalog, err := paperwork.DefaultCatalog()
//	html, err := catalog.Render("invoice", map[string]any{
//	    "number": "1041",
//	    "customer": map[string]any{"name": "ACME Corp"},
//	    "lines": []any{
//	        map[string]any{"item": "Widget", "total": "120.00"},
//	    },
//	})
//
// Placeholders without a matching key stay verbatim in the output, so a
// half-filled template renders instead of failing.
//
// # Batching
//
// Large document sets exhaust a single browser render. Set BatchSize to
// partition the set; Generate then returns a batch plan instead of bytes,
// and callers re-submit once per batch:
//
//	plan, _ := svc.Generate(ctx, paperwork.GenerateRequest{
//	    Documents: docs,
//	    BatchSize: 300,
//	})
//	for _, b := range plan.Batches {
//	    res, err := svc.Generate(ctx, paperwork.GenerateRequest{
//	        Documents:   docs,
//	        BatchSize:   300,
//	        BatchNumber: b.Number,
//	    })
//	    // write res.PDF
//	}
//
// Sets that fit in one batch are rendered directly; no plan round-trip.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := paperwork.NewService(
//	    paperwork.WithTimeout(2 * time.Minute),
//	    paperwork.WithBaseCSS(customPrintCSS),
//	    paperwork.WithLogger(logger),
//	)
//
// # Parallel Processing
//
// To process several data files at once, use ServicePool to manage
// multiple browser instances:
//
//	pool := paperwork.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//	result, err := svc.Generate(ctx, req)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package paperwork
