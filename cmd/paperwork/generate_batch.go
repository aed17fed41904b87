package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	paperwork "github.com/alnah/go-paperwork"
	"github.com/alnah/go-paperwork/internal/hints"
)

// RunResult holds the outcome of a single processed data file.
type RunResult struct {
	InputPath string
	Outputs   []string // Written files, in order
	Outcome   paperwork.ProcessingOutcome
	Skipped   []string // Document ids dropped for lack of usable content
	Err       error
	Duration  time.Duration
}

// processRuns processes data files concurrently using the service pool.
func processRuns(ctx context.Context, pool Pool, runs []RunToProcess, params *generateParams) []RunResult {
	if len(runs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(runs) {
		concurrency = len(runs)
	}

	results := make([]RunResult, len(runs))
	var wg sync.WaitGroup
	jobs := make(chan int, len(runs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RunResult{
						InputPath: runs[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = processRun(ctx, svc, runs[idx], params)
			}
		}()
	}

	for i := range runs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// processRun processes a single data file and returns the result.
// Multi-batch runs consume the batch plan by re-submitting each batch in
// order, so one data file can produce several PDFs.
func processRun(ctx context.Context, svc Generator, in RunToProcess, params *generateParams) RunResult {
	start := time.Now()
	result := RunResult{InputPath: in.InputPath}

	run, err := loadRun(in.InputPath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	defaultTemplate := params.defaultTemplate
	if defaultTemplate == "" {
		defaultTemplate = run.Template
	}
	docs, err := buildDocuments(run, filepath.Dir(in.InputPath), defaultTemplate, params.catalog)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	outputPath := in.OutputPath
	if !params.explicitOutput && run.Title != "" {
		outputPath = filepath.Join(filepath.Dir(outputPath), run.Title+".pdf")
	}

	outDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	req := paperwork.GenerateRequest{
		Documents:   docs,
		BatchSize:   effectiveBatchSize(params.cfg, run, params.batch),
		BatchNumber: params.batch.number,
		Page:        effectivePage(params.cfg, run.Page, params.page),
		HTMLOnly:    params.htmlOnly,
	}
	if params.cfg.Render.NoBackground {
		off := false
		req.PrintBackground = &off
	}

	res, err := svc.Generate(ctx, req)
	if err != nil {
		result.Err = decorateGenerateError(err)
		result.Duration = time.Since(start)
		return result
	}

	// A batch plan means the run splits into several PDFs.
	if len(res.Batches) > 0 {
		result = renderBatches(ctx, svc, req, res.Batches, outputPath, params, result)
		result.Duration = time.Since(start)
		return result
	}

	result.Outcome = res.Outcome
	result.Skipped = res.Skipped

	target := outputPath
	if req.BatchNumber > 0 && !params.explicitOutput {
		target = batchOutputPath(outputPath, req.BatchNumber)
	}
	outputs, err := writeOutputs(target, res, params)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Outputs = outputs

	result.Duration = time.Since(start)
	return result
}

// renderBatches renders every batch of a partitioned run sequentially on the
// same service and aggregates the per-batch outcomes.
func renderBatches(ctx context.Context, svc Generator, req paperwork.GenerateRequest, batches []paperwork.Batch, outputPath string, params *generateParams, result RunResult) RunResult {
	for _, b := range batches {
		if ctx.Err() != nil {
			result.Err = ctx.Err()
			return result
		}

		breq := req
		breq.BatchNumber = b.Number
		bres, err := svc.Generate(ctx, breq)
		if err != nil {
			result.Err = decorateGenerateError(fmt.Errorf("batch %d of %d: %w", b.Number, b.Total, err))
			return result
		}

		outputs, err := writeOutputs(batchOutputPath(outputPath, b.Number), bres, params)
		if err != nil {
			result.Err = err
			return result
		}

		result.Outputs = append(result.Outputs, outputs...)
		result.Outcome.Processed += bres.Outcome.Processed
		result.Outcome.Skipped += bres.Outcome.Skipped
		result.Skipped = append(result.Skipped, bres.Skipped...)
	}
	return result
}

// writeOutputs writes the generated artifacts for one result.
// Returns the written paths: the PDF, the HTML, or both under --html.
func writeOutputs(pdfPath string, res *paperwork.GenerateResult, params *generateParams) ([]string, error) {
	if params.htmlOnly {
		htmlPath := htmlOutputPath(pdfPath)
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, res.HTML, filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return []string{htmlPath}, nil
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(pdfPath, res.PDF, filePermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	outputs := []string{pdfPath}

	if params.writeHTML {
		htmlPath := htmlOutputPath(pdfPath)
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, res.HTML, filePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		outputs = append(outputs, htmlPath)
	}

	return outputs, nil
}

// batchOutputPath inserts a batch suffix before the .pdf extension.
func batchOutputPath(pdfPath string, number int) string {
	return fmt.Sprintf("%s-batch-%d.pdf", strings.TrimSuffix(pdfPath, ".pdf"), number)
}

// htmlOutputPath derives the HTML output path from a PDF path.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}

// decorateGenerateError appends actionable hints to browser-side failures.
func decorateGenerateError(err error) error {
	switch {
	case errors.Is(err, paperwork.ErrRenderTimeout):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, paperwork.ErrRenderResources):
		return fmt.Errorf("%w%s", err, hints.ForBatchResources())
	case errors.Is(err, paperwork.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	default:
		return err
	}
}

// ResultSummary holds the count of succeeded and failed runs.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed runs.
func countResults(results []RunResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs run results using the provided writers.
func printResults(results []RunResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if len(r.Skipped) > 0 {
			fmt.Fprintf(env.Stderr, "warning: %s skipped %d empty document(s): %s\n",
				r.InputPath, len(r.Skipped), strings.Join(r.Skipped, ", "))
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v; %d processed, %d skipped)\n",
				r.InputPath, strings.Join(r.Outputs, ", "),
				r.Duration.Round(time.Millisecond), r.Outcome.Processed, r.Outcome.Skipped)
			continue
		}

		for _, out := range r.Outputs {
			fmt.Fprintf(env.Stdout, "Created %s\n", out)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
