package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	paperwork "github.com/alnah/go-paperwork"
	"github.com/alnah/go-paperwork/internal/fileutil"
	"github.com/alnah/go-paperwork/internal/hints"
	"github.com/alnah/go-paperwork/internal/yamlutil"
)

// Run is one print run loaded from a YAML data file: the documents to
// generate plus optional run-level settings. Settings here override config
// and environment values but lose to CLI flags.
type Run struct {
	Title     string     `yaml:"title"`     // Names the output file (default: data file name)
	Template  string     `yaml:"template"`  // Default template id for entries that name none
	Page      *PageSpec  `yaml:"page"`      // Partial page settings for this run
	BatchSize int        `yaml:"batchSize"` // Documents per PDF (0 = whole run)
	Documents []DocEntry `yaml:"documents"`
}

// PageSpec mirrors page settings in run files. All fields are optional;
// unset fields fall through to config, environment, or library defaults.
type PageSpec struct {
	Size        string  `yaml:"size"`
	Orientation string  `yaml:"orientation"`
	Margin      float64 `yaml:"margin"`
}

// DocEntry is one document in a run file. Exactly one content source must
// be set: a catalog template rendered against data, inline html, or a path
// to a stored HTML file. Entries with data but no template fall back to the
// run default (or --template).
type DocEntry struct {
	ID       string         `yaml:"id"`
	Template string         `yaml:"template"`
	Data     map[string]any `yaml:"data"`
	HTML     string         `yaml:"html"`
	File     string         `yaml:"file"`
}

// RunToProcess represents a single data file to process.
type RunToProcess struct {
	InputPath  string
	OutputPath string // Base PDF path; batch suffixes and run titles applied later
}

// discoverRuns finds all YAML data files to process.
// A file input is used as-is; a directory is walked for .yaml/.yml files,
// mirroring its structure under outputDir.
func discoverRuns(inputPath, outputDir string) ([]RunToProcess, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateDataExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []RunToProcess{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var runs []RunToProcess
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		runs = append(runs, RunToProcess{InputPath: path, OutputPath: outPath})
		return nil
	})

	return runs, err
}

// resolveOutputPath determines the PDF output path for a data file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// validateDataExtension checks that the file has a .yaml or .yml extension.
func validateDataExtension(path string) error {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// loadRun reads and validates a run data file.
func loadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadData, err)
	}

	var run Run
	if err := yamlutil.UnmarshalStrict(data, &run); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataFile, err)
	}

	if err := validateRun(&run); err != nil {
		return nil, err
	}

	return &run, nil
}

// validateRun checks structural rules before any template work happens.
func validateRun(run *Run) error {
	if len(run.Documents) == 0 {
		return fmt.Errorf("%w: no documents", ErrInvalidDataFile)
	}
	if run.BatchSize < 0 {
		return fmt.Errorf("%w: batchSize must be >= 0, got %d", ErrInvalidDataFile, run.BatchSize)
	}

	for i, e := range run.Documents {
		sources := 0
		if e.HTML != "" {
			sources++
		}
		if e.File != "" {
			sources++
		}
		if e.Template != "" || len(e.Data) > 0 {
			sources++
		}
		if sources != 1 {
			return fmt.Errorf("%w: %s needs exactly one of template data, inline html, or a file",
				ErrInvalidDataFile, describeEntry(i, e))
		}
		if e.File != "" && fileutil.IsURL(e.File) {
			return fmt.Errorf("%w: %s: remote files are not fetched", ErrInvalidDataFile, describeEntry(i, e))
		}
	}

	return nil
}

// describeEntry names a document entry for error messages, preferring its id.
func describeEntry(i int, e DocEntry) string {
	if e.ID != "" {
		return fmt.Sprintf("document %q", e.ID)
	}
	return fmt.Sprintf("document %d", i+1)
}

// buildDocuments turns run entries into documents ready for generation.
// File paths are resolved relative to baseDir (the data file's directory).
func buildDocuments(run *Run, baseDir, defaultTemplate string, catalog *paperwork.Catalog) ([]paperwork.Document, error) {
	docs := make([]paperwork.Document, 0, len(run.Documents))
	for i, e := range run.Documents {
		html, err := buildDocumentHTML(e, baseDir, defaultTemplate, catalog)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", describeEntry(i, e), err)
		}
		docs = append(docs, paperwork.Document{ID: e.ID, HTML: html})
	}
	return docs, nil
}

// buildDocumentHTML resolves one entry's content source.
func buildDocumentHTML(e DocEntry, baseDir, defaultTemplate string, catalog *paperwork.Catalog) (string, error) {
	if e.HTML != "" {
		return e.HTML, nil
	}

	if e.File != "" {
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		ext := filepath.Ext(path)
		if ext != ".html" && ext != ".htm" {
			return "", fmt.Errorf("%w: %q must be .html or .htm", ErrReadDocumentFile, e.File)
		}
		content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadDocumentFile, err)
		}
		return string(content), nil
	}

	name := e.Template
	if name == "" {
		name = defaultTemplate
	}
	if name == "" {
		return "", fmt.Errorf("%w: no template named and no run default", ErrInvalidDataFile)
	}

	html, err := catalog.Render(name, e.Data)
	if err != nil {
		if errors.Is(err, paperwork.ErrTemplateNotFound) {
			return "", fmt.Errorf("%w%s", err, hints.ForTemplateNotFound(catalog.IDs()))
		}
		return "", err
	}
	return html, nil
}
