package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	paperwork "github.com/alnah/go-paperwork"
	"github.com/alnah/go-paperwork/internal/config"
	"github.com/alnah/go-paperwork/internal/fileutil"
	"github.com/alnah/go-paperwork/internal/hints"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadData           = errors.New("failed to read data file")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrReadDocumentFile   = errors.New("failed to read document file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidDataFile    = errors.New("invalid data file")
	ErrInvalidExtension   = errors.New("data file must have .yaml or .yml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Generator is the interface for the generation service.
type Generator interface {
	Generate(ctx context.Context, req paperwork.GenerateRequest) (*paperwork.GenerateResult, error)
}

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() *paperwork.Service
	Release(*paperwork.Service)
	Size() int
}

// Compile-time interface implementation checks.
var (
	_ Generator = (*paperwork.Service)(nil)
	_ Pool      = (*paperwork.ServicePool)(nil)
)

// generateParams groups parameters shared across run processing.
type generateParams struct {
	catalog         *paperwork.Catalog
	cfg             *config.Config
	defaultTemplate string // --template; overrides run-level defaults
	page            pageFlags
	batch           batchFlags
	writeHTML       bool
	htmlOnly        bool
	explicitOutput  bool // -o named a single .pdf file; titles and batch suffixes are skipped
}

// runGenerateCmd wires up the real service pool and executes generate.
func runGenerateCmd(args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	// Container-aware GOMAXPROCS before pool sizing. Error ignored:
	// maxprocs.Set only fails if the GOMAXPROCS env is invalid, in which
	// case Go runtime defaults apply and the program continues safely.
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	opts, err := serviceOptions(flags, envCfg, cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	poolSize := paperwork.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := paperwork.NewServicePool(poolSize, opts...)
	defer pool.Close()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runGenerate(ctx, positional, flags, cfg, pool, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate orchestrates the generation process.
func runGenerate(ctx context.Context, positionalArgs []string, flags *generateFlags, cfg *config.Config, pool Pool, env *Environment) error {
	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: pass one or more data files or directories", ErrNoInput)
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	var runs []RunToProcess
	for _, input := range positionalArgs {
		found, err := discoverRuns(input, outputDir)
		if err != nil {
			return fmt.Errorf("discovering data files: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("no data files found in %s", input)
		}
		runs = append(runs, found...)
	}

	catalog, err := openCatalog(cfg.Catalog.Dir)
	if err != nil {
		return err
	}

	params := &generateParams{
		catalog:         catalog,
		cfg:             cfg,
		defaultTemplate: flags.catalog.template,
		page:            flags.page,
		batch:           flags.batch,
		writeHTML:       flags.outputMode.html,
		htmlOnly:        flags.outputMode.htmlOnly,
		explicitOutput:  isPDFPath(flags.output),
	}

	results := processRuns(ctx, pool, runs, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d run(s) failed", failedCount)
	}

	return nil
}

// resolveConfig builds the effective configuration: defaults, then config
// file, then environment, then CLI flags. Page and batch flags stay out of
// the merge; they are applied per run after run-file settings.
func resolveConfig(flags *generateFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.catalog.dir != "" {
		cfg.Catalog.Dir = flags.catalog.dir
	}
	if flags.render.noBackground {
		cfg.Render.NoBackground = true
	}
}

// serviceOptions assembles library options from flags, environment, and config.
func serviceOptions(flags *generateFlags, envCfg *envConfig, cfg *config.Config) ([]paperwork.Option, error) {
	var opts []paperwork.Option

	timeout, err := resolveTimeout(flags.render.timeout, envCfg.Timeout, cfg.Render.TimeoutSeconds)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, paperwork.WithTimeout(timeout))
	}

	if flags.render.css != "" {
		content, err := os.ReadFile(flags.render.css) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		opts = append(opts, paperwork.WithBaseCSS(string(content)))
	}

	if flags.common.verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			opts = append(opts, paperwork.WithLogger(logger))
		}
	}

	return opts, nil
}

// resolveTimeout determines the render timeout.
// Priority: --timeout flag > PAPERWORK_TIMEOUT > config render.timeoutSeconds.
// Returns 0 when nothing is set, which keeps the library default.
func resolveTimeout(flagValue string, envValue time.Duration, configSeconds int) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %q", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configSeconds > 0 {
		return time.Duration(configSeconds) * time.Second, nil
	}
	return 0, nil
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// openCatalog opens the template catalog: a user directory when configured,
// the built-in set otherwise.
func openCatalog(dir string) (*paperwork.Catalog, error) {
	if dir == "" {
		return paperwork.DefaultCatalog()
	}
	return paperwork.OpenCatalog(dir)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > paperwork.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, paperwork.MaxPoolSize)
	}
	return nil
}

// effectivePage layers page settings: config (with env applied), then the
// run file, then CLI flags. Returns nil when nothing is set anywhere, which
// keeps the library defaults.
func effectivePage(cfg *config.Config, runPage *PageSpec, fl pageFlags) *paperwork.PageSettings {
	p := paperwork.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margin:      cfg.Page.Margin,
	}

	if runPage != nil {
		if runPage.Size != "" {
			p.Size = runPage.Size
		}
		if runPage.Orientation != "" {
			p.Orientation = runPage.Orientation
		}
		if runPage.Margin > 0 {
			p.Margin = runPage.Margin
		}
	}

	if fl.size != "" {
		p.Size = fl.size
	}
	if fl.orientation != "" {
		p.Orientation = fl.orientation
	}
	if fl.margin > 0 {
		p.Margin = fl.margin
	}

	if p == (paperwork.PageSettings{}) {
		return nil
	}
	return &p
}

// effectiveBatchSize layers batch size the same way as effectivePage.
func effectiveBatchSize(cfg *config.Config, run *Run, fl batchFlags) int {
	size := cfg.Batch.Size
	if run.BatchSize > 0 {
		size = run.BatchSize
	}
	if fl.size > 0 {
		size = fl.size
	}
	return size
}

// isPDFPath reports whether the output flag names a single PDF file.
func isPDFPath(output string) bool {
	return strings.HasSuffix(output, ".pdf")
}
