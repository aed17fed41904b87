package main

import (
	"encoding/json"
	"fmt"
	"io"

	paperwork "github.com/alnah/go-paperwork"
	"github.com/alnah/go-paperwork/internal/config"
	flag "github.com/spf13/pflag"
)

// runTemplatesCmd lists the templates the catalog offers.
// Exit codes: 0 = OK, 2 = usage error (bad flags or catalog).
func runTemplatesCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	var (
		catalogDir string
		configName string
		jsonOutput bool
	)
	fs.StringVar(&catalogDir, "catalog", "", "template catalog directory")
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	fs.BoolVar(&jsonOutput, "json", false, "machine-readable output")
	fs.Usage = func() { printTemplatesUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	dir, err := resolveCatalogDir(catalogDir, configName)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	catalog, err := openCatalog(dir)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	infos := catalog.List()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(infos)
		return ExitSuccess
	}

	printTemplateList(env.Stdout, infos, dir)
	return ExitSuccess
}

// resolveCatalogDir determines the catalog directory.
// Priority: --catalog flag > PAPERWORK_CATALOG_DIR > config catalog.dir.
// Empty means the built-in catalog.
func resolveCatalogDir(flagDir, configName string) (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	envCfg := loadEnvConfig()
	if envCfg.CatalogDir != "" {
		return envCfg.CatalogDir, nil
	}

	name := configName
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return "", fmt.Errorf("loading config: %w", err)
		}
		return cfg.Catalog.Dir, nil
	}

	return "", nil
}

// printTemplateList writes a human-readable template listing.
func printTemplateList(w io.Writer, infos []paperwork.TemplateInfo, dir string) {
	source := "built-in"
	if dir != "" {
		source = dir
	}
	fmt.Fprintf(w, "Templates (%d, %s):\n", len(infos), source)

	idWidth := 0
	for _, info := range infos {
		if len(info.ID) > idWidth {
			idWidth = len(info.ID)
		}
	}

	for _, info := range infos {
		if info.Category != "" {
			fmt.Fprintf(w, "  %-*s  %s (%s)\n", idWidth, info.ID, info.Name, info.Category)
		} else {
			fmt.Fprintf(w, "  %-*s  %s\n", idWidth, info.ID, info.Name)
		}
	}
}
