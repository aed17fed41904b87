package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperwork <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate     Generate PDF documents from data files")
	fmt.Fprintln(w, "  templates    List available document templates")
	fmt.Fprintln(w, "  doctor       Check environment readiness")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'paperwork help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperwork generate <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate PDF documents from YAML data files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Data file (.yaml/.yml) or directory of data files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Catalog:")
	fmt.Fprintln(w, "      --catalog <dir>       Template catalog directory")
	fmt.Fprintln(w, "      --template <id>       Default template for documents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batching:")
	fmt.Fprintln(w, "  -b, --batch-size <n>      Documents per PDF (0 = single PDF)")
	fmt.Fprintln(w, "      --batch <n>           Generate only batch number n")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout: 30s, 2m, 1m30s (default: 30s)")
	fmt.Fprintln(w, "      --css <path>          External CSS file")
	fmt.Fprintln(w, "      --no-background       Skip printing backgrounds")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --html                Also write assembled HTML")
	fmt.Fprintln(w, "      --html-only           Write HTML, skip PDF rendering")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit Codes:")
	fmt.Fprintln(w, "  0  Success")
	fmt.Fprintln(w, "  1  General error")
	fmt.Fprintln(w, "  2  Usage, config, or data validation error")
	fmt.Fprintln(w, "  3  I/O error (file not found, permission denied)")
	fmt.Fprintln(w, "  4  Browser/Chrome error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES")
	fmt.Fprintln(w, "  paperwork generate invoices.yaml")
	fmt.Fprintln(w, "  paperwork generate -o report.pdf invoices.yaml")
	fmt.Fprintln(w, "  paperwork generate ./runs/")
	fmt.Fprintln(w, "  paperwork generate -c work invoices.yaml")
	fmt.Fprintln(w, "  paperwork generate --template invoice --timeout 2m clients.yaml")
	fmt.Fprintln(w, "  paperwork generate -p a4 --orientation landscape -b 500 clients.yaml")
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: paperwork templates [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available document templates.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --catalog <dir>       Template catalog directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Output as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: paperwork doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that Chrome, the template catalog, and the system are ready.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: paperwork version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: paperwork help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
