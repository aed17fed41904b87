package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to the requested subcommand and returns an exit code.
// args is the full argv including the program name.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[1] {
	case "generate":
		return runGenerateCmd(args[2:], env)
	case "templates":
		return runTemplatesCmd(args[2:], env)
	case "doctor":
		return runDoctorCmd(args[2:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-paperwork %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(args[2:], env)
		return ExitSuccess
	case "-h", "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[1])
		printUsage(env.Stderr)
		return ExitUsage
	}
}
