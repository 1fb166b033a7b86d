/*
File    : unlox/main/main.go

Package main is the entry point for the unlox interpreter.
It provides two modes of operation:
1. REPL Mode (default): Interactive Read-Eval-Print Loop for live coding
2. File Mode: Execute Lox source files from the command line

The interpreter uses a lexer-parser-evaluator pipeline to process Lox
code. Exit codes follow the usual Lox driver convention: 64 for a usage
error, 65 when the source failed to parse, 70 when execution hit a
runtime error.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/krotik/common/stringutil"

	"github.com/wiktorwieclaw/unlox/eval"
	"github.com/wiktorwieclaw/unlox/parser"
	"github.com/wiktorwieclaw/unlox/repl"
)

// Exit codes reported by the driver. The interpreter core never exits the
// process; it only surfaces errors for the driver to translate.
const (
	exitUsage        = 64 // Command line misuse
	exitParseError   = 65 // Source contained parse errors
	exitRuntimeError = 70 // Execution hit a runtime error
)

// VERSION represents the current version of the unlox interpreter
var VERSION = "v0.1.0"

// LICENSE specifies the software license (MIT License)
var LICENSE = "MIT"

// PROMPT is the command prompt displayed in REPL mode
var PROMPT = "unlox >>> "

// BANNER is the ASCII art logo displayed when starting the REPL
var BANNER = `
             ██
 ██  ██ ████████   ██████ ██   ██
 ██  ██ ██  ██ ██ ██    ██ ██ ██
 ██  ██ ██  ██ ██ ██    ██  ███
  ██████ ██ ██ ██  ██████ ██   ██
`

// LINE is a separator line used for visual formatting in the REPL
var LINE = stringutil.GenerateRollingString("-", 64)

// Color definitions for driver output:
// - redColor: Error messages and critical failures
// - cyanColor: Informational messages
// - yellowColor: Usage details
var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// main is the entry point of the unlox interpreter.
// It determines the operating mode based on command-line arguments:
//
// Usage:
//
//	unlox              - Start in REPL (interactive) mode
//	unlox <filename>   - Execute the specified Lox source file
//	unlox --help       - Display help information
//	unlox --version    - Display version information
func main() {
	if len(os.Args) > 2 {
		redColor.Fprintf(os.Stderr, "Usage: unlox [script]\n")
		os.Exit(exitUsage)
	}

	if len(os.Args) == 2 {
		arg := os.Args[1]

		if arg == "--help" || arg == "-h" {
			showHelp()
			return
		}
		if arg == "--version" || arg == "-v" {
			showVersion()
			return
		}

		runFile(arg)
		return
	}

	// REPL mode: start the interactive interpreter
	repler := repl.NewRepl(BANNER, VERSION, LINE, LICENSE, PROMPT)
	repler.Start(os.Stdout)
}

// runFile reads and executes a Lox source file. The whole file is parsed
// first; parse diagnostics stream to stderr as they are found, and the
// recovered program still executes so that the output before the first
// broken statement is produced. The exit code reports the most static
// failure: parse errors win over runtime errors.
func runFile(fileName string) {
	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file %s: %v\n", fileName, err)
		os.Exit(exitUsage)
	}

	par := parser.NewParser(string(source))
	tree := par.Parse()

	evaluator := eval.NewEvaluator()
	runtimeErr := evaluator.Interpret(tree)

	if par.HasErrors() {
		os.Exit(exitParseError)
	}
	if runtimeErr != nil {
		os.Exit(exitRuntimeError)
	}
}

// showHelp displays the help information for the unlox interpreter
func showHelp() {
	cyanColor.Println("unlox - A Tree-Walking Lox Interpreter")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  unlox                     Start interactive REPL mode")
	yellowColor.Println("  unlox <path-to-file>      Execute a Lox file (.lox)")
	yellowColor.Println("  unlox --help              Display this help message")
	yellowColor.Println("  unlox --version           Display version information")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  .exit                     Exit the REPL")
	cyanColor.Println("")
	cyanColor.Println("EXAMPLES:")
	yellowColor.Println("  unlox                     # Start REPL")
	yellowColor.Println("  unlox examples/fibonacci.lox")
}

// showVersion displays the interpreter version
func showVersion() {
	fmt.Println("unlox " + VERSION)
}
