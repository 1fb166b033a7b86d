/*
File    : unlox/repl/repl.go

Package repl implements the Read-Eval-Print Loop (REPL) for the unlox
interpreter. The REPL provides an interactive environment where users can:
- Enter Lox code line by line
- See immediate results of their code execution
- Navigate command history using arrow keys
- Receive colored feedback for different types of output

The REPL uses the readline library for enhanced line editing capabilities
and keeps a single evaluator alive across lines, so variables and
functions defined earlier stay available.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/wiktorwieclaw/unlox/eval"
	"github.com/wiktorwieclaw/unlox/parser"
)

// Color definitions for REPL output
// These colors provide visual feedback to enhance user experience:
// - blueColor: Decorative lines and separators
// - yellowColor: Version info
// - redColor: Error messages
// - greenColor: Banner
// - cyanColor: Informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents the Read-Eval-Print Loop instance.
// It encapsulates all the configuration needed to run an interactive
// session.
type Repl struct {
	Banner  string // ASCII art banner displayed at startup
	Version string // Version string of the interpreter
	Line    string // Separator line for visual formatting
	License string // Software license information
	Prompt  string // Command prompt shown to the user (e.g., "unlox >>> ")
}

// NewRepl creates and initializes a new REPL instance with the visual
// elements used by the interactive session.
func NewRepl(banner string, version string, line string, license string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions when
// the REPL starts.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to unlox!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop:
// 1. Displays the welcome banner
// 2. Sets up readline for line editing and history
// 3. Creates a single evaluator shared by all lines
// 4. Reads, parses and interprets lines until exit
//
// The loop continues until the user types '.exit' or EOF is encountered
// (Ctrl+D). Diagnostics never kill the session: a line with a parse or
// runtime error is reported in red and the prompt returns.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// One evaluator for the whole session. Its diagnostic sink is
	// silenced; errors are rendered in color below instead.
	evaluator := eval.NewEvaluator()
	evaluator.SetWriter(writer)
	evaluator.SetErrWriter(io.Discard)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.interpretLine(writer, line, evaluator)
	}
}

// interpretLine parses and evaluates one line of input. Parse diagnostics
// are shown without executing the line; runtime errors are shown after
// whatever output the line managed to produce. The evaluator keeps its
// state either way, so the user can correct mistakes and continue.
func (r *Repl) interpretLine(writer io.Writer, line string, evaluator *eval.Evaluator) {
	par := parser.NewParser(line)
	par.SetErrWriter(io.Discard)
	tree := par.Parse()

	if par.HasErrors() {
		for _, msg := range par.GetErrors() {
			redColor.Fprintf(writer, "%s\n", msg)
		}
		return
	}

	if err := evaluator.Interpret(tree); err != nil {
		redColor.Fprintf(writer, "%s\n", err)
	}
}
