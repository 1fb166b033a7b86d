/*
File    : unlox/eval/evaluator.go
*/

// Package eval implements the tree-walk evaluator for Lox. It walks the
// statement and expression nodes of a parsed arena, producing effects on
// the output sink, mutations to the environment cactus, and control-flow
// signals.
//
// The evaluator is single-threaded and owns its environment cactus; a
// single instance may interpret many arenas in sequence (the REPL relies
// on this), with global state carried across runs.
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/krotik/common/errorutil"

	"github.com/wiktorwieclaw/unlox/parser"
	"github.com/wiktorwieclaw/unlox/scope"
	"github.com/wiktorwieclaw/unlox/std"
)

// Evaluator holds the state for evaluating Lox AST nodes: the arena being
// executed, the environment cactus, and the two output sinks.
//
// Fields:
//   - Tree: The arena currently being executed. Function values carry
//     their own arena reference, so calls may temporarily switch it.
//   - Scp: The environment cactus for variable bindings and closures.
//   - Writer: Sink for program output (print statements).
//   - ErrWriter: Sink for diagnostics (runtime errors).
type Evaluator struct {
	Tree      *parser.Ast   // Arena being executed
	Scp       *scope.Cactus // Environment cactus
	Writer    io.Writer     // Program output sink
	ErrWriter io.Writer     // Diagnostic sink
}

// NewEvaluator creates and initializes a new Evaluator with default
// configuration: a fresh cactus holding only the global frame, output to
// os.Stdout and diagnostics to os.Stderr. Every builtin from the std
// registry is installed into the global frame, where it occupies the same
// namespace as user bindings and may be shadowed.
//
// Example usage:
//
//	ev := NewEvaluator()
//	ev.Interpret(parser.NewParser(src).Parse())
func NewEvaluator() *Evaluator {
	ev := &Evaluator{
		Scp:       scope.NewCactus(),
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}
	for _, builtin := range std.Builtins {
		ev.Scp.Frame(ev.Scp.Global()).Define(builtin.Name, builtin)
	}
	return ev
}

// SetWriter configures the sink for program output. This is particularly
// useful for testing, where output is captured into a buffer to verify
// program behavior.
func (e *Evaluator) SetWriter(w io.Writer) {
	e.Writer = w
}

// SetErrWriter configures the sink for runtime diagnostics. An embedder
// may pass the same writer used for program output; the evaluator never
// assumes the two differ.
func (e *Evaluator) SetErrWriter(w io.Writer) {
	e.ErrWriter = w
}

// Interpret executes the root statements of an arena in source order. On
// the first runtime error it prints the diagnostic to the error sink as a
// single terminated line and halts; no further statements execute. Output
// already written is not retracted.
//
// The returned error is the runtime error that halted execution, or nil
// when the program ran to completion.
func (e *Evaluator) Interpret(tree *parser.Ast) error {
	e.Tree = tree
	for _, idx := range tree.Roots() {
		sig, err := e.execute(idx)
		if err != nil {
			fmt.Fprintf(e.ErrWriter, "%s\n", err.Error())
			return err
		}
		// The grammar only permits 'return' inside a function body, so a
		// return signal can never reach the root statements.
		errorutil.AssertTrue(!sig.returning, "Return signal escaped the root scope")
	}
	return nil
}
