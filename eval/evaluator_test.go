/*
File    : unlox/eval/evaluator_test.go
*/
package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiktorwieclaw/unlox/parser"
)

// run parses and interprets src with both sinks captured. Parse
// diagnostics and runtime diagnostics share the error buffer, the way a
// terminal session sees them.
func run(src string) (stdout string, stderr string, err error) {
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	par := parser.NewParser(src)
	par.SetErrWriter(errBuf)
	tree := par.Parse()

	ev := NewEvaluator()
	ev.SetWriter(out)
	ev.SetErrWriter(errBuf)
	err = ev.Interpret(tree)

	return out.String(), errBuf.String(), err
}

// TestEvaluator_Arithmetic verifies number arithmetic, precedence and
// grouping
func TestEvaluator_Arithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`print 2 + 2 * 2;`, "6\n"},
		{`print (2 + 2) * 2;`, "8\n"},
		{`print 10 - 4 / 2;`, "8\n"},
		{`print -3;`, "-3\n"},
		{`print --3;`, "3\n"},
		{`print 0.1 + 0.2 == 0.3;`, "false\n"},
		{`print 1 / 0;`, "+Inf\n"},
		{`print -1 / 0;`, "-Inf\n"},
		{`print 3.14;`, "3.14\n"},
		{`print -0;`, "-0\n"},
	}

	for _, tt := range tests {
		stdout, _, err := run(tt.input)
		assert.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.expected, stdout, "input: %q", tt.input)
	}
}

// TestEvaluator_Strings verifies string literals and concatenation
func TestEvaluator_Strings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`print "hello";`, "hello\n"},
		{`print "foo" + "bar";`, "foobar\n"},
		{`print "" + "x";`, "x\n"},
		{`print "a" == "a";`, "true\n"},
		{`print "a" == "b";`, "false\n"},
	}

	for _, tt := range tests {
		stdout, _, err := run(tt.input)
		assert.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.expected, stdout, "input: %q", tt.input)
	}
}

// TestEvaluator_Equality verifies structural equality across types,
// including the NaN corner case
func TestEvaluator_Equality(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`print 1 == 1;`, "true\n"},
		{`print 1 != 2;`, "true\n"},
		{`print nil == nil;`, "true\n"},
		{`print 1 == "1";`, "false\n"},
		{`print true == 1;`, "false\n"},
		{`print nil == false;`, "false\n"},
		{`var n = 0 / 0; print n == n;`, "false\n"},
	}

	for _, tt := range tests {
		stdout, _, err := run(tt.input)
		assert.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.expected, stdout, "input: %q", tt.input)
	}
}

// TestEvaluator_Truthiness verifies that only false and nil are falsey
func TestEvaluator_Truthiness(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`if (0) print "t"; else print "f";`, "t\n"},
		{`if ("") print "t"; else print "f";`, "t\n"},
		{`if (nil) print "t"; else print "f";`, "f\n"},
		{`if (false) print "t"; else print "f";`, "f\n"},
		{`print !nil;`, "true\n"},
		{`print !0;`, "false\n"},
		{`print !!"";`, "true\n"},
	}

	for _, tt := range tests {
		stdout, _, err := run(tt.input)
		assert.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.expected, stdout, "input: %q", tt.input)
	}
}

// TestEvaluator_Logical verifies short-circuit evaluation and that the
// settling operand is the result value
func TestEvaluator_Logical(t *testing.T) {
	stdout, _, err := run("print \"hi\" or 2;\nprint nil or \"yes\";")
	assert.NoError(t, err)
	assert.Equal(t, "hi\nyes\n", stdout)

	stdout, _, err = run(`print nil and 1; print 1 and 2;`)
	assert.NoError(t, err)
	assert.Equal(t, "nil\n2\n", stdout)

	// The right operand of a settled 'and' is never evaluated: no side
	// effects, no errors.
	src := `
		var called = "no";
		fun touch() {
			called = "yes";
			return true;
		}
		false and touch();
		print called;
		true or touch();
		print called;
	`
	stdout, _, err = run(src)
	assert.NoError(t, err)
	assert.Equal(t, "no\nno\n", stdout)
}

// TestEvaluator_Variables verifies declaration, assignment and scoping
func TestEvaluator_Variables(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`var x = 1; print x;`, "1\n"},
		{`var x; print x;`, "nil\n"},
		{`var x = 1; x = 2; print x;`, "2\n"},
		// Assignment is an expression returning the assigned value.
		{`var x; print x = 5;`, "5\n"},
		{`var x; var y; x = y = 3; print x + y;`, "6\n"},
		// Blocks shadow; the outer binding survives.
		{`var x = "outer"; { var x = "inner"; print x; } print x;`, "inner\nouter\n"},
		// Assignment inside a block writes the defining frame.
		{`var x = 1; { x = 2; } print x;`, "2\n"},
		// Redeclaration in the same frame is allowed.
		{`var x = 1; var x = 2; print x;`, "2\n"},
	}

	for _, tt := range tests {
		stdout, _, err := run(tt.input)
		assert.NoError(t, err, "input: %q", tt.input)
		assert.Equal(t, tt.expected, stdout, "input: %q", tt.input)
	}
}

// TestEvaluator_While verifies while loops
func TestEvaluator_While(t *testing.T) {
	stdout, _, err := run(`var n = 3; while (n > 0) { print n; n = n - 1; }`)
	assert.NoError(t, err)
	assert.Equal(t, "3\n2\n1\n", stdout)
}

// TestEvaluator_For verifies the fibonacci trace of the classic for-loop
func TestEvaluator_For(t *testing.T) {
	src := `
		var a = 0;
		var temp;

		for (var b = 1; a < 100; b = temp + b) {
			print a;
			temp = a;
			a = b;
		}
	`
	stdout, _, err := run(src)
	assert.NoError(t, err)
	assert.Equal(t, "0\n1\n1\n2\n3\n5\n8\n13\n21\n34\n55\n89\n", stdout)
}

// TestEvaluator_ForDesugaringTrace verifies that a for-loop and its
// while-form rewrite produce the same observable trace
func TestEvaluator_ForDesugaringTrace(t *testing.T) {
	forSrc := `for (var i = 0; i < 3; i = i + 1) print i;`
	whileSrc := `{ var i = 0; while (i < 3) { print i; i = i + 1; } }`

	forOut, _, err := run(forSrc)
	assert.NoError(t, err)
	whileOut, _, err := run(whileSrc)
	assert.NoError(t, err)
	assert.Equal(t, whileOut, forOut)
	assert.Equal(t, "0\n1\n2\n", forOut)
}

// TestEvaluator_Functions verifies declarations, calls, returns and
// recursion
func TestEvaluator_Functions(t *testing.T) {
	src := `
		fun sayHi(first, last) {
			print "Hi, " + first + " " + last + "!";
		}

		sayHi("Dear", "Reader");
	`
	stdout, _, err := run(src)
	assert.NoError(t, err)
	assert.Equal(t, "Hi, Dear Reader!\n", stdout)

	src = `
		fun fib(n) {
			if (n <= 1) return n;
			return fib(n - 2) + fib(n - 1);
		}

		print fib(12);
	`
	stdout, _, err = run(src)
	assert.NoError(t, err)
	assert.Equal(t, "144\n", stdout)

	src = `
		fun fibonacci(n) {
			var a = 0;
			var b = 1;

			for (var i = 0; i < n; i = i + 1) {
				var temp = a;
				a = b;
				b = temp + b;
			}
			return a;
		}

		print fibonacci(12);
	`
	stdout, _, err = run(src)
	assert.NoError(t, err)
	assert.Equal(t, "144\n", stdout)

	// A bare return and a missing return both produce nil.
	stdout, _, err = run(`fun a() { return; } fun b() {} print a(); print b();`)
	assert.NoError(t, err)
	assert.Equal(t, "nil\nnil\n", stdout)

	// A return inside a loop unwinds through it.
	src = `
		fun firstOver(limit) {
			var n = 0;
			while (true) {
				if (n > limit) return n;
				n = n + 1;
			}
		}
		print firstOver(5);
	`
	stdout, _, err = run(src)
	assert.NoError(t, err)
	assert.Equal(t, "6\n", stdout)
}

// TestEvaluator_Closures verifies lexical scoping: free variables resolve
// against the frame active at definition, not at the call site
func TestEvaluator_Closures(t *testing.T) {
	src := `
		var a = 1;

		fun main() {
			var b = 2;

			fun nested() {
				print a;
				print b;
			}

			nested();
		}
		main();
	`
	stdout, _, err := run(src)
	assert.NoError(t, err)
	assert.Equal(t, "1\n2\n", stdout)

	// The definition frame wins over a call-site binding of the same name.
	src = `
		var x = "lexical";
		fun f() { print x; }
		fun g() {
			var x = "dynamic";
			f();
		}
		g();
	`
	stdout, _, err = run(src)
	assert.NoError(t, err)
	assert.Equal(t, "lexical\n", stdout)

	// A returned closure keeps its defining frame alive and mutates it.
	src = `
		fun makeCounter() {
			var n = 0;
			fun inc() {
				n = n + 1;
				print n;
			}
			return inc;
		}

		var counter = makeCounter();
		counter();
		counter();
		var other = makeCounter();
		other();
		counter();
	`
	stdout, _, err = run(src)
	assert.NoError(t, err)
	assert.Equal(t, "1\n2\n1\n3\n", stdout)
}

// TestEvaluator_PrintCallables verifies the display forms of functions
func TestEvaluator_PrintCallables(t *testing.T) {
	stdout, _, err := run(`fun f(a, b) {} print f; print clock;`)
	assert.NoError(t, err)
	assert.Equal(t, "<fn f>\n<native fn>\n", stdout)
}

// TestEvaluator_Clock verifies the clock builtin and that it is an
// ordinary, shadowable global binding
func TestEvaluator_Clock(t *testing.T) {
	stdout, _, err := run(`var t = clock(); print t > 0;`)
	assert.NoError(t, err)
	assert.Equal(t, "true\n", stdout)

	// Time is monotonic enough for a coarse check.
	stdout, _, err = run(`var a = clock(); var b = clock(); print b >= a;`)
	assert.NoError(t, err)
	assert.Equal(t, "true\n", stdout)

	// Shadowing has no special rules.
	stdout, _, err = run(`var clock = "mine"; print clock;`)
	assert.NoError(t, err)
	assert.Equal(t, "mine\n", stdout)
}

// TestEvaluator_RuntimeErrors verifies the error taxonomy: exact
// diagnostic lines, error kinds, and the offending line number
func TestEvaluator_RuntimeErrors(t *testing.T) {
	tests := []struct {
		input    string
		kind     ErrorKind
		expected string
	}{
		{`print -"a";`, ExpectedNumber, "[Line 1]: Operand must be a number.\n"},
		{`print 1 < "a";`, ExpectedNumbers, "[Line 1]: Operands must be numbers.\n"},
		{`print "a" * 2;`, ExpectedNumbers, "[Line 1]: Operands must be numbers.\n"},
		{`print 1 + "a";`, ExpectedNumbersOrStrings, "[Line 1]: Operands must be two numbers or two strings.\n"},
		{`print nil + nil;`, ExpectedNumbersOrStrings, "[Line 1]: Operands must be two numbers or two strings.\n"},
		{`print missing;`, UndefinedVariable, "[Line 1]: Undefined variable missing.\n"},
		{`missing = 1;`, UndefinedVariable, "[Line 1]: Undefined variable missing.\n"},
		{`"hi"();`, BadCall, "[Line 1]: Can only call functions and classes.\n"},
		{`nil();`, BadCall, "[Line 1]: Can only call functions and classes.\n"},
		{`fun f(a) {} f(1, 2);`, WrongNumberOfArgs, "[Line 1]: Expected 1 arguments but got 2.\n"},
		{`clock(1);`, WrongNumberOfArgs, "[Line 1]: Expected 0 arguments but got 1.\n"},
	}

	for _, tt := range tests {
		stdout, stderr, err := run(tt.input)
		assert.Equal(t, "", stdout, "input: %q", tt.input)
		assert.Equal(t, tt.expected, stderr, "input: %q", tt.input)
		if assert.Error(t, err, "input: %q", tt.input) {
			assert.True(t, IsRuntimeError(err, tt.kind), "input: %q", tt.input)
		}
	}
}

// TestEvaluator_ErrorLineNumbers verifies that the diagnostic names the
// line of the offending token inside a multi-line program
func TestEvaluator_ErrorLineNumbers(t *testing.T) {
	src := `fun broken() {
    print missing;
}
broken();
print "after";`

	stdout, stderr, err := run(src)
	assert.Error(t, err)
	assert.Equal(t, "[Line 2]: Undefined variable missing.\n", stderr)
	// Execution halted; nothing after the error ran.
	assert.Equal(t, "", stdout)
}

// TestEvaluator_HaltsOnFirstError verifies that output already written is
// kept and later statements never run
func TestEvaluator_HaltsOnFirstError(t *testing.T) {
	stdout, stderr, err := run(`print "before"; print missing; print "never";`)
	assert.Error(t, err)
	assert.Equal(t, "before\n", stdout)
	assert.Equal(t, "[Line 1]: Undefined variable missing.\n", stderr)
}

// TestEvaluator_ShortCircuitSkipsErrors verifies that a settled logical
// operator never evaluates (and never fails on) its right operand
func TestEvaluator_ShortCircuitSkipsErrors(t *testing.T) {
	stdout, stderr, err := run(`print false and missing; print true or missing;`)
	assert.NoError(t, err)
	assert.Equal(t, "false\ntrue\n", stdout)
	assert.Equal(t, "", stderr)
}

// TestEvaluator_ParseErrPlaceholder verifies that a recovered parse error
// halts execution when reached, surfacing the original diagnostic
func TestEvaluator_ParseErrPlaceholder(t *testing.T) {
	// The broken declaration comes first: nothing runs.
	stdout, stderr, err := run("var = 1;\nprint 2;")
	if assert.Error(t, err) {
		assert.True(t, IsRuntimeError(err, Parsing))
	}
	assert.Equal(t, "", stdout)
	// The parser streamed the raw message during recovery, then the
	// evaluator reported the placeholder with its line.
	assert.Equal(t, "Expected variable name.\n[Line 1]: Expected variable name.\n", stderr)

	// Statements before the broken one still execute.
	stdout, _, err = run("print 1;\nvar = 2;")
	assert.Error(t, err)
	assert.Equal(t, "1\n", stdout)
}

// TestEvaluator_SessionPersistence verifies that one evaluator carries
// state across arenas, the way the REPL drives it: a function parsed in
// one line stays callable from the next
func TestEvaluator_SessionPersistence(t *testing.T) {
	out := &bytes.Buffer{}
	ev := NewEvaluator()
	ev.SetWriter(out)
	ev.SetErrWriter(out)

	lines := []string{
		`var greeting = "hello";`,
		`fun greet(name) { print greeting + ", " + name; }`,
		`greet("world");`,
		`greeting = "goodbye";`,
		`greet("world");`,
	}
	for _, line := range lines {
		par := parser.NewParser(line)
		tree := par.Parse()
		assert.False(t, par.HasErrors())
		assert.NoError(t, ev.Interpret(tree))
	}
	assert.Equal(t, "hello, world\ngoodbye, world\n", out.String())
}

// TestEvaluator_BlockFramePoppedOnError verifies that error exits unwind
// the active stack back to the global frame
func TestEvaluator_BlockFramePoppedOnError(t *testing.T) {
	ev := NewEvaluator()
	ev.SetWriter(&bytes.Buffer{})
	ev.SetErrWriter(&bytes.Buffer{})

	par := parser.NewParser(`{ var x = 1; { print missing; } }`)
	par.SetErrWriter(&bytes.Buffer{})
	assert.Error(t, ev.Interpret(par.Parse()))
	assert.Equal(t, ev.Scp.Global(), ev.Scp.Current())
}
