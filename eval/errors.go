/*
File    : unlox/eval/errors.go
*/
package eval

import (
	"fmt"

	"github.com/wiktorwieclaw/unlox/lexer"
)

// ErrorKind identifies the category of a runtime error. The kinds cover
// every way a well-formed program can fail at runtime, plus the Parsing
// kind raised when execution reaches a parser recovery placeholder.
type ErrorKind int

const (
	// ExpectedNumber: unary '-' applied to a non-number
	ExpectedNumber ErrorKind = iota
	// ExpectedNumbers: arithmetic or ordering on non-numbers
	ExpectedNumbers
	// ExpectedNumbersOrStrings: '+' on mismatched or unsupported operands
	ExpectedNumbersOrStrings
	// UndefinedVariable: read or assignment of an unknown name
	UndefinedVariable
	// BadCall: call of a value that is not callable
	BadCall
	// WrongNumberOfArgs: call with the wrong argument count
	WrongNumberOfArgs
	// Parsing: execution reached a parse-error placeholder node
	Parsing
)

// RuntimeError is the error type produced by the evaluator. It carries the
// offending token so the diagnostic can name the source line.
type RuntimeError struct {
	Kind    ErrorKind   // Category of the failure
	Token   lexer.Token // Token the failure is attributed to
	Message string      // Fixed English diagnostic text
}

// Error renders the diagnostic as a single line in the form
// "[Line N]: MESSAGE".
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[Line %d]: %s", e.Token.Line, e.Message)
}

// expectedNumberError reports unary '-' on a non-number operand.
func expectedNumberError(operator lexer.Token) *RuntimeError {
	return &RuntimeError{
		Kind:    ExpectedNumber,
		Token:   operator,
		Message: "Operand must be a number.",
	}
}

// expectedNumbersError reports binary arithmetic or comparison on
// non-number operands.
func expectedNumbersError(operator lexer.Token) *RuntimeError {
	return &RuntimeError{
		Kind:    ExpectedNumbers,
		Token:   operator,
		Message: "Operands must be numbers.",
	}
}

// expectedNumbersOrStringsError reports '+' on operands that are neither
// two numbers nor two strings.
func expectedNumbersOrStringsError(operator lexer.Token) *RuntimeError {
	return &RuntimeError{
		Kind:    ExpectedNumbersOrStrings,
		Token:   operator,
		Message: "Operands must be two numbers or two strings.",
	}
}

// undefinedVariableError reports a read or assignment of a name with no
// binding anywhere on the frame chain.
func undefinedVariableError(name lexer.Token) *RuntimeError {
	return &RuntimeError{
		Kind:    UndefinedVariable,
		Token:   name,
		Message: fmt.Sprintf("Undefined variable %s.", name.Literal),
	}
}

// badCallError reports a call whose callee is not a callable value.
func badCallError(paren lexer.Token) *RuntimeError {
	return &RuntimeError{
		Kind:    BadCall,
		Token:   paren,
		Message: "Can only call functions and classes.",
	}
}

// wrongNumberOfArgsError reports an arity mismatch.
func wrongNumberOfArgsError(paren lexer.Token, expected, got int) *RuntimeError {
	return &RuntimeError{
		Kind:    WrongNumberOfArgs,
		Token:   paren,
		Message: fmt.Sprintf("Expected %d arguments but got %d.", expected, got),
	}
}

// parsingError surfaces the parse diagnostic recorded in a recovery
// placeholder when execution reaches it.
func parsingError(token lexer.Token, message string) *RuntimeError {
	return &RuntimeError{
		Kind:    Parsing,
		Token:   token,
		Message: message,
	}
}
