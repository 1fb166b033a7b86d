/*
File    : unlox/parser/parser.go
*/

/*
Package parser implements a recursive-descent parser for the Lox language.

The parser converts the lexer's token stream into an Abstract Syntax Tree
stored in an arena (see ast.go). It handles:
- Expressions (literals, unary, binary, logical, grouping, variables,
  assignments, calls) with the standard Lox precedence ladder
- Statements (declarations, print, blocks, control flow, functions, return)
- Desugaring of for-loops into while-loops
- Panic-mode error recovery at statement boundaries

Key Features:
- Error collection (doesn't panic on first error): each broken declaration
  is replaced by a placeholder node, the diagnostic is streamed to the
  error writer, and parsing resumes at the next statement boundary. The
  arena handed to the evaluator is therefore always well-formed.
- One token of lookahead, pulled lazily from the lexer.
*/
package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/wiktorwieclaw/unlox/lexer"
)

// maxCallArgs is the largest argument (and parameter) list the parser
// accepts. The 256th entry is rejected with a diagnostic.
const maxCallArgs = 255

// parseError is the internal error type of the parser. It carries the
// offending token (for the placeholder node) and a fixed English message.
type parseError struct {
	Token   lexer.Token // The token the error was detected at
	Message string      // Fixed diagnostic text
}

// Error returns the raw diagnostic message. Parse diagnostics are rendered
// without a line prefix; the line travels with the token for the runtime
// error that executing the placeholder produces.
func (e *parseError) Error() string {
	return e.Message
}

// newParseError creates a parse error at the given token.
func newParseError(token lexer.Token, message string) *parseError {
	return &parseError{Token: token, Message: message}
}

// Parser represents the parser state. It pulls tokens from the lexer one
// at a time and emits nodes into the arena it is building.
type Parser struct {
	Lex  *lexer.Lexer // Token stream for the source being parsed
	Tree *Ast         // Arena receiving the parsed nodes

	// Collected diagnostics, in the order they were reported. The same
	// messages are streamed to ErrWriter at the point of recovery.
	Errors []string

	// ErrWriter is the diagnostic sink. Defaults to os.Stderr; tests and
	// the REPL redirect it.
	ErrWriter io.Writer
}

// NewParser creates and initializes a new Parser for the given source
// code. The parser is ready to use immediately; call Parse to build the
// arena.
//
// Example:
//
//	par := NewParser(`print 1 + 2;`)
//	ast := par.Parse()
func NewParser(src string) *Parser {
	return &Parser{
		Lex:       lexer.NewLexer(src),
		Tree:      NewAst(),
		Errors:    make([]string, 0),
		ErrWriter: os.Stderr,
	}
}

// SetErrWriter redirects the parser's diagnostic output. This is used by
// tests to capture diagnostics and by embedders that unify the sinks.
func (par *Parser) SetErrWriter(w io.Writer) {
	par.ErrWriter = w
}

// Parse consumes the whole token stream and returns the completed arena.
// Every top-level declaration becomes a root statement; declarations that
// fail to parse are recovered into placeholder nodes, so the returned
// arena is always well-formed and complete.
func (par *Parser) Parse() *Ast {
	for !par.eof() {
		stmt := par.declaration()
		par.Tree.PushRootStmt(stmt)
	}
	return par.Tree
}

// HasErrors reports whether any diagnostic was recorded during parsing.
func (par *Parser) HasErrors() bool {
	return len(par.Errors) > 0
}

// GetErrors returns the recorded diagnostics in report order.
func (par *Parser) GetErrors() []string {
	return par.Errors
}

// declaration parses one declaration with panic-mode recovery. On failure
// it reports the diagnostic, synchronizes to the next statement boundary,
// and returns a placeholder node carrying the original error. It never
// returns nil.
func (par *Parser) declaration() StatementNode {
	stmt, err := par.parseDeclaration()
	if err == nil {
		return stmt
	}

	perr := err.(*parseError)
	par.report(perr)
	par.synchronize()
	return &ParseErrorStatementNode{Token: perr.Token, Message: perr.Message}
}

// report records a diagnostic and streams its raw message to the error
// writer.
func (par *Parser) report(perr *parseError) {
	par.Errors = append(par.Errors, perr.Message)
	fmt.Fprintf(par.ErrWriter, "%s\n", perr.Message)
}

// synchronize discards tokens until a statement boundary: it stops when
// the most recently consumed token was a semicolon, or when the next token
// begins a statement keyword or is the end of input.
func (par *Parser) synchronize() {
	current := par.Lex.Next()
	for {
		if current.Type == lexer.SEMI_DELIM {
			return
		}

		switch par.Lex.Peek().Type {
		case lexer.EOF_TYPE,
			lexer.CLASS_KEY,
			lexer.FUN_KEY,
			lexer.VAR_KEY,
			lexer.FOR_KEY,
			lexer.IF_KEY,
			lexer.WHILE_KEY,
			lexer.PRINT_KEY,
			lexer.RETURN_KEY:
			return
		}

		current = par.Lex.Next()
	}
}

// eof reports whether the token stream is exhausted.
func (par *Parser) eof() bool {
	return par.Lex.Peek().Type == lexer.EOF_TYPE
}

// check reports whether the next token has the given type without
// consuming it.
func (par *Parser) check(tt lexer.TokenType) bool {
	return par.Lex.Peek().Type == tt
}

// match consumes the next token if it has the given type.
func (par *Parser) match(tt lexer.TokenType) (lexer.Token, bool) {
	if par.check(tt) {
		return par.Lex.Next(), true
	}
	return lexer.Token{}, false
}

// expect consumes the next token if it has the given type, and otherwise
// fails with the given diagnostic at the unexpected token.
func (par *Parser) expect(tt lexer.TokenType, message string) (lexer.Token, error) {
	if par.check(tt) {
		return par.Lex.Next(), nil
	}
	return lexer.Token{}, newParseError(par.Lex.Peek(), message)
}
