/*
File    : unlox/function/function.go
*/

// Package function defines the runtime representation of user-defined Lox
// functions. A function value pairs the parsed body (a list of statement
// indices into the arena) with the frame it was defined in, which is what
// makes closures work: calls are parented at that frame, not at the call
// site.
package function

import (
	"fmt"

	"github.com/wiktorwieclaw/unlox/lexer"
	"github.com/wiktorwieclaw/unlox/objects"
	"github.com/wiktorwieclaw/unlox/parser"
	"github.com/wiktorwieclaw/unlox/scope"
)

// Function represents a user-defined function object.
//
// Fields:
//   - Name: The name the function was declared with, used for display.
//   - Params: The parameter identifier tokens. Arguments are bound to
//     these names, in order, in the call frame.
//   - Body: The statement indices of the function body. The nodes stay in
//     the arena; the value only carries indices, so functions are cheap to
//     copy.
//   - Tree: The arena the body indices resolve against. Carrying it with
//     the value keeps functions callable across interpreter runs that each
//     parsed their own arena, as REPL lines do.
//   - Closure: The index of the frame active when the declaration
//     executed. Frames are never removed from the cactus, so this index
//     stays valid for the whole session no matter where the function value
//     travels.
type Function struct {
	Name    string           // Name of the function
	Params  []lexer.Token    // Parameter identifier tokens
	Body    []parser.StmtIdx // Body statements (arena indices)
	Tree    *parser.Ast      // Arena owning the body nodes
	Closure scope.FrameIdx   // Defining frame for lexical scoping
}

// GetType returns the type identifier for function objects.
func (f *Function) GetType() objects.LoxType {
	return objects.FunctionType
}

// ToString returns the display form of a function value.
//
// Example:
//
//	If f.Name = "add", this returns: "<fn add>"
func (f *Function) ToString() string {
	return fmt.Sprintf("<fn %s>", f.Name)
}

// ToObject returns a detailed representation including the parameter
// names, useful for debugging and inspection.
//
// Example:
//
//	If f.Name = "add" and Params = ["a", "b"], this returns:
//	"<fn add(a, b)>"
func (f *Function) ToObject() string {
	args := ""
	for i, param := range f.Params {
		if i > 0 {
			args += ", "
		}
		args += param.Literal
	}
	return fmt.Sprintf("<fn %s(%s)>", f.Name, args)
}

// Arity returns the number of arguments the function requires.
func (f *Function) Arity() int {
	return len(f.Params)
}
