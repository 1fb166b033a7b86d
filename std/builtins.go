/*
File    : unlox/std/builtins.go
*/

// Package std provides the builtin functions available to every Lox
// program. Builtins are ordinary runtime values: the evaluator installs
// each of them into the global frame at session start, where they occupy
// the same namespace as user bindings and may be shadowed freely.
package std

import (
	"time"

	"github.com/wiktorwieclaw/unlox/objects"
)

// BuiltinCallback is the native implementation of a builtin function. The
// evaluator validates the argument count against the builtin's arity before
// invoking the callback.
type BuiltinCallback func(args ...objects.LoxObject) objects.LoxObject

// Builtin represents a native function exposed to Lox programs.
//
// Fields:
//   - Name: The global name the builtin is bound to
//   - ArityCount: The exact number of arguments the builtin accepts
//   - Callback: The native Go implementation
type Builtin struct {
	Name       string          // Global binding name
	ArityCount int             // Required argument count
	Callback   BuiltinCallback // Native implementation
}

// GetType returns the type of the Builtin object
func (b *Builtin) GetType() objects.LoxType {
	return objects.NativeType
}

// ToString returns the display form of a native function
func (b *Builtin) ToString() string {
	return "<native fn>"
}

// ToObject returns a detailed representation of the builtin
func (b *Builtin) ToObject() string {
	return "<native fn " + b.Name + ">"
}

// Arity returns the number of arguments the builtin requires.
func (b *Builtin) Arity() int {
	return b.ArityCount
}

// Builtins is the registry of native functions installed into the global
// frame when an evaluator is created.
var Builtins = []*Builtin{
	{Name: "clock", ArityCount: 0, Callback: clock},
}

// clock returns the current wall-clock time as seconds since the Unix
// epoch, as a double. It is the only source of nondeterminism in the
// interpreter.
//
// Syntax: clock()
func clock(args ...objects.LoxObject) objects.LoxObject {
	seconds := float64(time.Now().UnixNano()) / float64(time.Second)
	return &objects.Number{Value: seconds}
}
