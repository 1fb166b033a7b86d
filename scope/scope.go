/*
File    : unlox/scope/scope.go
*/

// Package scope implements the environment cactus for the Lox interpreter:
// a parent-pointer tree of scope frames addressed by compact indices, with
// an auxiliary stack naming the currently-active frame.
//
// The cactus enables lexical scoping and closures. Each frame maintains its
// own variable bindings and can reach the bindings of its ancestors. The
// structure supports:
// - Variable shadowing: inner frames can redefine variables from outer frames
// - Closures: functions capture their defining frame by index and can access
//   outer variables long after that frame left the active stack
// - Block scoping: each block gets its own frame
//
// Frames are never physically removed. Popping only shrinks the active
// stack; the frame stays in the tree, so a FrameIdx held by a closure is
// valid for the lifetime of the interpreter session.
package scope

import (
	"github.com/krotik/common/errorutil"

	"github.com/wiktorwieclaw/unlox/objects"
)

// FrameIdx addresses a frame inside a Cactus. Indices are opaque, stable
// and never reused.
type FrameIdx int

// Frame holds the variable bindings of a single lexical scope.
type Frame struct {
	// Variables maps variable names to their current values in this frame
	Variables map[string]objects.LoxObject
}

// NewFrame creates an empty frame, ready to be pushed onto a cactus.
func NewFrame() *Frame {
	return &Frame{
		Variables: make(map[string]objects.LoxObject),
	}
}

// Define creates or overwrites a binding in this frame. Defining a name
// that exists in an ancestor frame shadows it; defining a name that exists
// in this frame replaces it.
func (f *Frame) Define(name string, value objects.LoxObject) {
	if f.Variables == nil {
		f.Variables = make(map[string]objects.LoxObject)
	}
	f.Variables[name] = value
}

// node is a single entry of the cactus tree: a frame plus the index of its
// parent. The root frame has hasParent=false.
type node struct {
	frame     *Frame
	parent    FrameIdx
	hasParent bool
}

// Cactus is the parent-pointer tree of frames. The nodes slice is
// append-only; the active stack names the frame statements currently
// execute in, with the root ("global") frame always at its bottom.
type Cactus struct {
	nodes  []node     // All frames ever created, indexed by FrameIdx
	active []FrameIdx // Stack of active frames; bottom is the root
}

// NewCactus creates a cactus holding a single root frame, which becomes
// both the global and the current frame.
func NewCactus() *Cactus {
	c := &Cactus{}
	root := FrameIdx(len(c.nodes))
	c.nodes = append(c.nodes, node{frame: NewFrame()})
	c.active = append(c.active, root)
	return c
}

// Global returns the index of the root frame. The result is stable across
// the whole session.
func (c *Cactus) Global() FrameIdx {
	return c.active[0]
}

// Current returns the index of the currently-active frame.
func (c *Cactus) Current() FrameIdx {
	errorutil.AssertTrue(len(c.active) > 0, "Cactus must always have an active frame")
	return c.active[len(c.active)-1]
}

// Push adds a frame whose parent is the current frame and makes it the new
// current frame. Returns the index assigned to the frame.
func (c *Cactus) Push(f *Frame) FrameIdx {
	return c.PushAt(c.Current(), f)
}

// PushAt adds a frame parented at an explicit frame and makes it the new
// current frame. Function calls use this to parent the call frame at the
// function's closure rather than at the call site.
func (c *Cactus) PushAt(parent FrameIdx, f *Frame) FrameIdx {
	idx := FrameIdx(len(c.nodes))
	c.nodes = append(c.nodes, node{frame: f, parent: parent, hasParent: true})
	c.active = append(c.active, idx)
	return idx
}

// Pop removes the current frame from the active stack and returns it. The
// root frame refuses to pop; in that case Pop returns (nil, false). The
// frame itself stays in the tree so closure references remain valid.
func (c *Cactus) Pop() (*Frame, bool) {
	if len(c.active) == 1 {
		return nil, false
	}
	idx := c.active[len(c.active)-1]
	c.active = c.active[:len(c.active)-1]
	return c.nodes[idx].frame, true
}

// Frame returns the frame stored at the given index.
func (c *Cactus) Frame(idx FrameIdx) *Frame {
	return c.nodes[idx].frame
}

// Parent returns the parent index of the given frame, and whether one
// exists. Only the root frame has no parent.
func (c *Cactus) Parent(idx FrameIdx) (FrameIdx, bool) {
	n := c.nodes[idx]
	return n.parent, n.hasParent
}

// Len returns the number of frames ever created.
func (c *Cactus) Len() int {
	return len(c.nodes)
}

// Define binds a name in the current frame, shadowing any binding of the
// same name in ancestor frames.
func (c *Cactus) Define(name string, value objects.LoxObject) {
	c.Frame(c.Current()).Define(name, value)
}

// LookUp resolves a name against the chain of frames starting at the
// current frame and walking parent pointers to the root. It returns the
// value from the first frame that defines the name.
//
// Example:
//
//	var x = 10;            // bound in the global frame
//	fun foo() {
//	    var y = 20;        // bound in the call frame
//	    return x + y;      // LookUp finds both x (ancestor) and y (current)
//	}
func (c *Cactus) LookUp(name string) (objects.LoxObject, bool) {
	return c.LookUpAt(c.Current(), name)
}

// LookUpAt resolves a name starting from an explicit frame instead of the
// current one.
func (c *Cactus) LookUpAt(start FrameIdx, name string) (objects.LoxObject, bool) {
	idx := start
	for {
		if val, ok := c.Frame(idx).Variables[name]; ok {
			return val, true
		}
		parent, ok := c.Parent(idx)
		if !ok {
			return nil, false
		}
		idx = parent
	}
}

// Assign overwrites an existing binding in the frame where the name was
// defined, searching from the current frame to the root. Unlike Define it
// never creates a binding: assigning an undefined name reports false and
// the evaluator turns that into a runtime error.
//
// This is what makes closures work: a function assigning a captured
// variable mutates the binding in the defining frame, not a copy.
func (c *Cactus) Assign(name string, value objects.LoxObject) bool {
	idx := c.Current()
	for {
		frame := c.Frame(idx)
		if _, ok := frame.Variables[name]; ok {
			frame.Variables[name] = value
			return true
		}
		parent, ok := c.Parent(idx)
		if !ok {
			return false
		}
		idx = parent
	}
}
