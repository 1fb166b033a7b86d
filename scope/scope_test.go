/*
File    : unlox/scope/scope_test.go
*/
package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiktorwieclaw/unlox/objects"
)

// TestCactus_RootFramePermanence verifies that the root frame can never be
// popped and that Global is stable
func TestCactus_RootFramePermanence(t *testing.T) {
	c := NewCactus()
	global := c.Global()

	// The root refuses to pop.
	frame, ok := c.Pop()
	assert.False(t, ok)
	assert.Nil(t, frame)

	// Push and pop a few frames; Global never moves.
	for i := 0; i < 3; i++ {
		c.Push(NewFrame())
	}
	for {
		if _, ok := c.Pop(); !ok {
			break
		}
	}
	assert.Equal(t, global, c.Global())
	assert.Equal(t, global, c.Current())
}

// TestCactus_PushPop verifies the active stack discipline
func TestCactus_PushPop(t *testing.T) {
	c := NewCactus()
	global := c.Global()

	first := c.Push(NewFrame())
	assert.Equal(t, first, c.Current())

	second := c.Push(NewFrame())
	assert.Equal(t, second, c.Current())

	parent, ok := c.Parent(second)
	assert.True(t, ok)
	assert.Equal(t, first, parent)

	_, ok = c.Pop()
	assert.True(t, ok)
	assert.Equal(t, first, c.Current())

	_, ok = c.Pop()
	assert.True(t, ok)
	assert.Equal(t, global, c.Current())

	// Only the root has no parent.
	_, ok = c.Parent(global)
	assert.False(t, ok)
}

// TestCactus_FramesAreNeverRemoved verifies that popping only shrinks the
// active stack: the frame and its data stay reachable by index
func TestCactus_FramesAreNeverRemoved(t *testing.T) {
	c := NewCactus()

	idx := c.Push(NewFrame())
	c.Define("captured", &objects.Number{Value: 42})
	c.Pop()

	// The frame is off the active stack but still in the tree.
	val, ok := c.Frame(idx).Variables["captured"]
	assert.True(t, ok)
	assert.Equal(t, 42.0, val.(*objects.Number).Value)
	assert.Equal(t, 2, c.Len())

	// A new frame gets a fresh index; indices are never reused.
	next := c.Push(NewFrame())
	assert.NotEqual(t, idx, next)
	assert.Equal(t, 3, c.Len())
}

// TestCactus_PushAt verifies parenting a frame at an explicit ancestor,
// the way function calls parent their frame at the closure
func TestCactus_PushAt(t *testing.T) {
	c := NewCactus()

	defSite := c.Push(NewFrame())
	c.Define("x", &objects.String{Value: "lexical"})
	c.Pop()

	// Simulate a call from an unrelated scope that also binds x.
	c.Push(NewFrame())
	c.Define("x", &objects.String{Value: "dynamic"})

	c.PushAt(defSite, NewFrame())
	val, ok := c.LookUp("x")
	assert.True(t, ok)
	assert.Equal(t, "lexical", val.(*objects.String).Value)
}

// TestCactus_LookUp verifies resolution through the frame chain and
// shadowing
func TestCactus_LookUp(t *testing.T) {
	c := NewCactus()
	c.Define("a", &objects.Number{Value: 1})
	c.Define("b", &objects.Number{Value: 2})

	c.Push(NewFrame())
	c.Define("b", &objects.Number{Value: 20}) // shadows the global b

	val, ok := c.LookUp("a")
	assert.True(t, ok)
	assert.Equal(t, 1.0, val.(*objects.Number).Value)

	val, ok = c.LookUp("b")
	assert.True(t, ok)
	assert.Equal(t, 20.0, val.(*objects.Number).Value)

	_, ok = c.LookUp("missing")
	assert.False(t, ok)

	// Popping the frame unshadows.
	c.Pop()
	val, _ = c.LookUp("b")
	assert.Equal(t, 2.0, val.(*objects.Number).Value)
}

// TestCactus_Assign verifies that assignment overwrites the defining frame
// and never auto-declares
func TestCactus_Assign(t *testing.T) {
	c := NewCactus()
	c.Define("counter", &objects.Number{Value: 0})

	c.Push(NewFrame())
	ok := c.Assign("counter", &objects.Number{Value: 1})
	assert.True(t, ok)

	// The global binding was updated, not a local copy.
	c.Pop()
	val, _ := c.LookUp("counter")
	assert.Equal(t, 1.0, val.(*objects.Number).Value)

	// Assignment of an undefined name reports failure and binds nothing.
	assert.False(t, c.Assign("undeclared", &objects.Nil{}))
	_, found := c.LookUp("undeclared")
	assert.False(t, found)
}
