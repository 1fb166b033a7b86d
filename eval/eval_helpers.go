/*
File    : unlox/eval/eval_helpers.go
*/
package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wiktorwieclaw/unlox/objects"
)

// numberOperands extracts the float64 values of two operands when both are
// numbers.
func numberOperands(left, right objects.LoxObject) (float64, float64, bool) {
	l, ok := left.(*objects.Number)
	if !ok {
		return 0, 0, false
	}
	r, ok := right.(*objects.Number)
	if !ok {
		return 0, 0, false
	}
	return l.Value, r.Value, true
}

// IsRuntimeError reports whether err is a RuntimeError of the given kind.
// Tests use this to pin the error taxonomy.
func IsRuntimeError(err error, kind ErrorKind) bool {
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		return false
	}
	return rtErr.Kind == kind
}

// AssertNumber fails the test unless obj is a Number with the expected
// value.
func AssertNumber(t *testing.T, obj objects.LoxObject, expected float64) {
	t.Helper()
	if assert.Equal(t, objects.NumberType, obj.GetType()) {
		assert.Equal(t, expected, obj.(*objects.Number).Value)
	}
}

// AssertString fails the test unless obj is a String with the expected
// content.
func AssertString(t *testing.T, obj objects.LoxObject, expected string) {
	t.Helper()
	if assert.Equal(t, objects.StringType, obj.GetType()) {
		assert.Equal(t, expected, obj.(*objects.String).Value)
	}
}

// AssertBoolean fails the test unless obj is a Boolean with the expected
// value.
func AssertBoolean(t *testing.T, obj objects.LoxObject, expected bool) {
	t.Helper()
	if assert.Equal(t, objects.BooleanType, obj.GetType()) {
		assert.Equal(t, expected, obj.(*objects.Boolean).Value)
	}
}

// AssertNil fails the test unless obj is the nil value.
func AssertNil(t *testing.T, obj objects.LoxObject) {
	t.Helper()
	assert.Equal(t, objects.NilType, obj.GetType())
}
