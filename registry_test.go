package picture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceTargetIsRegistered(t *testing.T) {
	assert.True(t, IsRegistered("trace"))

	tgt, err := NewTarget("trace", 10, 10)
	require.NoError(t, err)
	assert.IsType(t, &TraceTarget{}, tgt)
}

func TestRegisterTarget(t *testing.T) {
	const name = "registry-test"
	var gotW, gotH int
	RegisterTarget(name, func(w, h int) (Target, error) {
		gotW, gotH = w, h
		return NewTraceTarget(), nil
	})
	t.Cleanup(func() { UnregisterTarget(name) })

	assert.Contains(t, Targets(), name)
	MustTarget(name, 3, 4)
	assert.Equal(t, 3, gotW)
	assert.Equal(t, 4, gotH)

	assert.Panics(t, func() {
		RegisterTarget(name, func(int, int) (Target, error) { return nil, nil })
	})
}

func TestRegisterTargetNilFactory(t *testing.T) {
	assert.Panics(t, func() { RegisterTarget("nil-factory", nil) })
	assert.False(t, IsRegistered("nil-factory"))
}

func TestNewTargetUnknown(t *testing.T) {
	_, err := NewTarget("no-such-target", 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown target "no-such-target"`)
	assert.Panics(t, func() { MustTarget("no-such-target", 1, 1) })
}

func TestNewTargetFactoryError(t *testing.T) {
	const name = "failing-target"
	boom := errors.New("boom")
	RegisterTarget(name, func(int, int) (Target, error) { return nil, boom })
	t.Cleanup(func() { UnregisterTarget(name) })

	_, err := NewTarget(name, 1, 1)
	assert.ErrorIs(t, err, boom)
}

func TestTargetsSorted(t *testing.T) {
	for _, name := range []string{"zz-target", "aa-target"} {
		RegisterTarget(name, func(int, int) (Target, error) { return NewTraceTarget(), nil })
		t.Cleanup(func() { UnregisterTarget(name) })
	}
	names := Targets()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "aa-target")
	assert.Contains(t, names, "zz-target")
}

func TestUnregisterUnknown(t *testing.T) {
	assert.NotPanics(t, func() { UnregisterTarget("never-registered") })
}
