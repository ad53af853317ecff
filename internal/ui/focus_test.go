package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocusManager_Empty(t *testing.T) {
	f := NewFocusManager(nil)

	assert.Equal(t, -1, f.Focused())
	assert.Equal(t, -1, f.Next())
	assert.Equal(t, -1, f.Prev())
	assert.False(t, f.IsFocused(0))
	assert.False(t, f.IsFocused(-1))
}

func TestFocusManager_Rotation(t *testing.T) {
	f := NewFocusManager([]int{2, 5, 7})

	assert.Equal(t, 2, f.Focused())
	assert.True(t, f.IsFocused(2))

	assert.Equal(t, 5, f.Next())
	assert.Equal(t, 7, f.Next())
	assert.Equal(t, 2, f.Next(), "next wraps to the first button")

	assert.Equal(t, 7, f.Prev(), "prev wraps to the last button")
	assert.Equal(t, 5, f.Prev())
	assert.False(t, f.IsFocused(7))
}
