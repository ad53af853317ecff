package ui

// FocusManager tracks which button has keyboard focus. Order holds the
// indices of the focusable blocks in screen order; Current is a position
// in Order, or -1 when nothing is focusable.
type FocusManager struct {
	Current int
	Order   []int
}

// NewFocusManager focuses the first entry of order, if any.
func NewFocusManager(order []int) FocusManager {
	f := FocusManager{Current: -1, Order: order}
	if len(order) > 0 {
		f.Current = 0
	}
	return f
}

// Next advances focus, wrapping from the last entry to the first.
// Returns the focused block index, or -1.
func (f *FocusManager) Next() int {
	if len(f.Order) == 0 {
		return -1
	}
	f.Current = (f.Current + 1) % len(f.Order)
	return f.Order[f.Current]
}

// Prev moves focus back, wrapping from the first entry to the last.
func (f *FocusManager) Prev() int {
	if len(f.Order) == 0 {
		return -1
	}
	f.Current--
	if f.Current < 0 {
		f.Current = len(f.Order) - 1
	}
	return f.Order[f.Current]
}

// Focused returns the focused block index, or -1.
func (f FocusManager) Focused() int {
	if f.Current < 0 || f.Current >= len(f.Order) {
		return -1
	}
	return f.Order[f.Current]
}

// IsFocused reports whether the block at index i has focus.
func (f FocusManager) IsFocused(i int) bool {
	return i >= 0 && f.Focused() == i
}
