// Package lazyarray implements a fixed capacity array where every index reads as a default value
// until it is explicitly set. Whether an index has been written is answered in O(1) without
// pre-filling the backing storage, which also makes a full reset to the default an O(1) operation.
package lazyarray

import "fmt"

// Array - Fixed capacity store of length slots. An index is considered written only if
// slotOf[idx] points inside writeOrder[0:top] and that position points back at idx, so
// whatever slotOf holds for a never written (or reset) index is rejected.
//
// An Array is not safe for concurrent mutation, callers must synchronize externally.
type Array[V any] struct {
	values     []V
	writeOrder []int64
	slotOf     []int64
	top        int64
	length     int64
	def        V
}

// New - Returns a pointer to a new Array where all length slots read as def.
//   - length is the fixed capacity of the array, it can not be negative
//   - def is the value returned for any index that has not been set
//
// It returns:
//   - array is a pointer to the created instance
//   - err is a standard error, if something went wrong
func New[V any](length int64, def V) (array *Array[V], err error) {
	if length < 0 {
		err = fmt.Errorf("length must be zero or a positive value, got %d", length)
		return
	}

	array = &Array[V]{
		values:     make([]V, length),
		writeOrder: make([]int64, length),
		slotOf:     make([]int64, length),
		length:     length,
		def:        def,
	}

	return
}

// Get - Returns the value at idx, or the default value if idx was never set.
//   - idx is an index in the range [0, length)
//
// It returns:
//   - value is the stored or default value
//   - err is of type IndexOutOfRange if idx is outside the array
func (A *Array[V]) Get(idx int64) (value V, err error) {
	if err = A.checkBounds(idx); err != nil {
		return
	}

	if A.isInitialized(idx) {
		value = A.values[idx]
	} else {
		value = A.def
	}

	return
}

// Set - Stores value at idx. The first write to an index records it in the write order.
//   - idx is an index in the range [0, length)
//   - value is the value to store
//
// It returns:
//   - err is of type IndexOutOfRange if idx is outside the array, the array is then left untouched
func (A *Array[V]) Set(idx int64, value V) (err error) {
	if err = A.checkBounds(idx); err != nil {
		return
	}

	if !A.isInitialized(idx) {
		A.writeOrder[A.top] = idx
		A.slotOf[idx] = A.top
		A.top++
	}
	A.values[idx] = value

	return
}

// IsSet - Returns true if idx has been set since creation or the last Reset.
// Indexes outside the array are reported as not set.
func (A *Array[V]) IsSet(idx int64) bool {
	if A.checkBounds(idx) != nil {
		return false
	}
	return A.isInitialized(idx)
}

// Default - Returns the default value
func (A *Array[V]) Default() V {
	return A.def
}

// Length - Returns the fixed capacity of the array
func (A *Array[V]) Length() int64 {
	return A.length
}

// Top - Returns the number of distinct indexes written since creation or the last Reset
func (A *Array[V]) Top() int64 {
	return A.top
}

// Reset - Makes every index read as the default value again, in O(1).
// Stored values are not cleared, they just become unreachable until overwritten.
func (A *Array[V]) Reset() {
	A.top = 0
}

// Copy - Returns a detached copy of the array. The buffers are allocated (and zeroed by Go) at full
// length, only the written indexes are copied, which takes O(Top). Values themselves are copied shallowly.
func (A *Array[V]) Copy() *Array[V] {
	c := &Array[V]{
		values:     make([]V, A.length),
		writeOrder: make([]int64, A.length),
		slotOf:     make([]int64, A.length),
		top:        A.top,
		length:     A.length,
		def:        A.def,
	}

	var idx int64
	for i := int64(0); i < A.top; i++ {
		idx = A.writeOrder[i]
		c.writeOrder[i] = idx
		c.slotOf[idx] = i
		c.values[idx] = A.values[idx]
	}

	return c
}

// Range - Calls fn for every written index in the order they were first written.
// Iteration stops if fn returns false. Setting already written indexes from within fn is
// allowed, writing new ones is not.
func (A *Array[V]) Range(fn func(idx int64, value V) bool) {
	var idx int64
	for i := int64(0); i < A.top; i++ {
		idx = A.writeOrder[i]
		if !fn(idx, A.values[idx]) {
			return
		}
	}
}

// isInitialized - Returns true if idx is confirmed written, idx must already be bounds checked
func (A *Array[V]) isInitialized(idx int64) bool {
	pos := A.slotOf[idx]
	return pos >= 0 && pos < A.top && A.writeOrder[pos] == idx
}

// checkBounds - Returns an IndexOutOfRange error if idx is outside [0, length)
func (A *Array[V]) checkBounds(idx int64) (err error) {
	if idx < 0 || idx >= A.length {
		err = IndexOutOfRange{Index: idx, Length: A.length}
	}
	return
}
