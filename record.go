package dhtable

import "fmt"

// Integer - Key types accepted by a Table. Keys are used directly in the modulo arithmetic of the
// hash functions, no further hashing is applied.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// State - State of a table slot
type State uint8

const (
	// Empty - The slot record has been removed, it stays in the slot as a tombstone until the next rebuild
	Empty State = iota
	// Full - The slot record is a live key/value pair
	Full
)

// String - Returns the name of the state
func (S State) String() string {
	switch S {
	case Empty:
		return "EMPTY"
	case Full:
		return "FULL"
	}
	return fmt.Sprintf("State(%d)", uint8(S))
}

// Record - Represents one slot of a table.
// Records returned from a Table are detached copies, changing them has no effect on the table.
type Record[K Integer, V any] struct {
	Key   K
	Value V
	State State
}

// String - Returns the record as key:value
func (R Record[K, V]) String() string {
	return fmt.Sprintf("%v:%v", R.Key, R.Value)
}
