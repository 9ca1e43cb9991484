package lazyarray

import "fmt"

// IndexOutOfRange - Custom error to inform that an index outside [0, length) was accessed
type IndexOutOfRange struct {
	Index  int64
	Length int64
}

// Error - Used to notify that an index was out of range
func (E IndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", E.Index, E.Length)
}

// Is - Makes any IndexOutOfRange match errors.Is(err, IndexOutOfRange{}) regardless of index and length
func (E IndexOutOfRange) Is(target error) bool {
	_, ok := target.(IndexOutOfRange)
	return ok
}
