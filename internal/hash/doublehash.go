package hash

import "github.com/gostonefire/dhtable/internal/conf"

// DoubleHash - The probing algorithm used by the table. The key itself is the hash value,
// HashFunc1 gives the home slot and HashFunc2 the probe step, combined in ProbeIteration.
type DoubleHash struct {
	tableSize   int64
	stepModulus int64
}

// NewDoubleHash - Returns a pointer to a new DoubleHash instance
func NewDoubleHash(tableSize int64) *DoubleHash {
	ha := &DoubleHash{}
	ha.SetTableSize(tableSize)
	return ha
}

// SetTableSize - Sets the table size for the hash algorithm.
// The table size is updated to its nearest higher (or equal) prime number, which allows the algorithm to
// iterate over the entirety of the table slots once and only once.
//   - tableSize is the number of slots to address
func (D *DoubleHash) SetTableSize(tableSize int64) {
	D.tableSize = NextPrime(tableSize)

	// A step equal to the table size would never leave the home slot
	D.stepModulus = conf.StepModulus
	if D.stepModulus >= D.tableSize {
		D.stepModulus = D.tableSize - 1
	}
}

// GetTableSize - Returns the (prime) table size the hash functions are supporting
func (D *DoubleHash) GetTableSize() int64 {
	return D.tableSize
}

// HashFunc1 - Given key it generates the home slot between 0 and table size - 1
func (D *DoubleHash) HashFunc1(key int64) int64 {
	return mod(key, D.tableSize)
}

// HashFunc2 - Given key it generates the probe step, always between 1 and table size - 1
func (D *DoubleHash) HashFunc2(key int64) int64 {
	return 1 + mod(key, D.stepModulus)
}

// ProbeIteration - Returns the slot to visit in iteration given values from HashFunc1 and HashFunc2.
func (D *DoubleHash) ProbeIteration(hf1Value, hf2Value, iteration int64) int64 {
	return (hf1Value + iteration*hf2Value) % D.tableSize
}

// mod - Returns the non-negative residue of a modulo m
func mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
