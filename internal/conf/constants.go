package conf

// InitialCapacity - Capacity of a newly created table, and the floor it never shrinks below (a prime)
const InitialCapacity int64 = 7

// StepModulus - Modulus of the secondary hash, the probe step is 1 + key mod StepModulus
const StepModulus int64 = 7

// MaxRatio - Load factor (live records / capacity) at or above which a table grows
const MaxRatio float64 = 0.75

// MinRatio - Load factor below which a table above InitialCapacity shrinks
const MinRatio float64 = 0.25

// ExpandFactor - Capacity multiplier when growing, must be > 1
const ExpandFactor float64 = 2

// ReduceFactor - Capacity multiplier when shrinking, must be in (0, 1)
const ReduceFactor float64 = 0.5
