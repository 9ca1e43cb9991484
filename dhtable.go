// Package dhtable implements an in memory hash table for integer keys using open addressing with
// double hashing. The capacity is always a prime number and is grown or shrunk automatically to keep
// the load factor between conf.MinRatio and conf.MaxRatio. Slots live in a lazyarray.Array, so a
// slot that was never written reads as nil without the backing storage having to be pre-filled.
package dhtable

import (
	"fmt"
	"github.com/gostonefire/dhtable/internal/conf"
	"github.com/gostonefire/dhtable/internal/hash"
	"github.com/gostonefire/dhtable/lazyarray"
	"math"
)

// direction - Direction of a resize check
type direction int

const (
	shrink direction = iota
	grow
)

// TableStat - Statistics on the usage of the table slots
//   - Records is the number of live records
//   - Tombstones is the number of removed records still occupying a slot
//   - WrittenSlots is the number of slots that has ever been written since the last rebuild
//   - Capacity is the number of slots in the table
//   - LoadFactor is Records / Capacity
type TableStat struct {
	Records      int64
	Tombstones   int64
	WrittenSlots int64
	Capacity     int64
	LoadFactor   float64
}

// Table - The main implementation struct.
// A Table is not safe for concurrent use, callers must synchronize access externally.
type Table[K Integer, V any] struct {
	slots         *lazyarray.Array[*Record[K, V]]
	hashAlgorithm *hash.DoubleHash
	size          int64
	totalElements int64
}

// NewTable - Returns a new empty table at the initial capacity
func NewTable[K Integer, V any]() *Table[K, V] {
	return newTable[K, V](conf.InitialCapacity)
}

// Merge - Returns a new table holding every live record of a and b.
// The new table is sized to the next prime of 2 * (a.GetSize() + b.GetSize()) to leave headroom, then records
// from a are inserted followed by records from b, so b wins where both hold the same key.
// The merged table may start with a load factor below conf.MinRatio, it shrinks on the first Remove that finds it so.
func Merge[K Integer, V any](a, b *Table[K, V]) (merged *Table[K, V]) {
	merged = newTable[K, V](hash.NextPrime(2 * (a.size + b.size)))

	insert := func(key K, value V) bool {
		merged.Insert(key, value)
		return true
	}
	a.Range(insert)
	b.Range(insert)

	return
}

// Clone - Returns a copy of the table with the same capacity and slot layout.
// Records are copied, so the clone and the original can be changed independently.
func (T *Table[K, V]) Clone() *Table[K, V] {
	c := &Table[K, V]{
		slots:         T.slots.Copy(),
		hashAlgorithm: hash.NewDoubleHash(T.size),
		size:          T.size,
		totalElements: T.totalElements,
	}

	// Tombstones are copied too, they may be links in probe chains of live records
	c.slots.Range(func(idx int64, record *Record[K, V]) bool {
		if record != nil {
			r := *record
			mustSet(c.slots, idx, &r)
		}
		return true
	})

	return c
}

// GetSize - Returns the current capacity of the table (always a prime)
func (T *Table[K, V]) GetSize() int64 {
	return T.size
}

// GetTotalElements - Returns the number of live records in the table
func (T *Table[K, V]) GetTotalElements() int64 {
	return T.totalElements
}

// Clear - Removes every record and returns the table to the initial capacity.
// If the table is already at the initial capacity the slots are reset in O(1), the previous records then
// stay referenced by the slot array until their slots are written again.
func (T *Table[K, V]) Clear() {
	if T.size == conf.InitialCapacity {
		T.slots.Reset()
	} else {
		T.hashAlgorithm.SetTableSize(conf.InitialCapacity)
		T.size = T.hashAlgorithm.GetTableSize()
		T.slots = newSlots[K, V](T.size)
	}
	T.totalElements = 0
}

// Stat - Walks through the written slots and produce a TableStat struct with information.
func (T *Table[K, V]) Stat() (stat TableStat) {
	T.slots.Range(func(_ int64, record *Record[K, V]) bool {
		if record != nil {
			if record.State == Full {
				stat.Records++
			} else {
				stat.Tombstones++
			}
		}
		return true
	})

	stat.WrittenSlots = T.slots.Top()
	stat.Capacity = T.size
	stat.LoadFactor = float64(stat.Records) / float64(T.size)

	return
}

// newTable - Returns an empty table with capacity set to the nearest prime not below size
func newTable[K Integer, V any](size int64) *Table[K, V] {
	ha := hash.NewDoubleHash(size)

	return &Table[K, V]{
		slots:         newSlots[K, V](ha.GetTableSize()),
		hashAlgorithm: ha,
		size:          ha.GetTableSize(),
	}
}

// resize - Grows or shrinks the table if the load factor has passed the limit for the given direction
func (T *Table[K, V]) resize(dir direction) {
	var newSize int64
	load := float64(T.totalElements)

	switch {
	case dir == grow && load >= float64(T.size)*conf.MaxRatio:
		newSize = hash.NextPrime(int64(math.Floor(float64(T.size) * conf.ExpandFactor)))

	case dir == shrink && T.size > conf.InitialCapacity && load < float64(T.size)*conf.MinRatio:
		newSize = hash.NextPrime(int64(math.Floor(float64(T.size) * conf.ReduceFactor)))
		if newSize < conf.InitialCapacity {
			newSize = conf.InitialCapacity
		}

	default:
		return
	}

	T.rebuild(newSize)
}

// rebuild - Moves all live records to a fresh slot array of newSize, dropping tombstones.
func (T *Table[K, V]) rebuild(newSize int64) {
	oldSlots := T.slots
	oldSize := T.size

	T.hashAlgorithm.SetTableSize(newSize)
	T.size = T.hashAlgorithm.GetTableSize()
	T.slots = newSlots[K, V](T.size)
	T.totalElements = 0

	var record *Record[K, V]
	for i := int64(0); i < oldSize; i++ {
		record = mustGet(oldSlots, i)
		if record == nil || record.State != Full {
			continue
		}
		if T.place(record) {
			T.totalElements++
		}
	}
}

// newSlots - Returns a slot array of size where every slot reads as nil
func newSlots[K Integer, V any](size int64) *lazyarray.Array[*Record[K, V]] {
	slots, err := lazyarray.New[*Record[K, V]](size, nil)
	if err != nil {
		panic(fmt.Errorf("error while creating slot array: %w", err))
	}
	return slots
}

// mustGet - Reads a slot; the table only issues indexes produced by its own hash functions,
// so a bounds error means the table is corrupt
func mustGet[K Integer, V any](slots *lazyarray.Array[*Record[K, V]], idx int64) *Record[K, V] {
	record, err := slots.Get(idx)
	if err != nil {
		panic(fmt.Errorf("error while reading slot: %w", err))
	}
	return record
}

// mustSet - Writes a slot, see mustGet
func mustSet[K Integer, V any](slots *lazyarray.Array[*Record[K, V]], idx int64, record *Record[K, V]) {
	if err := slots.Set(idx, record); err != nil {
		panic(fmt.Errorf("error while writing slot: %w", err))
	}
}
