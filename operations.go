package dhtable

import (
	"fmt"
	"github.com/valyala/bytebufferpool"
	"io"
)

// Insert - Updates an existing record with a new value or adds it if no record exists with the same key.
// Adding a record may grow the table.
//   - key is the identifier of the record
//   - value is the value to store along with the key
func (T *Table[K, V]) Insert(key K, value V) {
	if !T.place(&Record[K, V]{Key: key, Value: value, State: Full}) {
		return
	}

	T.totalElements++
	T.resize(grow)
}

// Find - Returns a detached copy of the record that corresponds to the given key.
//   - key is the identifier of a record
//
// It returns:
//   - record is the matching record if found
//   - found is false if no live record exists for key
func (T *Table[K, V]) Find(key K) (record Record[K, V], found bool) {
	idx, found := T.probingForGet(key)
	if !found {
		return
	}

	record = *mustGet(T.slots, idx)

	return
}

// Get - Returns the value stored for key, found is false if there is none
func (T *Table[K, V]) Get(key K) (value V, found bool) {
	record, found := T.Find(key)
	value = record.Value
	return
}

// Exists - Returns true if a live record exists for key
func (T *Table[K, V]) Exists(key K) bool {
	_, found := T.probingForGet(key)
	return found
}

// Remove - Removes the record corresponding to key by turning its slot into a tombstone.
// The slot is reclaimed at the next rebuild. Removing a key that doesn't exist does nothing.
// Removing a record may shrink the table.
//   - key is the identifier of a record
func (T *Table[K, V]) Remove(key K) {
	idx, found := T.probingForGet(key)
	if !found {
		return
	}

	var zero V
	record := mustGet(T.slots, idx)
	record.State = Empty
	record.Value = zero

	T.totalElements--
	T.resize(shrink)
}

// Range - Calls fn for every live record in slot order. Iteration stops if fn returns false.
// The table must not be changed from within fn.
func (T *Table[K, V]) Range(fn func(key K, value V) bool) {
	var record *Record[K, V]
	for i := int64(0); i < T.size; i++ {
		record = mustGet(T.slots, i)
		if record == nil || record.State != Full {
			continue
		}
		if !fn(record.Key, record.Value) {
			return
		}
	}
}

// WriteTo - Writes all live records in slot order to w as {key:value, key:value}.
// The format is meant for humans and is not a stable serialization.
func (T *Table[K, V]) WriteTo(w io.Writer) (n int64, err error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	T.render(buf)

	m, err := w.Write(buf.B)
	n = int64(m)

	return
}

// String - Returns all live records in slot order as {key:value, key:value}
func (T *Table[K, V]) String() string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	T.render(buf)

	return buf.String()
}

// render - Appends the textual form of the table to buf
func (T *Table[K, V]) render(buf *bytebufferpool.ByteBuffer) {
	_ = buf.WriteByte('{')

	first := true
	T.Range(func(key K, value V) bool {
		if !first {
			_, _ = buf.WriteString(", ")
		}
		first = false
		_, _ = fmt.Fprintf(buf, "%v:%v", key, value)
		return true
	})

	_ = buf.WriteByte('}')
}

// place - Writes record into the slot holding the same key, or into the first free slot along the probe
// sequence. Returns true if a new slot was taken, false if an existing record was replaced.
func (T *Table[K, V]) place(record *Record[K, V]) (added bool) {
	idx, existing := T.probingForSet(record.Key)
	if idx < 0 {
		panic(fmt.Errorf("no free slot for key %v in table of size %d with %d records", record.Key, T.size, T.totalElements))
	}

	mustSet(T.slots, idx, record)
	added = !existing

	return
}

// probingForGet - Is the double hashing algorithm for finding the slot of a live record.
// Tombstones are probed through, a never written slot ends the search.
func (T *Table[K, V]) probingForGet(key K) (idx int64, found bool) {
	var record *Record[K, V]

	hf1Value := T.hashAlgorithm.HashFunc1(int64(key))
	hf2Value := T.hashAlgorithm.HashFunc2(int64(key))

	// The prime table size makes one cycle visit every slot exactly once
	for i := int64(0); i < T.size; i++ {
		idx = T.hashAlgorithm.ProbeIteration(hf1Value, hf2Value, i)
		record = mustGet(T.slots, idx)

		if record == nil {
			break
		}
		if record.State == Full && record.Key == key {
			found = true
			return
		}
	}

	idx = -1
	return
}

// probingForSet - Is the double hashing algorithm for finding the slot to write a record to.
// A live record with the same key is returned with existing set to true. Otherwise, the first tombstone
// along the probe sequence is returned, or the first never written slot if no tombstone came before it.
// An index of -1 means that the probe cycle held neither.
func (T *Table[K, V]) probingForSet(key K) (idx int64, existing bool) {
	var record *Record[K, V]
	var probe int64
	tombstone := int64(-1)

	hf1Value := T.hashAlgorithm.HashFunc1(int64(key))
	hf2Value := T.hashAlgorithm.HashFunc2(int64(key))

	for i := int64(0); i < T.size; i++ {
		probe = T.hashAlgorithm.ProbeIteration(hf1Value, hf2Value, i)
		record = mustGet(T.slots, probe)

		switch {
		case record == nil:
			if tombstone >= 0 {
				idx = tombstone
			} else {
				idx = probe
			}
			return

		case record.State == Full:
			if record.Key == key {
				idx = probe
				existing = true
				return
			}

		case tombstone < 0:
			tombstone = probe
		}
	}

	idx = tombstone
	return
}
