//go:build unit

package dhtable

import (
	"github.com/gostonefire/dhtable/internal/conf"
	"github.com/gostonefire/dhtable/internal/hash"
	"github.com/stretchr/testify/assert"
	"math/rand"
	"testing"
)

func TestNewTable(t *testing.T) {
	t.Run("creates an empty table at initial capacity", func(t *testing.T) {
		// Execute
		tbl := NewTable[int, string]()

		// Check
		assert.Equal(t, conf.InitialCapacity, tbl.GetSize(), "initial capacity")
		assert.Equal(t, int64(0), tbl.GetTotalElements(), "no records")
		assert.Equal(t, int64(0), tbl.slots.Top(), "no slots written")
	})
}

func TestTable_Resize(t *testing.T) {
	t.Run("grows once load factor reaches max ratio", func(t *testing.T) {
		// Prepare
		tbl := NewTable[int, string]()
		values := []string{"a", "b", "c", "d", "e", "f"}

		// Execute and Check
		for i := 0; i < 5; i++ {
			tbl.Insert(i+1, values[i])
		}
		assert.Equal(t, int64(7), tbl.GetSize(), "no resize after fifth insert")
		assert.Equal(t, int64(5), tbl.GetTotalElements(), "five records")

		tbl.Insert(6, values[5])
		assert.Equal(t, int64(17), tbl.GetSize(), "resized to next prime of 14")
		assert.Equal(t, int64(6), tbl.GetTotalElements(), "six records")

		for i := 0; i < 6; i++ {
			record, found := tbl.Find(i + 1)
			assert.True(t, found, "record found after resize")
			assert.Equal(t, values[i], record.Value, "value preserved")
		}
	})

	t.Run("shrinks once load factor drops below min ratio but never below initial capacity", func(t *testing.T) {
		// Prepare
		tbl := NewTable[int, int]()
		for i := 1; i <= 6; i++ {
			tbl.Insert(i, i*10)
		}
		assert.Equal(t, int64(17), tbl.GetSize(), "grown")

		// Execute and Check
		tbl.Remove(1)
		assert.Equal(t, int64(17), tbl.GetSize(), "5 records keeps size")

		tbl.Remove(2)
		assert.Equal(t, int64(11), tbl.GetSize(), "4 records shrinks to 11")

		tbl.Remove(3)
		assert.Equal(t, int64(11), tbl.GetSize(), "3 records keeps size")

		tbl.Remove(4)
		assert.Equal(t, int64(7), tbl.GetSize(), "2 records shrinks to floor")

		tbl.Remove(5)
		assert.Equal(t, int64(7), tbl.GetSize(), "floor is kept")

		v, found := tbl.Get(6)
		assert.True(t, found, "remaining record found")
		assert.Equal(t, 60, v, "remaining value preserved")
	})

	t.Run("rebuild drops tombstones", func(t *testing.T) {
		// Prepare
		tbl := NewTable[int, int]()
		for i := 0; i < 5; i++ {
			tbl.Insert(i, i)
		}
		tbl.Remove(0)
		tbl.Remove(1)
		assert.Equal(t, int64(2), tbl.Stat().Tombstones, "two tombstones")

		// Execute
		tbl.Insert(10, 10)
		tbl.Insert(11, 11)
		tbl.Insert(12, 12)

		// Check
		stat := tbl.Stat()
		assert.Equal(t, int64(17), tbl.GetSize(), "grown")
		assert.Equal(t, int64(0), stat.Tombstones, "tombstones reclaimed")
		assert.Equal(t, int64(6), stat.Records, "six records")
		assert.Equal(t, int64(6), stat.WrittenSlots, "only live records written")
	})

	t.Run("load factor stays bounded and size prime under random operations", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(42))
		tbl := NewTable[int64, int64]()
		reference := make(map[int64]int64)

		// Execute and Check
		for i := 0; i < 20000; i++ {
			key := rnd.Int63n(600) - 100
			if rnd.Intn(3) == 0 {
				tbl.Remove(key)
				delete(reference, key)
			} else {
				tbl.Insert(key, int64(i))
				reference[key] = int64(i)
			}

			ratio := float64(tbl.GetTotalElements()) / float64(tbl.GetSize())
			if !assert.True(t, hash.IsPrime(tbl.GetSize()), "size is prime") {
				return
			}
			if !assert.Less(t, ratio, conf.MaxRatio, "below max ratio") {
				return
			}
			if tbl.GetSize() > conf.InitialCapacity {
				if !assert.GreaterOrEqual(t, ratio, conf.MinRatio, "above min ratio") {
					return
				}
			}
		}

		assert.Equal(t, int64(len(reference)), tbl.GetTotalElements(), "same number of records as reference")
		for k, v := range reference {
			got, found := tbl.Get(k)
			assert.True(t, found, "key %d found", k)
			assert.Equal(t, v, got, "value of key %d", k)
		}
	})
}

func TestTable_Clone(t *testing.T) {
	t.Run("clone is independent of original", func(t *testing.T) {
		// Prepare
		tbl := NewTable[int, string]()
		tbl.Insert(6, "a")
		tbl.Insert(13, "b")
		tbl.Remove(6)

		// Execute
		c := tbl.Clone()
		c.Insert(13, "c")
		c.Insert(1, "d")
		tbl.Remove(13)

		// Check
		assert.Equal(t, tbl.GetSize(), c.GetSize(), "same capacity")
		assert.Equal(t, int64(0), tbl.GetTotalElements(), "original emptied")
		assert.Equal(t, int64(2), c.GetTotalElements(), "clone keeps its records")

		v, found := c.Get(13)
		assert.True(t, found, "record behind tombstone found in clone")
		assert.Equal(t, "c", v, "clone updated")
		assert.False(t, tbl.Exists(1), "insert into clone not seen by original")
	})
}

func TestMerge(t *testing.T) {
	t.Run("merges two tables with later table winning", func(t *testing.T) {
		// Prepare
		a := NewTable[int, string]()
		a.Insert(1, "x")
		b := NewTable[int, string]()
		b.Insert(1, "y")
		b.Insert(8, "z")

		// Execute
		m := Merge(a, b)

		// Check
		assert.Equal(t, int64(29), m.GetSize(), "next prime of 2*(7+7)")
		assert.Equal(t, int64(2), m.GetTotalElements(), "two records")
		v, _ := m.Get(1)
		assert.Equal(t, "y", v, "later table wins")
		v, _ = m.Get(8)
		assert.Equal(t, "z", v, "record from second table")

		v, _ = a.Get(1)
		assert.Equal(t, "x", v, "source table untouched")
	})

	t.Run("merge order decides collisions", func(t *testing.T) {
		// Prepare
		a := NewTable[int, string]()
		a.Insert(1, "x")
		b := NewTable[int, string]()
		b.Insert(1, "y")

		// Execute
		m := Merge(b, a)

		// Check
		v, _ := m.Get(1)
		assert.Equal(t, "x", v, "later table wins")
	})
}

func TestTable_Clear(t *testing.T) {
	t.Run("clears in place at initial capacity", func(t *testing.T) {
		// Prepare
		tbl := NewTable[int, int]()
		tbl.Insert(1, 1)
		tbl.Insert(2, 2)
		slots := tbl.slots

		// Execute
		tbl.Clear()

		// Check
		assert.Same(t, slots, tbl.slots, "same slot array reused")
		assert.Equal(t, int64(0), tbl.GetTotalElements(), "no records")
		assert.Equal(t, int64(0), tbl.slots.Top(), "slots reset")
		assert.False(t, tbl.Exists(1), "record gone")

		tbl.Insert(2, 20)
		v, _ := tbl.Get(2)
		assert.Equal(t, 20, v, "usable after clear")
	})

	t.Run("returns grown table to initial capacity", func(t *testing.T) {
		// Prepare
		tbl := NewTable[int, int]()
		for i := 0; i < 100; i++ {
			tbl.Insert(i, i)
		}

		// Execute
		tbl.Clear()

		// Check
		assert.Equal(t, conf.InitialCapacity, tbl.GetSize(), "initial capacity")
		assert.Equal(t, int64(0), tbl.GetTotalElements(), "no records")
		assert.False(t, tbl.Exists(50), "record gone")
	})
}

func TestTable_Stat(t *testing.T) {
	t.Run("counts records and tombstones", func(t *testing.T) {
		// Prepare
		tbl := NewTable[int, int]()
		tbl.Insert(1, 1)
		tbl.Insert(2, 2)
		tbl.Insert(3, 3)
		tbl.Remove(2)

		// Execute
		stat := tbl.Stat()

		// Check
		assert.Equal(t, int64(2), stat.Records, "live records")
		assert.Equal(t, int64(1), stat.Tombstones, "tombstones")
		assert.Equal(t, int64(3), stat.WrittenSlots, "written slots")
		assert.Equal(t, int64(7), stat.Capacity, "capacity")
		assert.InDelta(t, 2.0/7.0, stat.LoadFactor, 1e-9, "load factor")
	})
}
