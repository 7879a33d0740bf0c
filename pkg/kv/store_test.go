package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_Upsert(t *testing.T) {
	s := New[string, int]()

	got := s.Upsert("n", func(old int, exists bool) int {
		assert.False(t, exists)
		assert.Zero(t, old)
		return 1
	})
	assert.Equal(t, 1, got)

	got = s.Upsert("n", func(old int, exists bool) int {
		assert.True(t, exists)
		return old + 10
	})
	assert.Equal(t, 11, got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_DeleteFunc(t *testing.T) {
	s := New[string, int]()
	s.Upsert("a", func(int, bool) int { return 1 })

	assert.False(t, s.DeleteFunc("a", func(v int) bool { return v == 2 }))
	assert.False(t, s.DeleteFunc("missing", func(int) bool { return true }))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.DeleteFunc("a", func(v int) bool { return v == 1 }))
	assert.Equal(t, 0, s.Len())
}

func TestStore_Drain(t *testing.T) {
	s := New[string, int]()
	set := func(k string, v int) { s.Upsert(k, func(int, bool) int { return v }) }
	set("a", 1)
	set("b", 2)

	out := s.Drain()

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, out)
	assert.Equal(t, 0, s.Len())

	set("c", 3)
	assert.Len(t, out, 2, "drained map is detached from the store")
}

func TestStore_Concurrent(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Upsert(n%10, func(old int, _ bool) int { return old + 1 })
			_ = s.Len()
		}(i)
	}

	wg.Wait()

	total := 0
	for _, v := range s.Drain() {
		total += v
	}
	assert.Equal(t, 100, total)
}
