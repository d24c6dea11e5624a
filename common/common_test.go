package common

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	m := NewMap[int, string]()

	m.Set(1, "one")
	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	v, loaded := m.GetOrSet(1, func() string { return "uno" })
	assert.True(t, loaded)
	assert.Equal(t, "one", v)

	v, loaded = m.GetOrSet(2, func() string { return "two" })
	assert.False(t, loaded)
	assert.Equal(t, "two", v)
	assert.Equal(t, 2, m.Length())
	assert.ElementsMatch(t, []string{"one", "two"}, m.Values())

	assert.True(t, m.Remove(1))
	assert.False(t, m.Remove(1))
	assert.False(t, m.Exists(1))
	assert.Equal(t, 1, m.Length())
}

func TestMapGetOrSetConcurrent(t *testing.T) {
	m := NewMap[int, *int]()

	var (
		wg    sync.WaitGroup
		calls int
		mu    sync.Mutex
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.GetOrSet(1, func() *int {
				mu.Lock()
				calls++
				mu.Unlock()
				return new(int)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestSet(t *testing.T) {
	s := NewSet(1, 2)

	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3))
	assert.True(t, s.Exists(2))
	assert.Equal(t, 3, s.Length())
	assert.ElementsMatch(t, []int{1, 2, 3}, s.Values())

	assert.True(t, s.Remove(2))
	assert.False(t, s.Remove(2))
	assert.ElementsMatch(t, []int{1, 3}, s.Values())
}

func TestWithout(t *testing.T) {
	orig := []int{1, 2, 3, 2}

	assert.Equal(t, []int{1, 3}, Without(orig, 2))
	assert.Equal(t, []int{1, 2, 3, 2}, orig)
	assert.Equal(t, []int{1, 2, 3, 2}, Without(orig, 4))
	assert.True(t, Contains(orig, 3))
	assert.False(t, Contains(orig, 5))
}
