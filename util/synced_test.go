package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeCounter(t *testing.T) {
	t.Run("Basic Operations", func(t *testing.T) {
		sc := NewSafeIntWithValue(10)
		assert.Equal(t, 10, sc.Value())

		assert.Equal(t, 11, sc.Increment())
		assert.Equal(t, 16, sc.Add(5))
		assert.Equal(t, 13, sc.Add(-3))

		sc.Set(0)
		assert.Equal(t, 0, sc.Value())
	})

	t.Run("Concurrency", func(t *testing.T) {
		sc := NewSafeInt()
		var wg sync.WaitGroup
		const iterations = 1000

		wg.Add(iterations)
		for i := 0; i < iterations; i++ {
			go func() {
				defer wg.Done()
				sc.Increment()
			}()
		}
		wg.Wait()
		assert.Equal(t, iterations, sc.Value())
	})
}

func TestSafeFlag(t *testing.T) {
	t.Run("Basic Operations", func(t *testing.T) {
		sf := NewSafeBoolWithValue(true)
		assert.True(t, sf.Value())

		assert.False(t, sf.Set(false))
		assert.False(t, sf.Value())

		assert.True(t, sf.Toggle())
		assert.False(t, sf.Toggle())
	})

	t.Run("Concurrency", func(t *testing.T) {
		sf := NewSafeBool()
		var wg sync.WaitGroup
		const iterations = 100

		// An even number of toggles always lands back on false.
		wg.Add(iterations)
		for i := 0; i < iterations; i++ {
			go func() {
				defer wg.Done()
				sf.Toggle()
			}()
		}
		wg.Wait()
		assert.False(t, sf.Value())
	})
}
