// Package util holds small concurrency helpers shared across the app.
package util

import "sync/atomic"

// SafeCounter is an int counter safe for concurrent use.
type SafeCounter struct {
	value atomic.Int64
}

// NewSafeInt creates a counter starting at zero.
func NewSafeInt() *SafeCounter {
	return &SafeCounter{}
}

// NewSafeIntWithValue creates a counter with an initial value.
func NewSafeIntWithValue(initial int) *SafeCounter {
	sc := &SafeCounter{}
	sc.value.Store(int64(initial))
	return sc
}

// Increment adds one and returns the new value.
func (sc *SafeCounter) Increment() int {
	return int(sc.value.Add(1))
}

// Add adds delta and returns the new value.
func (sc *SafeCounter) Add(delta int) int {
	return int(sc.value.Add(int64(delta)))
}

// Set replaces the counter's value.
func (sc *SafeCounter) Set(v int) {
	sc.value.Store(int64(v))
}

// Value returns the current value.
func (sc *SafeCounter) Value() int {
	return int(sc.value.Load())
}

// SafeFlag is a boolean flag safe for concurrent use.
type SafeFlag struct {
	value atomic.Bool
}

// NewSafeBool creates a flag starting false.
func NewSafeBool() *SafeFlag {
	return &SafeFlag{}
}

// NewSafeBoolWithValue creates a flag with an initial value.
func NewSafeBoolWithValue(initial bool) *SafeFlag {
	sf := &SafeFlag{}
	sf.value.Store(initial)
	return sf
}

// Set replaces the flag's value and returns it.
func (sf *SafeFlag) Set(v bool) bool {
	sf.value.Store(v)
	return v
}

// Value returns the current value.
func (sf *SafeFlag) Value() bool {
	return sf.value.Load()
}

// Toggle flips the flag and returns the new value.
func (sf *SafeFlag) Toggle() bool {
	for {
		old := sf.value.Load()
		if sf.value.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
