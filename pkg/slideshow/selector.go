package slideshow

import (
	"math/rand"
	"time"
)

// Selector picks the next image from a candidate set under a rotation
// policy. It holds no state of its own beyond the random source; the
// caller owns last-shown and cursor.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector seeded from the current time.
func NewSelector() *Selector {
	return &Selector{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// newSelectorWithSource creates a Selector with a caller-supplied source,
// used by tests that need deterministic draws.
func newSelectorWithSource(src rand.Source) *Selector {
	return &Selector{rng: rand.New(src)}
}

// Select returns the next image path and the new cursor position. The
// candidate slice must already be sorted lexicographically (Catalog.Scan
// guarantees this). The returned cursor is the picked index under both
// policies so that switching policy continues from the current position.
// An empty candidate set returns ErrNoCandidates.
func (s *Selector) Select(candidates []string, policy Policy, last string, cursor int) (string, int, error) {
	if len(candidates) == 0 {
		return "", cursor, ErrNoCandidates
	}

	if policy == PolicyRandom {
		idx := s.pickRandom(candidates, last)
		return candidates[idx], idx, nil
	}

	// Sequential: advance by one over the sorted set, wrapping at the end.
	// A cursor that fell out of range (files added or removed since it was
	// stored) restarts the cycle instead of failing.
	idx := cursor + 1
	if idx < 0 || idx >= len(candidates) {
		idx = 0
	}
	return candidates[idx], idx, nil
}

// pickRandom chooses uniformly, redrawing a bounded number of times to
// avoid repeating the previous pick. When every candidate equals last the
// repeat is accepted once the bound is hit.
func (s *Selector) pickRandom(candidates []string, last string) int {
	if len(candidates) == 1 {
		return 0
	}
	idx := s.rng.Intn(len(candidates))
	for attempt := 0; attempt < MaxRandomRetries && candidates[idx] == last; attempt++ {
		idx = s.rng.Intn(len(candidates))
	}
	return idx
}
