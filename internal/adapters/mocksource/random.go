package mocksource

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// sineRand is a tiny reproducible generator: frac(sin(seed++) * 10000).
// Reusing the same seed always yields the same sample stream.
type sineRand struct {
	seed float64
}

func newSineRand(seed int64) *sineRand {
	return &sineRand{seed: float64(seed)}
}

// Float returns a value in [0, 1).
func (r *sineRand) Float() float64 {
	x := math.Sin(r.seed) * 10000
	r.seed++
	return x - math.Floor(x)
}

// Range returns a value in [min, max).
func (r *sineRand) Range(min, max float64) float64 {
	return min + r.Float()*(max-min)
}

func pick[T any](r *sineRand, items []T) T {
	return items[int(math.Floor(r.Float()*float64(len(items))))]
}

// idSource produces deterministic UUIDs for a given seed.
type idSource struct {
	rnd *rand.Rand
}

func newIDSource(seed int64) *idSource {
	return &idSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *idSource) Next() string {
	id, err := uuid.NewRandomFromReader(s.rnd)
	if err != nil {
		// math/rand never fails to fill a buffer
		return uuid.NewString()
	}
	return id.String()
}
