package simulate

import "sync/atomic"

const mask63 = uint64(1<<63) - 1

// seedSplitter derives independent per-worker seeds from one master seed.
// state walks the full period of a 2^63-modulus LCG (so no two calls ever
// repeat within a run's lifetime) and each draw is passed through the
// reversible mix63 finalizer to remove the LCG's low-bit correlation before
// it reaches a worker's PRNG.
type seedSplitter struct {
	state atomic.Uint64
}

func newSeedSplitter(masterSeed int64) *seedSplitter {
	s := &seedSplitter{}
	s.state.Store(uint64(masterSeed) & mask63)
	return s
}

// next is safe for concurrent use: the CAS loop guarantees every caller
// observes a distinct state advance, so concurrent workers requesting seeds
// during a run never collide.
func (s *seedSplitter) next() int64 {
	for {
		old := s.state.Load()
		nxt := (old*6364136223846793005 + 1442695040888963407) & mask63
		if s.state.CompareAndSwap(old, nxt) {
			return int64(mix63(nxt))
		}
	}
}

func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}

// workerSeeds derives exactly w seeds in order from masterSeed. Calling it
// twice with the same (masterSeed, w) always returns the same sequence,
// which is what makes a chunk's output a pure function of
// (request, seed, worker_index).
func workerSeeds(masterSeed int64, w int) []int64 {
	sp := newSeedSplitter(masterSeed)
	out := make([]int64, w)
	for i := range out {
		out[i] = sp.next()
	}
	return out
}
