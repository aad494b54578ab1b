package runner

import "pkg.jsn.cam/genforge"

// Stream is the streaming adapter over a Generator[A]: an infinite,
// non-deduplicating sequence of roots. Each call to Next splits the
// current seed, runs the generator at the current size, yields the
// root (the shrink tree is discarded here — only Next's caller decides
// whether to rebuild it), and grows the size by one until it saturates
// at genforge.MaxSize.
type Stream[A any] struct {
	gen  genforge.Generator[A]
	seed genforge.Seed
	size genforge.Size
}

// NewStream starts a Stream at size 1 from the given seed.
func NewStream[A any](gen genforge.Generator[A], seed genforge.Seed) *Stream[A] {
	return &Stream[A]{gen: gen, seed: seed, size: 1}
}

// Next draws the next value, returning it along with the exact
// (seed, size) pair that produced it so a caller can deterministically
// re-run the generator later, e.g. to rebuild the full shrink tree once
// a failing value has been found.
func (s *Stream[A]) Next() (value A, drawSeed genforge.Seed, size genforge.Size) {
	drawSeed, rest := genforge.Split(s.seed)
	s.seed = rest
	size = s.size
	value = genforge.Run(s.gen, drawSeed, size).Root
	if s.size < genforge.MaxSize {
		s.size++
	}
	return value, drawSeed, size
}
