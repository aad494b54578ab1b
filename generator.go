// Package genforge is a compositional generator/shrinker core for
// property-based testing: a Generator[A] is a pure function from a seed
// and a size to a lazy shrink tree of values. See pkg/lazytree for the
// tree representation and pkg/prand for the splittable random source
// this package drives.
package genforge

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"pkg.jsn.cam/genforge/pkg/lazytree"
	"pkg.jsn.cam/genforge/pkg/prand"
)

// Seed is the splittable pseudo-random state a Generator consumes. It is
// a type alias for prand.Seed so callers of this package never need to
// import pkg/prand directly for the common case.
type Seed = prand.Seed

// NewSeed builds a Seed from an int64, e.g. a flag value or a recorded
// counterexample.
func NewSeed(v int64) Seed { return prand.NewSeed(v) }

// Split derives two independent seeds from s.
func Split(s Seed) (Seed, Seed) { return prand.Split(s) }

// Size bounds the magnitude of generated values: integer range, list
// length, tree depth. It grows across iterations of a property run,
// from 1 up to a maximum of 100 (see pkg/runner).
type Size int

// MaxSize is the size a property run's streaming adapter saturates at.
const MaxSize Size = 100

// Tree is the shrink tree pkg/lazytree produces, specialized to the
// value type A a Generator[A] draws.
type Tree[A any] = lazytree.Tree[A]

// Generator wraps a pure function from (seed, size) to a shrink tree.
// Two Generators with the same underlying function are observationally
// identical. Generators are values: freely copied, composed, and safe
// to call concurrently from multiple goroutines provided each call uses
// its own Seed.
type Generator[A any] struct {
	fn func(Seed, Size) Tree[A]
}

func newGenerator[A any](fn func(Seed, Size) Tree[A]) Generator[A] {
	return Generator[A]{fn: fn}
}

// Run invokes the generator, producing a full shrink tree. The tree's
// Root is "the generated value"; Children is the entry point for a
// shrink search. Run panics if the generator's own invariants are
// violated (ErrFilterTooNarrow, ErrTooManyDuplicates) or if a
// user-supplied callback (Map/Bind/Filter's function argument) panics;
// use TryRun to recover the former without masking the latter.
func Run[A any](g Generator[A], seed Seed, size Size) Tree[A] {
	return g.fn(seed, size)
}

// TryRun invokes the generator and converts a panic carrying
// *ErrFilterTooNarrow or *ErrTooManyDuplicates — the two errors this
// package raises from inside generator invocation itself — into a
// returned error. *ErrEmptyEnumerable and *ErrEmptyRange are
// construction-time errors (raised by MemberOf/IntegerInRange/etc.
// before a Generator value even exists) and so can never surface here;
// TryRun does not special-case them. A panic carrying anything else —
// in particular one raised by a user-supplied Map/Bind/Filter callback —
// is not a genforge invariant violation and is left to propagate
// unchanged, per the "no exception concealment" contract on user
// callbacks.
func TryRun[A any](g Generator[A], seed Seed, size Size) (tree Tree[A], err error) {
	defer func() {
		if r := recover(); r != nil {
			if asErr, ok := r.(error); ok {
				switch asErr.(type) {
				case *ErrFilterTooNarrow, *ErrTooManyDuplicates:
					err = asErr
					return
				}
			}
			panic(r)
		}
	}()
	tree = Run(g, seed, size)
	return tree, nil
}

// Sample draws a single value at the given size using process entropy,
// for ad hoc exploration outside a property run. It is never called by
// any combinator in this package — every combinator threads an explicit
// Seed — and exists purely as a convenience for callers who don't care
// about reproducibility for a one-off value.
func (g Generator[A]) Sample(size Size) A {
	return Run(g, freshSeed(), size).Root
}

// SampleTree is Sample but returns the full tree, so callers can also
// inspect its shrinks.
func (g Generator[A]) SampleTree(size Size) Tree[A] {
	return Run(g, freshSeed(), size)
}

func freshSeed() Seed {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Errorf("genforge: could not read process entropy for Sample: %w", err))
	}
	return NewSeed(int64(binary.LittleEndian.Uint64(buf[:])))
}
