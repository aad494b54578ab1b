package genforge

import "pkg.jsn.cam/genforge/pkg/lazytree"

// Map builds a generator whose tree is g's tree with f applied at every
// node.
func Map[A, B any](g Generator[A], f func(A) B) Generator[B] {
	return newGenerator(func(seed Seed, size Size) Tree[B] {
		return lazytree.Map(Run(g, seed, size), f)
	})
}

// DefaultMaxConsecutiveFailures is the rejection-sampling budget used by
// Filter and Bind's filtering variant when the caller does not specify
// one.
const DefaultMaxConsecutiveFailures = 10

// Filter rejection-samples g until pred holds, panicking with
// *ErrFilterTooNarrow once pred has rejected maxConsecutiveFailures
// (default DefaultMaxConsecutiveFailures) fresh draws in a row. A successful tree has
// lazytree.Filter applied so every descendant also satisfies pred.
func Filter[A any](g Generator[A], pred func(A) bool, maxConsecutiveFailures ...int) Generator[A] {
	limit := DefaultMaxConsecutiveFailures
	if len(maxConsecutiveFailures) > 0 {
		limit = maxConsecutiveFailures[0]
	}
	return newGenerator(func(seed Seed, size Size) Tree[A] {
		return filterAttempt(g, pred, seed, size, limit, limit)
	})
}

func filterAttempt[A any](g Generator[A], pred func(A) bool, seed Seed, size Size, limit, triesLeft int) Tree[A] {
	s1, s2 := Split(seed)
	t := Run(g, s1, size)
	if !pred(t.Root) {
		if triesLeft <= 1 {
			panic(&ErrFilterTooNarrow{MaxConsecutiveFailures: limit})
		}
		return filterAttempt(g, pred, s2, size, limit, triesLeft-1)
	}
	return lazytree.Filter(t, pred)
}

// BindFilter is the filtered monadic bind underlying Bind. fun maps a
// drawn A to either (genB, true) — proceed with genB — or (_, false) —
// "skip", meaning this A did not qualify and a fresh one should be
// drawn. After maxConsecutiveFailures skips in a row it panics with
// *ErrFilterTooNarrow.
//
// The critical correctness property is that s2, the seed used to run
// the chosen generator at the root, is REUSED unchanged for every
// descendant of the outer tree, so that shrinking the outer A value
// re-runs k/fun against the same random
// branch rather than an unrelated one. Splitting the seed once and
// closing over s2 for the whole lazytree.Map call below is what
// guarantees this; an implementation that re-split per descendant would
// silently break shrinking.
func BindFilter[A, B any](g Generator[A], fun func(A) (Generator[B], bool), maxConsecutiveFailures ...int) Generator[B] {
	limit := DefaultMaxConsecutiveFailures
	if len(maxConsecutiveFailures) > 0 {
		limit = maxConsecutiveFailures[0]
	}
	return newGenerator(func(seed Seed, size Size) Tree[B] {
		return bindFilterAttempt(g, fun, seed, size, limit, limit)
	})
}

func bindFilterAttempt[A, B any](g Generator[A], fun func(A) (Generator[B], bool), seed Seed, size Size, limit, triesLeft int) Tree[B] {
	s1, s2 := Split(seed)
	t := Run(g, s1, size)

	genTree, ok := lazytree.MapFilter(t, fun)
	if !ok {
		if triesLeft <= 1 {
			panic(&ErrFilterTooNarrow{MaxConsecutiveFailures: limit})
		}
		return bindFilterAttempt(g, fun, s2, size, limit, triesLeft-1)
	}

	// genTree: Tree[Generator[B]]. s2 is reused, not re-split, for
	// every node — see the doc comment above.
	nested := lazytree.Map(genTree, func(chosen Generator[B]) Tree[B] {
		return Run(chosen, s2, size)
	})
	return lazytree.Flatten(nested)
}

// Bind is the monadic combinator: draw an A from g, then draw from
// k(A). Shrinking works inner-first: the inner B shrinks through its own
// tree's children before the outer A shrinks and k is re-applied to
// produce a fresh inner tree (see lazytree.Flatten's doc comment).
func Bind[A, B any](g Generator[A], k func(A) Generator[B]) Generator[B] {
	return BindFilter(g, func(a A) (Generator[B], bool) { return k(a), true }, 0)
}

// Weighted pairs a generator with its relative selection weight for
// Frequency.
type Weighted[A any] struct {
	Weight int64
	Gen    Generator[A]
}

// Frequency picks generator i with probability weight_i / sum(weights),
// implemented as bind(IntegerInRange(0, sum-1), pick). Shrinking follows
// from Bind: the chosen value shrinks first, then (via the index
// integer's own shrink toward 0) the choice drifts toward earlier
// generators in the list. Panics if choices is empty or any weight is
// not positive: both are construction-time contract violations.
func Frequency[A any](choices []Weighted[A]) Generator[A] {
	if len(choices) == 0 {
		panic("genforge: Frequency: choices must not be empty")
	}
	var total int64
	for _, c := range choices {
		if c.Weight <= 0 {
			panic("genforge: Frequency: weights must be positive")
		}
		total += c.Weight
	}
	return Bind(IntegerInRange(0, total-1), func(n int64) Generator[A] {
		var cum int64
		for _, c := range choices {
			cum += c.Weight
			if n < cum {
				return c.Gen
			}
		}
		return choices[len(choices)-1].Gen
	})
}

// OneOf picks uniformly among gens: bind(IntegerInRange(0, n-1), pick).
// Panics if gens is empty.
func OneOf[A any](gens []Generator[A]) Generator[A] {
	if len(gens) == 0 {
		panic("genforge: OneOf: gens must not be empty")
	}
	return Bind(IntegerInRange(0, int64(len(gens)-1)), func(i int64) Generator[A] {
		return gens[i]
	})
}

// MemberOf picks uniformly among a finite, already-materialized slice of
// items. Panics with *ErrEmptyEnumerable if items is empty; an infinite
// or unbounded enumerable isn't supported — callers with a
// large-but-finite domain should pass its length explicitly by building
// the slice themselves.
func MemberOf[A any](items []A) Generator[A] {
	if len(items) == 0 {
		panic(&ErrEmptyEnumerable{Func: "MemberOf"})
	}
	return Map(IntegerInRange(0, int64(len(items)-1)), func(i int64) A { return items[i] })
}

// Resize invokes g with size s regardless of the caller's outer size.
func Resize[A any](g Generator[A], s Size) Generator[A] {
	return newGenerator(func(seed Seed, _ Size) Tree[A] {
		return Run(g, seed, s)
	})
}

// Sized builds a generator whose shape depends on the current size, by
// calling f(size) to obtain the generator to run.
func Sized[A any](f func(Size) Generator[A]) Generator[A] {
	return newGenerator(func(seed Seed, size Size) Tree[A] {
		return Run(f(size), seed, size)
	})
}

// Scale rescales g's size on every draw via h. A negative result from h
// is clamped to 0 rather than passed through: a generator asked to draw
// at "negative size" has no sensible non-erroring interpretation other
// than "as small as possible."
func Scale[A any](g Generator[A], h func(Size) Size) Generator[A] {
	return Sized(func(s Size) Generator[A] {
		newSize := h(s)
		if newSize < 0 {
			newSize = 0
		}
		return Resize(g, newSize)
	})
}

// NoShrink retains only the root of g's tree, discarding all shrinks.
func NoShrink[A any](g Generator[A]) Generator[A] {
	return newGenerator(func(seed Seed, size Size) Tree[A] {
		return lazytree.Constant(Run(g, seed, size).Root)
	})
}
