package genforge

import (
	"pkg.jsn.cam/genforge/pkg/lazytree"
	"pkg.jsn.cam/genforge/pkg/prand"
)

// FixedList splits the seed once per generator, runs each, and zips the
// resulting trees into a single Tree[[]A]. Unlike ListOf, no element is
// ever added or removed during shrinking — only individual elements
// shrink. Panics if gens is empty.
func FixedList[A any](gens []Generator[A]) Generator[[]A] {
	if len(gens) == 0 {
		panic("genforge: FixedList: gens must not be empty")
	}
	return newGenerator(func(seed Seed, size Size) Tree[[]A] {
		trees := make([]Tree[A], len(gens))
		s := seed
		for i, g := range gens {
			var si Seed
			si, s = Split(s)
			trees[i] = Run(g, si, size)
		}
		return lazytree.Zip(trees)
	})
}

// Pair, Triple, and Quad are the tuple shapes Tuple2..Tuple4
// build. Go generics have no variadic type parameters, so unlike the
// spec's single tuple(g1, ..., gn), each arity is its own function.
type Pair[A, B any] struct {
	First  A
	Second B
}

type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Tuple2 zips two heterogeneously-typed generators. Each of the pair's
// two positions shrinks independently, one at a time, exactly like
// lazytree.Zip does for a homogeneous list.
func Tuple2[A, B any](ga Generator[A], gb Generator[B]) Generator[Pair[A, B]] {
	return newGenerator(func(seed Seed, size Size) Tree[Pair[A, B]] {
		s1, s2 := Split(seed)
		return zipPair(Run(ga, s1, size), Run(gb, s2, size))
	})
}

func zipPair[A, B any](ta Tree[A], tb Tree[B]) Tree[Pair[A, B]] {
	root := Pair[A, B]{First: ta.Root, Second: tb.Root}
	fromA := lazytree.MapSeq(ta.Children, func(ca Tree[A]) Tree[Pair[A, B]] { return zipPair(ca, tb) })
	fromB := lazytree.MapSeq(tb.Children, func(cb Tree[B]) Tree[Pair[A, B]] { return zipPair(ta, cb) })
	return lazytree.New(root, lazytree.ConcatSeq(fromA, fromB))
}

// Tuple3 composes Tuple2 twice and reshapes into a flat triple, mirroring
// how an n-ary tuple decomposes into nested pairs plus a reshape.
func Tuple3[A, B, C any](ga Generator[A], gb Generator[B], gc Generator[C]) Generator[Triple[A, B, C]] {
	return Map(Tuple2(Tuple2(ga, gb), gc), func(p Pair[Pair[A, B], C]) Triple[A, B, C] {
		return Triple[A, B, C]{First: p.First.First, Second: p.First.Second, Third: p.Second}
	})
}

// Tuple4 composes Tuple3 and Tuple2.
func Tuple4[A, B, C, D any](ga Generator[A], gb Generator[B], gc Generator[C], gd Generator[D]) Generator[Quad[A, B, C, D]] {
	return Map(Tuple2(Tuple3(ga, gb, gc), gd), func(p Pair[Triple[A, B, C], D]) Quad[A, B, C, D] {
		return Quad[A, B, C, D]{First: p.First.First, Second: p.First.Second, Third: p.First.Third, Fourth: p.Second}
	})
}

// ListOf draws a length uniformly from [0, size] (one split of the
// seed), generates that many trees (one split each), zips them, then
// maps every resulting list-root through listShrinkTree and flattens —
// so a shrink either deletes one element (the inner, listShrinkTree
// layer) or shrinks one element in place (the outer, Zip layer). Per
// lazytree.Flatten's inner-first order, deletions are tried before
// per-element shrinks.
func ListOf[A any](g Generator[A]) Generator[[]A] {
	return newGenerator(func(seed Seed, size Size) Tree[[]A] {
		sLen, sRest := Split(seed)
		length, _ := uniformInt(0, int64(size), sLen)
		trees := make([]Tree[A], length)
		s := sRest
		for i := int64(0); i < length; i++ {
			var si Seed
			si, s = Split(s)
			trees[i] = Run(g, si, size)
		}
		zipped := lazytree.Zip(trees)
		return lazytree.Flatten(lazytree.Map(zipped, listShrinkTree[A]))
	})
}

// listShrinkTree builds the deletion shrink tree for a materialized
// list: its root is xs itself, and it has one child per index — that
// index's element removed, itself expanded by the same rule. Children
// are produced lazily index by index, essential for long lists.
func listShrinkTree[A any](xs []A) Tree[[]A] {
	return lazytree.New(xs, deletionChildren(xs))
}

func deletionChildren[A any](xs []A) lazytree.Seq[Tree[[]A]] {
	return deletionFrom(xs, 0)
}

func deletionFrom[A any](xs []A, i int) lazytree.Seq[Tree[[]A]] {
	return func() (Tree[[]A], lazytree.Seq[Tree[[]A]], bool) {
		if i >= len(xs) {
			var zero Tree[[]A]
			return zero, nil, false
		}
		without := make([]A, 0, len(xs)-1)
		without = append(without, xs[:i]...)
		without = append(without, xs[i+1:]...)
		return listShrinkTree(without), deletionFrom(xs, i+1), true
	}
}

// NonEmpty filters out the empty value according to isEmpty. It is
// filter(g, not empty) generalized over any notion of "empty" the
// caller's value type has.
func NonEmpty[A any](g Generator[A], isEmpty func(A) bool) Generator[A] {
	return Filter(g, func(a A) bool { return !isEmpty(a) })
}

// NonEmptyList specializes NonEmpty to slices.
func NonEmptyList[A any](g Generator[[]A]) Generator[[]A] {
	return NonEmpty(g, func(xs []A) bool { return len(xs) == 0 })
}

// UniqListOf is ListOf with a uniqueness constraint: elements are drawn
// one at a time, keyed by key, and a duplicate key triggers a re-draw;
// maxTries (default DefaultMaxConsecutiveFailures) consecutive
// duplicates panics with *ErrTooManyDuplicates. After zipping, every
// node (root and every shrink) has dedupeByKey applied so that shrinking
// — which can make two previously-distinct elements collide — can never
// reintroduce a duplicate key.
func UniqListOf[A any, K comparable](g Generator[A], key func(A) K, maxTries ...int) Generator[[]A] {
	limit := DefaultMaxConsecutiveFailures
	if len(maxTries) > 0 {
		limit = maxTries[0]
	}
	if limit < 0 {
		panic("genforge: UniqListOf: maxTries must not be negative")
	}
	return newGenerator(func(seed Seed, size Size) Tree[[]A] {
		sLen, sRest := Split(seed)
		length, _ := uniformInt(0, int64(size), sLen)

		trees := make([]Tree[A], 0, length)
		seen := make(map[K]struct{}, length)
		s := sRest
		consecutiveFailures := 0

		for int64(len(trees)) < length {
			var si Seed
			si, s = Split(s)
			t := Run(g, si, size)
			k := key(t.Root)
			if _, dup := seen[k]; dup {
				consecutiveFailures++
				if consecutiveFailures >= limit {
					panic(&ErrTooManyDuplicates{
						MaxTries:  limit,
						Remaining: int(length) - len(trees),
						Generated: len(trees),
					})
				}
				continue
			}
			consecutiveFailures = 0
			seen[k] = struct{}{}
			trees = append(trees, t)
		}

		zipped := lazytree.Zip(trees)
		deduped := lazytree.Map(zipped, func(xs []A) []A { return dedupeByKey(xs, key) })
		return lazytree.Flatten(lazytree.Map(deduped, listShrinkTree[A]))
	})
}

func dedupeByKey[A any, K comparable](xs []A, key func(A) K) []A {
	seen := make(map[K]struct{}, len(xs))
	out := make([]A, 0, len(xs))
	for _, x := range xs {
		k := key(x)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, x)
	}
	return out
}

// MapOf builds a Go map generator as uniq_list_of(tuple(kg, vg), key =
// first, maxTries) followed by a map from pair-list to map[K]V.
func MapOf[K comparable, V any](kg Generator[K], vg Generator[V], maxTries ...int) Generator[map[K]V] {
	pairs := UniqListOf(Tuple2(kg, vg), func(p Pair[K, V]) K { return p.First }, maxTries...)
	return Map(pairs, func(ps []Pair[K, V]) map[K]V {
		m := make(map[K]V, len(ps))
		for _, p := range ps {
			m[p.First] = p.Second
		}
		return m
	})
}

// KeyedGen pairs a fixed key with the generator for its value, for
// FixedMap. A plain Go map can't be used as the input because map
// iteration order is nondeterministic and generator seed-splitting
// must be deterministic; a slice preserves the caller's chosen order.
type KeyedGen[K comparable, V any] struct {
	Key K
	Gen Generator[V]
}

// FixedMap is fixed_list([tuple(constant(k_i), g_i)]) mapped to a
// map[K]V: every key is present in every shrink, only values shrink.
func FixedMap[K comparable, V any](entries []KeyedGen[K, V]) Generator[map[K]V] {
	if len(entries) == 0 {
		panic("genforge: FixedMap: entries must not be empty")
	}
	gens := make([]Generator[Pair[K, V]], len(entries))
	for i, e := range entries {
		gens[i] = Tuple2(Const(e.Key), e.Gen)
	}
	return Map(FixedList(gens), func(pairs []Pair[K, V]) map[K]V {
		m := make(map[K]V, len(pairs))
		for _, p := range pairs {
			m[p.First] = p.Second
		}
		return m
	})
}

// KeywordOf is list_of(tuple(atom_generator, vg)): Go has no native
// cons-cell keyword list, so the result is represented as an
// order-preserving slice of key/value pairs instead of a map (map_of
// already covers the "want a map[K]V" case).
func KeywordOf[V any](vg Generator[V]) Generator[[]Pair[string, V]] {
	return ListOf(Tuple2(Atom(), vg))
}

func uniformInt(lo, hi int64, s Seed) (int64, Seed) {
	return prand.UniformIntInRange(lo, hi, s)
}
