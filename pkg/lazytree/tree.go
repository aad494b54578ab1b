package lazytree

// Tree is a rose tree: a root value plus a lazy sequence of child trees,
// each of which is itself a smaller/simpler valid value for whatever
// generator produced the root.
type Tree[A any] struct {
	Root     A
	Children Seq[Tree[A]]
}

// Constant builds a tree with no children: a value that does not shrink.
func Constant[A any](a A) Tree[A] {
	return Tree[A]{Root: a, Children: Empty[Tree[A]]()}
}

// New builds a tree from an explicit root and child sequence.
func New[A any](a A, children Seq[Tree[A]]) Tree[A] {
	return Tree[A]{Root: a, Children: children}
}

// Map applies f to the root and, lazily, to every descendant.
func Map[A, B any](t Tree[A], f func(A) B) Tree[B] {
	return Tree[B]{
		Root:     f(t.Root),
		Children: MapSeq(t.Children, func(c Tree[A]) Tree[B] { return Map(c, f) }),
	}
}

// Filter assumes t.Root already satisfies pred (callers must guarantee
// this at the generator layer; see genforge.Filter's rejection sampling). Every
// child whose root fails pred is dropped along with its entire subtree,
// since none of its descendants can be assumed to satisfy pred either.
// Children that pass are recursively filtered the same way.
func Filter[A any](t Tree[A], pred func(A) bool) Tree[A] {
	kept := FilterSeq(t.Children, func(c Tree[A]) bool { return pred(c.Root) })
	return Tree[A]{
		Root:     t.Root,
		Children: MapSeq(kept, func(c Tree[A]) Tree[A] { return Filter(c, pred) }),
	}
}

// MapFilter applies f to the root; f returns (value, false) to mean
// "skip". If the root is skipped, MapFilter reports ok=false and the
// caller decides what to do (genforge.BindFilter retries with a
// fresh seed). If the root passes, the result tree's children are the
// MapFilter of t's children that also pass; failing children and their
// subtrees are dropped, mirroring Filter.
func MapFilter[A, B any](t Tree[A], f func(A) (B, bool)) (Tree[B], bool) {
	root, ok := f(t.Root)
	if !ok {
		var zero Tree[B]
		return zero, false
	}
	return Tree[B]{
		Root:     root,
		Children: mapFilterSeq(t.Children, f),
	}, true
}

func mapFilterSeq[A, B any](s Seq[Tree[A]], f func(A) (B, bool)) Seq[Tree[B]] {
	return func() (Tree[B], Seq[Tree[B]], bool) {
		for {
			head, tail, ok := s()
			if !ok {
				var zero Tree[B]
				return zero, nil, false
			}
			if mapped, passed := MapFilter(head, f); passed {
				return mapped, mapFilterSeq(tail, f), true
			}
			s = tail
		}
	}
}

// Flatten is the monadic join for rose trees. Its root is the inner
// tree's root. Its children are the inner tree's own children first,
// then the outer tree's children (each recursively flattened).
//
// This is "inner-first": shrinking an already-flattened value tries to
// shrink within the current outer branch (cheap, reuses the same random
// derivation) before trying a different outer branch entirely (which
// re-derives a fresh inner tree). genforge.Bind relies on exactly this
// order — see its doc comment — and every other flatten call site in
// package genforge (ListOf, UniqListOf) reuses this same function and inherits the
// same order: element-deletion shrinks (the "inner" tree there) are
// tried before the zipped per-element shrinks (the "outer" one).
func Flatten[A any](tt Tree[Tree[A]]) Tree[A] {
	inner := tt.Root
	outerFlattened := MapSeq(tt.Children, Flatten[A])
	return Tree[A]{
		Root:     inner.Root,
		Children: ConcatSeq(inner.Children, outerFlattened),
	}
}

// Zip combines a list of trees into one tree of lists. The root is the
// list of roots. Children shrink exactly one position at a time: for
// each index i and each child c of trees[i], one child of the result is
// Zip(trees with position i replaced by c). The full children sequence
// concatenates these per-index sequences lazily, index by index.
func Zip[A any](trees []Tree[A]) Tree[[]A] {
	roots := make([]A, len(trees))
	for i, t := range trees {
		roots[i] = t.Root
	}
	return Tree[[]A]{Root: roots, Children: zipChildren(trees)}
}

func zipChildren[A any](trees []Tree[A]) Seq[Tree[[]A]] {
	return zipFromIndex(trees, 0)
}

func zipFromIndex[A any](trees []Tree[A], i int) Seq[Tree[[]A]] {
	if i >= len(trees) {
		return Empty[Tree[[]A]]()
	}
	thisIndex := MapSeq(trees[i].Children, func(c Tree[A]) Tree[[]A] {
		replaced := make([]Tree[A], len(trees))
		copy(replaced, trees)
		replaced[i] = c
		return Zip(replaced)
	})
	return ConcatSeq(thisIndex, zipFromIndex(trees, i+1))
}
