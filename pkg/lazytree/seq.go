// Package lazytree implements LazyTree, the rose-tree shrink-tree data
// structure at the core of package genforge, and its functorial/monadic
// operations (Map, Filter, MapFilter, Flatten, Zip).
//
// Every child sequence is realized lazily: a Seq is a thunk that, when
// called, produces at most one element plus a continuation thunk for the
// rest. Apart from ToSlice, a test/debugging helper, nothing in this
// package forces a Seq to completion; callers (shrink drivers, tests)
// decide how much of a tree to walk.
package lazytree

// Seq is a lazy, possibly infinite sequence of values. Calling it
// returns the head, a continuation Seq for the remainder, and whether
// there was a head at all. An exhausted Seq returns the zero value,
// a nil continuation, and false.
type Seq[A any] func() (A, Seq[A], bool)

// Empty returns the sequence with no elements.
func Empty[A any]() Seq[A] {
	return func() (A, Seq[A], bool) {
		var zero A
		return zero, nil, false
	}
}

// FromSlice lazily walks a slice. The slice itself is a materialized
// value (as list_of and fixed_list already have one in hand), but
// nothing beyond the current index is touched until asked for.
func FromSlice[A any](items []A) Seq[A] {
	var walk func(i int) Seq[A]
	walk = func(i int) Seq[A] {
		return func() (A, Seq[A], bool) {
			if i >= len(items) {
				var zero A
				return zero, nil, false
			}
			return items[i], walk(i + 1), true
		}
	}
	return walk(0)
}

// ToSlice forces every element of s. Only ever appropriate on sequences
// known to be finite and small: full generator shrink trees are neither,
// so this is a test/debugging helper, not something package genforge
// calls.
func ToSlice[A any](s Seq[A]) []A {
	var out []A
	for {
		head, tail, ok := s()
		if !ok {
			return out
		}
		out = append(out, head)
		s = tail
	}
}

// MapSeq lazily applies f to every element of s.
func MapSeq[A, B any](s Seq[A], f func(A) B) Seq[B] {
	return func() (B, Seq[B], bool) {
		head, tail, ok := s()
		if !ok {
			var zero B
			return zero, nil, false
		}
		return f(head), MapSeq(tail, f), true
	}
}

// FilterSeq lazily keeps only elements satisfying pred.
func FilterSeq[A any](s Seq[A], pred func(A) bool) Seq[A] {
	return func() (A, Seq[A], bool) {
		for {
			head, tail, ok := s()
			if !ok {
				var zero A
				return zero, nil, false
			}
			if pred(head) {
				return head, FilterSeq(tail, pred), true
			}
			s = tail
		}
	}
}

// ConcatSeq lazily yields every element of a, then every element of b.
// b is never touched until a is exhausted.
func ConcatSeq[A any](a, b Seq[A]) Seq[A] {
	return func() (A, Seq[A], bool) {
		if head, tail, ok := a(); ok {
			return head, ConcatSeq(tail, b), true
		}
		return b()
	}
}

// TakeSeq stops after at most n elements. Nothing else in this module
// calls it (Sprint bounds its own traversal); the generator core never
// truncates a tree on its own.
func TakeSeq[A any](s Seq[A], n int) Seq[A] {
	if n <= 0 {
		return Empty[A]()
	}
	return func() (A, Seq[A], bool) {
		head, tail, ok := s()
		if !ok {
			var zero A
			return zero, nil, false
		}
		return head, TakeSeq(tail, n-1), true
	}
}
