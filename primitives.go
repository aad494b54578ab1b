package genforge

import (
	"pkg.jsn.cam/genforge/pkg/lazytree"
	"pkg.jsn.cam/genforge/pkg/prand"
)

// Const returns a generator that always produces x and never shrinks.
func Const[A any](x A) Generator[A] {
	return newGenerator(func(Seed, Size) Tree[A] {
		return lazytree.Constant(x)
	})
}

// IntegerInRange returns a generator of integers uniform over the
// inclusive range [lo, hi], ignoring size. It panics with *ErrEmptyRange
// if lo > hi — an empty range is a construction-time programmer error,
// not a runtime condition callers should have to recover from.
//
// The shrink tree for a drawn value n offers successive halving steps
// toward target, the range endpoint closest to zero (0 itself if 0 is
// in range), each itself expanded by the same rule; target is always
// among n's candidates directly, so every shrink search reaches it in a
// bounded number of steps rather than dead-ending short of it on
// integer-division truncation.
func IntegerInRange(lo, hi int64) Generator[int64] {
	if lo > hi {
		panic(&ErrEmptyRange{Lo: lo, Hi: hi})
	}
	return newGenerator(func(seed Seed, _ Size) Tree[int64] {
		n, _ := prand.UniformIntInRange(lo, hi, seed)
		return integerShrinkTree(n, lo, hi)
	})
}

// integerShrinkTree builds the shrink tree for a drawn integer n,
// clamped to stay within [lo, hi] at every node.
func integerShrinkTree(n, lo, hi int64) Tree[int64] {
	return lazytree.New(n, halvingChildren(n, lo, hi))
}

func halvingChildren(n, lo, hi int64) lazytree.Seq[Tree[int64]] {
	candidates := halvingCandidates(n, closestToZero(lo, hi))
	filtered := candidates[:0:0]
	for _, c := range candidates {
		if c >= lo && c <= hi {
			filtered = append(filtered, c)
		}
	}
	return lazytree.MapSeq(lazytree.FromSlice(filtered), func(c int64) Tree[int64] {
		return integerShrinkTree(c, lo, hi)
	})
}

// closestToZero returns whichever of lo, hi, or 0 is nearest zero while
// staying in [lo, hi].
func closestToZero(lo, hi int64) int64 {
	if lo <= 0 && 0 <= hi {
		return 0
	}
	if hi < 0 {
		return hi
	}
	return lo
}

// halvingCandidates offers n - diff/2^k for k = 1, 2, ... while
// diff/2^k != 0 (diff = n - target), then target itself, guaranteeing
// target is always reachable in one more step even when n is close
// enough to target that every halved step truncates to n unchanged.
func halvingCandidates(n, target int64) []int64 {
	if n == target {
		return nil
	}
	diff := n - target
	var out []int64
	for k := int64(1); diff/(1<<uint(k)) != 0; k++ {
		out = append(out, n-diff/(1<<uint(k)))
	}
	return append(out, target)
}

// Integer returns a generator of integers scaled to the current size:
// sized(s -> IntegerInRange(-s, s)). It shrinks toward 0.
func Integer() Generator[int64] {
	return Sized(func(s Size) Generator[int64] {
		return IntegerInRange(-int64(s), int64(s))
	})
}

// UniformFloatGen returns a generator of float64 in [0.0, 1.0). It does
// not shrink: it is a leaf with no children, unlike the integer
// primitives.
func UniformFloatGen() Generator[float64] {
	return newGenerator(func(seed Seed, _ Size) Tree[float64] {
		f, _ := prand.UniformFloat(seed)
		return lazytree.Constant(f)
	})
}

// Byte returns a generator of bytes uniform over [0, 255] that does not
// shrink (no_shrink(integer_in_range(0, 255))).
func Byte() Generator[byte] {
	return NoShrink(Map(IntegerInRange(0, 255), func(n int64) byte { return byte(n) }))
}

// Boolean returns a generator of bool, shrinking toward false.
func Boolean() Generator[bool] {
	return MemberOf([]bool{false, true})
}
