package genforge

import (
	"math"

	"pkg.jsn.cam/genforge/pkg/prand"
)

// RecursiveTree builds a self-referential generator (a JSON-like value,
// an expression AST, a filesystem tree) from a leaf generator and a
// function that, given "the generator for a subtree so far", builds the
// generator for one more level of nesting.
//
// The construction avoids subtree_fun ever being asked to run away to
// unbounded depth: size is pseudo-factorized into a handful of levels
// (expected count is logarithmic in size), and at each level the choice
// between "stop here" and "recurse one more level" is a frequency(1,2)
// bind, so the tree shrinks toward its leaf just like any other
// frequency-built generator.
func RecursiveTree[A any](subtreeFun func(Generator[A]) Generator[A], leafData Generator[A]) Generator[A] {
	return newGenerator(func(seed Seed, size Size) Tree[A] {
		sFactor, sRun := Split(seed)
		levels := pseudoFactorize(int64(size), sFactor)

		g := leafData
		for _, n := range levels {
			prev := g
			level := n
			g = Frequency([]Weighted[A]{
				{Weight: 1, Gen: prev},
				{Weight: 2, Gen: Resize(subtreeFun(prev), Size(level))},
			})
		}
		return Run(g, sRun, size)
	})
}

// pseudoFactorize computes k = floor(size^1.1), then repeatedly divides
// k by a random factor in [1, floor(log2 k)] until it drops below 2,
// recording each intermediate k as a level; a drawn factor of 1 ends
// the factorization early, after recording the current k. The number of levels is
// therefore O(log size) in expectation, bounding RecursiveTree's depth.
func pseudoFactorize(size int64, seed Seed) []int64 {
	k := int64(math.Floor(math.Pow(float64(size), 1.1)))
	var levels []int64
	s := seed
	for k >= 2 {
		maxFactor := int64(math.Floor(math.Log2(float64(k))))
		if maxFactor < 1 {
			break
		}
		var factor int64
		factor, s = prand.UniformIntInRange(1, maxFactor, s)
		levels = append(levels, k)
		next := k / factor
		if next >= k {
			break
		}
		k = next
	}
	return levels
}
