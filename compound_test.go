package genforge

import (
	"errors"
	"testing"
)

func TestListOfLengthBoundedBySize(t *testing.T) {
	g := ListOf(Integer())
	for seed := int64(1); seed < 30; seed++ {
		tree := Run(g, NewSeed(seed), 10)
		if len(tree.Root) > 10 {
			t.Errorf("seed %d: root length %d exceeds size 10", seed, len(tree.Root))
		}
	}
}

func TestListOfShrinksMonotonicallyInLength(t *testing.T) {
	g := ListOf(Integer())
	for seed := int64(1); seed < 30; seed++ {
		tree := Run(g, NewSeed(seed), 10)
		rootLen := len(tree.Root)
		walkAllLists(tree, func(xs []int64) {
			if len(xs) > rootLen {
				t.Errorf("seed %d: descendant length %d exceeds root length %d", seed, len(xs), rootLen)
			}
		})
	}
}

func TestFixedListPreservesLength(t *testing.T) {
	gens := []Generator[int64]{IntegerInRange(0, 5), IntegerInRange(10, 15), IntegerInRange(20, 25)}
	g := FixedList(gens)
	for seed := int64(1); seed < 20; seed++ {
		tree := Run(g, NewSeed(seed), 10)
		if len(tree.Root) != 3 {
			t.Fatalf("seed %d: FixedList root has length %d, want 3", seed, len(tree.Root))
		}
		walkAllLists(tree, func(xs []int64) {
			if len(xs) != 3 {
				t.Errorf("seed %d: FixedList shrink changed length to %d", seed, len(xs))
			}
		})
	}
}

func TestTuple2ShrinksBothPositions(t *testing.T) {
	g := Tuple2(IntegerInRange(0, 100), IntegerInRange(0, 100))
	found := false
	for seed := int64(1); seed < 30 && !found; seed++ {
		tree := Run(g, NewSeed(seed), 10)
		if tree.Root.First == 0 && tree.Root.Second == 0 {
			continue
		}
		if hasShrinkTowardZeroPair(tree) {
			found = true
		}
	}
	if !found {
		t.Error("never observed a Tuple2 shrink toward (0,0)")
	}
}

func TestUniqListOfHasNoDuplicateKeys(t *testing.T) {
	g := UniqListOf(IntegerInRange(0, 30), func(n int64) int64 { return n })
	for seed := int64(1); seed < 30; seed++ {
		tree := Run(g, NewSeed(seed), 10)
		walkAllLists(tree, func(xs []int64) {
			seen := map[int64]bool{}
			for _, x := range xs {
				if seen[x] {
					t.Errorf("seed %d: duplicate key %d in %v", seed, x, xs)
				}
				seen[x] = true
			}
		})
	}
}

func TestUniqListOfPanicsWhenDomainTooSmall(t *testing.T) {
	// Requesting up to size 50 unique keys from a domain of two possible
	// values must, for at least some seed whose drawn length exceeds 2,
	// exhaust the retry budget.
	g := Resize(UniqListOf(IntegerInRange(0, 1), func(n int64) int64 { return n }, 3), 50)
	sawError := false
	for seed := int64(1); seed < 100 && !sawError; seed++ {
		_, err := TryRun(g, NewSeed(seed), 50)
		if err == nil {
			continue
		}
		var target *ErrTooManyDuplicates
		if !errors.As(err, &target) {
			t.Fatalf("seed %d: error is %T, want *ErrTooManyDuplicates", seed, err)
		}
		sawError = true
	}
	if !sawError {
		t.Fatal("expected *ErrTooManyDuplicates for at least one seed")
	}
}

func TestMapOfKeysAreUnique(t *testing.T) {
	g := MapOf(IntegerInRange(0, 20), IntegerInRange(0, 100))
	for seed := int64(1); seed < 20; seed++ {
		tree := Run(g, NewSeed(seed), 10)
		if len(tree.Root) > 21 {
			t.Errorf("seed %d: map has more entries than possible unique keys", seed)
		}
	}
}

func TestFixedMapPreservesKeys(t *testing.T) {
	entries := []KeyedGen[string, int64]{
		{Key: "a", Gen: IntegerInRange(0, 10)},
		{Key: "b", Gen: IntegerInRange(0, 10)},
	}
	g := FixedMap(entries)
	tree := Run(g, NewSeed(1), 10)
	if _, ok := tree.Root["a"]; !ok {
		t.Error("missing key 'a'")
	}
	if _, ok := tree.Root["b"]; !ok {
		t.Error("missing key 'b'")
	}
}

func TestNonEmptyListNeverEmpty(t *testing.T) {
	g := NonEmptyList(Resize(ListOf(Integer()), 3))
	for seed := int64(1); seed < 30; seed++ {
		tree := Run(g, NewSeed(seed), 3)
		if len(tree.Root) == 0 {
			t.Errorf("seed %d: NonEmptyList produced an empty list", seed)
		}
		walkAllLists(tree, func(xs []int64) {
			if len(xs) == 0 {
				t.Errorf("seed %d: shrink produced an empty list", seed)
			}
		})
	}
}

func TestKeywordOfProducesPairs(t *testing.T) {
	g := Resize(KeywordOf(Integer()), 5)
	tree := Run(g, NewSeed(3), 5)
	for _, p := range tree.Root {
		if p.First == "" {
			t.Error("empty atom key produced")
		}
	}
}

func walkAllLists(t Tree[[]int64], visit func([]int64)) {
	visit(t.Root)
	children := t.Children
	for {
		child, rest, ok := children()
		if !ok {
			return
		}
		walkAllLists(child, visit)
		children = rest
	}
}

func hasShrinkTowardZeroPair(t Tree[Pair[int64, int64]]) bool {
	if t.Root.First == 0 && t.Root.Second == 0 {
		return true
	}
	children := t.Children
	for {
		child, rest, ok := children()
		if !ok {
			return false
		}
		if hasShrinkTowardZeroPair(child) {
			return true
		}
		children = rest
	}
}
