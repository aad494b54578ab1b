package lazytree

import "testing"

func intTree(root int, children ...Tree[int]) Tree[int] {
	return New(root, FromSlice(children))
}

func TestConstantHasNoChildren(t *testing.T) {
	tr := Constant(5)
	if tr.Root != 5 {
		t.Fatalf("Root = %d, want 5", tr.Root)
	}
	if _, _, ok := tr.Children(); ok {
		t.Error("Constant should have no children")
	}
}

func TestMapAppliesToRootAndDescendants(t *testing.T) {
	tr := intTree(10, intTree(5), intTree(0))
	doubled := Map(tr, func(n int) int { return n * 2 })

	if doubled.Root != 20 {
		t.Fatalf("Root = %d, want 20", doubled.Root)
	}
	kids := ToSlice(doubled.Children)
	if len(kids) != 2 || kids[0].Root != 10 || kids[1].Root != 0 {
		t.Fatalf("unexpected children: %#v", kids)
	}
}

func TestMapFunctoriality(t *testing.T) {
	tr := intTree(10, intTree(5), intTree(0))
	f := func(n int) int { return n + 1 }
	g := func(n int) int { return n * 3 }

	left := Map(Map(tr, f), g)
	right := Map(tr, func(n int) int { return g(f(n)) })

	if left.Root != right.Root {
		t.Fatalf("map(map(t,f),g).Root = %d, want %d", left.Root, right.Root)
	}
	lk, rk := ToSlice(left.Children), ToSlice(right.Children)
	if len(lk) != len(rk) {
		t.Fatalf("children length mismatch: %d vs %d", len(lk), len(rk))
	}
	for i := range lk {
		if lk[i].Root != rk[i].Root {
			t.Errorf("child %d root mismatch: %d vs %d", i, lk[i].Root, rk[i].Root)
		}
	}
}

func TestFilterDropsFailingChildrenAndDescendants(t *testing.T) {
	// Root 10, one child that fails (11, with its own child 12 that
	// would pass) and one child that passes (4, with a passing child 2).
	failing := intTree(11, intTree(12))
	passing := intTree(4, intTree(2))
	tr := intTree(10, failing, passing)

	even := func(n int) bool { return n%2 == 0 }
	filtered := Filter(tr, even)

	kids := ToSlice(filtered.Children)
	if len(kids) != 1 || kids[0].Root != 4 {
		t.Fatalf("expected only the passing child to survive, got %#v", kids)
	}
	grandkids := ToSlice(kids[0].Children)
	if len(grandkids) != 1 || grandkids[0].Root != 2 {
		t.Fatalf("expected passing child's own children to survive, got %#v", grandkids)
	}
}

func TestMapFilterSkipsRoot(t *testing.T) {
	tr := intTree(3)
	_, ok := MapFilter(tr, func(n int) (int, bool) { return n, n%2 == 0 })
	if ok {
		t.Error("MapFilter should report false when the root fails")
	}
}

func TestMapFilterKeepsPassingSubtree(t *testing.T) {
	tr := intTree(10, intTree(11), intTree(4))
	result, ok := MapFilter(tr, func(n int) (string, bool) {
		if n%2 != 0 {
			return "", false
		}
		return "v", true
	})
	if !ok {
		t.Fatal("expected root to pass")
	}
	kids := ToSlice(result.Children)
	if len(kids) != 1 || kids[0].Root != "v" {
		t.Fatalf("expected exactly the even child to survive, got %#v", kids)
	}
}

func TestFlattenInnerChildrenComeFirst(t *testing.T) {
	inner := intTree(1, intTree(0))
	outer := New(inner, FromSlice([]Tree[Tree[int]]{
		intTreeOf(intTree(2, intTree(1))),
	}))

	flat := Flatten(outer)
	if flat.Root != 1 {
		t.Fatalf("Root = %d, want 1 (inner root)", flat.Root)
	}
	kids := ToSlice(flat.Children)
	if len(kids) != 2 {
		t.Fatalf("expected 2 children (1 inner + 1 outer-derived), got %d", len(kids))
	}
	if kids[0].Root != 0 {
		t.Errorf("first child (inner) Root = %d, want 0", kids[0].Root)
	}
	if kids[1].Root != 2 {
		t.Errorf("second child (outer) Root = %d, want 2", kids[1].Root)
	}
}

func intTreeOf(t Tree[int]) Tree[Tree[int]] {
	return Constant(t)
}

func TestZipRootIsListOfRoots(t *testing.T) {
	trees := []Tree[int]{intTree(1), intTree(2), intTree(3)}
	z := Zip(trees)
	if len(z.Root) != 3 || z.Root[0] != 1 || z.Root[1] != 2 || z.Root[2] != 3 {
		t.Fatalf("Root = %v, want [1 2 3]", z.Root)
	}
}

func TestZipShrinksOnePositionAtATime(t *testing.T) {
	trees := []Tree[int]{
		intTree(10, intTree(5), intTree(0)),
		intTree(20),
	}
	z := Zip(trees)
	kids := ToSlice(z.Children)
	if len(kids) != 2 {
		t.Fatalf("expected 2 children (from position 0's 2 children; position 1 has none), got %d", len(kids))
	}
	if kids[0].Root[0] != 5 || kids[0].Root[1] != 20 {
		t.Errorf("child 0 = %v, want [5 20]", kids[0].Root)
	}
	if kids[1].Root[0] != 0 || kids[1].Root[1] != 20 {
		t.Errorf("child 1 = %v, want [0 20]", kids[1].Root)
	}
}

func TestZipOfEmptyList(t *testing.T) {
	z := Zip[int](nil)
	if len(z.Root) != 0 {
		t.Fatalf("Root = %v, want empty", z.Root)
	}
	if _, _, ok := z.Children(); ok {
		t.Error("Zip of no trees should have no children")
	}
}
