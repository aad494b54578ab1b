package lazytree

import (
	"strconv"
	"strings"
	"testing"
)

func TestSprintShowsRootAndChildren(t *testing.T) {
	tr := intTree(10, intTree(5, intTree(0)), intTree(7))
	out := Sprint(tr, strconv.Itoa, DefaultPrintDepth, DefaultPrintBreadth)
	for _, want := range []string{"10", "5", "0", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("Sprint output missing %q:\n%s", want, out)
		}
	}
}

func TestSprintTruncatesAtDepth(t *testing.T) {
	deep := intTree(3, intTree(2, intTree(1, intTree(0))))
	out := Sprint(deep, strconv.Itoa, 1, DefaultPrintBreadth)
	if strings.Contains(out, "\n0\n") || strings.Contains(out, " 0\n") {
		t.Errorf("depth-limited Sprint should not reach the deepest node:\n%s", out)
	}
	if !strings.Contains(out, "...") {
		t.Errorf("truncated Sprint should mark the cut with \"...\":\n%s", out)
	}
}

func TestSprintTruncatesAtBreadth(t *testing.T) {
	wide := New(0, FromSlice([]Tree[int]{intTree(1), intTree(2), intTree(3)}))
	out := Sprint(wide, strconv.Itoa, DefaultPrintDepth, 2)
	if !strings.Contains(out, "...") {
		t.Errorf("breadth-limited Sprint should mark the cut with \"...\":\n%s", out)
	}
}
