package lazytree

import (
	"fmt"
	"strings"
)

// DefaultPrintDepth and DefaultPrintBreadth bound Sprint's traversal: a
// shrink tree can be infinite, so a debug printer must never walk it to
// completion.
const (
	DefaultPrintDepth   = 3
	DefaultPrintBreadth = 5
)

// Sprint renders t as an indented tree, at most depth levels deep and
// at most breadth children per node, using format to render each root
// value. Truncated branches are marked "...". This exists for tests and
// the example CLI, where eyeballing whether a shrink tree contains a
// path terminating at some value is easiest done this way — the core
// generator/tree algebra never calls it.
func Sprint[A any](t Tree[A], format func(A) string, depth, breadth int) string {
	var b strings.Builder
	sprintNode(&b, t, format, depth, breadth, 0)
	return b.String()
}

func sprintNode[A any](b *strings.Builder, t Tree[A], format func(A) string, depth, breadth, indent int) {
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", indent), format(t.Root))
	if depth <= 0 {
		if _, _, ok := t.Children(); ok {
			fmt.Fprintf(b, "%s...\n", strings.Repeat("  ", indent+1))
		}
		return
	}
	children := t.Children
	shown := 0
	for {
		child, rest, ok := children()
		if !ok {
			return
		}
		if shown >= breadth {
			fmt.Fprintf(b, "%s...\n", strings.Repeat("  ", indent+1))
			return
		}
		sprintNode(b, child, format, depth-1, breadth, indent+1)
		children = rest
		shown++
	}
}
