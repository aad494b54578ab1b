package genforge

import "math"

// PrintableASCII is the default character range for StringOf: the
// printable ASCII block, space through tilde.
func PrintableASCII() []rune {
	return runeRange(' ', '~')
}

// Bytes is list_of(byte()): a byte slice generator that shrinks by
// element deletion and per-byte value (never — Byte itself does
// not shrink).
func Bytes() Generator[[]byte] {
	return ListOf(Byte())
}

// StringOf is list_of(member_of(charRange)) mapped to a string: a
// string generator over exactly the given character set. Panics (via
// MemberOf) if charRange is empty.
func StringOf(charRange []rune) Generator[string] {
	return Map(ListOf(MemberOf(charRange)), func(rs []rune) string { return string(rs) })
}

// String is StringOf(PrintableASCII()).
func String() Generator[string] {
	return StringOf(PrintableASCII())
}

// Atom generates identifier-shaped strings: size-scaled to sqrt(size)
// capped at 256, with a first character drawn from three classes
// (lowercase letter, uppercase letter, underscore) and remaining
// characters from those three classes plus digits. There is no single
// canonical "atom" shape in Go, so this is calibrated to look like a Go
// or C identifier rather than any specific source language's atom
// literal.
func Atom() Generator[string] {
	return Sized(func(size Size) Generator[string] {
		n := int64(math.Sqrt(float64(size)))
		if n > 256 {
			n = 256
		}
		return Resize(atomBody(), Size(n))
	})
}

func atomBody() Generator[string] {
	return Bind(atomFirstChar(), func(first rune) Generator[string] {
		return Map(ListOf(atomRestChar()), func(rest []rune) string {
			return string(first) + string(rest)
		})
	})
}

func atomFirstChar() Generator[rune] {
	return OneOf([]Generator[rune]{
		MemberOf(runeRange('a', 'z')),
		MemberOf(runeRange('A', 'Z')),
		Const('_'),
	})
}

func atomRestChar() Generator[rune] {
	return OneOf([]Generator[rune]{
		MemberOf(runeRange('a', 'z')),
		MemberOf(runeRange('A', 'Z')),
		MemberOf(runeRange('0', '9')),
		Const('_'),
	})
}

func runeRange(lo, hi rune) []rune {
	out := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}
