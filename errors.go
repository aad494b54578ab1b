package genforge

import "fmt"

// ErrEmptyRange is the value IntegerInRange panics with when lo > hi.
type ErrEmptyRange struct {
	Lo, Hi int64
}

func (e *ErrEmptyRange) Error() string {
	return fmt.Sprintf("genforge: empty range [%d, %d]", e.Lo, e.Hi)
}

// ErrEmptyEnumerable is the value MemberOf panics with on an empty
// enumerable.
type ErrEmptyEnumerable struct {
	Func string
}

func (e *ErrEmptyEnumerable) Error() string {
	return fmt.Sprintf("genforge: %s: enumerable must not be empty", e.Func)
}

// ErrFilterTooNarrow is returned when a predicate rejected every freshly
// generated value for MaxConsecutiveFailures draws in a row. It is
// raised by Filter and by Bind's internal filtering variant.
type ErrFilterTooNarrow struct {
	MaxConsecutiveFailures int
}

func (e *ErrFilterTooNarrow) Error() string {
	return fmt.Sprintf(
		"genforge: predicate rejected %d consecutive values; the generator is too narrow for this filter — reshape the generator instead of filtering harder",
		e.MaxConsecutiveFailures,
	)
}

// ErrTooManyDuplicates is returned by UniqListOf and MapOf when a fresh,
// not-yet-seen key could not be found within MaxTries consecutive draws.
type ErrTooManyDuplicates struct {
	MaxTries  int
	Remaining int
	Generated int
}

func (e *ErrTooManyDuplicates) Error() string {
	return fmt.Sprintf(
		"genforge: could not find a unique key after %d consecutive tries; %d element(s) still needed, %d already generated",
		e.MaxTries, e.Remaining, e.Generated,
	)
}
