// Package runner is the property-test driver built on top of genforge:
// it streams values from a Generator, checks a Property against each,
// and on failure runs the greedy depth-first shrink search the core
// spec describes as an external collaborator rather than part of the
// pure generator/tree layer.
package runner

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pkg.jsn.cam/genforge"
	"pkg.jsn.cam/genforge/pkg/corpus"
)

// Property is a predicate under test. It returns nil if a holds, or a
// non-nil error describing why it doesn't.
type Property[A any] func(a A) error

// Config controls a Run.
type Config struct {
	// Trials is how many values to check before declaring the property
	// held. Defaults to 100 if zero.
	Trials int
	// Seed seeds the streaming adapter. A zero value is not special —
	// callers that want a fresh seed each run should pass one drawn from
	// genforge's process entropy (see (Generator[A]).Sample's freshSeed).
	Seed genforge.Seed
	// Corpus, if non-nil, is checked for prior counterexamples before
	// streaming fresh ones, and is written to on a new failure.
	Corpus *corpus.Corpus
	// PropertyName keys corpus entries; required if Corpus is set.
	PropertyName string
}

// Result is a Run's outcome.
type Result[A any] struct {
	RunID       uuid.UUID
	TrialsRun   int
	Passed      bool
	Failure     A
	FailureTree genforge.Tree[A]
	Err         error
	ShrinkSteps int
	Seed        genforge.Seed
	Size        genforge.Size
}

const defaultTrials = 100

// Run streams values from gen and checks prop against each, replaying
// any corpus-recorded counterexamples for cfg.PropertyName first. On
// the first failure it stops streaming and greedily shrinks.
func Run[A any](gen genforge.Generator[A], prop Property[A], cfg Config) Result[A] {
	runID := uuid.New()
	trials := cfg.Trials
	if trials == 0 {
		trials = defaultTrials
	}

	if cfg.Corpus != nil && cfg.PropertyName != "" {
		entries, err := cfg.Corpus.Replay(cfg.PropertyName)
		if err != nil {
			log.Printf("[RUNNER] corpus replay failed for %q, continuing fresh: %v", cfg.PropertyName, err)
		}
		for _, e := range entries {
			seed := genforge.NewSeed(e.Seed)
			tree := genforge.Run(gen, seed, genforge.Size(e.Size))
			if err := prop(tree.Root); err != nil {
				return finish(runID, prop, tree, seed, genforge.Size(e.Size), err, cfg)
			}
		}
	}

	stream := NewStream(gen, cfg.Seed)
	for i := 0; i < trials; i++ {
		value, seed, size := stream.Next()
		if err := prop(value); err != nil {
			tree := genforge.Run(gen, seed, size)
			return finish(runID, prop, tree, seed, size, err, cfg)
		}
	}

	log.Printf("[RUNNER] run %s: %s passed %d trial(s)", runID, cfg.PropertyName, trials)
	return Result[A]{RunID: runID, TrialsRun: trials, Passed: true}
}

func finish[A any](runID uuid.UUID, prop Property[A], tree genforge.Tree[A], seed genforge.Seed, size genforge.Size, failure error, cfg Config) Result[A] {
	shrunk, steps := Shrink(tree, prop)
	log.Printf("[RUNNER] run %s: %s failed, shrunk in %d step(s): %v", runID, cfg.PropertyName, steps, failure)

	if cfg.Corpus != nil && cfg.PropertyName != "" {
		entry := corpus.Entry{Seed: int64FromSeed(seed), Size: int(size), RunID: runID, RecordedAt: time.Now()}
		if err := cfg.Corpus.Record(cfg.PropertyName, entry); err != nil {
			log.Printf("[RUNNER] failed to record counterexample in corpus: %v", err)
		}
	}

	return Result[A]{
		RunID:       runID,
		TrialsRun:   1,
		Passed:      false,
		Failure:     shrunk.Root,
		FailureTree: shrunk,
		Err:         fmt.Errorf("property %q failed: %w", cfg.PropertyName, failure),
		ShrinkSteps: steps,
		Seed:        seed,
		Size:        size,
	}
}

// Shrink performs the greedy depth-first shrink search: try each
// child's root as the new candidate; on a child that also fails prop,
// recurse into that child's tree; on one that passes, skip and try the
// next sibling; stop when no child fails. Returns the smallest tree
// found and the number of successful shrink steps taken.
func Shrink[A any](t genforge.Tree[A], prop Property[A]) (genforge.Tree[A], int) {
	current := t
	steps := 0
	for {
		next, found := firstFailingChild(current, prop)
		if !found {
			return current, steps
		}
		current = next
		steps++
	}
}

func firstFailingChild[A any](t genforge.Tree[A], prop Property[A]) (genforge.Tree[A], bool) {
	children := t.Children
	for {
		child, rest, ok := children()
		if !ok {
			var zero genforge.Tree[A]
			return zero, false
		}
		if prop(child.Root) != nil {
			return child, true
		}
		children = rest
	}
}

// int64FromSeed extracts the seed's underlying state for corpus
// persistence, via Seed.Raw.
func int64FromSeed(s genforge.Seed) int64 {
	return int64(s.Raw())
}
