// Command genforge is a small demonstration/smoke-test CLI: it runs one
// built-in property against a generator, using the library's reporter
// and optional corpus persistence, the way an example command in a
// testing toolkit would.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"pkg.jsn.cam/genforge"
	"pkg.jsn.cam/genforge/pkg/corpus"
	"pkg.jsn.cam/genforge/pkg/lazytree"
	"pkg.jsn.cam/genforge/pkg/report"
	"pkg.jsn.cam/genforge/pkg/runner"
)

var (
	seed    = flag.Int64("seed", 0, "PRNG seed (0 picks one from process entropy)")
	corpusP = flag.String("corpus", "", "path to a corpus file for regression seeds (empty disables persistence)")
	noColor = flag.Bool("no-color", false, "force plain, uncolored reporter output")
)

func main() {
	flag.Parse()

	s := genforge.NewSeed(*seed)
	if *seed == 0 {
		log.Printf("[GENFORGE] no -seed given, using seed %d", s.Raw())
	}

	var c *corpus.Corpus
	if *corpusP != "" {
		opened, err := corpus.Open(*corpusP)
		if err != nil {
			log.Fatalf("genforge: opening corpus: %v", err)
		}
		defer opened.Close()
		c = opened
	} else {
		c = corpus.NewMemory()
		defer c.Close()
	}

	rep := report.New(os.Stdout, "prop_sort_then_sort_is_sort", 100, *noColor)

	gen := genforge.ListOf(genforge.Integer())
	result := runner.Run(gen, propSortIdempotent, runner.Config{
		Trials:       100,
		Seed:         s,
		Corpus:       c,
		PropertyName: "prop_sort_then_sort_is_sort",
	})

	if result.Passed {
		rep.Pass(result.TrialsRun)
		return
	}
	tree := lazytree.Sprint(result.FailureTree, func(xs []int64) string {
		return fmt.Sprintf("%v", xs)
	}, lazytree.DefaultPrintDepth, lazytree.DefaultPrintBreadth)
	rep.Fail(int64(result.Seed.Raw()), int(result.Size), result.ShrinkSteps, tree)
	os.Exit(1)
}

func propSortIdempotent(xs []int64) error {
	once := sortedCopy(xs)
	twice := sortedCopy(once)
	for i := range once {
		if once[i] != twice[i] {
			return fmt.Errorf("sorting twice diverged at index %d: %v vs %v", i, once, twice)
		}
	}
	return nil
}

func sortedCopy(xs []int64) []int64 {
	out := make([]int64, len(xs))
	copy(out, xs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
