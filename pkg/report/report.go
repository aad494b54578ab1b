// Package report renders property-run progress and results to a
// terminal: a progress bar while trials run, and a colorized summary
// line once a run passes or a counterexample is found and shrunk.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/colorstring"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Reporter renders a single property run's progress and outcome.
type Reporter struct {
	out      io.Writer
	color    bool
	bar      *progressbar.ProgressBar
	property string
	started  time.Time
}

// New builds a Reporter writing to out. Color output and the progress
// bar itself are both suppressed when noColor is set or out is not a
// terminal (checked via golang.org/x/term.IsTerminal), matching a CI
// log or `go test` capture rather than an interactive shell.
func New(out *os.File, property string, trials int, noColor bool) *Reporter {
	isTTY := term.IsTerminal(int(out.Fd()))
	r := &Reporter{
		out:      out,
		color:    isTTY && !noColor,
		property: property,
		started:  time.Now(),
	}
	if isTTY && !noColor {
		r.bar = progressbar.NewOptions(trials,
			progressbar.OptionSetDescription(property),
			progressbar.OptionSetWriter(out),
			progressbar.OptionClearOnFinish(),
		)
	}
	return r
}

// Tick advances the progress bar by one trial. A no-op when the
// reporter has no bar (non-TTY output).
func (r *Reporter) Tick() {
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

// Pass reports that ran trials of the property all held.
func (r *Reporter) Pass(trials int) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	elapsed := time.Since(r.started)
	line := fmt.Sprintf("[green]ok[reset]  %s — %s checks passed in %s",
		r.property, humanize.Comma(int64(trials)), humanize.RelTime(r.started, r.started.Add(elapsed), "", ""))
	r.printLine(line)
}

// Fail reports a shrunk counterexample: the minimal seed/size found and
// how many shrink steps it took to reach it.
func (r *Reporter) Fail(seed int64, size int, shrinkSteps int, counterexample string) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	line := fmt.Sprintf("[red]FAIL[reset] %s — shrunk to seed=%d size=%d after %s shrink step(s)\n      counterexample: %s",
		r.property, seed, size, humanize.Comma(int64(shrinkSteps)), counterexample)
	r.printLine(line)
}

func (r *Reporter) printLine(line string) {
	if r.color {
		fmt.Fprintln(r.out, colorstring.Color(line))
		return
	}
	fmt.Fprintln(r.out, stripTags(line))
}

// stripTags removes colorstring's [color] tags for plain, non-TTY
// output, so log-captured runs don't carry raw "[green]"/"[red]" text.
func stripTags(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '[' {
			j := i + 1
			for j < len(s) && (s[j] == '_' || (s[j] >= 'a' && s[j] <= 'z') || (s[j] >= 'A' && s[j] <= 'Z')) {
				j++
			}
			if j > i+1 && j < len(s) && s[j] == ']' {
				i = j
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
