// Package bench times repeated window lookups, one full
// connect-search-name-disconnect cycle per iteration.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Result summarizes the timed iterations. Warmup runs are excluded.
type Result struct {
	Runs  int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Mean is the average duration of one run.
func (r Result) Mean() time.Duration {
	if r.Runs == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Runs)
}

// OpsPerSecond is the number of runs the mean allows per second.
func (r Result) OpsPerSecond() float64 {
	mean := r.Mean()
	if mean <= 0 {
		return 0
	}
	return float64(time.Second) / float64(mean)
}

// Runner executes a function repeatedly and times it.
type Runner struct {
	Iterations int
	Warmup     int
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Run calls fn Warmup+Iterations times and stops at the first error.
func (r Runner) Run(fn func() error) (Result, error) {
	if r.Iterations < 1 {
		return Result{}, fmt.Errorf("iterations must be >= 1, got %d", r.Iterations)
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	for i := 0; i < r.Warmup; i++ {
		if err := fn(); err != nil {
			return Result{}, fmt.Errorf("warmup run %d: %w", i+1, err)
		}
	}

	var res Result
	for i := 0; i < r.Iterations; i++ {
		start := now()
		if err := fn(); err != nil {
			return res, fmt.Errorf("run %d: %w", i+1, err)
		}
		d := now().Sub(start)

		if res.Runs == 0 || d < res.Min {
			res.Min = d
		}
		if d > res.Max {
			res.Max = d
		}
		res.Total += d
		res.Runs++
	}
	return res, nil
}

// WriteReport prints the runtime table.
func WriteReport(w io.Writer, res Result) {
	mean := res.Mean()
	fmt.Fprintln(w, "Runtime")
	fmt.Fprintf(w, "  %14s: %d\n", "runs", res.Runs)
	fmt.Fprintf(w, "  %14s: %s\n", "total", res.Total)
	fmt.Fprintf(w, "  %14s: %10.4f\n", "seconds", mean.Seconds())
	fmt.Fprintf(w, "  %14s: %10.4f\n", "milliseconds", float64(mean)/float64(time.Millisecond))
	fmt.Fprintf(w, "  %14s: %10.4f\n", "microseconds", float64(mean)/float64(time.Microsecond))
	fmt.Fprintf(w, "  %14s: %s / %s\n", "min / max", res.Min, res.Max)
	fmt.Fprintf(w, "  %14s: %s\n", "ops per second", humanize.CommafWithDigits(res.OpsPerSecond(), 1))
}
