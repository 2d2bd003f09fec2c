// Package driver runs the per-document pipeline (extraction already done)
// across a bounded worker pool and reconciles the results into a single
// exit-code outcome, per the concurrency and resource model: one worker per
// document through checking, suggestions gathered sequentially at the patch
// stage.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"docspell.dev/docspell/chunk"
	"docspell.dev/docspell/origin"
	"docspell.dev/docspell/suggestion"
)

// Finish is the outcome of a run.
type Finish int

const (
	// Success means the run completed with no mistakes found.
	Success Finish = iota
	// Abort means the run was cancelled (e.g. a signal or interactive quit)
	// before completing; no further writes were attempted.
	Abort
	// MistakeCount means the run completed and found suggestions; the
	// count is carried separately via Result.Suggestions.
	MistakeCount
)

// ExitCode maps a Finish to the process exit code spec.md §7 requires.
// mistakeExitCode is the configurable non-zero code for the MistakeCount
// case (default 1).
func (f Finish) ExitCode(mistakeExitCode int) int {
	switch f {
	case Success:
		return 0
	case Abort:
		return 130
	case MistakeCount:
		return mistakeExitCode
	default:
		return mistakeExitCode
	}
}

// Unit is one document's worth of work: its origin and the chunks extracted
// from it, ready for a checker to inspect.
type Unit struct {
	Origin origin.Origin
	Chunks []chunk.CheckableChunk
}

// Checker inspects one unit's chunks and returns suggestions. Implementations
// must not mutate the chunks they're given; concurrent workers may run
// arbitrary checkers over disjoint units simultaneously.
type Checker func(ctx context.Context, u Unit) ([]suggestion.Suggestion, error)

// Options configures a Run.
type Options struct {
	// Workers bounds pool concurrency; 0 selects runtime.NumCPU(), and the
	// value is clamped to [1, 128] per spec.md §5.
	Workers int
}

func (o Options) workers() int {
	w := o.Workers
	if w == 0 {
		w = runtime.NumCPU()
	}
	if w < 1 {
		w = 1
	}
	if w > 128 {
		w = 128
	}
	return w
}

// Result is the accumulated outcome of a Run: every suggestion gathered,
// ordered by traversal order across files and then source order within a
// file, plus the overall Finish state.
type Result struct {
	Finish      Finish
	Suggestions []suggestion.Suggestion
}

// Run processes units through check using a bounded worker pool, gathers
// every suggestion, and orders the result the way spec.md §5 requires:
// ordering of suggestions within a file is source order; ordering across
// files follows unit traversal order. If ctx is cancelled before all units
// complete, Run returns a Result with Finish == Abort and no suggestions;
// those gathered from units that had already finished are discarded.
func Run(ctx context.Context, units []Unit, check Checker, opts Options) (Result, error) {
	type outcome struct {
		index       int
		suggestions []suggestion.Suggestion
	}
	outcomes := make([]outcome, len(units))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.workers())

	for i, u := range units {
		eg.Go(func() error {
			sugs, err := check(egCtx, u)
			if err != nil {
				return fmt.Errorf("driver: checking %s: %w", u.Origin, err)
			}
			outcomes[i] = outcome{index: i, suggestions: sugs}
			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		if ctx.Err() != nil {
			slog.Warn("driver: run aborted", "error", err)
			return Result{Finish: Abort}, nil
		}
		return Result{}, err
	}
	if ctx.Err() != nil {
		return Result{Finish: Abort}, nil
	}

	sort.SliceStable(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })

	var all []suggestion.Suggestion
	var totalBytes uint64
	for i, o := range outcomes {
		all = append(all, o.suggestions...)
		for _, c := range units[i].Chunks {
			totalBytes += uint64(len(c.AsStr()))
		}
	}

	finish := Success
	if len(all) > 0 {
		finish = MistakeCount
	}
	slog.Info("driver: run complete",
		"files", len(units),
		"suggestions", len(all),
		"processed", humanize.Bytes(totalBytes),
	)
	return Result{Finish: finish, Suggestions: all}, nil
}
