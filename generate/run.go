package generate

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rubiojr/panini/writer"
)

// Options controls how jobs are run.
type Options struct {
	Config writer.Config
	// DryRun compares the output with the existing files without writing.
	DryRun bool
	// Force rewrites outputs even when their content did not change.
	Force bool
	// Diff records a unified diff of every changed output.
	Diff bool
	// Jobs limits the number of jobs running at once. Defaults to
	// GOMAXPROCS.
	Jobs int
}

// Result is the outcome of one job.
type Result struct {
	Job     Job
	Changed bool
	// Written is set when the output file was (re)written.
	Written bool
	Diff    string
	Err     error
}

// Run executes jobs in parallel. Every job runs even when others fail; the
// results keep the order of jobs and the returned error summarizes the
// failures.
//
// Jobs sharing an output are rejected before anything runs, since they would
// overwrite each other in no particular order.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	if err := checkOutputs(jobs); err != nil {
		return nil, err
	}
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(min(limit, len(jobs)))
	for i, job := range jobs {
		g.Go(func() error {
			// results[i] is only written by this goroutine
			if err := ctx.Err(); err != nil {
				results[i] = Result{Job: job, Err: err}
				return nil
			}
			results[i] = RunJob(job, opts)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	var first error
	for _, r := range results {
		if r.Err != nil {
			if first == nil {
				first = r.Err
			}
			failed++
		}
	}
	if failed > 0 {
		return results, errors.Wrapf(first, "%d of %d jobs failed", failed, len(jobs))
	}
	return results, nil
}

// RunJob renders a single job and commits it.
func RunJob(job Job, opts Options) Result {
	res := Result{Job: job}
	log := logger(opts).With(zap.String("input", job.Input), zap.String("output", job.Output))

	tree, err := job.Tree()
	if err != nil {
		res.Err = err
		return res
	}

	if opts.DryRun {
		w, err := writer.NewCompareFile(job.Output, opts.Config)
		if err != nil {
			res.Err = err
			return res
		}
		if err := w.Render(tree); err != nil {
			res.Err = errors.Wrapf(err, "rendering %s", job.Input)
			return res
		}
		if opts.Diff {
			res.Diff, err = w.Diff(job.Output)
			if err != nil {
				res.Err = err
				return res
			}
		}
		res.Changed, res.Err = w.Commit()
		log.Debug("compared", zap.Bool("changed", res.Changed))
		return res
	}

	w, err := writer.NewFile(job.Output, opts.Config)
	if err != nil {
		res.Err = err
		return res
	}
	if err := w.Render(tree); err != nil {
		res.Err = errors.Wrapf(err, "rendering %s", job.Input)
		return res
	}
	if opts.Diff {
		if res.Diff, err = w.Diff(); err != nil {
			res.Err = err
			return res
		}
	}

	if opts.Force {
		res.Changed = w.IsChanged()
		res.Err = w.CommitForce()
		res.Written = res.Err == nil
	} else {
		res.Changed, res.Err = w.Commit()
		res.Written = res.Err == nil && res.Changed
	}
	if res.Err != nil {
		log.Warn("commit failed", zap.Error(res.Err))
		return res
	}

	if res.Written {
		log.Info("generated", zap.Bool("changed", res.Changed))
	} else {
		log.Debug("up to date")
	}
	return res
}

// ErrDuplicateOutput is returned when two jobs write the same file.
var ErrDuplicateOutput = errors.New("duplicate output")

func checkOutputs(jobs []Job) error {
	seen := make(map[string]Job, len(jobs))
	for _, j := range jobs {
		key, err := filepath.Abs(j.Output)
		if err != nil {
			key = filepath.Clean(j.Output)
		}
		if prev, ok := seen[key]; ok {
			return errors.Wrapf(ErrDuplicateOutput, "%s is generated by both %s and %s", j.Output, prev.Input, j.Input)
		}
		seen[key] = j
	}
	return nil
}

func logger(opts Options) *zap.Logger {
	if opts.Config.Logger != nil {
		return opts.Config.Logger
	}
	return zap.NewNop()
}
