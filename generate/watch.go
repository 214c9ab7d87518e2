package generate

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits for further changes to an input
// before regenerating.
const DefaultDebounce = 200 * time.Millisecond

// ReportFunc receives the results of every run triggered by Watch.
type ReportFunc func(results []Result, err error)

// Watch runs all jobs once, then reruns the jobs of every input that changes
// until ctx is done. Directories are watched rather than files, so editors
// that replace a file on save are handled. Rapid successive changes are
// coalesced.
func Watch(ctx context.Context, jobs []Job, opts Options, debounce time.Duration, report ReportFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if err := checkOutputs(jobs); err != nil {
		return err
	}
	log := logger(opts)

	byInput := map[string][]Job{}
	for _, j := range jobs {
		abs, err := filepath.Abs(j.Input)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", j.Input)
		}
		byInput[abs] = append(byInput[abs], j)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for input := range byInput {
		dir := filepath.Dir(input)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		dirs[dir] = true
		log.Debug("watching", zap.String("dir", dir))
	}

	report(Run(ctx, jobs, opts))

	pending := map[string]bool{}
	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := byInput[name]; !ok {
				continue
			}
			log.Debug("input changed", zap.String("file", name), zap.String("op", event.Op.String()))
			pending[name] = true
			timer.Reset(debounce)
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			var batch []Job
			for input := range pending {
				batch = append(batch, byInput[input]...)
			}
			clear(pending)
			slices.SortFunc(batch, func(a, b Job) int { return strings.Compare(a.Output, b.Output) })
			report(Run(ctx, batch, opts))
		}
	}
}
