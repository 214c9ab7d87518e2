package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/rubiojr/panini/generate"
)

func jobFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Rewrite outputs even when unchanged",
		},
		&cli.BoolFlag{
			Name:    "diff",
			Aliases: []string{"d"},
			Usage:   "Print a unified diff of every changed output",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "Parallel jobs (default: number of CPUs)",
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Generate outputs, leaving unchanged files untouched",
		ArgsUsage: "<input[=output]>...",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Report what would change without writing",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Like --dry-run, but fail when an output is out of date",
			},
		}, jobFlags()...),
		Action: generateAction,
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Regenerate outputs whenever their inputs change",
		ArgsUsage: "<input[=output]>...",
		Flags:     jobFlags(),
		Action:    watchAction,
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	jobs, err := parseJobs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	check := cmd.Bool("check")
	opts := jobOptions(cmd, s)
	opts.DryRun = check || cmd.Bool("dry-run")

	results, runErr := generate.Run(ctx, jobs, opts)
	stale := newReporter(cmd.Root().Writer, s.color, opts.DryRun).report(results)
	if runErr != nil {
		return runErr
	}
	if check && stale > 0 {
		return errors.Newf("%d of %d outputs out of date", stale, len(jobs))
	}
	return nil
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	jobs, err := parseJobs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := newReporter(cmd.Root().Writer, s.color, false)
	return generate.Watch(ctx, jobs, jobOptions(cmd, s), generate.DefaultDebounce,
		func(results []generate.Result, err error) {
			rep.report(results)
		})
}

func jobOptions(cmd *cli.Command, s *settings) generate.Options {
	return generate.Options{
		Config: s.cfg,
		Force:  cmd.Bool("force"),
		Diff:   cmd.Bool("diff"),
		Jobs:   int(cmd.Int("jobs")),
	}
}

// parseJobs turns "input=output" arguments into jobs. Settings descriptions
// may omit the output, which then defaults to the input path with a .h
// extension.
func parseJobs(args []string) ([]generate.Job, error) {
	if len(args) == 0 {
		return nil, errors.New("usage: panini generate <input[=output]>...")
	}
	jobs := make([]generate.Job, 0, len(args))
	for _, arg := range args {
		input, output, hasOutput := strings.Cut(arg, "=")
		if input == "" || (hasOutput && output == "") {
			return nil, errors.Newf("invalid job %q, expected input[=output]", arg)
		}
		kind, err := generate.KindFromPath(input)
		if err != nil {
			return nil, err
		}
		if !hasOutput {
			if kind != generate.Hierarchy {
				return nil, errors.Newf("%s: %s inputs need an explicit output (input=output)", input, kind)
			}
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".h"
		}
		jobs = append(jobs, generate.Job{Kind: kind, Input: input, Output: output})
	}
	return jobs, nil
}

// reporter prints one status line per result.
type reporter struct {
	out    io.Writer
	dryRun bool

	wrote, same, stale, failed *color.Color
}

func newReporter(out io.Writer, useColor, dryRun bool) *reporter {
	r := &reporter{
		out:    out,
		dryRun: dryRun,
		wrote:  color.New(color.FgGreen),
		same:   color.New(color.Faint),
		stale:  color.New(color.FgYellow),
		failed: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.wrote, r.same, r.stale, r.failed} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// report prints the results and returns how many outputs changed.
func (r *reporter) report(results []generate.Result) int {
	changed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			r.failed.Fprintf(r.out, "%-10s", "failed")
			fmt.Fprintf(r.out, " %s: %v\n", res.Job.Output, res.Err)
			continue
		case res.Changed && r.dryRun:
			r.stale.Fprintf(r.out, "%-10s", "outdated")
		case res.Written:
			r.wrote.Fprintf(r.out, "%-10s", "generated")
		default:
			r.same.Fprintf(r.out, "%-10s", "unchanged")
		}
		fmt.Fprintf(r.out, " %s\n", res.Job.Output)
		if res.Changed {
			changed++
		}
		if res.Diff != "" {
			fmt.Fprint(r.out, res.Diff)
		}
	}
	return changed
}
