package cmd

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"

	"github.com/rubiojr/panini/command"
	"github.com/rubiojr/panini/generate"
	"github.com/rubiojr/panini/writer"
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the generated output of an input file",
		ArgsUsage: "<input>",
		Action:    showAction,
	}
}

func debugCommand() *cli.Command {
	return &cli.Command{
		Name:      "debug",
		Usage:     "Draw the output with line numbers, indentation markers and line ends",
		ArgsUsage: "<input>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "step",
				Aliases: []string{"s"},
				Usage:   "Wait for <Enter> after every line",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Console width (default: terminal width)",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "Console height (default: terminal height)",
			},
		},
		Action: debugAction,
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "Print the effective writer configuration",
		Action: configAction,
	}
}

func inputTree(cmd *cli.Command) (command.Command, error) {
	if cmd.NArg() != 1 {
		return nil, errors.Newf("usage: panini %s <input>", cmd.Name)
	}
	job, err := generate.NewJob(cmd.Args().First(), "")
	if err != nil {
		return nil, err
	}
	return job.Tree()
}

func showAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	tree, err := inputTree(cmd)
	if err != nil {
		return err
	}
	w := writer.NewConsole(cmd.Root().Writer, s.cfg)
	if err := w.Render(tree); err != nil {
		return err
	}
	_, err = w.Commit()
	return err
}

func debugAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	tree, err := inputTree(cmd)
	if err != nil {
		return err
	}

	opts := writer.DebugOptions{
		Output: cmd.Root().Writer,
		Width:  int(cmd.Int("width")),
		Height: int(cmd.Int("height")),
	}
	if cmd.Bool("step") {
		opts.Input = cmd.Root().Reader
	}
	w := writer.NewDebug(s.cfg, opts)
	if err := w.Render(tree); err != nil {
		return err
	}
	if _, err := w.Commit(); err != nil {
		return err
	}
	w.ResetStyles()
	fmt.Fprintln(cmd.Root().Writer)
	return nil
}

func configAction(ctx context.Context, cmd *cli.Command) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	if s.configPath != "" {
		fmt.Fprintf(out, "# %s\n", s.configPath)
	} else {
		fmt.Fprintln(out, "# defaults")
	}
	cfg := s.cfg.WithDefaults()
	return errors.Wrap(toml.NewEncoder(out).Encode(cfg), "encoding config")
}
