package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/rubiojr/panini/style"
	"github.com/rubiojr/panini/writer"
)

// configName is looked up in the XDG config directories when --config is
// not given.
const configName = "panini/config.toml"

// Execute runs the panini CLI with the given version string.
func Execute(version string) {
	app := newApp(version, os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(version string, stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:                   "panini",
		Usage:                  "Generate source files from settings descriptions and XML documents",
		Version:                version,
		UseShortOptionHandling: true,
		Reader:                 stdin,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Writer configuration file (TOML)",
			},
			&cli.StringFlag{
				Name:  "indent",
				Usage: "Indentation unit, overrides the configuration",
			},
			&cli.StringFlag{
				Name:  "newline",
				Usage: "Line ending: lf or crlf",
			},
			&cli.StringFlag{
				Name:  "brace-style",
				Usage: "Brace style: same-line, next-line or whitesmiths",
			},
			&cli.StringFlag{
				Name:  "include-style",
				Usage: "Include style: angle-brackets, double-quotes or single-quotes",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log debug information to stderr",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Commands: []*cli.Command{
			generateCommand(),
			watchCommand(),
			showCommand(),
			debugCommand(),
			configCommand(),
		},
	}
}

// settings is what every command needs from the global flags.
type settings struct {
	cfg        writer.Config
	configPath string
	color      bool
	log        *zap.Logger
}

func loadSettings(cmd *cli.Command) (*settings, error) {
	root := cmd.Root()
	s := &settings{
		color: !cmd.Bool("no-color") && isTerminal(root.Writer),
		log:   newLogger(root.ErrWriter, cmd.Bool("verbose")),
	}

	s.configPath = cmd.String("config")
	if s.configPath == "" {
		if path, err := xdg.SearchConfigFile(configName); err == nil {
			s.configPath = path
		}
	}
	if s.configPath != "" {
		cfg, err := writer.LoadConfig(s.configPath)
		if err != nil {
			return nil, err
		}
		s.cfg = cfg
		s.log.Debug("loaded config", zap.String("path", s.configPath))
	}

	if err := applyOverrides(cmd, &s.cfg); err != nil {
		return nil, err
	}
	s.cfg.Color = s.color
	s.cfg.Logger = s.log
	return s, nil
}

func applyOverrides(cmd *cli.Command, cfg *writer.Config) error {
	if cmd.IsSet("indent") {
		cfg.Indent = cmd.String("indent")
	}
	if cmd.IsSet("newline") {
		switch cmd.String("newline") {
		case "lf":
			cfg.NewLine = "\n"
		case "crlf":
			cfg.NewLine = "\r\n"
		default:
			return errors.Newf("unknown newline %q, expected lf or crlf", cmd.String("newline"))
		}
	}
	if cmd.IsSet("brace-style") {
		b, err := style.ParseBrace(cmd.String("brace-style"))
		if err != nil {
			return err
		}
		cfg.BraceStyle = b
	}
	if cmd.IsSet("include-style") {
		i, err := style.ParseInclude(cmd.String("include-style"))
		if err != nil {
			return err
		}
		cfg.IncludeStyle = i
	}
	return nil
}

func newLogger(out io.Writer, verbose bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(out), level)
	return zap.New(core)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
