package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyrtronium/abacus/std"
)

// errReported is returned from commands that have already written their
// errors to standard error.
var errReported = errors.New("errors reported")

type options struct {
	config      string
	typ         string
	disable     []string
	echo        bool
	ast         bool
	timeout     time.Duration
	verbose     int
	independent bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "abacus [flags] [expression ...]",
		Short: "abacus evaluates arithmetic expressions with arbitrary precision",
		Long: `abacus evaluates arithmetic expressions with arbitrary precision.

Each argument is evaluated in turn and its result printed. Variables assigned
with := and definitions made with :- persist into later arguments. With no
arguments, expressions are read one per line from standard input, or
interactively when standard input is a terminal.

Lines beginning with a colon are commands. Use :help to list them.
`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, &opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			switch {
			case len(args) > 0 && opts.independent:
				s.independent(ctx, args)
			case len(args) > 0:
				for _, arg := range args {
					s.eval(ctx, arg)
				}
			case terminal(cmd.InOrStdin()):
				return s.repl(ctx)
			default:
				if err := s.batch(ctx, cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if s.failed {
				return errReported
			}
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.config, "config", "", "read configuration from YAML `file`")
	flags.StringVarP(&opts.typ, "type", "t", "", "number type of the root scope")
	flags.StringSliceVar(&opts.disable, "disable", nil, "plugins to leave unloaded")
	flags.CountVarP(&opts.verbose, "verbose", "v", "log more; repeat for debug logs")
	addEvalFlags(cmd.Flags(), &opts)
	cmd.AddCommand(newDocCmd(&opts))
	return cmd
}

func addEvalFlags(f *pflag.FlagSet, opts *options) {
	f.BoolVar(&opts.echo, "echo", false, "print each parsed expression before its result")
	f.BoolVar(&opts.ast, "ast", false, "print the syntax tree of each expression")
	f.DurationVar(&opts.timeout, "timeout", 0, "limit each evaluation to `duration`")
	f.BoolVar(&opts.independent, "independent", false, "evaluate arguments concurrently, each in its own scope")
}

// logger creates the logger for a verbosity level.
func logger(cmd *cobra.Command, verbose int) *slog.Logger {
	lvl := slog.LevelWarn
	switch {
	case verbose == 1:
		lvl = slog.LevelInfo
	case verbose > 1:
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
}

// config combines the configuration file with flags.
func config(cmd *cobra.Command, opts *options) (fileConfig, error) {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("type") {
		cfg.NumberType = opts.typ
	}
	cfg.DisabledPlugins = append(cfg.DisabledPlugins, opts.disable...)
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command, opts *options) (*session, error) {
	cfg, err := config(cmd, opts)
	if err != nil {
		return nil, err
	}
	eng, err := std.NewEngine(cfg.Config, logger(cmd, opts.verbose))
	if err != nil {
		return nil, err
	}
	s := &session{
		eng:  eng,
		opts: opts,
		cfg:  cfg,
		out:  cmd.OutOrStdout(),
		errw: cmd.ErrOrStderr(),
	}
	return s, nil
}

func terminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
