// Command run-goupil runs a photon transport simulation, writes its binary
// header and photon records, and dumps the cross-section tables of the
// physics model.
//
// Usage:
//
//	run-goupil [-m model] [-e energy] [-n events] [-o output] [options]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	goupil "github.com/niess/geant4-goupil-validation"
	"github.com/niess/geant4-goupil-validation/sim"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// statusUsage is the exit status of runs with invalid parameters.
const statusUsage = -1

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(status)
}

// usageError reports invalid command-line parameters.
type usageError struct {
	err   error
	parse bool // error from the flag parser
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type options struct {
	params     goupil.Parameters
	config     string
	dataDir    string
	seed       uint64
	logLevel   string
	summary    string
	cpuProfile string
	trace      string
}

// run executes the command line args and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	name := "run-goupil"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	opts := &options{params: goupil.DefaultParameters()}
	cmd := newRootCmd(opts, stdout, stderr)
	cmd.SetArgs(wholeArgs(cmd.Flags(), args))

	err := cmd.ExecuteContext(ctx)
	var uerr *usageError
	switch {
	case err == nil && opts.params.Help:
		usage(stderr, name)
		return statusUsage
	case err == nil:
		return 0
	case errors.As(err, &uerr):
		if uerr.parse {
			fmt.Fprintf(stderr, "%s: %v\n", name, uerr.err)
		}
		usage(stderr, name)
		return statusUsage
	case errors.Is(err, sim.ErrOutputFile):
		// already reported.
		return 1
	default:
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
}

// wholeArgs drops the single-dash tokens that are not exact flags, like
// "-foo". pflag would otherwise read them as clusters of shorthands.
// Values of known flags are kept, even when they start with a dash.
func wholeArgs(flags *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var f *pflag.Flag
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case strings.HasPrefix(arg, "--"):
			name, _, inline := strings.Cut(arg[2:], "=")
			if !inline {
				f = flags.Lookup(name)
			}
		case len(arg) > 2 && arg[0] == '-':
			continue
		case len(arg) == 2 && arg[0] == '-':
			f = flags.ShorthandLookup(arg[1:])
		}
		out = append(out, arg)
		if f != nil && f.NoOptDefVal == "" && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

func usage(w io.Writer, name string) {
	goupil.Usage(w, name)
	fmt.Fprintf(w, "Extra options:\n")
	fmt.Fprintf(w, "\t-c,--config\tSpecify a YAML configuration file\n")
	fmt.Fprintf(w, "\t--data-dir\tSpecify the cross-sections directory [%s]\n", goupil.DefaultDataDir)
	fmt.Fprintf(w, "\t--seed\tSpecify the random seed\n")
	fmt.Fprintf(w, "\t--log-level\tSpecify the log level (debug, info, warn, error)\n")
	fmt.Fprintf(w, "\t--summary\tSpecify a JSON run summary file\n")
	fmt.Fprintf(w, "\t--cpu-profile\tEnable CPU profiling to the given file\n")
	fmt.Fprintf(w, "\t--trace\tEnable execution tracing to the given file\n")
}

func newRootCmd(opts *options, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run-goupil <option(s)> SOURCES",
		Short:         "Run a Goupil validation simulation",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runE(cmd, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	// help is reported through the exit status, see run.
	cmd.SetHelpFunc(func(*cobra.Command, []string) {})
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err, parse: true}
	})

	def := goupil.DefaultConfig()
	flags := cmd.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&opts.params.Help, "help", "h", false, "Show this help message")
	flags.StringVarP(&opts.params.Header.Model, "model", "m", def.Model, "Specify the physics model")
	flags.Float64VarP(&opts.params.Header.Energy, "energy", "e", def.Energy, "Specify the kinetic energy in [MeV]")
	flags.Int64VarP(&opts.params.Header.Events, "events", "n", def.Events, "Specify the number of events to generate")
	flags.StringVarP(&opts.params.Output, "output", "o", def.Output, "Specify the output file")

	flags.StringVarP(&opts.config, "config", "c", "", "Specify a YAML configuration file")
	flags.StringVar(&opts.dataDir, "data-dir", def.DataDir, "Specify the cross-sections directory")
	flags.Uint64Var(&opts.seed, "seed", def.Seed, "Specify the random seed")
	flags.StringVar(&opts.logLevel, "log-level", def.LogLevel, "Specify the log level")
	flags.StringVar(&opts.summary, "summary", "", "Specify a JSON run summary file")
	flags.StringVar(&opts.cpuProfile, "cpu-profile", "", "Enable CPU profiling")
	flags.StringVar(&opts.trace, "trace", "", "Enable execution tracing")
	return cmd
}

func runE(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	cfg := goupil.DefaultConfig()
	if opts.config != "" {
		var err error
		cfg, err = goupil.LoadConfig(opts.config)
		if err != nil {
			return err
		}
	}
	opts.merge(cmd, &cfg)

	err := cfg.Parameters().Validate()
	if err != nil {
		return &usageError{err: err}
	}

	app := &sim.App{
		Config:     cfg,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     newLogger(cfg.LogLevel, stderr),
		CPUProfile: opts.cpuProfile,
		Trace:      opts.trace,
		Summary:    opts.summary,
	}
	return app.Run(cmd.Context())
}

// merge overrides cfg with the flags set on the command line.
func (opts *options) merge(cmd *cobra.Command, cfg *goupil.Config) {
	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = opts.params.Header.Model
	}
	if flags.Changed("energy") {
		cfg.Energy = opts.params.Header.Energy
	}
	if flags.Changed("events") {
		cfg.Events = opts.params.Header.Events
	}
	if flags.Changed("output") {
		cfg.Output = opts.params.Output
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = opts.dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
}
