// Package sim runs a validation simulation from its configuration.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"time"

	goupil "github.com/niess/geant4-goupil-validation"
	"github.com/niess/geant4-goupil-validation/transport"
)

// ErrOutputFile is returned when the output file can not be created.
var ErrOutputFile = errors.New("sim: could not open output file")

// App runs a simulation and reports on it.
type App struct {
	Config goupil.Config

	Stdout io.Writer // parameters block
	Stderr io.Writer // error messages
	Logger *slog.Logger

	CPUProfile string // path of the CPU profile, if any
	Trace      string // path of the execution trace, if any
	Summary    string // path of the JSON run summary, if any
}

// Run performs the run: header, event loop and cross-section tables.
// The parameters are expected to be valid.
func (app *App) Run(ctx context.Context) error {
	app.defaults()

	stop, err := app.profile()
	if err != nil {
		return err
	}
	defer stop()

	var (
		cfg    = app.Config
		params = cfg.Parameters()
		model  = params.Header.Model
	)

	geo, err := cfg.NewGeometry()
	if err != nil {
		return err
	}

	params.Print(app.Stdout)

	err = writeHeader(params)
	if err != nil {
		if errors.Is(err, ErrOutputFile) {
			fmt.Fprintf(app.Stderr, "Could not open file %s\n", params.Output)
		}
		return err
	}

	rm := transport.NewRunManager(app.Logger.With("component", "run"))
	defer rm.Close()
	rm.Seed = cfg.Seed

	rm.SetDetector(geo)
	phys, err := transport.NewPhysicsList(model, app.Logger.With("component", "physics"))
	if err != nil {
		return err
	}
	rm.SetPhysicsList(phys)
	phys.DisableVerbosity()

	gen := goupil.NewPrimaryGenerator()
	gen.Position = cfg.SourcePosition()
	rm.SetPrimaryGenerator(gen)

	step, err := goupil.NewSteppingAction(params.Output, cfg.Detector, params.Header.Energy)
	if err != nil {
		return err
	}
	rm.SetSteppingAction(step)

	err = rm.Initialize()
	if err != nil {
		return fmt.Errorf("sim: could not initialize run: %w", err)
	}

	gen.Energy = params.Header.Energy

	start := time.Now()
	err = rm.BeamOn(ctx, params.Header.Events)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	calc := transport.NewEmCalculator(phys)
	tbl, err := goupil.ComputeCrossSections(calc, phys.Processes(), geo.Material)
	if err != nil {
		return fmt.Errorf("sim: could not compute cross sections: %w", err)
	}
	xsfile, err := goupil.DumpCrossSections(cfg.DataDir, model, tbl)
	if err != nil {
		return err
	}
	app.Logger.Info("cross sections written", "file", xsfile, "processes", tbl.Processes)

	err = rm.Close()
	if err != nil {
		return err
	}
	app.Logger.Info("records written", "file", params.Output, "records", step.Records())

	if app.Summary == "" {
		return nil
	}
	sum := newSummary(cfg, step, xsfile, elapsed)
	err = sum.Save(app.Summary)
	if err != nil {
		return err
	}
	app.Logger.Info("summary written", "file", app.Summary, "run", sum.ID)
	return nil
}

func (app *App) defaults() {
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.Logger == nil {
		app.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// writeHeader creates the output file and writes the run header.
func writeHeader(params goupil.Parameters) error {
	f, err := os.Create(params.Output)
	if err != nil {
		return fmt.Errorf("%w [%s]: %w", ErrOutputFile, params.Output, err)
	}
	defer f.Close()

	err = goupil.WriteHeader(f, params.Header)
	if err != nil {
		return fmt.Errorf("sim: could not write header [%s]: %w", params.Output, err)
	}
	err = f.Close()
	if err != nil {
		return fmt.Errorf("sim: could not write header [%s]: %w", params.Output, err)
	}
	return nil
}

// profile starts the requested CPU profiling and tracing. The returned
// function stops them.
func (app *App) profile() (func(), error) {
	var stops []func()
	stop := func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if app.CPUProfile != "" {
		fprof, err := os.Create(app.CPUProfile)
		if err != nil {
			return stop, fmt.Errorf("sim: error creating pprof output file [%s]: %w", app.CPUProfile, err)
		}
		err = pprof.StartCPUProfile(fprof)
		if err != nil {
			fprof.Close()
			return stop, fmt.Errorf("sim: error starting CPU profile: %w", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			fprof.Close()
		})
	}

	if app.Trace != "" {
		ftrace, err := os.Create(app.Trace)
		if err != nil {
			stop()
			return func() {}, fmt.Errorf("sim: error creating trace output file [%s]: %w", app.Trace, err)
		}
		err = trace.Start(ftrace)
		if err != nil {
			ftrace.Close()
			stop()
			return func() {}, fmt.Errorf("sim: error starting tracer: %w", err)
		}
		stops = append(stops, func() {
			trace.Stop()
			ftrace.Close()
		})
	}
	return stop, nil
}
