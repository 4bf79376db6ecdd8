package goupil

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Default run parameters.
const (
	DefaultModel  = "standard"
	DefaultEnergy = 1.0 // in MeV
	DefaultEvents = 1000000
	DefaultOutput = "geant4-goupil-validation.bin"
)

var (
	ErrHelp   = errors.New("goupil: help requested")
	ErrModel  = errors.New("goupil: invalid model")
	ErrEnergy = errors.New("goupil: invalid energy")
	ErrEvents = errors.New("goupil: invalid number of events")
	ErrOutput = errors.New("goupil: invalid output file")
)

// Parameters are the parameters of a simulation run.
type Parameters struct {
	Help   bool
	Header Header
	Output string
}

// DefaultParameters returns the default run parameters.
func DefaultParameters() Parameters {
	return Parameters{
		Header: Header{
			Model:  DefaultModel,
			Energy: DefaultEnergy,
			Events: DefaultEvents,
		},
		Output: DefaultOutput,
	}
}

// Validate checks that the parameters describe a valid run.
func (p Parameters) Validate() error {
	switch {
	case p.Help:
		return ErrHelp
	case p.Header.Model == "":
		return fmt.Errorf("goupil: empty model name: %w", ErrModel)
	case len(p.Header.Model) >= ModelSize:
		return fmt.Errorf("goupil: model name %q longer than %d bytes: %w", p.Header.Model, ModelSize-1, ErrModel)
	case !(p.Header.Energy > 0) || math.IsInf(p.Header.Energy, 1):
		return fmt.Errorf("goupil: energy=%v MeV: %w", p.Header.Energy, ErrEnergy)
	case p.Header.Events <= 0:
		return fmt.Errorf("goupil: events=%d: %w", p.Header.Events, ErrEvents)
	case p.Output == "":
		return fmt.Errorf("goupil: empty output path: %w", ErrOutput)
	}
	return nil
}

// Print writes the parameters block to w.
func (p Parameters) Print(w io.Writer) {
	fmt.Fprintf(w, "=== simulation parameters ===\n")
	fmt.Fprintf(w, "model      : %s\n", p.Header.Model)
	fmt.Fprintf(w, "energy     : %.6g MeV\n", p.Header.Energy)
	fmt.Fprintf(w, "events     : %d\n", p.Header.Events)
	fmt.Fprintf(w, "output file: %s\n", p.Output)
}

// Usage writes the usage text of the program name to w.
func Usage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: %s <option(s)> SOURCES\n", name)
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "\t-h,--help\tShow this help message\n")
	fmt.Fprintf(w, "\t-m,--model\tSpecify the physics model\n")
	fmt.Fprintf(w, "\t-e,--energy\tSpecify the kinetic energy in [MeV]\n")
	fmt.Fprintf(w, "\t-n,--events\tSpecify the number of events to generate\n")
	fmt.Fprintf(w, "\t-o,--output\tSpecify the output file\n")
}
