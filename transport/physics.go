package transport

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
)

// models maps a physics model name to the processes it registers for the
// photon, in registration order.
var models = map[string]func() []Process{
	"standard": func() []Process {
		return []Process{Transportation{}, Photoelectric{}, &Compton{Model: EmpiricalCompton}, Conversion{}, Rayleigh{}}
	},
	"penelope": func() []Process {
		return []Process{Transportation{}, Photoelectric{}, &Compton{Model: FreeCompton}, Conversion{}, Rayleigh{}}
	},
	"livermore": func() []Process {
		return []Process{Transportation{}, Photoelectric{}, &Compton{Model: BoundCompton}, Conversion{}, Rayleigh{}}
	},
}

// Models returns the names of the available physics models, sorted.
func Models() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PhysicsList holds the processes registered for the photon.
type PhysicsList struct {
	Model string

	procs []Process
	msg   *slog.Logger
}

// NewPhysicsList creates the physics list of the named model.
func NewPhysicsList(model string, msg *slog.Logger) (*PhysicsList, error) {
	build, ok := models[model]
	if !ok {
		return nil, fmt.Errorf("transport: model %q (available: %v): %w", model, Models(), ErrUnknownModel)
	}
	if msg == nil {
		msg = slog.Default()
	}
	pl := &PhysicsList{
		Model: model,
		procs: build(),
		msg:   msg,
	}
	return pl, nil
}

// DisableVerbosity silences the physics list messages.
func (pl *PhysicsList) DisableVerbosity() {
	pl.msg = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Processes returns the process list of the photon, Transportation
// included.
func (pl *PhysicsList) Processes() []Process {
	return pl.procs
}

// Process returns the registered process with the given name.
func (pl *PhysicsList) Process(name string) (Process, bool) {
	for _, proc := range pl.procs {
		if proc.Name() == name {
			return proc, true
		}
	}
	return nil, false
}

// construct logs the registered processes.
func (pl *PhysicsList) construct() {
	names := make([]string, len(pl.procs))
	for i, proc := range pl.procs {
		names[i] = proc.Name()
	}
	pl.msg.Info("physics list constructed", "model", pl.Model, "processes", names)
}

// crossSectionPerVolume returns the macroscopic cross section of proc in mat.
func crossSectionPerVolume(proc Process, energy float64, mat *Material) float64 {
	sigma := 0.0
	for i, n := range mat.atomDensities() {
		sigma += n * proc.CrossSectionPerAtom(energy, mat.Components[i].Element.Z)
	}
	return sigma
}
