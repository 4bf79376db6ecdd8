package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// Detector describes the geometry as a set of media.
type Detector interface {
	// Locate returns the index of the medium containing pos, or -1 if pos
	// is outside of the world.
	Locate(pos r3.Vec) int

	// DistanceToOut returns the distance from pos, along dir, to the
	// boundary of the medium idx.
	DistanceToOut(idx int, pos, dir r3.Vec) float64

	// Medium returns the material of the medium idx.
	Medium(idx int) *Material

	// NumMedia returns the number of media.
	NumMedia() int
}

// PrimaryGenerator generates the primary photon of an event.
type PrimaryGenerator interface {
	GeneratePrimary(evt *Event, rng *rand.Rand) (Track, error)
}

// SteppingAction is called after each transport step. It may kill the
// track.
type SteppingAction interface {
	UserSteppingAction(step *Step) error
}

const (
	// DefaultEnergyCut is the energy below which photons are killed.
	DefaultEnergyCut = 1 * KeV

	// push is the distance a track is moved past a boundary to enter the
	// next medium.
	push = 1e-6 * Millimeter
)

// RunManager drives the simulation of events.
type RunManager struct {
	Seed      uint64
	EnergyCut float64

	msg  *slog.Logger
	det  Detector
	phys *PhysicsList
	gen  PrimaryGenerator
	step SteppingAction

	initialized bool
	sigmas      []float64 // work buffer of macroscopic cross sections
}

// NewRunManager creates a run manager logging to msg. A nil logger
// discards messages.
func NewRunManager(msg *slog.Logger) *RunManager {
	if msg == nil {
		msg = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RunManager{
		Seed:      1,
		EnergyCut: DefaultEnergyCut,
		msg:       msg,
	}
}

func (rm *RunManager) SetDetector(det Detector)                 { rm.det = det }
func (rm *RunManager) SetPhysicsList(phys *PhysicsList)         { rm.phys = phys }
func (rm *RunManager) SetPrimaryGenerator(gen PrimaryGenerator) { rm.gen = gen }
func (rm *RunManager) SetSteppingAction(step SteppingAction)    { rm.step = step }

// PhysicsList returns the physics list set on the run manager.
func (rm *RunManager) PhysicsList() *PhysicsList { return rm.phys }

// Initialize checks the user initializations and builds the physics.
func (rm *RunManager) Initialize() error {
	switch {
	case rm.det == nil:
		return fmt.Errorf("transport: no detector: %w", ErrConfig)
	case rm.phys == nil:
		return fmt.Errorf("transport: no physics list: %w", ErrConfig)
	case rm.gen == nil:
		return fmt.Errorf("transport: no primary generator: %w", ErrConfig)
	}
	if rm.EnergyCut <= 0 {
		return fmt.Errorf("transport: invalid energy cut (%v MeV): %w", rm.EnergyCut, ErrValue)
	}

	n := rm.det.NumMedia()
	if n <= 0 {
		return fmt.Errorf("transport: detector has no media: %w", ErrConfig)
	}
	for i := 0; i < n; i++ {
		mat := rm.det.Medium(i)
		if mat == nil {
			return fmt.Errorf("transport: medium %d has no material: %w", i, ErrConfig)
		}
		rm.msg.Debug("medium",
			"index", i,
			"material", mat.Name,
			"density", mat.Density/(Gram/Centimeter3),
			"atoms_per_cm3", mat.AtomsPerVolume()*Centimeter3,
		)
		for _, c := range mat.Components {
			rm.msg.Debug("component",
				"medium", i,
				"z", c.Element.Z,
				"a", c.Element.A,
				"w", c.Fraction,
			)
		}
	}

	rm.phys.construct()
	rm.sigmas = make([]float64, len(rm.phys.Processes()))
	rm.initialized = true
	return nil
}

// BeamOn simulates n events. Events are numbered from 0 and each one uses
// its own random stream, seeded from Seed and the event number.
func (rm *RunManager) BeamOn(ctx context.Context, n int64) error {
	if !rm.initialized {
		return fmt.Errorf("transport: run manager not initialized: %w", ErrConfig)
	}
	if n < 0 {
		return fmt.Errorf("transport: invalid number of events (%d): %w", n, ErrValue)
	}

	rm.msg.Info("run started", "events", n, "seed", rm.Seed)
	every := max(n/10, 1)
	for i := int64(0); i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("transport: run aborted at event %d: %w", i, err)
		}
		evt := Event{ID: i}
		if err := rm.processEvent(&evt); err != nil {
			return fmt.Errorf("transport: error processing event #%d: %w", i, err)
		}
		if (i+1)%every == 0 {
			rm.msg.Debug("progress", "events", i+1, "total", n)
		}
	}
	rm.msg.Info("run terminated", "events", n)
	return nil
}

func (rm *RunManager) processEvent(evt *Event) error {
	rng := rand.New(rand.NewPCG(rm.Seed, uint64(evt.ID)))
	trk, err := rm.gen.GeneratePrimary(evt, rng)
	if err != nil {
		return err
	}
	trk.Event = evt.ID
	trk.Medium = rm.det.Locate(trk.Position)
	return rm.transport(&trk, rng)
}

// transport steps the track until it is absorbed, killed, falls below the
// energy cut or leaves the world.
func (rm *RunManager) transport(trk *Track, rng *rand.Rand) error {
	procs := rm.phys.Processes()
	for trk.alive && trk.Medium >= 0 {
		energy := trk.Energy()
		if energy < rm.EnergyCut {
			trk.Kill()
			break
		}

		mat := rm.det.Medium(trk.Medium)
		total := 0.0
		for i, proc := range procs {
			rm.sigmas[i] = crossSectionPerVolume(proc, energy, mat)
			total += rm.sigmas[i]
		}

		dist := math.Inf(1)
		if total > 0 {
			dist = -math.Log(1-rng.Float64()) / total
		}
		dout := rm.det.DistanceToOut(trk.Medium, trk.Position, trk.Direction)
		if math.IsInf(dist, 1) && math.IsInf(dout, 1) {
			// transparent and unbounded medium
			trk.Kill()
			break
		}

		step := Step{
			Event: trk.Event,
			Pre: StepPoint{
				Position: trk.Position,
				Energy:   energy,
				Medium:   trk.Medium,
			},
			Track: trk,
		}

		if dist >= dout {
			trk.move(dout + push)
			trk.Medium = rm.det.Locate(trk.Position)
			step.Length = dout + push
			step.Process = Transportation{}.Name()
		} else {
			trk.move(dist)
			step.Length = dist
			proc := rm.sample(procs, total, rng)
			proc.Interact(trk, rng)
			step.Process = proc.Name()
		}

		step.Post = StepPoint{
			Position: trk.Position,
			Energy:   trk.Energy(),
			Medium:   trk.Medium,
		}
		if rm.step != nil {
			if err := rm.step.UserSteppingAction(&step); err != nil {
				return err
			}
		}
	}
	return nil
}

// sample selects the interacting process according to the cross sections
// stored in the work buffer.
func (rm *RunManager) sample(procs []Process, total float64, rng *rand.Rand) Process {
	u := rng.Float64() * total
	for i, proc := range procs {
		u -= rm.sigmas[i]
		if u < 0 && rm.sigmas[i] > 0 {
			return proc
		}
	}
	// round-off: return the last process with a non-zero cross section.
	for i := len(procs) - 1; i >= 0; i-- {
		if rm.sigmas[i] > 0 {
			return procs[i]
		}
	}
	return procs[0]
}

// Close releases the user actions implementing io.Closer.
func (rm *RunManager) Close() error {
	rm.initialized = false
	if c, ok := rm.step.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
