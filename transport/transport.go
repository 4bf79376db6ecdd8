// Package transport is a small Monte Carlo photon transport engine.
//
// It follows the structure of a Geant4 application: a RunManager is given a
// Detector, a PhysicsList, a PrimaryGenerator and an optional
// SteppingAction, is initialized, then runs a number of events with BeamOn.
// Cross sections of the registered processes can be queried with an
// EmCalculator.
//
// Photons are tracked in a condensed analog way: photoelectric absorption,
// Compton scattering, Rayleigh scattering and pair conversion. Secondary
// charged particles are not tracked.
package transport

import (
	"errors"
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrConfig         = errors.New("transport: configuration error")
	ErrUnknownModel   = errors.New("transport: unknown physics model")
	ErrUnknownProcess = errors.New("transport: unknown process")
	ErrValue          = errors.New("transport: value error")
)

// Event identifies a simulated event.
type Event struct {
	ID int64
}

// Track is the state of a photon being transported.
type Track struct {
	Event     int64
	P         fmom.PxPyPzE // four-momentum, in MeV
	Position  r3.Vec       // in mm
	Direction r3.Vec       // unit vector
	Medium    int          // index of the current medium, -1 outside the world
	Length    float64      // track length, in mm
	alive     bool
}

// NewPhoton returns a photon track with the given energy, position and
// direction. The direction is normalized.
func NewPhoton(evt int64, energy float64, pos, dir r3.Vec) Track {
	trk := Track{
		Event:    evt,
		Position: pos,
		Medium:   -1,
		alive:    true,
	}
	trk.update(energy, r3.Unit(dir))
	return trk
}

// Energy returns the photon energy.
func (trk *Track) Energy() float64 {
	return trk.P.E()
}

// Alive reports whether the track is still being transported.
func (trk *Track) Alive() bool {
	return trk.alive
}

// Kill stops the transport of the track.
func (trk *Track) Kill() {
	trk.alive = false
}

func (trk *Track) update(energy float64, dir r3.Vec) {
	trk.Direction = dir
	trk.P = fmom.NewPxPyPzE(energy*dir.X, energy*dir.Y, energy*dir.Z, energy)
}

func (trk *Track) move(dist float64) {
	trk.Position = r3.Add(trk.Position, r3.Scale(dist, trk.Direction))
	trk.Length += dist
}

// StepPoint is a snapshot of a track at one end of a step.
type StepPoint struct {
	Position r3.Vec
	Energy   float64
	Medium   int
}

// Step describes a single transport step.
type Step struct {
	Event   int64
	Pre     StepPoint
	Post    StepPoint
	Length  float64
	Process string // name of the process that limited the step
	Track   *Track
}

// rotateUz rotates the unit vector u by a polar angle of cosine cost and an
// azimuthal angle phi.
func rotateUz(u r3.Vec, cost, phi float64) r3.Vec {
	sint := math.Sqrt(math.Max(0, (1-cost)*(1+cost)))
	dx := sint * math.Cos(phi)
	dy := sint * math.Sin(phi)
	dz := cost

	up := u.X*u.X + u.Y*u.Y
	if up > 0 {
		up = math.Sqrt(up)
		return r3.Vec{
			X: (u.X*u.Z*dx-u.Y*dy)/up + u.X*dz,
			Y: (u.Y*u.Z*dx+u.X*dy)/up + u.Y*dz,
			Z: -up*dx + u.Z*dz,
		}
	}
	if u.Z > 0 {
		return r3.Vec{X: dx, Y: dy, Z: dz}
	}
	return r3.Vec{X: -dx, Y: dy, Z: -dz}
}
