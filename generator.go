package goupil

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/niess/geant4-goupil-validation/transport"
	"gonum.org/v1/gonum/spatial/r3"
)

// PrimaryGenerator emits mono-energetic photons isotropically from a point
// source.
type PrimaryGenerator struct {
	Energy   float64 // in MeV
	Position r3.Vec  // in mm
}

// NewPrimaryGenerator returns a generator located 1 m below the ground.
func NewPrimaryGenerator() *PrimaryGenerator {
	return &PrimaryGenerator{
		Energy:   DefaultEnergy,
		Position: r3.Vec{Z: -1 * transport.Meter},
	}
}

// GeneratePrimary returns the primary photon of evt.
func (gen *PrimaryGenerator) GeneratePrimary(evt *transport.Event, rng *rand.Rand) (transport.Track, error) {
	if !(gen.Energy > 0) {
		return transport.Track{}, fmt.Errorf("goupil: invalid primary energy (%v MeV): %w", gen.Energy, ErrEnergy)
	}

	cost := 2*rng.Float64() - 1
	sint := math.Sqrt((1 - cost) * (1 + cost))
	phi := 2 * math.Pi * rng.Float64()
	dir := r3.Vec{
		X: sint * math.Cos(phi),
		Y: sint * math.Sin(phi),
		Z: cost,
	}
	return transport.NewPhoton(evt.ID, gen.Energy, gen.Position, dir), nil
}
