package goupil

import (
	"errors"
	"fmt"
	"math"

	"github.com/niess/geant4-goupil-validation/transport"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrGeometry = errors.New("goupil: invalid geometry")

// Layer is a horizontal slab of material, ZMin <= z < ZMax.
type Layer struct {
	Material *transport.Material
	ZMin     float64 // in mm
	ZMax     float64 // in mm
}

// Geometry is a stack of horizontal layers inside a square world of half
// width HalfWidth.
//
// Material is the material of the validation target, used for the
// cross-section tables.
type Geometry struct {
	HalfWidth float64 // in mm
	Layers    []Layer
	Material  *transport.Material
}

// NewGeometry returns the default geometry: 100 m of standard rock below
// 100 m of dry air, in a world of 200 m x 200 m.
func NewGeometry() *Geometry {
	return &Geometry{
		HalfWidth: 100 * transport.Meter,
		Layers: []Layer{
			{Material: transport.StandardRock, ZMin: -100 * transport.Meter, ZMax: 0},
			{Material: transport.DryAir, ZMin: 0, ZMax: 100 * transport.Meter},
		},
		Material: transport.StandardRock,
	}
}

// Validate checks that layers are ordered bottom-up and contiguous.
func (geo *Geometry) Validate() error {
	if !(geo.HalfWidth > 0) {
		return fmt.Errorf("goupil: half width=%v mm: %w", geo.HalfWidth, ErrGeometry)
	}
	if len(geo.Layers) == 0 {
		return fmt.Errorf("goupil: no layers: %w", ErrGeometry)
	}
	for i, l := range geo.Layers {
		if l.Material == nil {
			return fmt.Errorf("goupil: layer %d has no material: %w", i, ErrGeometry)
		}
		if !(l.ZMin < l.ZMax) {
			return fmt.Errorf("goupil: layer %d is empty (zmin=%v, zmax=%v): %w", i, l.ZMin, l.ZMax, ErrGeometry)
		}
		if i > 0 && l.ZMin != geo.Layers[i-1].ZMax {
			return fmt.Errorf("goupil: layer %d does not start at the top of layer %d: %w", i, i-1, ErrGeometry)
		}
	}
	if geo.Material == nil {
		return fmt.Errorf("goupil: no target material: %w", ErrGeometry)
	}
	return nil
}

// Locate returns the index of the layer containing pos, -1 outside of the
// world.
func (geo *Geometry) Locate(pos r3.Vec) int {
	if math.Abs(pos.X) > geo.HalfWidth || math.Abs(pos.Y) > geo.HalfWidth {
		return -1
	}
	for i, l := range geo.Layers {
		if pos.Z >= l.ZMin && pos.Z < l.ZMax {
			return i
		}
	}
	return -1
}

// DistanceToOut returns the distance from pos to the boundary of layer
// idx along dir.
func (geo *Geometry) DistanceToOut(idx int, pos, dir r3.Vec) float64 {
	l := geo.Layers[idx]
	d := math.Inf(1)
	d = math.Min(d, planes(pos.Z, dir.Z, l.ZMin, l.ZMax))
	d = math.Min(d, planes(pos.X, dir.X, -geo.HalfWidth, geo.HalfWidth))
	d = math.Min(d, planes(pos.Y, dir.Y, -geo.HalfWidth, geo.HalfWidth))
	return math.Max(d, 0)
}

// planes returns the distance to exit [lo, hi] from x moving with the
// direction cosine u.
func planes(x, u, lo, hi float64) float64 {
	switch {
	case u > 0:
		return (hi - x) / u
	case u < 0:
		return (lo - x) / u
	}
	return math.Inf(1)
}

// Medium returns the material of layer idx.
func (geo *Geometry) Medium(idx int) *transport.Material {
	return geo.Layers[idx].Material
}

// NumMedia returns the number of layers.
func (geo *Geometry) NumMedia() int {
	return len(geo.Layers)
}
