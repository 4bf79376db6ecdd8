package goupil

import (
	"math"
	"testing"

	"github.com/niess/geant4-goupil-validation/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGeometryLocate(t *testing.T) {
	geo := NewGeometry()
	require.NoError(t, geo.Validate())

	for _, tc := range []struct {
		pos  r3.Vec
		want int
	}{
		{r3.Vec{Z: -1000}, 0},
		{r3.Vec{Z: 0}, 1},
		{r3.Vec{X: 5, Y: -5, Z: 1000}, 1},
		{r3.Vec{Z: -100 * transport.Meter}, 0},
		{r3.Vec{Z: 100 * transport.Meter}, -1},
		{r3.Vec{Z: -200 * transport.Meter}, -1},
		{r3.Vec{X: 101 * transport.Meter}, -1},
		{r3.Vec{Y: -101 * transport.Meter}, -1},
	} {
		assert.Equal(t, tc.want, geo.Locate(tc.pos), "pos=%+v", tc.pos)
	}
}

func TestGeometryDistanceToOut(t *testing.T) {
	geo := NewGeometry()
	pos := r3.Vec{Z: -1000}

	assert.InDelta(t, 1000, geo.DistanceToOut(0, pos, r3.Vec{Z: 1}), 1e-9)
	assert.InDelta(t, 99*transport.Meter, geo.DistanceToOut(0, pos, r3.Vec{Z: -1}), 1e-6)
	assert.InDelta(t, 100*transport.Meter, geo.DistanceToOut(0, pos, r3.Vec{X: 1}), 1e-6)

	dir := r3.Unit(r3.Vec{Z: 1, X: 1})
	assert.InDelta(t, 1000*math.Sqrt2, geo.DistanceToOut(0, pos, dir), 1e-9)
}

func TestGeometryValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(geo *Geometry)
	}{
		{"no width", func(geo *Geometry) { geo.HalfWidth = 0 }},
		{"no layers", func(geo *Geometry) { geo.Layers = nil }},
		{"no material", func(geo *Geometry) { geo.Layers[1].Material = nil }},
		{"empty layer", func(geo *Geometry) { geo.Layers[1].ZMax = geo.Layers[1].ZMin }},
		{"gap", func(geo *Geometry) { geo.Layers[1].ZMin = 10 }},
		{"no target", func(geo *Geometry) { geo.Material = nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			geo := NewGeometry()
			tc.modify(geo)
			require.ErrorIs(t, geo.Validate(), ErrGeometry)
		})
	}
}
