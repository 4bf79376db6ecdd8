package goupil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niess/geant4-goupil-validation/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultParameters(), cfg.Parameters())
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, 1, cfg.Detector)

	geo, err := cfg.NewGeometry()
	require.NoError(t, err)
	assert.Equal(t, NewGeometry(), geo)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "livermore", cfg.Model)
	assert.Equal(t, 0.5, cfg.Energy)
	assert.Equal(t, int64(1000), cfg.Events)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, r3.Vec{Z: -10}, cfg.SourcePosition())

	// defaults are kept for missing keys.
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Detector)

	geo, err := cfg.NewGeometry()
	require.NoError(t, err)
	require.Len(t, geo.Layers, 2)
	assert.Same(t, transport.Water, geo.Layers[0].Material)
	assert.Same(t, transport.DryAir, geo.Layers[1].Material)
	assert.Same(t, transport.Water, geo.Material)
	assert.Equal(t, 10000.0, geo.HalfWidth)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join("testdata", "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	fname := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("events: [1, 2]\n"), 0644))
	_, err = LoadConfig(fname)
	require.Error(t, err)
}

func TestConfigNewGeometryErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(cfg *Config)
		want   error
	}{
		{"unknown material", func(cfg *Config) { cfg.Geometry.Layers[0].Material = "Cheese" }, transport.ErrConfig},
		{"unknown target", func(cfg *Config) { cfg.Geometry.Target = "Cheese" }, transport.ErrConfig},
		{"detector", func(cfg *Config) { cfg.Detector = 2 }, ErrGeometry},
		{"source", func(cfg *Config) { cfg.Source.Z = -1e9 }, ErrGeometry},
		{"overlap", func(cfg *Config) { cfg.Geometry.Layers[1].ZMin = -10 }, ErrGeometry},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			_, err := cfg.NewGeometry()
			require.ErrorIs(t, err, tc.want)
		})
	}
}
