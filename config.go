package goupil

import (
	"fmt"
	"os"

	"github.com/niess/geant4-goupil-validation/transport"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of a run.
type Config struct {
	Model    string         `yaml:"model"`
	Energy   float64        `yaml:"energy"`
	Events   int64          `yaml:"events"`
	Output   string         `yaml:"output"`
	DataDir  string         `yaml:"data_dir"`
	Seed     uint64         `yaml:"seed"`
	LogLevel string         `yaml:"log_level"`
	Source   Point          `yaml:"source"`
	Detector int            `yaml:"detector"`
	Geometry GeometryConfig `yaml:"geometry"`
}

// Point is a position, in mm.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// GeometryConfig describes the layers of the geometry.
type GeometryConfig struct {
	HalfWidth float64       `yaml:"half_width"`
	Target    string        `yaml:"target"` // material of the cross-section tables
	Layers    []LayerConfig `yaml:"layers"`
}

// LayerConfig describes a layer, by material name.
type LayerConfig struct {
	Material string  `yaml:"material"`
	ZMin     float64 `yaml:"zmin"`
	ZMax     float64 `yaml:"zmax"`
}

// DefaultConfig returns the configuration of the default run.
func DefaultConfig() Config {
	p := DefaultParameters()
	geo := NewGeometry()
	gen := NewPrimaryGenerator()

	cfg := Config{
		Model:    p.Header.Model,
		Energy:   p.Header.Energy,
		Events:   p.Header.Events,
		Output:   p.Output,
		DataDir:  DefaultDataDir,
		Seed:     1,
		LogLevel: "info",
		Source:   Point{X: gen.Position.X, Y: gen.Position.Y, Z: gen.Position.Z},
		Detector: len(geo.Layers) - 1,
		Geometry: GeometryConfig{
			HalfWidth: geo.HalfWidth,
			Target:    geo.Material.Name,
		},
	}
	for _, l := range geo.Layers {
		cfg.Geometry.Layers = append(cfg.Geometry.Layers, LayerConfig{
			Material: l.Material.Name,
			ZMin:     l.ZMin,
			ZMax:     l.ZMax,
		})
	}
	return cfg
}

// LoadConfig reads a YAML configuration. Missing keys keep their default
// values.
func LoadConfig(fname string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(fname)
	if err != nil {
		return cfg, fmt.Errorf("goupil: could not read config [%s]: %w", fname, err)
	}
	err = yaml.Unmarshal(raw, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("goupil: could not decode config [%s]: %w", fname, err)
	}
	return cfg, nil
}

// Parameters returns the run parameters of the configuration.
func (cfg Config) Parameters() Parameters {
	return Parameters{
		Header: Header{
			Model:  cfg.Model,
			Energy: cfg.Energy,
			Events: cfg.Events,
		},
		Output: cfg.Output,
	}
}

// NewGeometry builds and validates the geometry of the configuration.
func (cfg Config) NewGeometry() (*Geometry, error) {
	geo := &Geometry{
		HalfWidth: cfg.Geometry.HalfWidth,
		Layers:    make([]Layer, len(cfg.Geometry.Layers)),
	}
	for i, l := range cfg.Geometry.Layers {
		mat, err := transport.MaterialByName(l.Material)
		if err != nil {
			return nil, fmt.Errorf("goupil: layer %d: %w", i, err)
		}
		geo.Layers[i] = Layer{Material: mat, ZMin: l.ZMin, ZMax: l.ZMax}
	}

	mat, err := transport.MaterialByName(cfg.Geometry.Target)
	if err != nil {
		return nil, fmt.Errorf("goupil: target: %w", err)
	}
	geo.Material = mat

	err = geo.Validate()
	if err != nil {
		return nil, err
	}
	if cfg.Detector < 0 || cfg.Detector >= len(geo.Layers) {
		return nil, fmt.Errorf("goupil: detector layer %d out of range [0, %d): %w", cfg.Detector, len(geo.Layers), ErrGeometry)
	}
	if geo.Locate(cfg.SourcePosition()) < 0 {
		return nil, fmt.Errorf("goupil: source %+v outside of the world: %w", cfg.Source, ErrGeometry)
	}
	return geo, nil
}

// SourcePosition returns the source position as a vector.
func (cfg Config) SourcePosition() r3.Vec {
	return r3.Vec{X: cfg.Source.X, Y: cfg.Source.Y, Z: cfg.Source.Z}
}
