package transport

import (
	"fmt"
	"sort"
)

// Element is a chemical element, or an effective one for mixtures such as
// standard rock.
type Element struct {
	Name string
	Z    float64 // atomic number
	A    float64 // atomic mass in g/mol
}

// Component is an element of a material with its mass fraction.
type Component struct {
	Element  *Element
	Fraction float64
}

// Material is a homogeneous medium.
type Material struct {
	Name       string
	Density    float64 // in g/mm^3
	Components []Component
}

var elements = map[string]*Element{
	"Hydrogen":      {Name: "Hydrogen", Z: 1, A: 1.00795},
	"Carbon":        {Name: "Carbon", Z: 6, A: 12.0108},
	"Nitrogen":      {Name: "Nitrogen", Z: 7, A: 14.0067},
	"Oxygen":        {Name: "Oxygen", Z: 8, A: 15.9994},
	"Sodium":        {Name: "Sodium", Z: 11, A: 22.9898},
	"Rock:Standard": {Name: "Rock:Standard", Z: 11, A: 22},
	"Magnesium":     {Name: "Magnesium", Z: 12, A: 24.3051},
	"Aluminium":     {Name: "Aluminium", Z: 13, A: 26.9815},
	"Silicon":       {Name: "Silicon", Z: 14, A: 28.0855},
	"Argon":         {Name: "Argon", Z: 18, A: 39.948},
	"Potassium":     {Name: "Potassium", Z: 19, A: 39.0983},
	"Calcium":       {Name: "Calcium", Z: 20, A: 40.0784},
	"Iron":          {Name: "Iron", Z: 26, A: 55.8452},
	"Lead":          {Name: "Lead", Z: 82, A: 207.2},
}

// Predefined materials.
var (
	StandardRock = newMaterial("StandardRock", 2.65,
		[]string{"Rock:Standard"},
		[]float64{1.0},
	)
	DryAir = newMaterial("DryAir", 1.205e-3,
		[]string{"Carbon", "Nitrogen", "Oxygen", "Argon"},
		[]float64{0.000124, 0.755267, 0.231781, 0.012827},
	)
	Water = newMaterial("Water", 1.0,
		[]string{"Hydrogen", "Oxygen"},
		[]float64{0.111894, 0.888106},
	)
	Concrete = newMaterial("Concrete", 2.3,
		[]string{"Hydrogen", "Carbon", "Oxygen", "Sodium", "Magnesium", "Aluminium", "Silicon", "Potassium", "Calcium", "Iron"},
		[]float64{0.010000, 0.001000, 0.529107, 0.016000, 0.002000, 0.033872, 0.337021, 0.013000, 0.044000, 0.014000},
	)
	Iron = newMaterial("Iron", 7.874, []string{"Iron"}, []float64{1.0})
	Lead = newMaterial("Lead", 11.35, []string{"Lead"}, []float64{1.0})
)

var materials = map[string]*Material{}

func init() {
	for _, mat := range []*Material{StandardRock, DryAir, Water, Concrete, Iron, Lead} {
		materials[mat.Name] = mat
	}
}

// newMaterial builds a material from a density in g/cm^3 and a mass
// composition. It panics on unknown element names.
func newMaterial(name string, density float64, names []string, weights []float64) *Material {
	mat := &Material{
		Name:       name,
		Density:    density * Gram / Centimeter3,
		Components: make([]Component, len(names)),
	}
	for i, n := range names {
		elt, ok := elements[n]
		if !ok {
			panic(fmt.Errorf("transport: unknown element %q", n))
		}
		mat.Components[i] = Component{Element: elt, Fraction: weights[i]}
	}
	return mat
}

// MaterialByName returns a predefined material.
func MaterialByName(name string) (*Material, error) {
	mat, ok := materials[name]
	if !ok {
		return nil, fmt.Errorf("transport: unknown material %q: %w", name, ErrConfig)
	}
	return mat, nil
}

// Materials returns the names of the predefined materials, sorted.
func Materials() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// atomDensities returns the number of atoms per unit volume of each
// component.
func (mat *Material) atomDensities() []float64 {
	n := make([]float64, len(mat.Components))
	for i, c := range mat.Components {
		n[i] = mat.Density * Avogadro * c.Fraction / c.Element.A
	}
	return n
}

// AtomsPerVolume returns the total number of atoms per unit volume.
func (mat *Material) AtomsPerVolume() float64 {
	sum := 0.0
	for _, n := range mat.atomDensities() {
		sum += n
	}
	return sum
}

// ElectronsPerVolume returns the number of electrons per unit volume.
func (mat *Material) ElectronsPerVolume() float64 {
	sum := 0.0
	for i, n := range mat.atomDensities() {
		sum += n * mat.Components[i].Element.Z
	}
	return sum
}

func (mat *Material) String() string {
	return mat.Name
}
