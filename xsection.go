package goupil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/niess/geant4-goupil-validation/transport"
	"gonum.org/v1/gonum/floats"
)

// Energy grid of the cross-section tables.
const (
	NumEnergies = 401
	EnergyMin   = 1e-3 * transport.MeV
	EnergyMax   = 1e+1 * transport.MeV
)

// DefaultDataDir is the directory where cross-section tables are written.
const DefaultDataDir = "share/data"

// Table is a cross-section table: Values[i][j] is the cross section per
// atom, in barn, of process j at energy i.
type Table struct {
	Processes []string
	Energies  []float64 // in MeV
	Values    [][]float64
}

// Energies returns the logarithmic energy grid of the tables.
func Energies() []float64 {
	return floats.LogSpan(make([]float64, NumEnergies), EnergyMin, EnergyMax)
}

// ComputeCrossSections tabulates the cross sections of procs in mat, per
// atom. The Transportation process is skipped.
func ComputeCrossSections(calc *transport.EmCalculator, procs []transport.Process, mat *transport.Material) (*Table, error) {
	tbl := &Table{
		Energies: Energies(),
	}
	for _, proc := range procs {
		if proc.Name() == (transport.Transportation{}).Name() {
			continue
		}
		tbl.Processes = append(tbl.Processes, proc.Name())
	}

	natoms := mat.AtomsPerVolume()
	tbl.Values = make([][]float64, len(tbl.Energies))
	for i, energy := range tbl.Energies {
		row := make([]float64, len(tbl.Processes))
		for j, name := range tbl.Processes {
			sigma, err := calc.CrossSectionPerVolume(energy, name, mat)
			if err != nil {
				return nil, err
			}
			row[j] = sigma / natoms / transport.Barn
		}
		tbl.Values[i] = row
	}
	return tbl, nil
}

// WriteTo writes the table as text: a "# energy <process>..." header line
// then one row per energy.
func (tbl *Table) WriteTo(w io.Writer) (int64, error) {
	ww := &countWriter{w: w}
	bw := bufio.NewWriter(ww)
	fmt.Fprintf(bw, "# energy")
	for _, name := range tbl.Processes {
		fmt.Fprintf(bw, " %s", name)
	}
	fmt.Fprintf(bw, "\n")

	for i, energy := range tbl.Energies {
		fmt.Fprintf(bw, "%.5E", energy)
		for _, v := range tbl.Values[i] {
			fmt.Fprintf(bw, " %.5E", v)
		}
		fmt.Fprintf(bw, "\n")
	}
	err := bw.Flush()
	return ww.n, err
}

// CrossSectionsPath returns the path of the cross-section table of model.
func CrossSectionsPath(dir, model string) string {
	return filepath.Join(dir, "cross-sections-"+model+".txt")
}

// DumpCrossSections writes the cross-section table of model under dir,
// creating dir if needed. It returns the path of the written file.
func DumpCrossSections(dir, model string, tbl *Table) (string, error) {
	fname := CrossSectionsPath(dir, model)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fname, fmt.Errorf("goupil: could not create data directory [%s]: %w", dir, err)
	}

	f, err := os.Create(fname)
	if err != nil {
		return fname, fmt.Errorf("goupil: could not create cross-sections file [%s]: %w", fname, err)
	}
	defer f.Close()

	_, err = tbl.WriteTo(f)
	if err != nil {
		return fname, fmt.Errorf("goupil: could not write cross-sections file [%s]: %w", fname, err)
	}
	err = f.Close()
	if err != nil {
		return fname, fmt.Errorf("goupil: could not close cross-sections file [%s]: %w", fname, err)
	}
	return fname, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
