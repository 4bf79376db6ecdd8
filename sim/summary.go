package sim

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	goupil "github.com/niess/geant4-goupil-validation"
)

// Summary is the JSON report of a run.
type Summary struct {
	ID            string   `json:"id"`
	Model         string   `json:"model"`
	Energy        float64  `json:"energy"`
	Events        int64    `json:"events"`
	Seed          uint64   `json:"seed"`
	Output        string   `json:"output"`
	CrossSections string   `json:"cross_sections"`
	Elapsed       string   `json:"elapsed"`
	Records       int64    `json:"records"`
	Spectrum      Spectrum `json:"spectrum"`
}

// Spectrum summarizes the energy spectrum of the recorded photons.
type Spectrum struct {
	Entries int64   `json:"entries"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
}

func newSummary(cfg goupil.Config, step *goupil.SteppingAction, xsfile string, elapsed time.Duration) Summary {
	sum := Summary{
		ID:            uuid.NewString(),
		Model:         cfg.Model,
		Energy:        cfg.Energy,
		Events:        cfg.Events,
		Seed:          cfg.Seed,
		Output:        cfg.Output,
		CrossSections: xsfile,
		Elapsed:       elapsed.String(),
		Records:       step.Records(),
	}
	if h := step.Spectrum(); h.Entries() > 0 {
		sum.Spectrum = Spectrum{
			Entries: h.Entries(),
			Mean:    h.XMean(),
		}
		if h.Entries() > 1 {
			sum.Spectrum.StdDev = h.XStdDev()
		}
	}
	return sum
}

// Save writes the summary as indented JSON.
func (sum Summary) Save(fname string) error {
	raw, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(sum, "", "  ")
	if err != nil {
		return fmt.Errorf("sim: could not encode summary: %w", err)
	}
	raw = append(raw, '\n')
	err = os.WriteFile(fname, raw, 0644)
	if err != nil {
		return fmt.Errorf("sim: could not write summary [%s]: %w", fname, err)
	}
	return nil
}

// LoadSummary reads a JSON run summary.
func LoadSummary(fname string) (Summary, error) {
	var sum Summary
	raw, err := os.ReadFile(fname)
	if err != nil {
		return sum, fmt.Errorf("sim: could not read summary [%s]: %w", fname, err)
	}
	err = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &sum)
	if err != nil {
		return sum, fmt.Errorf("sim: could not decode summary [%s]: %w", fname, err)
	}
	return sum, nil
}
