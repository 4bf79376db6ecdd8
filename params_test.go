package goupil

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	assert.False(t, p.Help)
	assert.Equal(t, "standard", p.Header.Model)
	assert.Equal(t, 1.0, p.Header.Energy)
	assert.Equal(t, int64(1000000), p.Header.Events)
	assert.Equal(t, "geant4-goupil-validation.bin", p.Output)
	assert.NoError(t, p.Validate())
}

func TestParametersValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		modify func(p *Parameters)
		want   error
	}{
		{"help", func(p *Parameters) { p.Help = true }, ErrHelp},
		{"empty model", func(p *Parameters) { p.Header.Model = "" }, ErrModel},
		{"long model", func(p *Parameters) { p.Header.Model = strings.Repeat("m", 32) }, ErrModel},
		{"zero energy", func(p *Parameters) { p.Header.Energy = 0 }, ErrEnergy},
		{"negative energy", func(p *Parameters) { p.Header.Energy = -1 }, ErrEnergy},
		{"nan energy", func(p *Parameters) { p.Header.Energy = math.NaN() }, ErrEnergy},
		{"inf energy", func(p *Parameters) { p.Header.Energy = math.Inf(1) }, ErrEnergy},
		{"zero events", func(p *Parameters) { p.Header.Events = 0 }, ErrEvents},
		{"negative events", func(p *Parameters) { p.Header.Events = -10 }, ErrEvents},
		{"empty output", func(p *Parameters) { p.Output = "" }, ErrOutput},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.modify(&p)
			require.ErrorIs(t, p.Validate(), tc.want)
		})
	}
}

func TestParametersPrint(t *testing.T) {
	p := DefaultParameters()
	p.Header.Energy = 0.5

	var buf bytes.Buffer
	p.Print(&buf)

	want := "=== simulation parameters ===\n" +
		"model      : standard\n" +
		"energy     : 0.5 MeV\n" +
		"events     : 1000000\n" +
		"output file: geant4-goupil-validation.bin\n"
	assert.Equal(t, want, buf.String())
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf, "./run-goupil")

	want := "Usage: ./run-goupil <option(s)> SOURCES\n" +
		"Options:\n" +
		"\t-h,--help\tShow this help message\n" +
		"\t-m,--model\tSpecify the physics model\n" +
		"\t-e,--energy\tSpecify the kinetic energy in [MeV]\n" +
		"\t-n,--events\tSpecify the number of events to generate\n" +
		"\t-o,--output\tSpecify the output file\n"
	assert.Equal(t, want, buf.String())
}
