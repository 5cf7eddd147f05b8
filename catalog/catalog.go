// Package catalog loads particle catalogues and decay-mode records. The
// catalogue is YAML (one entry per isospin multiplet, with explicit
// charge states); decay modes use a plain text format of section headers
// and "ratio L daughter..." lines. Embedded defaults cover a small
// standard hadron set.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/resonance/decay"
	"github.com/pthm-cable/resonance/particle"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed decaymodes.txt
var defaultModes string

// File is the top-level YAML catalogue document.
type File struct {
	Particles []MultipletConfig `yaml:"particles"`
}

// MultipletConfig describes one isospin multiplet (or a single
// non-hadronic species). Mass, width, parity and spin are shared by all
// charge states; spin is doubled (2J).
type MultipletConfig struct {
	Name         string        `yaml:"name"`
	Mass         float64       `yaml:"mass"`   // pole mass [GeV]
	Width        float64       `yaml:"width"`  // pole width [GeV]
	Parity       string        `yaml:"parity"` // "+" or "-"
	Spin         int           `yaml:"spin"`   // doubled spin 2J
	BaryonNumber int           `yaml:"baryon_number"`
	Strangeness  int           `yaml:"strangeness"`
	Anti         bool          `yaml:"anti"` // generate the conjugate states
	States       []StateConfig `yaml:"states"`
}

// StateConfig is one concrete charge state.
type StateConfig struct {
	Name   string       `yaml:"name"`
	PDG    particle.PDG `yaml:"pdg"`
	Charge int          `yaml:"charge"`
}

// ParseParticles builds a frozen particle list from YAML catalogue data.
func ParseParticles(data []byte) (*particle.List, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing particle catalogue: %w", err)
	}
	var (
		types      []*particle.Type
		multiplets []*particle.Multiplet
	)
	for _, mc := range f.Particles {
		if len(mc.States) == 0 {
			return nil, fmt.Errorf("multiplet %q has no states", mc.Name)
		}
		parity, err := particle.ParseParity(mc.Parity)
		if err != nil {
			return nil, fmt.Errorf("multiplet %q: %w", mc.Name, err)
		}
		states := make([]*particle.Type, len(mc.States))
		for i, sc := range mc.States {
			if i > 0 && sc.Charge <= mc.States[i-1].Charge {
				return nil, fmt.Errorf("multiplet %q: states must be ordered by ascending charge", mc.Name)
			}
			states[i] = particle.New(sc.Name, mc.Mass, mc.Width, parity,
				sc.PDG, sc.Charge, mc.Spin, mc.BaryonNumber, mc.Strangeness)
		}
		types = append(types, states...)
		// Isospin multiplets are a hadronic concept; leptons and the
		// photon stay bare states.
		if states[0].IsHadron() {
			multiplets = append(multiplets, particle.NewMultiplet(mc.Name, states))
		}
		if mc.Anti {
			bar := mc.BaryonNumber != 0 || mc.Strangeness != 0
			antiParity := parity
			if mc.Spin%2 == 1 { // fermions flip parity under conjugation
				antiParity = parity.Inverse()
			}
			antiStates := make([]*particle.Type, len(mc.States))
			for i := range mc.States {
				sc := mc.States[len(mc.States)-1-i] // reverse keeps charges ascending
				antiStates[i] = particle.New(antiName(sc.Name, bar), mc.Mass, mc.Width,
					antiParity, sc.PDG.Anti(), -sc.Charge, mc.Spin,
					-mc.BaryonNumber, -mc.Strangeness)
			}
			types = append(types, antiStates...)
			if antiStates[0].IsHadron() {
				multiplets = append(multiplets, particle.NewMultiplet(antiName(mc.Name, bar), antiStates))
			}
		}
	}
	return particle.NewList(types, multiplets)
}

// antiName converts a state name into its conjugate: charge superscripts
// are swapped and, for baryons and strange hadrons, a combining bar is
// placed over the leading symbol.
func antiName(name string, bar bool) string {
	r := []rune(name)
	for i, c := range r {
		switch c {
		case '⁺':
			r[i] = '⁻'
		case '⁻':
			r[i] = '⁺'
		}
	}
	if bar {
		return string(r[0]) + "̅" + string(r[1:])
	}
	return string(r)
}

// ParseModeLines splits decay-mode text into numbered records, dropping
// comments (from '#') and blank lines while preserving the original
// 1-based line numbers.
func ParseModeLines(input string) []decay.Line {
	var lines []decay.Line
	for i, raw := range strings.Split(input, "\n") {
		text := raw
		if j := strings.IndexByte(text, '#'); j >= 0 {
			text = text[:j]
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, decay.Line{Number: i + 1, Text: text})
	}
	return lines
}

// LoadParticles reads a YAML catalogue file.
func LoadParticles(path string) (*particle.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading particle catalogue: %w", err)
	}
	return ParseParticles(data)
}

// LoadModeLines reads a decay-modes file.
func LoadModeLines(path string) ([]decay.Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading decay modes: %w", err)
	}
	return ParseModeLines(string(data)), nil
}

// Default returns the embedded default catalogue and decay-mode records.
func Default() (*particle.List, []decay.Line, error) {
	list, err := ParseParticles(defaultsYAML)
	if err != nil {
		return nil, nil, err
	}
	return list, ParseModeLines(defaultModes), nil
}
